package repos

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type AuditLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) error
	ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, resource string) ([]*types.AuditLog, int64, error)
}

type auditLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuditLogRepo(db *gorm.DB, baseLog *logger.Logger) AuditLogRepo {
	return &auditLogRepo{db: db, log: baseLog.With("repo", "AuditLogRepo")}
}

func (r *auditLogRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *auditLogRepo) Create(ctx context.Context, tx *gorm.DB, entry *types.AuditLog) error {
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, resource string) ([]*types.AuditLog, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.AuditLog{})
	if res := strings.TrimSpace(resource); res != "" {
		q = q.Where("resource = ?", res)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.AuditLog
	if err := q.Order("created_at DESC, id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
