package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type SystemRepo interface {
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.System, error)
	Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.System, int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.System, error)
	Create(ctx context.Context, tx *gorm.DB, system *types.System) error
	Update(ctx context.Context, tx *gorm.DB, system *types.System) error
	Delete(ctx context.Context, tx *gorm.DB, system *types.System) error
}

type systemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSystemRepo(db *gorm.DB, baseLog *logger.Logger) SystemRepo {
	return &systemRepo{db: db, log: baseLog.With("repo", "SystemRepo")}
}

func (r *systemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *systemRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.System, error) {
	var system types.System
	err := r.conn(tx).WithContext(ctx).First(&system, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &system, nil
}

func (r *systemRepo) Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.System{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *systemRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.System, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.System{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.System
	if err := q.Order("code ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *systemRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.System, error) {
	var items []*types.System
	if err := r.conn(tx).WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *systemRepo) Create(ctx context.Context, tx *gorm.DB, system *types.System) error {
	return r.conn(tx).WithContext(ctx).Create(system).Error
}

func (r *systemRepo) Update(ctx context.Context, tx *gorm.DB, system *types.System) error {
	return r.conn(tx).WithContext(ctx).Save(system).Error
}

func (r *systemRepo) Delete(ctx context.Context, tx *gorm.DB, system *types.System) error {
	return r.conn(tx).WithContext(ctx).Delete(system).Error
}
