package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type CostCenterRepo interface {
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.CostCenter, error)
	Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.CostCenter, int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.CostCenter, error)
	Create(ctx context.Context, tx *gorm.DB, costCenter *types.CostCenter) error
	Update(ctx context.Context, tx *gorm.DB, costCenter *types.CostCenter) error
	Delete(ctx context.Context, tx *gorm.DB, costCenter *types.CostCenter) error
}

type costCenterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCostCenterRepo(db *gorm.DB, baseLog *logger.Logger) CostCenterRepo {
	return &costCenterRepo{db: db, log: baseLog.With("repo", "CostCenterRepo")}
}

func (r *costCenterRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *costCenterRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.CostCenter, error) {
	var cc types.CostCenter
	err := r.conn(tx).WithContext(ctx).First(&cc, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *costCenterRepo) Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.CostCenter{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *costCenterRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.CostCenter, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.CostCenter{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.CostCenter
	if err := q.Order("code ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *costCenterRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.CostCenter, error) {
	var items []*types.CostCenter
	if err := r.conn(tx).WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *costCenterRepo) Create(ctx context.Context, tx *gorm.DB, costCenter *types.CostCenter) error {
	return r.conn(tx).WithContext(ctx).Create(costCenter).Error
}

func (r *costCenterRepo) Update(ctx context.Context, tx *gorm.DB, costCenter *types.CostCenter) error {
	return r.conn(tx).WithContext(ctx).Save(costCenter).Error
}

func (r *costCenterRepo) Delete(ctx context.Context, tx *gorm.DB, costCenter *types.CostCenter) error {
	return r.conn(tx).WithContext(ctx).Delete(costCenter).Error
}
