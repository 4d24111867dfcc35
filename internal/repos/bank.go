package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type BankRepo interface {
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Bank, error)
	Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.Bank, int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Bank, error)
	Create(ctx context.Context, tx *gorm.DB, bank *types.Bank) error
	Update(ctx context.Context, tx *gorm.DB, bank *types.Bank) error
	Delete(ctx context.Context, tx *gorm.DB, bank *types.Bank) error
}

type bankRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBankRepo(db *gorm.DB, baseLog *logger.Logger) BankRepo {
	return &bankRepo{db: db, log: baseLog.With("repo", "BankRepo")}
}

func (r *bankRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *bankRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Bank, error) {
	var bank types.Bank
	err := r.conn(tx).WithContext(ctx).First(&bank, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bank, nil
}

func (r *bankRepo) Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.Bank{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bankRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.Bank, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.Bank{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.Bank
	if err := q.Order("code ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *bankRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Bank, error) {
	var items []*types.Bank
	if err := r.conn(tx).WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *bankRepo) Create(ctx context.Context, tx *gorm.DB, bank *types.Bank) error {
	return r.conn(tx).WithContext(ctx).Create(bank).Error
}

func (r *bankRepo) Update(ctx context.Context, tx *gorm.DB, bank *types.Bank) error {
	return r.conn(tx).WithContext(ctx).Save(bank).Error
}

func (r *bankRepo) Delete(ctx context.Context, tx *gorm.DB, bank *types.Bank) error {
	return r.conn(tx).WithContext(ctx).Delete(bank).Error
}
