package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type BankBranchRepo interface {
	GetByCode(ctx context.Context, tx *gorm.DB, bankCode, code string) (*types.BankBranch, error)
	Exists(ctx context.Context, tx *gorm.DB, bankCode, code string) (bool, error)
	ListPaged(ctx context.Context, tx *gorm.DB, bankCode string, offset, limit int, search string) ([]*types.BankBranch, int64, error)
	CountByBankCode(ctx context.Context, tx *gorm.DB, bankCode string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, branch *types.BankBranch) error
	Update(ctx context.Context, tx *gorm.DB, branch *types.BankBranch) error
	Delete(ctx context.Context, tx *gorm.DB, branch *types.BankBranch) error
}

type bankBranchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBankBranchRepo(db *gorm.DB, baseLog *logger.Logger) BankBranchRepo {
	return &bankBranchRepo{db: db, log: baseLog.With("repo", "BankBranchRepo")}
}

func (r *bankBranchRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *bankBranchRepo) GetByCode(ctx context.Context, tx *gorm.DB, bankCode, code string) (*types.BankBranch, error) {
	var branch types.BankBranch
	err := r.conn(tx).WithContext(ctx).
		First(&branch, "bank_code = ? AND code = ?", bankCode, code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *bankBranchRepo) Exists(ctx context.Context, tx *gorm.DB, bankCode, code string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.BankBranch{}).
		Where("bank_code = ? AND code = ?", bankCode, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bankBranchRepo) ListPaged(ctx context.Context, tx *gorm.DB, bankCode string, offset, limit int, search string) ([]*types.BankBranch, int64, error) {
	q := r.conn(tx).WithContext(ctx).
		Model(&types.BankBranch{}).
		Where("bank_code = ?", bankCode)
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.BankBranch
	if err := q.Order("bank_code ASC, code ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *bankBranchRepo) CountByBankCode(ctx context.Context, tx *gorm.DB, bankCode string) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.BankBranch{}).
		Where("bank_code = ?", bankCode).
		Count(&count).Error
	return count, err
}

func (r *bankBranchRepo) Create(ctx context.Context, tx *gorm.DB, branch *types.BankBranch) error {
	return r.conn(tx).WithContext(ctx).Create(branch).Error
}

func (r *bankBranchRepo) Update(ctx context.Context, tx *gorm.DB, branch *types.BankBranch) error {
	return r.conn(tx).WithContext(ctx).Save(branch).Error
}

func (r *bankBranchRepo) Delete(ctx context.Context, tx *gorm.DB, branch *types.BankBranch) error {
	return r.conn(tx).WithContext(ctx).
		Where("bank_code = ? AND code = ?", branch.BankCode, branch.Code).
		Delete(&types.BankBranch{}).Error
}
