package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type EmployeeRepo interface {
	GetByRegistration(ctx context.Context, tx *gorm.DB, registration string) (*types.Employee, error)
	Exists(ctx context.Context, tx *gorm.DB, registration string) (bool, error)
	ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.Employee, int64, error)
	CountByBankCode(ctx context.Context, tx *gorm.DB, bankCode string) (int64, error)
	CountByUnionCode(ctx context.Context, tx *gorm.DB, unionCode string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, employee *types.Employee) error
	Update(ctx context.Context, tx *gorm.DB, employee *types.Employee) error
	Delete(ctx context.Context, tx *gorm.DB, employee *types.Employee) error
}

type employeeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmployeeRepo(db *gorm.DB, baseLog *logger.Logger) EmployeeRepo {
	return &employeeRepo{db: db, log: baseLog.With("repo", "EmployeeRepo")}
}

func (r *employeeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *employeeRepo) GetByRegistration(ctx context.Context, tx *gorm.DB, registration string) (*types.Employee, error) {
	var employee types.Employee
	err := r.conn(tx).WithContext(ctx).First(&employee, "registration = ?", registration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) Exists(ctx context.Context, tx *gorm.DB, registration string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.Employee{}).
		Where("registration = ?", registration).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *employeeRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.Employee, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.Employee{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.Employee
	if err := q.Order("registration ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *employeeRepo) CountByBankCode(ctx context.Context, tx *gorm.DB, bankCode string) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Employee{}).
		Where("bank_code = ?", bankCode).
		Count(&count).Error
	return count, err
}

func (r *employeeRepo) CountByUnionCode(ctx context.Context, tx *gorm.DB, unionCode string) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Employee{}).
		Where("union_code = ?", unionCode).
		Count(&count).Error
	return count, err
}

func (r *employeeRepo) Create(ctx context.Context, tx *gorm.DB, employee *types.Employee) error {
	return r.conn(tx).WithContext(ctx).Create(employee).Error
}

func (r *employeeRepo) Update(ctx context.Context, tx *gorm.DB, employee *types.Employee) error {
	return r.conn(tx).WithContext(ctx).Save(employee).Error
}

func (r *employeeRepo) Delete(ctx context.Context, tx *gorm.DB, employee *types.Employee) error {
	return r.conn(tx).WithContext(ctx).Delete(employee).Error
}
