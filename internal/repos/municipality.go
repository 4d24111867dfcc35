package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type MunicipalityRepo interface {
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Municipality, error)
	Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.Municipality, int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Municipality, error)
	Create(ctx context.Context, tx *gorm.DB, municipality *types.Municipality) error
	Update(ctx context.Context, tx *gorm.DB, municipality *types.Municipality) error
	Delete(ctx context.Context, tx *gorm.DB, municipality *types.Municipality) error
}

type municipalityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMunicipalityRepo(db *gorm.DB, baseLog *logger.Logger) MunicipalityRepo {
	return &municipalityRepo{db: db, log: baseLog.With("repo", "MunicipalityRepo")}
}

func (r *municipalityRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *municipalityRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Municipality, error) {
	var m types.Municipality
	err := r.conn(tx).WithContext(ctx).First(&m, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *municipalityRepo) Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.Municipality{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *municipalityRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.Municipality, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.Municipality{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(state) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.Municipality
	if err := q.Order("code ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *municipalityRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Municipality, error) {
	var items []*types.Municipality
	if err := r.conn(tx).WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *municipalityRepo) Create(ctx context.Context, tx *gorm.DB, municipality *types.Municipality) error {
	return r.conn(tx).WithContext(ctx).Create(municipality).Error
}

func (r *municipalityRepo) Update(ctx context.Context, tx *gorm.DB, municipality *types.Municipality) error {
	return r.conn(tx).WithContext(ctx).Save(municipality).Error
}

func (r *municipalityRepo) Delete(ctx context.Context, tx *gorm.DB, municipality *types.Municipality) error {
	return r.conn(tx).WithContext(ctx).Delete(municipality).Error
}
