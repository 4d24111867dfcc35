package repos

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type TradeUnionRepo interface {
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.TradeUnion, error)
	Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error)
	ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.TradeUnion, int64, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TradeUnion, error)
	Create(ctx context.Context, tx *gorm.DB, union *types.TradeUnion) error
	Update(ctx context.Context, tx *gorm.DB, union *types.TradeUnion) error
	Delete(ctx context.Context, tx *gorm.DB, union *types.TradeUnion) error
}

type tradeUnionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradeUnionRepo(db *gorm.DB, baseLog *logger.Logger) TradeUnionRepo {
	return &tradeUnionRepo{db: db, log: baseLog.With("repo", "TradeUnionRepo")}
}

func (r *tradeUnionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *tradeUnionRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.TradeUnion, error) {
	var union types.TradeUnion
	err := r.conn(tx).WithContext(ctx).First(&union, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &union, nil
}

func (r *tradeUnionRepo) Exists(ctx context.Context, tx *gorm.DB, code string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.TradeUnion{}).
		Where("code = ?", code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tradeUnionRepo) ListPaged(ctx context.Context, tx *gorm.DB, offset, limit int, search string) ([]*types.TradeUnion, int64, error) {
	q := r.conn(tx).WithContext(ctx).Model(&types.TradeUnion{})
	if s := strings.TrimSpace(search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*types.TradeUnion
	if err := q.Order("code ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *tradeUnionRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.TradeUnion, error) {
	var items []*types.TradeUnion
	if err := r.conn(tx).WithContext(ctx).Order("code ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *tradeUnionRepo) Create(ctx context.Context, tx *gorm.DB, union *types.TradeUnion) error {
	return r.conn(tx).WithContext(ctx).Create(union).Error
}

func (r *tradeUnionRepo) Update(ctx context.Context, tx *gorm.DB, union *types.TradeUnion) error {
	return r.conn(tx).WithContext(ctx).Save(union).Error
}

func (r *tradeUnionRepo) Delete(ctx context.Context, tx *gorm.DB, union *types.TradeUnion) error {
	return r.conn(tx).WithContext(ctx).Delete(union).Error
}
