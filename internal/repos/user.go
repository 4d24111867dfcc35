package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type UserRepo interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error)
	GetByLogin(ctx context.Context, tx *gorm.DB, login string) (*types.User, error)
	LoginExists(ctx context.Context, tx *gorm.DB, login string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, user *types.User) error
	ListPermissions(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserPermission, error)
	ReplacePermissions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, perms []*types.UserPermission) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.User, error) {
	var user types.User
	err := r.conn(tx).WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByLogin(ctx context.Context, tx *gorm.DB, login string) (*types.User, error) {
	var user types.User
	err := r.conn(tx).WithContext(ctx).First(&user, "login = ?", login).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) LoginExists(ctx context.Context, tx *gorm.DB, login string) (bool, error) {
	var count int64
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("login = ?", login).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	return r.conn(tx).WithContext(ctx).Create(user).Error
}

func (r *userRepo) ListPermissions(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserPermission, error) {
	var perms []*types.UserPermission
	if err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("function_code ASC").
		Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *userRepo) ReplacePermissions(ctx context.Context, tx *gorm.DB, userID uuid.UUID, perms []*types.UserPermission) error {
	conn := r.conn(tx).WithContext(ctx)
	if err := conn.Where("user_id = ?", userID).Delete(&types.UserPermission{}).Error; err != nil {
		return err
	}
	if len(perms) == 0 {
		return nil
	}
	for _, p := range perms {
		p.UserID = userID
	}
	return conn.Create(&perms).Error
}
