package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/types"
	"github.com/rhcore/rhcore-backend/internal/utils"
)

// seedAdminUser creates the initial administrator when the login is absent,
// granting every catalog function with its full action set. Runs on every
// start; an existing login makes it a no-op.
func seedAdminUser(db *gorm.DB, log *logger.Logger, r Repos, catalog *permissions.Catalog) error {
	login := utils.GetEnv("ADMIN_LOGIN", "admin", log)
	password := utils.GetEnv("ADMIN_PASSWORD", "", log)
	if password == "" {
		log.Info("ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	ctx := context.Background()
	exists, err := r.User.LoginExists(ctx, nil, login)
	if err != nil {
		return fmt.Errorf("check admin login: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &types.User{
		ID:        uuid.New(),
		Login:     login,
		Name:      "Administrator",
		Password:  string(hash),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	perms := make([]*types.UserPermission, 0)
	for _, fn := range catalog.Functions() {
		perms = append(perms, &types.UserPermission{
			UserID:       admin.ID,
			FunctionCode: fn.Code,
			Actions:      fn.Actions,
		})
	}

	if err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.User.Create(ctx, tx, admin); err != nil {
			return err
		}
		return r.User.ReplacePermissions(ctx, tx, admin.ID, perms)
	}); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	log.Info("Seeded admin user", "login", login)
	return nil
}
