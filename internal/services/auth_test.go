package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/apierr"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/types"
)

func newAuthFixture(t *testing.T) (AuthService, repos.UserRepo, *gorm.DB) {
	t.Helper()
	gdb := testDB(t)
	log := testLogger()
	users := repos.NewUserRepo(gdb, log)
	svc := NewAuthService(gdb, log, users, newFakeTokenStore(), "test-secret", time.Minute, time.Hour)
	return svc, users, gdb
}

func seedUser(t *testing.T, users repos.UserRepo, login, password string, active bool, perms map[string]string) *types.User {
	t.Helper()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	user := &types.User{
		ID:        uuid.New(),
		Login:     login,
		Name:      "Test User",
		Password:  string(hash),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	var rows []*types.UserPermission
	for fn, actions := range perms {
		rows = append(rows, &types.UserPermission{UserID: user.ID, FunctionCode: fn, Actions: actions})
	}
	if len(rows) > 0 {
		if err := users.ReplacePermissions(ctx, nil, user.ID, rows); err != nil {
			t.Fatalf("set permissions: %v", err)
		}
	}
	return user
}

func TestAuthLoginAndParseToken(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	user := seedUser(t, users, "maria", "secret123", true, map[string]string{
		permissions.FnBanks: "IAEC",
		permissions.FnAudit: "C",
	})

	result, err := svc.Login(context.Background(), "maria", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", result)
	}
	if result.Permissions[permissions.FnBanks] != "IAEC" {
		t.Fatalf("expected bank claims in result, got %v", result.Permissions)
	}

	rd, err := svc.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if rd.UserID != user.ID || rd.Login != "maria" {
		t.Fatalf("unexpected request data: %+v", rd)
	}
	if !permissions.HasAction(rd.Claims, permissions.FnBanks, permissions.ActionDelete) {
		t.Fatalf("claims lost through the token roundtrip: %v", rd.Claims)
	}
	if permissions.HasAction(rd.Claims, permissions.FnAudit, permissions.ActionCreate) {
		t.Fatalf("view-only claim must not grant create")
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, "maria", "secret123", true, nil)

	_, err := svc.Login(context.Background(), "maria", "wrong")
	ae := apierr.From(err)
	if ae == nil || ae.Code != CodeInvalidCredentials {
		t.Fatalf("expected INVALID_CREDENTIALS, got %v", err)
	}
}

func TestAuthLoginInactiveUser(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, "maria", "secret123", false, nil)

	_, err := svc.Login(context.Background(), "maria", "secret123")
	ae := apierr.From(err)
	if ae == nil || ae.Code != CodeInvalidCredentials {
		t.Fatalf("inactive user must not log in, got %v", err)
	}
}

func TestAuthRefreshRotates(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, "maria", "secret123", true, nil)
	ctx := context.Background()

	first, err := svc.Login(ctx, "maria", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	second, err := svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if second.RefreshToken == first.RefreshToken {
		t.Fatalf("refresh must rotate the token")
	}

	// The rotated-out token is single use.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	ae := apierr.From(err)
	if ae == nil || ae.Code != CodeInvalidCredentials {
		t.Fatalf("expected rejected reuse, got %v", err)
	}
}

func TestAuthLogoutRevokesRefresh(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, "maria", "secret123", true, nil)
	ctx := context.Background()

	result, err := svc.Login(ctx, "maria", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(ctx, result.RefreshToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err = svc.Refresh(ctx, result.RefreshToken)
	ae := apierr.From(err)
	if ae == nil || ae.Code != CodeInvalidCredentials {
		t.Fatalf("expected revoked token, got %v", err)
	}
}

func TestAuthParseTokenRejectsTampered(t *testing.T) {
	svc, users, _ := newAuthFixture(t)
	seedUser(t, users, "maria", "secret123", true, nil)

	result, err := svc.Login(context.Background(), "maria", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := svc.ParseToken(result.AccessToken + "x"); err == nil {
		t.Fatalf("tampered token must be rejected")
	}
}
