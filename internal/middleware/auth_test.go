package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	redisclient "github.com/rhcore/rhcore-backend/internal/clients/redis"
	"github.com/rhcore/rhcore-backend/internal/db"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/repos"
	"github.com/rhcore/rhcore-backend/internal/requestdata"
	"github.com/rhcore/rhcore-backend/internal/services"
	"github.com/rhcore/rhcore-backend/internal/types"
)

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func (f *fakeTokenStore) SaveRefresh(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenStore) GetRefresh(ctx context.Context, token string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[token]
	if !ok {
		return uuid.Nil, redisclient.ErrTokenNotFound
	}
	return id, nil
}

func (f *fakeTokenStore) DeleteRefresh(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokenStore) Close() error { return nil }

type authFixture struct {
	router *gin.Engine
	auth   services.AuthService
}

// newAuthFixture wires a guarded test route the way the real router does:
// RequireAuth on the group, RequirePermission per endpoint.
func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:middleware_%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	users := repos.NewUserRepo(gdb, log)
	auth := services.NewAuthService(gdb, log, users, &fakeTokenStore{tokens: map[string]uuid.UUID{}}, "test-secret", time.Minute, time.Hour)

	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	now := time.Now().UTC()
	user := &types.User{
		ID: uuid.New(), Login: "maria", Name: "Maria", Password: string(hash),
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
	if err := users.Create(ctx, nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := users.ReplacePermissions(ctx, nil, user.ID, []*types.UserPermission{
		{UserID: user.ID, FunctionCode: permissions.FnBanks, Actions: "C"},
	}); err != nil {
		t.Fatalf("set permissions: %v", err)
	}

	am := NewAuthMiddleware(log, auth)
	router := gin.New()
	protected := router.Group("/api")
	protected.Use(am.RequireAuth())
	protected.GET("/banks", am.RequirePermission(permissions.FnBanks, "C"), func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"login": rd.Login})
	})
	protected.DELETE("/banks/x", am.RequirePermission(permissions.FnBanks, "E"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	return &authFixture{router: router, auth: auth}
}

func (f *authFixture) token(t *testing.T) string {
	t.Helper()
	result, err := f.auth.Login(context.Background(), "maria", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return result.AccessToken
}

func TestRequireAuthMissingToken(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/banks", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/banks", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequirePermissionGrantedLetter(t *testing.T) {
	f := newAuthFixture(t)
	token := f.token(t)

	req := httptest.NewRequest(http.MethodGet, "/api/banks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Login string `json:"login"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body.Login != "maria" {
		t.Fatalf("request data must reach the handler, got %s", rec.Body.String())
	}
}

func TestRequirePermissionMissingLetter(t *testing.T) {
	f := newAuthFixture(t)
	token := f.token(t)

	// The user holds C on BANCOS but the endpoint demands E.
	req := httptest.NewRequest(http.MethodDelete, "/api/banks/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireAuthAcceptsSessionCookie(t *testing.T) {
	f := newAuthFixture(t)
	token := f.token(t)

	req := httptest.NewRequest(http.MethodGet, "/api/banks", nil)
	req.AddCookie(&http.Cookie{Name: "rh_session", Value: token})
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via cookie, got %d", rec.Code)
	}
}
