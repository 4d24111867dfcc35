package web

import (
	"context"
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

	"github.com/rhcore/rhcore-backend/internal/clients/api"
	redisclient "github.com/rhcore/rhcore-backend/internal/clients/redis"
	"github.com/rhcore/rhcore-backend/internal/db"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/repos"
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

type webFixture struct {
	router *gin.Engine
	auth   services.AuthService
}

// newWebFixture assembles the whole stack in one process: API routes backed
// by sqlite, and the web screens consuming them through a loopback client.
func newWebFixture(t *testing.T, claims map[string]string) *webFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:web_%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	users := repos.NewUserRepo(gdb, log)
	banks := repos.NewBankRepo(gdb, log)
	branches := repos.NewBankBranchRepo(gdb, log)
	employees := repos.NewEmployeeRepo(gdb, log)
	audit := services.NewAuditService(log, repos.NewAuditLogRepo(gdb, log))
	bankSvc := services.NewBankService(gdb, log, banks, branches, employees, audit)
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
	var perms []*types.UserPermission
	for fn, actions := range claims {
		perms = append(perms, &types.UserPermission{UserID: user.ID, FunctionCode: fn, Actions: actions})
	}
	if len(perms) > 0 {
		if err := users.ReplacePermissions(ctx, nil, user.ID, perms); err != nil {
			t.Fatalf("set permissions: %v", err)
		}
	}
	if _, err := bankSvc.Create(ctx, services.CreateBankInput{Code: "001", Name: "Banco do Brasil"}); err != nil {
		t.Fatalf("seed bank: %v", err)
	}

	// Minimal API surface the screens call back into.
	router := gin.New()
	router.GET("/api/banks", func(c *gin.Context) {
		page, _ := parseInt(c.Query("page"))
		size, _ := parseInt(c.Query("pageSize"))
		result, err := bankSvc.List(c.Request.Context(), page, size, c.Query("search"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	apiClient, err := api.NewClient(api.Config{BaseURL: srv.URL}, log)
	if err != nil {
		t.Fatalf("api client: %v", err)
	}
	handler, err := NewHandler(apiClient, auth, log)
	if err != nil {
		t.Fatalf("web handler: %v", err)
	}
	webRouter := gin.New()
	handler.Register(webRouter)
	return &webFixture{router: webRouter, auth: auth}
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func (f *webFixture) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	result, err := f.auth.Login(context.Background(), "maria", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return &http.Cookie{Name: "rh_session", Value: result.AccessToken}
}

func TestLoginPageRenders(t *testing.T) {
	f := newWebFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/web/login", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sign in") {
		t.Fatalf("login page must render the form, got: %s", rec.Body.String())
	}
}

func TestDashboardRedirectsWithoutSession(t *testing.T) {
	f := newWebFixture(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/web", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/web/login" {
		t.Fatalf("expected login redirect, got %q", loc)
	}
}

func TestBankListHidesButtonsForViewOnlyUser(t *testing.T) {
	f := newWebFixture(t, map[string]string{permissions.FnBanks: "C"})

	req := httptest.NewRequest(http.MethodGet, "/web/banks", nil)
	req.AddCookie(f.sessionCookie(t))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Banco do Brasil") {
		t.Fatalf("list must show the seeded bank: %s", body)
	}
	for _, forbidden := range []string{">New<", ">Edit<", ">Delete<"} {
		if strings.Contains(body, forbidden) {
			t.Fatalf("view-only claims must hide %s", forbidden)
		}
	}
}

func TestBankListShowsButtonsForFullAccess(t *testing.T) {
	f := newWebFixture(t, map[string]string{permissions.FnBanks: "IAEC"})

	req := httptest.NewRequest(http.MethodGet, "/web/banks", nil)
	req.AddCookie(f.sessionCookie(t))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	body := rec.Body.String()
	for _, expected := range []string{">New<", ">Edit<", ">Delete<"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("full claims must render %s, body: %s", expected, body)
		}
	}
}

func TestPayloadConversion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	form := strings.NewReader("code=001&name=BB&active=on")
	c.Request = httptest.NewRequest(http.MethodPost, "/", form)
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	payload := payloadFrom(c, []fieldDef{
		{Name: "code"},
		{Name: "name"},
		{Name: "active", Checkbox: true},
	})
	if payload["code"] != "001" || payload["name"] != "BB" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if active, ok := payload["active"].(bool); !ok || !active {
		t.Fatalf("checkbox must convert to bool, got %v", payload["active"])
	}
}
