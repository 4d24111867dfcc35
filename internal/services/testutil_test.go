package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	redisclient "github.com/rhcore/rhcore-backend/internal/clients/redis"
	"github.com/rhcore/rhcore-backend/internal/db"
	"github.com/rhcore/rhcore-backend/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// testDB opens a per-test in-memory database with the full schema. The DSN
// carries the test name so parallel packages never share state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(db.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// fakeTokenStore replaces Redis in auth tests.
type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uuid.UUID
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]uuid.UUID{}}
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
