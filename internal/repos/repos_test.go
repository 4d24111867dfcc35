package repos

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
)

func testLogger() *logger.Logger {
	return &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:repos_%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	models := []any{
		&types.Bank{}, &types.BankBranch{}, &types.Employee{}, &types.AuditLog{},
	}
	if err := gdb.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedBank(t *testing.T, repo BankRepo, code, name string) {
	t.Helper()
	now := time.Now().UTC()
	if err := repo.Create(context.Background(), nil, &types.Bank{
		Code: code, Name: name, Active: true, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("seed bank %s: %v", code, err)
	}
}

func TestBankRepoListPagedOrderAndWindow(t *testing.T) {
	gdb := testDB(t)
	repo := NewBankRepo(gdb, testLogger())
	ctx := context.Background()

	// Insert out of order; listing must come back code-ordered.
	for _, code := range []string{"341", "001", "237"} {
		seedBank(t, repo, code, "Bank "+code)
	}

	items, total, err := repo.ListPaged(ctx, nil, 0, 2, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 2 {
		t.Fatalf("expected window 2 of 3, got %d of %d", len(items), total)
	}
	if items[0].Code != "001" || items[1].Code != "237" {
		t.Fatalf("expected code order, got %s, %s", items[0].Code, items[1].Code)
	}

	items, total, err = repo.ListPaged(ctx, nil, 2, 2, "")
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}
	if total != 3 || len(items) != 1 || items[0].Code != "341" {
		t.Fatalf("unexpected second window: total %d, items %+v", total, items)
	}
}

func TestBankRepoListPagedSearch(t *testing.T) {
	gdb := testDB(t)
	repo := NewBankRepo(gdb, testLogger())
	ctx := context.Background()

	seedBank(t, repo, "001", "Banco do Brasil")
	seedBank(t, repo, "237", "Bradesco")

	items, total, err := repo.ListPaged(ctx, nil, 0, 10, "  BRASIL ")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Code != "001" {
		t.Fatalf("trimmed case-insensitive search failed: total %d, items %+v", total, items)
	}
}

func TestBankRepoGetByCodeMissing(t *testing.T) {
	gdb := testDB(t)
	repo := NewBankRepo(gdb, testLogger())

	bank, err := repo.GetByCode(context.Background(), nil, "999")
	if err != nil {
		t.Fatalf("a miss is not an error: %v", err)
	}
	if bank != nil {
		t.Fatalf("expected nil for missing code, got %+v", bank)
	}
}

func TestBankBranchRepoCompositeKey(t *testing.T) {
	gdb := testDB(t)
	log := testLogger()
	banks := NewBankRepo(gdb, log)
	branches := NewBankBranchRepo(gdb, log)
	ctx := context.Background()

	seedBank(t, banks, "001", "BB")
	seedBank(t, banks, "237", "Bradesco")

	now := time.Now().UTC()
	for _, bankCode := range []string{"001", "237"} {
		if err := branches.Create(ctx, nil, &types.BankBranch{
			BankCode: bankCode, Code: "0001", Name: "Matriz", CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatalf("seed branch %s/0001: %v", bankCode, err)
		}
	}

	got, err := branches.GetByCode(ctx, nil, "237", "0001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.BankCode != "237" {
		t.Fatalf("composite lookup must scope by bank, got %+v", got)
	}

	count, err := branches.CountByBankCode(ctx, nil, "001")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 branch under 001, got %d", count)
	}

	if err := branches.Delete(ctx, nil, got); err != nil {
		t.Fatalf("delete: %v", err)
	}
	remaining, err := branches.CountByBankCode(ctx, nil, "001")
	if err != nil {
		t.Fatalf("count after delete: %v", err)
	}
	if remaining != 1 {
		t.Fatalf("delete must only remove its own composite row, got %d under 001", remaining)
	}
}

func TestAuditLogRepoListPagedNewestFirst(t *testing.T) {
	gdb := testDB(t)
	repo := NewAuditLogRepo(gdb, testLogger())
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		entry := &types.AuditLog{
			ID:        uuid.New(),
			Action:    "CREATE",
			Resource:  "bank",
			RecordKey: fmt.Sprintf("%03d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, nil, entry); err != nil {
			t.Fatalf("seed audit %d: %v", i, err)
		}
	}

	items, total, err := repo.ListPaged(ctx, nil, 0, 10, "bank")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(items) != 3 {
		t.Fatalf("expected 3 entries, got %d of %d", len(items), total)
	}
	if items[0].RecordKey != "002" {
		t.Fatalf("expected newest first, got %q", items[0].RecordKey)
	}

	_, total, err = repo.ListPaged(ctx, nil, 0, 10, "employee")
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if total != 0 {
		t.Fatalf("resource filter failed, got %d", total)
	}
}
