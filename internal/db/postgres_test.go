package db

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:db_%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return gdb
}

// A database that already carries the constraints must come through a second
// migration run untouched: the guard has to see them, or the ALTER re-runs
// and fails the boot.
func TestEnsureForeignKeysSkipsExistingConstraints(t *testing.T) {
	gdb := testDB(t)

	ddl := []string{
		`CREATE TABLE "bank" ("code" char(3) PRIMARY KEY, "name" varchar(60))`,
		`CREATE TABLE "bank_branch" ("bank_code" char(3), "code" char(4), "name" varchar(60),
			PRIMARY KEY ("bank_code", "code"),
			CONSTRAINT "fk_bank_branch_bank_code" FOREIGN KEY ("bank_code") REFERENCES "bank"("code"))`,
		`CREATE TABLE "user" ("id" text PRIMARY KEY, "login" varchar(40))`,
		`CREATE TABLE "user_permission" ("user_id" text, "function_code" varchar(20),
			CONSTRAINT "fk_user_permission_user_id" FOREIGN KEY ("user_id") REFERENCES "user"("id"))`,
	}
	for _, stmt := range ddl {
		if err := gdb.Exec(stmt).Error; err != nil {
			t.Fatalf("seed schema: %v", err)
		}
	}

	for _, fk := range foreignKeys() {
		if !gdb.Migrator().HasConstraint(fk.table, fk.name) {
			t.Fatalf("guard must see existing constraint %s on %s", fk.name, fk.table)
		}
	}

	// sqlite rejects ALTER TABLE ADD CONSTRAINT, so any attempt to re-add
	// would surface here as an error.
	if err := ensureForeignKeys(gdb); err != nil {
		t.Fatalf("existing constraints must be skipped: %v", err)
	}
}

func TestEnsureForeignKeysDetectsMissingConstraint(t *testing.T) {
	gdb := testDB(t)

	if err := gdb.Exec(`CREATE TABLE "bank_branch" ("bank_code" char(3), "code" char(4))`).Error; err != nil {
		t.Fatalf("seed schema: %v", err)
	}

	if gdb.Migrator().HasConstraint("bank_branch", "fk_bank_branch_bank_code") {
		t.Fatalf("guard must report a bare table as missing the constraint")
	}
}
