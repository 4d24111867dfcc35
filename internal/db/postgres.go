package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/types"
	"github.com/rhcore/rhcore-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := utils.GetEnv("POSTGRES_HOST", "localhost", log)
	port := utils.GetEnv("POSTGRES_PORT", "5432", log)
	user := utils.GetEnv("POSTGRES_USER", "postgres", log)
	password := utils.GetEnv("POSTGRES_PASSWORD", "", log)
	name := utils.GetEnv("POSTGRES_NAME", "rhcore", log)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(AllModels()...); err != nil {
		s.log.Error("Auto migration failed for postgres tables", "error", err)
		return err
	}

	s.log.Info("Configuring foreign key relationships for postgres tables...")
	return ensureForeignKeys(s.db)
}

type foreignKey struct {
	table string
	name  string
	ddl   string
}

// foreignKeys lists the cross-table constraints AutoMigrate does not create
// because FK creation is disabled on the connection.
func foreignKeys() []foreignKey {
	return []foreignKey{
		{"bank_branch", "fk_bank_branch_bank_code", `
			ALTER TABLE "bank_branch"
			ADD CONSTRAINT "fk_bank_branch_bank_code"
			FOREIGN KEY ("bank_code") REFERENCES "bank"("code")
			ON DELETE RESTRICT`},
		{"user_permission", "fk_user_permission_user_id", `
			ALTER TABLE "user_permission"
			ADD CONSTRAINT "fk_user_permission_user_id"
			FOREIGN KEY ("user_id") REFERENCES "user"("id")
			ON DELETE CASCADE`},
	}
}

// ensureForeignKeys adds each missing constraint. HasConstraint takes the
// table first, then the constraint name; an existing constraint must be
// skipped or the ALTER fails on every boot after the first.
func ensureForeignKeys(db *gorm.DB) error {
	for _, fk := range foreignKeys() {
		if db.Migrator().HasConstraint(fk.table, fk.name) {
			continue
		}
		if err := db.Exec(fk.ddl).Error; err != nil {
			return fmt.Errorf("failed to add %s: %w", fk.name, err)
		}
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}

// AllModels lists every mapped table in migration order (parents first).
func AllModels() []any {
	return []any{
		&types.System{},
		&types.Bank{},
		&types.BankBranch{},
		&types.Municipality{},
		&types.TradeUnion{},
		&types.CostCenter{},
		&types.Employee{},
		&types.User{},
		&types.UserPermission{},
		&types.AuditLog{},
	}
}
