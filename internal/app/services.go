package app

import (
	"gorm.io/gorm"

	redisclient "github.com/rhcore/rhcore-backend/internal/clients/redis"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/services"
)

type Services struct {
	Audit        services.AuditService
	System       services.SystemService
	Bank         services.BankService
	BankBranch   services.BankBranchService
	Municipality services.MunicipalityService
	TradeUnion   services.TradeUnionService
	CostCenter   services.CostCenterService
	Employee     services.EmployeeService
	Auth         services.AuthService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, tokens redisclient.TokenStore) Services {
	log.Info("Wiring services...")
	audit := services.NewAuditService(log, r.AuditLog)
	return Services{
		Audit:        audit,
		System:       services.NewSystemService(db, log, r.System, audit),
		Bank:         services.NewBankService(db, log, r.Bank, r.BankBranch, r.Employee, audit),
		BankBranch:   services.NewBankBranchService(db, log, r.Bank, r.BankBranch, audit),
		Municipality: services.NewMunicipalityService(db, log, r.Municipality, audit),
		TradeUnion:   services.NewTradeUnionService(db, log, r.TradeUnion, r.Employee, audit),
		CostCenter:   services.NewCostCenterService(db, log, r.CostCenter, audit),
		Employee:     services.NewEmployeeService(db, log, r.Employee, r.Bank, r.BankBranch, r.TradeUnion, audit),
		Auth:         services.NewAuthService(db, log, r.User, tokens, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
	}
}
