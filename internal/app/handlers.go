package app

import (
	"github.com/rhcore/rhcore-backend/internal/http/handlers"
	"github.com/rhcore/rhcore-backend/internal/logger"
)

type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	System       *handlers.SystemHandler
	Bank         *handlers.BankHandler
	BankBranch   *handlers.BankBranchHandler
	Municipality *handlers.MunicipalityHandler
	TradeUnion   *handlers.TradeUnionHandler
	CostCenter   *handlers.CostCenterHandler
	Employee     *handlers.EmployeeHandler
	Audit        *handlers.AuditHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       handlers.NewHealthHandler(),
		Auth:         handlers.NewAuthHandler(s.Auth),
		System:       handlers.NewSystemHandler(s.System),
		Bank:         handlers.NewBankHandler(s.Bank),
		BankBranch:   handlers.NewBankBranchHandler(s.BankBranch),
		Municipality: handlers.NewMunicipalityHandler(s.Municipality),
		TradeUnion:   handlers.NewTradeUnionHandler(s.TradeUnion),
		CostCenter:   handlers.NewCostCenterHandler(s.CostCenter),
		Employee:     handlers.NewEmployeeHandler(s.Employee),
		Audit:        handlers.NewAuditHandler(s.Audit),
	}
}
