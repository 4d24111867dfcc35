package app

import (
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/repos"
)

type Repos struct {
	System       repos.SystemRepo
	Bank         repos.BankRepo
	BankBranch   repos.BankBranchRepo
	Municipality repos.MunicipalityRepo
	TradeUnion   repos.TradeUnionRepo
	CostCenter   repos.CostCenterRepo
	Employee     repos.EmployeeRepo
	User         repos.UserRepo
	AuditLog     repos.AuditLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		System:       repos.NewSystemRepo(db, log),
		Bank:         repos.NewBankRepo(db, log),
		BankBranch:   repos.NewBankBranchRepo(db, log),
		Municipality: repos.NewMunicipalityRepo(db, log),
		TradeUnion:   repos.NewTradeUnionRepo(db, log),
		CostCenter:   repos.NewCostCenterRepo(db, log),
		Employee:     repos.NewEmployeeRepo(db, log),
		User:         repos.NewUserRepo(db, log),
		AuditLog:     repos.NewAuditLogRepo(db, log),
	}
}
