package app

import (
	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthMiddleware:      middleware.Auth,
		HealthHandler:       handlers.Health,
		AuthHandler:         handlers.Auth,
		SystemHandler:       handlers.System,
		BankHandler:         handlers.Bank,
		BankBranchHandler:   handlers.BankBranch,
		MunicipalityHandler: handlers.Municipality,
		TradeUnionHandler:   handlers.TradeUnion,
		CostCenterHandler:   handlers.CostCenter,
		EmployeeHandler:     handlers.Employee,
		AuditHandler:        handlers.Audit,
		AllowOrigins:        cfg.AllowOrigins,
	})
}
