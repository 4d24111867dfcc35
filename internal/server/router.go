package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rhcore/rhcore-backend/internal/http/handlers"
	"github.com/rhcore/rhcore-backend/internal/middleware"
	"github.com/rhcore/rhcore-backend/internal/permissions"
)

type RouterConfig struct {
	AuthMiddleware      *middleware.AuthMiddleware
	HealthHandler       *handlers.HealthHandler
	AuthHandler         *handlers.AuthHandler
	SystemHandler       *handlers.SystemHandler
	BankHandler         *handlers.BankHandler
	BankBranchHandler   *handlers.BankBranchHandler
	MunicipalityHandler *handlers.MunicipalityHandler
	TradeUnionHandler   *handlers.TradeUnionHandler
	CostCenterHandler   *handlers.CostCenterHandler
	EmployeeHandler     *handlers.EmployeeHandler
	AuditHandler        *handlers.AuditHandler
	AllowOrigins        []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:8080"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	api.POST("/auth/login", cfg.AuthHandler.Login)

	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	perm := cfg.AuthMiddleware.RequirePermission

	registerResource(protected.Group("/systems"), permissions.FnSystems, perm, resourceHandlers{
		list: cfg.SystemHandler.List, listAll: cfg.SystemHandler.ListAll, get: cfg.SystemHandler.Get,
		create: cfg.SystemHandler.Create, update: cfg.SystemHandler.Update,
		delete: cfg.SystemHandler.Delete, batchDelete: cfg.SystemHandler.BatchDelete,
	})
	registerResource(protected.Group("/banks"), permissions.FnBanks, perm, resourceHandlers{
		list: cfg.BankHandler.List, listAll: cfg.BankHandler.ListAll, get: cfg.BankHandler.Get,
		create: cfg.BankHandler.Create, update: cfg.BankHandler.Update,
		delete: cfg.BankHandler.Delete, batchDelete: cfg.BankHandler.BatchDelete,
	})
	registerResource(protected.Group("/municipalities"), permissions.FnMunicipalities, perm, resourceHandlers{
		list: cfg.MunicipalityHandler.List, listAll: cfg.MunicipalityHandler.ListAll, get: cfg.MunicipalityHandler.Get,
		create: cfg.MunicipalityHandler.Create, update: cfg.MunicipalityHandler.Update,
		delete: cfg.MunicipalityHandler.Delete, batchDelete: cfg.MunicipalityHandler.BatchDelete,
	})
	registerResource(protected.Group("/trade-unions"), permissions.FnUnions, perm, resourceHandlers{
		list: cfg.TradeUnionHandler.List, listAll: cfg.TradeUnionHandler.ListAll, get: cfg.TradeUnionHandler.Get,
		create: cfg.TradeUnionHandler.Create, update: cfg.TradeUnionHandler.Update,
		delete: cfg.TradeUnionHandler.Delete, batchDelete: cfg.TradeUnionHandler.BatchDelete,
	})
	registerResource(protected.Group("/cost-centers"), permissions.FnCostCenters, perm, resourceHandlers{
		list: cfg.CostCenterHandler.List, listAll: cfg.CostCenterHandler.ListAll, get: cfg.CostCenterHandler.Get,
		create: cfg.CostCenterHandler.Create, update: cfg.CostCenterHandler.Update,
		delete: cfg.CostCenterHandler.Delete, batchDelete: cfg.CostCenterHandler.BatchDelete,
	})

	// Branches are nested under their bank; the key in the path is the
	// composite (bank code, branch code).
	branches := protected.Group("/banks/:code/branches")
	branches.GET("", perm(permissions.FnBranches, "C"), cfg.BankBranchHandler.List)
	branches.GET("/:branch", perm(permissions.FnBranches, "C"), cfg.BankBranchHandler.Get)
	branches.POST("", perm(permissions.FnBranches, "I"), cfg.BankBranchHandler.Create)
	branches.PUT("/:branch", perm(permissions.FnBranches, "A"), cfg.BankBranchHandler.Update)
	branches.DELETE("/:branch", perm(permissions.FnBranches, "E"), cfg.BankBranchHandler.Delete)
	branches.POST("/batch-delete", perm(permissions.FnBranches, "E"), cfg.BankBranchHandler.BatchDelete)

	// Employees use the registration number as key; no /all endpoint, the
	// roster is too large for unpaged listing.
	employees := protected.Group("/employees")
	employees.GET("", perm(permissions.FnEmployees, "C"), cfg.EmployeeHandler.List)
	employees.GET("/:registration", perm(permissions.FnEmployees, "C"), cfg.EmployeeHandler.Get)
	employees.POST("", perm(permissions.FnEmployees, "I"), cfg.EmployeeHandler.Create)
	employees.PUT("/:registration", perm(permissions.FnEmployees, "A"), cfg.EmployeeHandler.Update)
	employees.DELETE("/:registration", perm(permissions.FnEmployees, "E"), cfg.EmployeeHandler.Delete)
	employees.POST("/batch-delete", perm(permissions.FnEmployees, "E"), cfg.EmployeeHandler.BatchDelete)

	protected.GET("/audit-logs", perm(permissions.FnAudit, "C"), cfg.AuditHandler.List)

	return router
}

type resourceHandlers struct {
	list, listAll, get, create, update, delete, batchDelete gin.HandlerFunc
}

type permFunc func(functionCode, actions string) gin.HandlerFunc

// registerResource wires the standard CRUD surface every aggregate exposes.
func registerResource(group *gin.RouterGroup, functionCode string, perm permFunc, h resourceHandlers) {
	group.GET("", perm(functionCode, "C"), h.list)
	group.GET("/all", perm(functionCode, "C"), h.listAll)
	group.GET("/:code", perm(functionCode, "C"), h.get)
	group.POST("", perm(functionCode, "I"), h.create)
	group.PUT("/:code", perm(functionCode, "A"), h.update)
	group.DELETE("/:code", perm(functionCode, "E"), h.delete)
	group.POST("/batch-delete", perm(functionCode, "E"), h.batchDelete)
}
