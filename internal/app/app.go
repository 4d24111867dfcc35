package app

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rhcore/rhcore-backend/internal/clients/api"
	redisclient "github.com/rhcore/rhcore-backend/internal/clients/redis"
	"github.com/rhcore/rhcore-backend/internal/db"
	"github.com/rhcore/rhcore-backend/internal/logger"
	"github.com/rhcore/rhcore-backend/internal/permissions"
	"github.com/rhcore/rhcore-backend/internal/web"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Catalog  *permissions.Catalog
	tokens   redisclient.TokenStore
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	tokens, err := redisclient.NewTokenStore(log, cfg.RedisAddr)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init token store: %w", err)
	}

	catalog, err := permissions.LoadCatalog(cfg.FunctionCatalogPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load function catalog: %w", err)
	}
	checkCatalog(log, catalog)

	reposet := wireRepos(theDB, log)
	if err := seedAdminUser(theDB, log, reposet, catalog); err != nil {
		log.Sync()
		return nil, err
	}
	serviceset := wireServices(theDB, log, cfg, reposet, tokens)
	handlerset := wireHandlers(log, serviceset)
	middlewareset := wireMiddleware(log, serviceset)
	router := wireRouter(cfg, handlerset, middlewareset)

	apiClient, err := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.APITimeout}, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	webHandler, err := web.NewHandler(apiClient, serviceset.Auth, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init web handler: %w", err)
	}
	webHandler.Register(router)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Catalog:  catalog,
		tokens:   tokens,
	}, nil
}

// checkCatalog warns about routed function codes missing from the catalog so
// a stale YAML shows up at startup, not at the first denied request.
func checkCatalog(log *logger.Logger, catalog *permissions.Catalog) {
	for _, code := range []string{
		permissions.FnSystems,
		permissions.FnBanks,
		permissions.FnBranches,
		permissions.FnMunicipalities,
		permissions.FnUnions,
		permissions.FnCostCenters,
		permissions.FnEmployees,
		permissions.FnAudit,
	} {
		if _, ok := catalog.Get(code); !ok {
			log.Warn("Function code not present in catalog", "function_code", code)
		}
	}
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.tokens != nil {
		if err := a.tokens.Close(); err != nil {
			a.Log.Warn("Failed to close token store", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
