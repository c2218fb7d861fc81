package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/onetouch-fm/facility-service/internal/api/http"
	"github.com/onetouch-fm/facility-service/internal/api/http/handlers"
	"github.com/onetouch-fm/facility-service/internal/auth"
	"github.com/onetouch-fm/facility-service/internal/config"
	"github.com/onetouch-fm/facility-service/internal/events"
	"github.com/onetouch-fm/facility-service/internal/observability"
	"github.com/onetouch-fm/facility-service/internal/persistence"
	"github.com/onetouch-fm/facility-service/internal/repository"
	"github.com/onetouch-fm/facility-service/internal/service"
	"github.com/onetouch-fm/facility-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	officeRepo := repository.NewOfficeRepository(pool)
	itemRepo := repository.NewItemRepository(pool)
	partnerRepo := repository.NewPartnerRepository(pool)
	contractRepo := repository.NewContractRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	resolutionCache := persistence.NewResolutionCache(redis)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
		PartnerRepo: partnerRepo,
	})
	accountService := service.NewAccountService(*cfg, service.AccountDependencies{
		AccountRepo: accountRepo,
		CompanyRepo: companyRepo,
		OfficeRepo:  officeRepo,
		Dispatcher:  dispatcher,
	})
	companyService := service.NewCompanyService(companyRepo, dispatcher)
	officeService := service.NewOfficeService(officeRepo, companyRepo, dispatcher)
	itemService := service.NewItemService(cfg.Import.MaxBatchRows, service.ItemDependencies{
		ItemRepo:   itemRepo,
		Dispatcher: dispatcher,
	})
	partnerService := service.NewPartnerService(partnerRepo, dispatcher, cfg.Auth.BcryptCost)
	contractService := service.NewContractService(service.ContractDependencies{
		ContractRepo: contractRepo,
		PartnerRepo:  partnerRepo,
		Cache:        resolutionCache,
		Dispatcher:   dispatcher,
	})
	reportService := service.NewReportService(service.ReportDependencies{
		ReportRepo:      reportRepo,
		ItemRepo:        itemRepo,
		ContractService: contractService,
		Dispatcher:      dispatcher,
	})
	auditService := service.NewAuditService(auditRepo)
	settingService := service.NewSettingService(settingRepo, dispatcher)

	worker.StartAuditWorker(dispatcher, auditService, logger)

	authMiddleware := auth.NewMiddleware(authService.TokenManager())
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Accounts:       handlers.NewAccountsHandler(accountService),
		Companies:      handlers.NewCompaniesHandler(companyService),
		Offices:        handlers.NewOfficesHandler(officeService),
		Items:          handlers.NewItemsHandler(itemService),
		Partners:       handlers.NewPartnersHandler(partnerService),
		Contracts:      handlers.NewContractsHandler(contractService),
		Reports:        handlers.NewReportsHandler(reportService),
		Audit:          handlers.NewAuditHandler(auditService),
		Settings:       handlers.NewSettingsHandler(settingService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
