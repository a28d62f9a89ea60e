package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/filsox/store-api/internal/api/http"
	"github.com/filsox/store-api/internal/api/http/handlers"
	"github.com/filsox/store-api/internal/auth"
	"github.com/filsox/store-api/internal/config"
	"github.com/filsox/store-api/internal/events"
	"github.com/filsox/store-api/internal/observability"
	"github.com/filsox/store-api/internal/persistence"
	"github.com/filsox/store-api/internal/repository"
	"github.com/filsox/store-api/internal/service"
	"github.com/filsox/store-api/internal/worker"
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
	storeRepo := repository.NewStoreRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	financeRepo := repository.NewFinanceRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	saleRepo := repository.NewSaleRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:  userRepo,
		StoreRepo: storeRepo,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:  ticketRepo,
		FinanceRepo: financeRepo,
		Dispatcher:  dispatcher,
		Cache:       redis,
		Logger:      logger,
	})
	inventoryService := service.NewInventoryService(productRepo)
	financeService := service.NewFinanceService(financeRepo)
	customerService := service.NewCustomerService(customerRepo, ticketRepo, saleRepo)
	saleService := service.NewSaleService(saleRepo, productRepo)
	storeService := service.NewStoreService(storeRepo)

	notificationService := service.NewNotificationService(cfg.SMTP, cfg.Tracking, ticketRepo, customerRepo, logger)
	notificationService.RegisterHandlers(dispatcher)

	sweeper := worker.NewDueDateSweeper(cfg.Sweep, ticketRepo, dispatcher, logger)
	if err := sweeper.Start(); err != nil {
		logger.Fatal("failed to start due-date sweep", zap.Error(err))
	}
	defer sweeper.Stop()

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, storeRepo)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, cfg.Tracking),
		Products:       handlers.NewProductsHandler(inventoryService),
		Finance:        handlers.NewFinanceHandler(financeService),
		Customers:      handlers.NewCustomersHandler(customerService),
		Sales:          handlers.NewSalesHandler(saleService),
		Stores:         handlers.NewStoresHandler(storeService, authService),
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
