package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/piresc/ledgersync/internal/pkg/chain"
	"github.com/piresc/ledgersync/internal/pkg/config"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/database"
	"github.com/piresc/ledgersync/internal/pkg/health"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/metrics"
	"github.com/piresc/ledgersync/internal/pkg/middleware"
	"github.com/piresc/ledgersync/internal/pkg/nats"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/internal/pkg/requestcontext"
	"github.com/piresc/ledgersync/internal/pkg/server"
	"github.com/piresc/ledgersync/services/ledger/gateway"
	"github.com/piresc/ledgersync/services/ledger/handler"
	"github.com/piresc/ledgersync/services/ledger/repository"
	"github.com/piresc/ledgersync/services/ledger/usecase"
)

func main() {
	appName := "settlement-service"
	configPath := "config/settlement.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.Int64("chain_id", configs.Chain.ChainID),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown := server.NewShutdownManager(zapLogger)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	shutdown.Register("postgres", func(context.Context) error { return postgresClient.Close() })

	if configs.Database.AutoMigrate {
		if err := postgresClient.Migrate(ctx); err != nil {
			zapLogger.Fatal("Failed to apply schema", logger.Err(err))
		}
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	shutdown.Register("redis", func(context.Context) error { return redisClient.Close() })

	// Initialize JetStream-enabled NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS with JetStream", logger.Err(err))
	}
	shutdown.Register("nats", func(context.Context) error {
		natsClient.Close()
		return nil
	})

	_, err = natsClient.EnsureStream(ctx, nats.NewStreamConfigBuilder(configs.NATS.JobStream).
		WithSubjects(constants.SubjectJobWildcard).
		Build())
	if err != nil {
		zapLogger.Fatal("Failed to ensure job stream", logger.Err(err))
	}

	// Initialize chain RPC client
	chainClient, err := chain.Dial(ctx, configs.Chain)
	if err != nil {
		zapLogger.Fatal("Failed to connect to chain RPC", logger.Err(err))
	}
	shutdown.Register("chain_rpc", func(context.Context) error {
		chainClient.Close()
		return nil
	})

	queue := jobs.NewQueue(natsClient, jobs.Options{
		MaxAttempts: configs.Jobs.MaxAttempts,
		BackoffBase: configs.Jobs.BackoffBase,
		BackoffMax:  configs.Jobs.BackoffMax,
	})

	// Initialize repositories
	ledgerRepo := repository.NewLedgerRepository(configs, postgresClient.GetDB())
	directoryRepo := repository.NewDirectoryRepository(configs, postgresClient.GetDB())

	// Initialize gateways
	noticeGW := gateway.NewNoticeGW(natsClient, configs.NATS.NoticeSubject)
	alertGW := gateway.NewAlertGW(natsClient, configs.NATS.AlertSubject)
	cacheGW := gateway.NewCacheGW(redisClient.GetClient())
	lockGW := gateway.NewLockGW(redisClient.GetClient())

	// Initialize usecases
	balanceGate, err := usecase.NewBalanceGate(configs, ledgerRepo)
	if err != nil {
		zapLogger.Fatal("Failed to initialize balance gate", logger.Err(err))
	}
	payToUC, err := usecase.NewPayToSettler(configs, ledgerRepo, directoryRepo, balanceGate, noticeGW, cacheGW)
	if err != nil {
		zapLogger.Fatal("Failed to initialize pay-to settler", logger.Err(err))
	}
	onChainUC := usecase.NewOnChainSettler(configs, ledgerRepo, directoryRepo, chainClient, noticeGW, cacheGW)
	reconcilerUC := usecase.NewEventReconciler(configs, ledgerRepo, directoryRepo, noticeGW, cacheGW, alertGW)
	watcherUC, err := usecase.NewChainWatcher(configs, ledgerRepo, chainClient, reconcilerUC, lockGW, alertGW)
	if err != nil {
		zapLogger.Fatal("Failed to initialize chain watcher", logger.Err(err))
	}
	transferUC := usecase.NewTransferUC(configs, ledgerRepo, directoryRepo, queue)

	// Initialize handlers
	ledgerHandler := handler.NewHandler(configs, transferUC, payToUC, onChainUC, watcherUC, alertGW, queue, natsClient, nrApp)

	if err := ledgerHandler.StartJobConsumers(ctx); err != nil {
		zapLogger.Fatal("Failed to start job consumers", logger.Err(err))
	}
	shutdown.Register("job_consumers", func(context.Context) error {
		ledgerHandler.StopJobConsumers()
		return nil
	})

	watcherDone := make(chan struct{})
	go func() {
		defer close(watcherDone)
		ledgerHandler.RunWatcher(ctx)
	}()
	shutdown.Register("chain_watcher", func(sctx context.Context) error {
		select {
		case <-watcherDone:
			return nil
		case <-sctx.Done():
			return sctx.Err()
		}
	})

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Panic recovery must be first
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(echomw.RequestID())
	e.Use(requestcontext.Middleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	healthService := health.NewHealthService()
	healthService.AddChecker("postgres", health.CheckerFunc(postgresClient.Ping))
	healthService.AddChecker("redis", health.CheckerFunc(redisClient.Ping))
	healthService.AddChecker("nats", natsClient)
	healthService.AddChecker("chain_rpc", chainClient)
	health.RegisterHealthEndpoints(e, appName, configs.App.Version, healthService)
	metrics.RegisterEndpoint(e)

	ledgerHandler.RegisterRoutes(e, redisClient.GetClient())

	httpServer := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	if err := httpServer.Start(ctx); err != nil {
		zapLogger.Error("HTTP server stopped", logger.Err(err))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Shutdown finished with errors", logger.Err(err))
	}

	if nrApp != nil {
		zapLogger.Info("Shutting down New Relic...")
		nrApp.Shutdown(10 * time.Second)
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
