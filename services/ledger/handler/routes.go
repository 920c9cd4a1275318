package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/middleware"
	"github.com/piresc/ledgersync/internal/pkg/models"
	natspkg "github.com/piresc/ledgersync/internal/pkg/nats"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/services/ledger"
	httpHandler "github.com/piresc/ledgersync/services/ledger/handler/http"
	jobHandler "github.com/piresc/ledgersync/services/ledger/handler/jobs"
	"github.com/piresc/ledgersync/services/ledger/handler/watcher"
)

// Handler combines all handlers for the ledger service
type Handler struct {
	cfg          *models.Config
	transferHTTP *httpHandler.TransferHandler
	jobs         *jobHandler.JobHandler
	runner       *watcher.Runner
	queue        *jobs.Queue
	natsClient   *natspkg.Client
	nrApp        *newrelic.Application
	consumers    []*natspkg.Consumer
}

// NewHandler creates a new combined handler
func NewHandler(
	cfg *models.Config,
	transferUC ledger.TransferUC,
	payTo ledger.PayToSettler,
	onChain ledger.OnChainSettler,
	chainWatcher ledger.ChainWatcher,
	alerter ledger.Alerter,
	queue *jobs.Queue,
	natsClient *natspkg.Client,
	nrApp *newrelic.Application,
) *Handler {
	return &Handler{
		cfg:          cfg,
		transferHTTP: httpHandler.NewTransferHandler(transferUC),
		jobs:         jobHandler.NewJobHandler(payTo, onChain, alerter),
		runner:       watcher.NewRunner(chainWatcher, cfg.Chain.SyncInterval, nrApp),
		queue:        queue,
		natsClient:   natsClient,
		nrApp:        nrApp,
	}
}

// RegisterRoutes registers all HTTP routes
func (h *Handler) RegisterRoutes(e *echo.Echo, redisClient *redis.Client) {
	v1 := e.Group("/v1", middleware.JWTAuthMiddleware(h.cfg.JWT))

	transfers := v1.Group("/transfers")
	if limit := h.cfg.Settlement.TransferRateLimit; limit > 0 {
		transfers.Use(middleware.UserRateLimiter(limit, time.Minute, redisClient))
	}
	transfers.POST("", nrpkg.TraceHandler("Ledger.CreateTransfer", h.transferHTTP.CreateTransfer))
	transfers.POST("/onchain", nrpkg.TraceHandler("Ledger.SubmitChainTransfer", h.transferHTTP.SubmitChainTransfer))

	v1.GET("/transactions/:id", nrpkg.TraceHandler("Ledger.GetTransaction", h.transferHTTP.GetTransaction))
}

// workers returns one worker per job name
func (h *Handler) workers() []*jobs.Worker {
	opts := []jobs.WorkerOption{
		jobs.WithExhaustedFunc(h.jobs.Exhausted),
		jobs.WithNewRelic(h.nrApp),
	}
	return []*jobs.Worker{
		jobs.NewWorker(constants.JobPayTo, h.queue, h.jobs.PayTo, opts...),
		jobs.NewWorker(constants.JobSettleChain, h.queue, h.jobs.SettleChain, opts...),
	}
}

// StartJobConsumers starts a durable JetStream consumer per job with bounded concurrency
func (h *Handler) StartJobConsumers(ctx context.Context) error {
	for _, w := range h.workers() {
		cfg := natspkg.NewConsumerConfigBuilder(h.cfg.NATS.JobStream, "ledger_"+w.Name()).
			WithSubject(jobs.Subject(w.Name())).
			WithMaxAckPending(h.cfg.Jobs.Concurrency * 4).
			Build()

		consumer, err := natspkg.NewJetStreamConsumer(ctx, h.natsClient, cfg, h.cfg.Jobs.Concurrency)
		if err != nil {
			return fmt.Errorf("failed to create %s consumer: %w", w.Name(), err)
		}
		if err := consumer.Start(w.MessageHandler(ctx)); err != nil {
			return fmt.Errorf("failed to start %s consumer: %w", w.Name(), err)
		}
		h.consumers = append(h.consumers, consumer)

		logger.Info("Job consumer started",
			logger.String("job", w.Name()),
			logger.String("consumer", cfg.ConsumerName),
			logger.Int("concurrency", h.cfg.Jobs.Concurrency))
	}
	return nil
}

// StopJobConsumers stops fetching and waits for in-flight jobs
func (h *Handler) StopJobConsumers() {
	for _, c := range h.consumers {
		c.Stop()
	}
	h.consumers = nil
}

// RunWatcher blocks running the chain watcher until ctx is done
func (h *Handler) RunWatcher(ctx context.Context) {
	h.runner.Run(ctx)
}
