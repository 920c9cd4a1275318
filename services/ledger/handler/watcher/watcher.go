package watcher

import (
	"context"
	"errors"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/services/ledger"
)

// Runner triggers the chain watcher on a fixed interval
type Runner struct {
	watcher  ledger.ChainWatcher
	interval time.Duration
	nrApp    *newrelic.Application
}

// NewRunner creates a runner. A non-positive interval defaults to one minute.
func NewRunner(watcher ledger.ChainWatcher, interval time.Duration, nrApp *newrelic.Application) *Runner {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Runner{watcher: watcher, interval: interval, nrApp: nrApp}
}

// Run syncs once immediately and then on every tick until ctx is done
func (r *Runner) Run(ctx context.Context) {
	logger.Info("Chain watcher started", logger.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		r.RunOnce(ctx)

		select {
		case <-ctx.Done():
			logger.Info("Chain watcher stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single sync and logs its result
func (r *Runner) RunOnce(ctx context.Context) {
	ctx, txn, end := nrpkg.StartBackgroundTransaction(ctx, r.nrApp, "watcher/sync")
	defer end()

	start := time.Now()
	report, err := r.watcher.Sync(ctx)
	if err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		if errors.Is(err, ledger.ErrInvariantViolation) {
			logger.ErrorCtx(ctx, "Chain sync aborted on invariant violation", logger.Err(err))
			return
		}
		logger.ErrorCtx(ctx, "Chain sync failed", logger.Err(err))
		return
	}
	if report.Skipped {
		return
	}

	nrpkg.AddTransactionAttribute(txn, "sync.from_block", report.FromBlock)
	nrpkg.AddTransactionAttribute(txn, "sync.to_block", report.ToBlock)
	nrpkg.AddTransactionAttribute(txn, "sync.logs", report.Logs)
	logger.DebugCtx(ctx, "Chain sync run finished",
		logger.Uint64("from_block", report.FromBlock),
		logger.Uint64("to_block", report.ToBlock),
		logger.Int("logs", report.Logs),
		logger.Any("outcomes", report.Outcomes),
		logger.Duration("took", time.Since(start)))
}
