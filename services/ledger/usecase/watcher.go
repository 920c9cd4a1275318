package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/metrics"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
)

// ChainWatcherUC advances the watermark of one curation contract.
// Runs are single-flight within the process and across replicas.
type ChainWatcherUC struct {
	cfg        *models.Config
	repo       ledger.LedgerRepo
	chain      ledger.ChainClient
	reconciler ledger.EventReconciler
	locker     ledger.Locker
	alerter    ledger.Alerter

	running sync.Mutex
}

// NewChainWatcher creates the chain watcher. A zero confirmation depth is only
// accepted in local and test environments, where the chain tip is final.
func NewChainWatcher(
	cfg *models.Config,
	repo ledger.LedgerRepo,
	chain ledger.ChainClient,
	reconciler ledger.EventReconciler,
	locker ledger.Locker,
	alerter ledger.Alerter,
) (*ChainWatcherUC, error) {
	if cfg.Chain.LockTTL <= 0 {
		return nil, fmt.Errorf("chain lock TTL must be positive, got %s", cfg.Chain.LockTTL)
	}
	if cfg.Chain.Confirmations == 0 && !devEnvironment(cfg.App.Environment) {
		return nil, fmt.Errorf("chain confirmations must be positive in %q environment", cfg.App.Environment)
	}
	return &ChainWatcherUC{
		cfg:        cfg,
		repo:       repo,
		chain:      chain,
		reconciler: reconciler,
		locker:     locker,
		alerter:    alerter,
	}, nil
}

func devEnvironment(env string) bool {
	return env == "local" || env == "test"
}

// runBudget keeps a run inside the lock lease so another replica never
// acquires an expired key while this run is still writing.
func runBudget(lockTTL time.Duration) time.Duration {
	return lockTTL - lockTTL/5
}

// Sync reconciles every log between the watermark and the safe height, then
// saves the new watermark. A failed run leaves the watermark where it was.
func (uc *ChainWatcherUC) Sync(ctx context.Context) (*models.SyncReport, error) {
	chainID := uc.chain.ChainID()
	contract := strings.ToLower(uc.chain.ContractAddress())
	report := &models.SyncReport{
		ChainID:         chainID,
		ContractAddress: contract,
		Outcomes:        make(map[models.ReconcileOutcome]int),
	}

	if !uc.running.TryLock() {
		logger.InfoCtx(ctx, "Chain sync already running in this process")
		report.Skipped = true
		metrics.WatcherRun("skipped")
		return report, nil
	}
	defer uc.running.Unlock()

	lockKey := fmt.Sprintf(constants.KeyWatcherLock, chainID, contract)
	token, acquired, err := uc.locker.Acquire(ctx, lockKey, uc.cfg.Chain.LockTTL)
	if err != nil {
		metrics.WatcherRun("error")
		return nil, fmt.Errorf("failed to acquire watcher lock: %w", err)
	}
	if !acquired {
		logger.InfoCtx(ctx, "Chain sync held by another replica", logger.String("lock", lockKey))
		report.Skipped = true
		metrics.WatcherRun("skipped")
		return report, nil
	}
	defer func() {
		if err := uc.locker.Release(context.WithoutCancel(ctx), lockKey, token); err != nil {
			logger.WarnCtx(ctx, "Failed to release watcher lock", logger.String("lock", lockKey), logger.Err(err))
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, runBudget(uc.cfg.Chain.LockTTL))
	defer cancel()
	if err := uc.run(runCtx, report); err != nil {
		if !errors.Is(err, ledger.ErrInvariantViolation) {
			metrics.WatcherRun("error")
		}
		return report, err
	}
	return report, nil
}

func (uc *ChainWatcherUC) run(ctx context.Context, report *models.SyncReport) error {
	from := uc.cfg.Chain.GenesisBlock
	wm, err := uc.repo.GetWatermark(ctx, report.ChainID, report.ContractAddress)
	switch {
	case errors.Is(err, ledger.ErrNotFound):
	case err != nil:
		return err
	default:
		from = uint64(wm.BlockNumber) + 1
	}

	head, err := uc.chain.CurrentHeight(ctx)
	if err != nil {
		return fmt.Errorf("failed to read chain height: %w", err)
	}
	if head < uc.cfg.Chain.Confirmations {
		metrics.WatcherRun("idle")
		return nil
	}
	to := head - uc.cfg.Chain.Confirmations
	if limit := uc.cfg.Chain.MaxBlocksPerRun; limit > 0 && to >= from && to-from+1 > limit {
		to = from + limit - 1
	}
	report.FromBlock, report.ToBlock = from, to
	if from > to {
		metrics.WatcherRun("idle")
		return nil
	}

	fields := []logger.Field{
		logger.Int64("chain_id", report.ChainID),
		logger.String("contract", report.ContractAddress),
		logger.Uint64("from_block", from),
		logger.Uint64("to_block", to),
	}

	logs, err := uc.chain.FetchLogs(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to fetch logs [%d, %d]: %w", from, to, err)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].BlockNumber != logs[j].BlockNumber {
			return logs[i].BlockNumber < logs[j].BlockNumber
		}
		return logs[i].LogIndex < logs[j].LogIndex
	})
	report.Logs = len(logs)

	for _, log := range logs {
		if log.Removed {
			return uc.invariantViolation(ctx, log, fields)
		}
	}

	for _, log := range logs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("sync run outlived its lock lease at block %d: %w", log.BlockNumber, err)
		}
		outcome, err := uc.reconciler.Reconcile(ctx, log)
		if err != nil {
			logger.ErrorCtx(ctx, "Failed to reconcile curation log", append(fields,
				logger.String("tx_hash", log.TxHash),
				logger.Uint64("block", log.BlockNumber),
				logger.Err(err))...)
			return fmt.Errorf("failed to reconcile log %s:%d: %w", log.TxHash, log.LogIndex, err)
		}
		report.Outcomes[outcome]++
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("sync run outlived its lock lease: %w", err)
	}
	if err := uc.repo.SaveWatermark(ctx, report.ChainID, report.ContractAddress, int64(to)); err != nil {
		return err
	}
	metrics.Watermark(report.ChainID, report.ContractAddress, to)
	metrics.WatcherRun("ok")

	logger.InfoCtx(ctx, "Chain sync completed", append(fields,
		logger.Int("logs", report.Logs),
		logger.Uint64("head", head))...)
	return nil
}

func (uc *ChainWatcherUC) invariantViolation(ctx context.Context, log models.CurationLog, fields []logger.Field) error {
	logger.ErrorCtx(ctx, "Removed log inside the finalized range", append(fields,
		logger.String("tx_hash", log.TxHash),
		logger.Uint64("block", log.BlockNumber))...)
	metrics.WatcherRun("invariant_violation")

	alert := models.Alert{
		Severity: models.AlertCritical,
		Source:   constants.AlertSourceWatcher,
		Message:  "removed log observed below the confirmation depth",
		Fields: map[string]string{
			"chain_id":  strconv.FormatInt(log.ChainID, 10),
			"contract":  strings.ToLower(log.ContractAddress),
			"tx_hash":   log.TxHash,
			"block":     strconv.FormatUint(log.BlockNumber, 10),
			"log_index": strconv.FormatUint(uint64(log.LogIndex), 10),
		},
	}
	if err := uc.alerter.Raise(ctx, alert); err != nil {
		logger.ErrorCtx(ctx, "Failed to raise alert", logger.Err(err))
	}
	return fmt.Errorf("removed log %s:%d at block %d: %w", log.TxHash, log.LogIndex, log.BlockNumber, ledger.ErrInvariantViolation)
}
