package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/ledgersync/internal/pkg/amount"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/internal/utils"
	"github.com/piresc/ledgersync/services/ledger"
	"github.com/shopspring/decimal"
)

const remarkEnqueueFailed = "enqueue_failed"

// TransferUCImpl accepts transfers from authenticated users and schedules their settlement
type TransferUCImpl struct {
	cfg   *models.Config
	repo  ledger.LedgerRepo
	dir   ledger.DirectoryRepo
	queue ledger.JobQueue
}

// NewTransferUC creates the transfer use case
func NewTransferUC(cfg *models.Config, repo ledger.LedgerRepo, dir ledger.DirectoryRepo, queue ledger.JobQueue) *TransferUCImpl {
	return &TransferUCImpl{cfg: cfg, repo: repo, dir: dir, queue: queue}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ledger.ErrInvalidTransfer)
}

// precision returns the fractional digits a currency supports
func (uc *TransferUCImpl) precision(c models.Currency) (int32, bool) {
	switch c {
	case models.CurrencyFiat:
		return 2, true
	case models.CurrencyUtility:
		return 9, true
	case models.CurrencyStable:
		return uc.cfg.Chain.TokenDecimals, true
	}
	return 0, false
}

func (uc *TransferUCImpl) parseAmount(s string, c models.Currency) (decimal.Decimal, error) {
	decimals, ok := uc.precision(c)
	if !ok {
		return decimal.Zero, invalid("unsupported currency %q", c)
	}
	d, err := amount.Parse(s)
	if err != nil {
		return decimal.Zero, invalid("%v", err)
	}
	if _, err := amount.ToBaseUnits(d, decimals); err != nil {
		return decimal.Zero, invalid("%v", err)
	}
	return d, nil
}

// checkParties verifies the recipient and the paid article exist
func (uc *TransferUCImpl) checkParties(ctx context.Context, senderID, recipientID, targetID string) error {
	if senderID == "" {
		return invalid("missing sender")
	}
	if recipientID == "" {
		return invalid("missing recipient")
	}
	if senderID == recipientID {
		return invalid("sender and recipient are the same user")
	}
	if _, err := uc.dir.UserByID(ctx, recipientID); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return invalid("recipient %s not found", recipientID)
		}
		return err
	}
	if targetID == "" {
		return nil
	}
	if _, err := uc.dir.ArticleByID(ctx, targetID); err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			return invalid("article %s not found", targetID)
		}
		return err
	}
	return nil
}

// CreateTransfer records a pending internal transfer and schedules the off-chain settler
func (uc *TransferUCImpl) CreateTransfer(ctx context.Context, req models.TransferRequest) (*models.Transaction, error) {
	amt, err := uc.parseAmount(req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	if err := uc.checkParties(ctx, req.SenderID, req.RecipientID, req.TargetID); err != nil {
		return nil, err
	}

	purpose := req.Purpose
	if purpose == "" {
		purpose = models.PurposeDonation
	}
	targetType := req.TargetType
	if req.TargetID != "" && targetType == "" {
		targetType = models.TargetTypeArticle
	}

	tx, err := uc.repo.CreateTransaction(ctx, &models.Transaction{
		Provider:    models.ProviderInternal,
		Amount:      amt,
		Currency:    req.Currency,
		State:       models.TransactionStatePending,
		Purpose:     purpose,
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		TargetID:    req.TargetID,
		TargetType:  targetType,
	})
	if err != nil {
		return nil, err
	}

	jobID, err := uc.queue.Enqueue(ctx, constants.JobPayTo, models.PayToJob{TxID: tx.ID}, jobs.Options{
		MaxAttempts: uc.cfg.Jobs.MaxAttempts,
		BackoffBase: uc.cfg.Jobs.BackoffBase,
		BackoffMax:  uc.cfg.Jobs.BackoffMax,
	})
	if err != nil {
		uc.abandon(ctx, tx.ID, err)
		return nil, fmt.Errorf("failed to schedule transfer %s: %w", tx.ID, err)
	}

	logger.InfoCtx(ctx, "Transfer accepted",
		logger.String("tx_id", tx.ID),
		logger.String("job_id", jobID),
		logger.String("sender_id", tx.SenderID),
		logger.String("recipient_id", tx.RecipientID),
		logger.String("amount", tx.Amount.String()),
		logger.String("currency", string(tx.Currency)))
	return tx, nil
}

// SubmitChainTransfer records a user-submitted hash and schedules receipt verification.
// A hash already linked to a transaction is a conflict.
func (uc *TransferUCImpl) SubmitChainTransfer(ctx context.Context, req models.ChainTransferRequest) (*models.Transaction, error) {
	hash := utils.NormalizeTxHash(req.TxHash)
	if hash == "" {
		return nil, invalid("malformed transaction hash %q", req.TxHash)
	}
	amt, err := uc.parseAmount(req.Amount, models.CurrencyStable)
	if err != nil {
		return nil, err
	}
	if req.TargetID == "" {
		return nil, invalid("missing target article")
	}
	if err := uc.checkParties(ctx, req.SenderID, req.RecipientID, req.TargetID); err != nil {
		return nil, err
	}

	chainTx, err := uc.repo.UpsertChainTransaction(ctx, &models.ChainTransaction{
		ChainID: uc.cfg.Chain.ChainID,
		TxHash:  hash,
		State:   models.ChainTxStatePending,
	})
	if err != nil {
		return nil, err
	}

	linked, err := uc.repo.GetLinkedTransaction(ctx, chainTx.ID)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return nil, err
	}
	if linked != nil {
		return nil, fmt.Errorf("hash %s already recorded as transaction %s: %w", hash, linked.ID, ledger.ErrConflict)
	}

	tx, err := uc.repo.CreateTransaction(ctx, &models.Transaction{
		Provider:     models.ProviderBlockchain,
		ProviderTxID: chainTx.ID,
		Amount:       amt,
		Currency:     models.CurrencyStable,
		State:        models.TransactionStatePending,
		Purpose:      models.PurposeDonation,
		SenderID:     req.SenderID,
		RecipientID:  req.RecipientID,
		TargetID:     req.TargetID,
		TargetType:   models.TargetTypeArticle,
	})
	if err != nil {
		return nil, err
	}

	jobID, err := uc.queue.Enqueue(ctx, constants.JobSettleChain, models.SettleChainJob{TxID: tx.ID}, jobs.Options{
		Delay:       uc.cfg.Jobs.ChainDelay,
		MaxAttempts: uc.cfg.Jobs.ChainAttempts,
		BackoffBase: uc.cfg.Jobs.ChainBackoff,
		BackoffMax:  uc.cfg.Jobs.BackoffMax,
	})
	if err != nil {
		// The hash is already claimed, so failing here would only turn a client
		// retry into a conflict. The watcher settles the transaction once its log is final.
		logger.WarnCtx(ctx, "Failed to schedule receipt verification, leaving settlement to the chain watcher",
			logger.String("tx_id", tx.ID),
			logger.String("tx_hash", hash),
			logger.Err(err))
		return tx, nil
	}

	logger.InfoCtx(ctx, "Chain transfer submitted",
		logger.String("tx_id", tx.ID),
		logger.String("job_id", jobID),
		logger.String("tx_hash", hash),
		logger.String("amount", tx.Amount.String()))
	return tx, nil
}

// GetTransaction returns a transaction the user sent or received
func (uc *TransferUCImpl) GetTransaction(ctx context.Context, userID, txID string) (*models.Transaction, error) {
	tx, err := uc.repo.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if userID == "" || (tx.SenderID != userID && tx.RecipientID != userID) {
		return nil, ledger.ErrForbidden
	}
	return tx, nil
}

// abandon cancels a transfer whose settlement job could not be scheduled
func (uc *TransferUCImpl) abandon(ctx context.Context, txID string, cause error) {
	ctx = context.WithoutCancel(ctx)
	if _, err := uc.repo.SettleTransaction(ctx, txID, models.TransactionStateCanceled, remarkEnqueueFailed); err != nil {
		logger.ErrorCtx(ctx, "Failed to cancel unscheduled transfer",
			logger.String("tx_id", txID),
			logger.Err(err))
		return
	}
	logger.WarnCtx(ctx, "Canceled transfer that could not be scheduled",
		logger.String("tx_id", txID),
		logger.Err(cause))
}
