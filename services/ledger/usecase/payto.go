package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/metrics"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
)

// PayToSettlerUC settles internal transfers against the balance gate
type PayToSettlerUC struct {
	repo    ledger.LedgerRepo
	dir     ledger.DirectoryRepo
	gate    ledger.BalanceGate
	policy  transferPolicy
	effects *effects
}

// NewPayToSettler creates the off-chain settler
func NewPayToSettler(
	cfg *models.Config,
	repo ledger.LedgerRepo,
	dir ledger.DirectoryRepo,
	gate ledger.BalanceGate,
	notifier ledger.Notifier,
	cache ledger.CacheInvalidator,
) (*PayToSettlerUC, error) {
	policy, err := newTransferPolicy(cfg.Settlement)
	if err != nil {
		return nil, err
	}
	return &PayToSettlerUC{
		repo:    repo,
		dir:     dir,
		gate:    gate,
		policy:  policy,
		effects: newEffects(notifier, cache),
	}, nil
}

// Settle resolves a pending internal transfer to succeeded or canceled.
// Missing or foreign transactions are permanent errors.
func (uc *PayToSettlerUC) Settle(ctx context.Context, txID string) error {
	tx, err := uc.repo.GetTransaction(ctx, txID)
	if errors.Is(err, ledger.ErrNotFound) {
		return jobs.Permanent(err)
	}
	if err != nil {
		return err
	}
	if tx.Provider != models.ProviderInternal {
		return jobs.Permanent(fmt.Errorf("transaction %s has provider %s: %w", tx.ID, tx.Provider, ledger.ErrWrongProvider))
	}
	if tx.State != models.TransactionStatePending {
		logger.InfoCtx(ctx, "Transfer already settled",
			logger.String("tx_id", tx.ID),
			logger.String("state", string(tx.State)))
		return nil
	}
	if !tx.HasParties() {
		return uc.cancel(ctx, tx, constants.RemarkMissingParty)
	}

	balance, err := uc.gate.AvailableBalance(ctx, tx.SenderID, tx.Currency)
	if err != nil {
		return err
	}
	todaySent, err := uc.gate.DailySent(ctx, tx.SenderID, tx.Currency)
	if err != nil {
		return err
	}

	switch {
	case balance.IsNegative():
		return uc.cancel(ctx, tx, constants.RemarkInsufficientBalance)
	case uc.policy.perTransferCap != nil && tx.Amount.GreaterThan(*uc.policy.perTransferCap):
		return uc.cancel(ctx, tx, constants.RemarkOverTransferCap)
	case uc.policy.dailyCap != nil && todaySent.Add(tx.Amount).GreaterThan(*uc.policy.dailyCap):
		return uc.cancel(ctx, tx, constants.RemarkOverDailyCap)
	}

	sender, err := uc.resolveUser(ctx, tx.SenderID)
	if err != nil {
		return err
	}
	recipient, err := uc.resolveUser(ctx, tx.RecipientID)
	if err != nil {
		return err
	}
	if sender == nil || recipient == nil {
		return uc.cancel(ctx, tx, constants.RemarkPartyNotFound)
	}

	changed, err := uc.repo.SettleTransaction(ctx, tx.ID, models.TransactionStateSucceeded, "")
	if err != nil {
		return err
	}
	if !changed {
		logger.InfoCtx(ctx, "Transfer settled concurrently", logger.String("tx_id", tx.ID))
		return nil
	}

	tx.State = models.TransactionStateSucceeded
	metrics.Settlement("payto", string(tx.State))
	logger.InfoCtx(ctx, "Transfer succeeded",
		logger.String("tx_id", tx.ID),
		logger.String("sender_id", tx.SenderID),
		logger.String("recipient_id", tx.RecipientID),
		logger.String("amount", tx.Amount.String()),
		logger.String("currency", string(tx.Currency)))

	uc.effects.settled(ctx, tx, sender, recipient)
	return nil
}

// resolveUser returns nil without error when the user no longer exists
func (uc *PayToSettlerUC) resolveUser(ctx context.Context, id string) (*models.User, error) {
	user, err := uc.dir.UserByID(ctx, id)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, nil
	}
	return user, err
}

func (uc *PayToSettlerUC) cancel(ctx context.Context, tx *models.Transaction, remark string) error {
	changed, err := uc.repo.SettleTransaction(ctx, tx.ID, models.TransactionStateCanceled, remark)
	if err != nil {
		return err
	}
	if changed {
		metrics.Settlement("payto", string(models.TransactionStateCanceled))
	}
	logger.InfoCtx(ctx, "Transfer canceled",
		logger.String("tx_id", tx.ID),
		logger.String("remark", remark),
		logger.Bool("changed", changed))
	return nil
}
