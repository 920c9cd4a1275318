package usecase

import (
	"context"
	"errors"
	"strconv"

	"github.com/piresc/ledgersync/internal/pkg/amount"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/metrics"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/internal/utils"
	"github.com/piresc/ledgersync/services/ledger"
	"github.com/shopspring/decimal"
)

// EventReconcilerUC folds curation logs into the ledger. Replaying a log is a no-op.
type EventReconcilerUC struct {
	cfg     *models.Config
	repo    ledger.LedgerRepo
	dir     ledger.DirectoryRepo
	alerter ledger.Alerter
	effects *effects
}

// NewEventReconciler creates the event reconciler
func NewEventReconciler(
	cfg *models.Config,
	repo ledger.LedgerRepo,
	dir ledger.DirectoryRepo,
	notifier ledger.Notifier,
	cache ledger.CacheInvalidator,
	alerter ledger.Alerter,
) *EventReconcilerUC {
	return &EventReconcilerUC{
		cfg:     cfg,
		repo:    repo,
		dir:     dir,
		alerter: alerter,
		effects: newEffects(notifier, cache),
	}
}

// resolvedEvent is a curation log whose parties and article are known
type resolvedEvent struct {
	curator *models.User
	creator *models.User
	article *models.Article
	amount  decimal.Decimal
}

// Reconcile records log and settles the transaction it pays for
func (uc *EventReconcilerUC) Reconcile(ctx context.Context, log models.CurationLog) (models.ReconcileOutcome, error) {
	fields := []logger.Field{
		logger.Int64("chain_id", log.ChainID),
		logger.String("tx_hash", log.TxHash),
		logger.Uint64("block", log.BlockNumber),
		logger.Int("log_index", int(log.LogIndex)),
	}

	chainTx, err := uc.repo.UpsertChainTransaction(ctx, &models.ChainTransaction{
		ChainID:     log.ChainID,
		TxHash:      log.TxHash,
		State:       models.ChainTxStatePending,
		From:        log.CuratorAddress,
		To:          log.ContractAddress,
		BlockNumber: int64(log.BlockNumber),
	})
	if err != nil {
		return "", err
	}

	amountText := "0"
	if log.Amount != nil {
		amountText = log.Amount.String()
	}
	if _, err := uc.repo.AppendCurationEvent(ctx, &models.CurationEvent{
		ChainTxID:      chainTx.ID,
		ChainID:        log.ChainID,
		TxHash:         log.TxHash,
		LogIndex:       int64(log.LogIndex),
		BlockNumber:    int64(log.BlockNumber),
		CuratorAddress: log.CuratorAddress,
		CreatorAddress: log.CreatorAddress,
		TokenAddress:   log.TokenAddress,
		URI:            log.URI,
		Amount:         amountText,
	}); err != nil {
		return "", err
	}

	event, reason, err := uc.resolve(ctx, log)
	if err != nil {
		return "", err
	}
	if event == nil {
		logger.InfoCtx(ctx, "Curation event not matched to a transfer", append(fields, logger.String("reason", reason))...)
		return uc.done(models.OutcomeSkipped), nil
	}

	correction := models.TransactionCorrection{
		SenderID:    event.curator.ID,
		RecipientID: event.creator.ID,
		TargetID:    event.article.ID,
		TargetType:  models.TargetTypeArticle,
		Amount:      event.amount,
		Currency:    models.CurrencyStable,
	}

	linked, err := uc.repo.GetLinkedTransaction(ctx, chainTx.ID)
	if err != nil && !errors.Is(err, ledger.ErrNotFound) {
		return "", err
	}

	var settled *models.Transaction
	var outcome models.ReconcileOutcome
	if linked == nil {
		tx := &models.Transaction{
			Provider:     models.ProviderBlockchain,
			ProviderTxID: chainTx.ID,
			Purpose:      models.PurposeDonation,
		}
		applyCorrection(tx, correction)

		created, ok, err := uc.repo.CreateSettledTransaction(ctx, tx, int64(log.BlockNumber))
		if err != nil {
			return "", err
		}
		if !ok {
			logger.InfoCtx(ctx, "Chain transaction linked concurrently", fields...)
			return uc.done(models.OutcomeLostRace), nil
		}
		settled, outcome = created, models.OutcomeCreated
	} else {
		fields = append(fields, logger.String("tx_id", linked.ID), logger.String("state", string(linked.State)))

		switch linked.State {
		case models.TransactionStateSucceeded:
			return uc.done(models.OutcomeAlreadyReconciled), nil
		case models.TransactionStateFailed, models.TransactionStateCanceled:
			logger.WarnCtx(ctx, "Curation event for a closed transaction", fields...)
			uc.raise(ctx, models.AlertWarning, "curation event observed for a closed transaction", log, linked)
			return uc.done(models.OutcomeTerminalConflict), nil
		}

		var fix *models.TransactionCorrection
		outcome = models.OutcomeSettled
		if !correction.Matches(linked) {
			fix = &correction
			outcome = models.OutcomeCorrected
			logger.WarnCtx(ctx, "Correcting transaction from on-chain event", append(fields,
				logger.String("recorded_amount", linked.Amount.String()),
				logger.String("chain_amount", correction.Amount.String()),
				logger.String("recorded_sender", linked.SenderID),
				logger.String("chain_sender", correction.SenderID))...)
		}

		ok, err := uc.repo.ReconcileLinkedTransaction(ctx, linked.ID, chainTx.ID, fix, int64(log.BlockNumber))
		if err != nil {
			return "", err
		}
		if !ok {
			logger.InfoCtx(ctx, "Linked transaction settled concurrently", fields...)
			return uc.done(models.OutcomeLostRace), nil
		}
		applyCorrection(linked, correction)
		linked.State = models.TransactionStateSucceeded
		settled = linked
	}

	metrics.Settlement("reconciler", string(models.TransactionStateSucceeded))
	logger.InfoCtx(ctx, "Curation event reconciled", append(fields,
		logger.String("tx_id", settled.ID),
		logger.String("outcome", string(outcome)))...)

	uc.effects.settled(ctx, settled, event.curator, event.creator)
	return uc.done(outcome), nil
}

// resolve maps the log onto internal users and an article.
// A nil event with a reason means the log is not a settlement we track.
func (uc *EventReconcilerUC) resolve(ctx context.Context, log models.CurationLog) (*resolvedEvent, string, error) {
	if !utils.SameAddress(log.TokenAddress, uc.cfg.Chain.TokenAddress) {
		return nil, "token_mismatch", nil
	}
	cid, ok := utils.ContentID(log.URI)
	if !ok {
		return nil, "unsupported_uri", nil
	}
	if log.Amount == nil || log.Amount.Sign() <= 0 {
		return nil, "zero_amount", nil
	}

	curator, err := uc.dir.UserByAddress(ctx, log.CuratorAddress)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, "unknown_curator", nil
	}
	if err != nil {
		return nil, "", err
	}
	creator, err := uc.dir.UserByAddress(ctx, log.CreatorAddress)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, "unknown_creator", nil
	}
	if err != nil {
		return nil, "", err
	}
	article, err := uc.dir.ArticleByContentID(ctx, cid, creator.ID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, "unknown_article", nil
	}
	if err != nil {
		return nil, "", err
	}

	return &resolvedEvent{
		curator: curator,
		creator: creator,
		article: article,
		amount:  amount.FromBaseUnits(log.Amount, uc.cfg.Chain.TokenDecimals),
	}, "", nil
}

func (uc *EventReconcilerUC) raise(ctx context.Context, severity models.AlertSeverity, message string, log models.CurationLog, tx *models.Transaction) {
	alert := models.Alert{
		Severity: severity,
		Source:   constants.AlertSourceReconciler,
		Message:  message,
		Fields: map[string]string{
			"chain_id":  strconv.FormatInt(log.ChainID, 10),
			"tx_hash":   log.TxHash,
			"log_index": strconv.FormatUint(uint64(log.LogIndex), 10),
			"tx_id":     tx.ID,
			"state":     string(tx.State),
		},
	}
	if err := uc.alerter.Raise(ctx, alert); err != nil {
		logger.ErrorCtx(ctx, "Failed to raise alert", logger.String("message", message), logger.Err(err))
	}
}

func (uc *EventReconcilerUC) done(outcome models.ReconcileOutcome) models.ReconcileOutcome {
	metrics.ReconcileOutcome(string(outcome))
	return outcome
}

func applyCorrection(tx *models.Transaction, c models.TransactionCorrection) {
	tx.SenderID = c.SenderID
	tx.RecipientID = c.RecipientID
	tx.TargetID = c.TargetID
	tx.TargetType = c.TargetType
	tx.Amount = c.Amount
	tx.Currency = c.Currency
}
