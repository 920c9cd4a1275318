package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/piresc/ledgersync/internal/pkg/amount"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/metrics"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/internal/utils"
	"github.com/piresc/ledgersync/services/ledger"
)

// OnChainSettlerUC verifies the receipt behind a user-submitted hash
type OnChainSettlerUC struct {
	cfg     *models.Config
	repo    ledger.LedgerRepo
	dir     ledger.DirectoryRepo
	chain   ledger.ChainClient
	effects *effects
}

// NewOnChainSettler creates the on-chain settler
func NewOnChainSettler(
	cfg *models.Config,
	repo ledger.LedgerRepo,
	dir ledger.DirectoryRepo,
	chain ledger.ChainClient,
	notifier ledger.Notifier,
	cache ledger.CacheInvalidator,
) *OnChainSettlerUC {
	return &OnChainSettlerUC{
		cfg:     cfg,
		repo:    repo,
		dir:     dir,
		chain:   chain,
		effects: newEffects(notifier, cache),
	}
}

// expectedTransfer is what a matching curation event must carry
type expectedTransfer struct {
	curator   string
	creator   string
	token     string
	baseUnits *big.Int
	contentID string
}

func (e expectedTransfer) matches(log models.CurationLog) bool {
	if log.Amount == nil || log.Amount.Cmp(e.baseUnits) != 0 {
		return false
	}
	cid, ok := utils.ContentID(log.URI)
	return ok && cid == e.contentID &&
		utils.SameAddress(log.CuratorAddress, e.curator) &&
		utils.SameAddress(log.CreatorAddress, e.creator) &&
		utils.SameAddress(log.TokenAddress, e.token)
}

// Settle resolves a pending blockchain transaction from its receipt.
// An unmined hash is a transient error so the job retries on its backoff schedule.
func (uc *OnChainSettlerUC) Settle(ctx context.Context, txID string) error {
	tx, err := uc.repo.GetTransaction(ctx, txID)
	if errors.Is(err, ledger.ErrNotFound) {
		return jobs.Permanent(err)
	}
	if err != nil {
		return err
	}
	if tx.Provider != models.ProviderBlockchain {
		return jobs.Permanent(fmt.Errorf("transaction %s has provider %s: %w", tx.ID, tx.Provider, ledger.ErrWrongProvider))
	}
	if tx.State != models.TransactionStatePending {
		logger.InfoCtx(ctx, "Chain transfer already settled",
			logger.String("tx_id", tx.ID),
			logger.String("state", string(tx.State)))
		return nil
	}

	chainTx, err := uc.repo.GetChainTransactionByID(ctx, tx.ProviderTxID)
	if errors.Is(err, ledger.ErrNotFound) {
		return jobs.Permanent(err)
	}
	if err != nil {
		return err
	}

	receipt, err := uc.chain.FetchReceipt(ctx, chainTx.TxHash)
	if errors.Is(err, ledger.ErrReceiptNotFound) {
		logger.DebugCtx(ctx, "Receipt not available yet",
			logger.String("tx_id", tx.ID),
			logger.String("tx_hash", chainTx.TxHash))
		return jobs.Transient(fmt.Errorf("transaction %s not mined: %w", chainTx.TxHash, err))
	}
	if err != nil {
		return err
	}

	settlement := models.ChainSettlement{
		TxID:        tx.ID,
		ChainTxID:   chainTx.ID,
		BlockNumber: int64(receipt.BlockNumber),
		From:        receipt.From,
		To:          receipt.To,
	}

	if receipt.Reverted {
		settlement.TxState = models.TransactionStateFailed
		settlement.ChainState = models.ChainTxStateReverted
		settlement.Remark = constants.RemarkReverted
		_, err := uc.finish(ctx, settlement, chainTx.TxHash)
		return err
	}

	settlement.ChainState = models.ChainTxStateSucceeded
	expected, sender, recipient, err := uc.expected(ctx, tx)
	if err != nil {
		return err
	}

	matched := false
	if expected != nil {
		for _, event := range receipt.Events {
			if expected.matches(event) {
				matched = true
				break
			}
		}
	}
	if !matched {
		settlement.TxState = models.TransactionStateCanceled
		settlement.Remark = constants.RemarkInvalid
		logger.WarnCtx(ctx, "Receipt does not carry the expected transfer",
			logger.String("tx_id", tx.ID),
			logger.String("tx_hash", chainTx.TxHash),
			logger.Int("events", len(receipt.Events)))
		_, err := uc.finish(ctx, settlement, chainTx.TxHash)
		return err
	}

	settlement.TxState = models.TransactionStateSucceeded
	changed, err := uc.finish(ctx, settlement, chainTx.TxHash)
	if err != nil || !changed {
		return err
	}
	tx.State = models.TransactionStateSucceeded
	uc.effects.settled(ctx, tx, sender, recipient)
	return nil
}

// expected builds the event tuple the receipt must contain. A nil tuple means the
// transfer references parties or content that cannot be resolved.
func (uc *OnChainSettlerUC) expected(ctx context.Context, tx *models.Transaction) (*expectedTransfer, *models.User, *models.User, error) {
	if !tx.HasParties() || tx.TargetID == "" {
		return nil, nil, nil, nil
	}

	sender, err := uc.dir.UserByID(ctx, tx.SenderID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}
	recipient, err := uc.dir.UserByID(ctx, tx.RecipientID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}
	if sender.WalletAddress == "" || recipient.WalletAddress == "" {
		return nil, nil, nil, nil
	}

	article, err := uc.dir.ArticleByID(ctx, tx.TargetID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, nil, nil, nil
	}
	if err != nil {
		return nil, nil, nil, err
	}

	baseUnits, err := amount.ToBaseUnits(tx.Amount, uc.cfg.Chain.TokenDecimals)
	if err != nil {
		logger.WarnCtx(ctx, "Transaction amount does not fit the token",
			logger.String("tx_id", tx.ID),
			logger.String("amount", tx.Amount.String()),
			logger.Err(err))
		return nil, nil, nil, nil
	}

	return &expectedTransfer{
		curator:   sender.WalletAddress,
		creator:   recipient.WalletAddress,
		token:     uc.cfg.Chain.TokenAddress,
		baseUnits: baseUnits,
		contentID: article.DataHash,
	}, sender, recipient, nil
}

func (uc *OnChainSettlerUC) finish(ctx context.Context, s models.ChainSettlement, txHash string) (bool, error) {
	changed, err := uc.repo.SettleChainTransfer(ctx, s)
	if err != nil {
		return false, err
	}
	if changed {
		metrics.Settlement("onchain", string(s.TxState))
	}
	logger.InfoCtx(ctx, "Chain transfer settled",
		logger.String("tx_id", s.TxID),
		logger.String("tx_hash", txHash),
		logger.String("state", string(s.TxState)),
		logger.String("chain_state", string(s.ChainState)),
		logger.String("remark", s.Remark),
		logger.Bool("changed", changed))
	return changed, nil
}
