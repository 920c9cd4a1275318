package ledger

import (
	"context"
	"time"

	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/ledgersync/services/ledger LedgerRepo,DirectoryRepo

// LedgerRepo owns every write to transactions, chain transactions, the audit log and watermarks.
// Settle methods only move rows that are still pending and report whether they did.
type LedgerRepo interface {
	// Transactions
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error)
	SettleTransaction(ctx context.Context, id string, state models.TransactionState, remark string) (bool, error)

	// Chain transactions and audit log
	GetChainTransaction(ctx context.Context, chainID int64, txHash string) (*models.ChainTransaction, error)
	GetChainTransactionByID(ctx context.Context, id string) (*models.ChainTransaction, error)
	UpsertChainTransaction(ctx context.Context, chainTx *models.ChainTransaction) (*models.ChainTransaction, error)
	GetLinkedTransaction(ctx context.Context, chainTxID string) (*models.Transaction, error)
	AppendCurationEvent(ctx context.Context, event *models.CurationEvent) (bool, error)

	// Atomic two-table writes
	ReconcileLinkedTransaction(ctx context.Context, txID, chainTxID string, correction *models.TransactionCorrection, blockNumber int64) (bool, error)
	CreateSettledTransaction(ctx context.Context, tx *models.Transaction, blockNumber int64) (*models.Transaction, bool, error)
	SettleChainTransfer(ctx context.Context, settlement models.ChainSettlement) (bool, error)

	// Watermarks
	GetWatermark(ctx context.Context, chainID int64, contractAddress string) (*models.SyncWatermark, error)
	SaveWatermark(ctx context.Context, chainID int64, contractAddress string, blockNumber int64) error

	// Balance queries
	Balance(ctx context.Context, userID string, currency models.Currency) (decimal.Decimal, error)
	DailySent(ctx context.Context, userID string, currency models.Currency, since time.Time) (decimal.Decimal, error)
}

// DirectoryRepo resolves users and articles referenced by transfers
type DirectoryRepo interface {
	UserByID(ctx context.Context, id string) (*models.User, error)
	UserByAddress(ctx context.Context, address string) (*models.User, error)
	ArticleByID(ctx context.Context, id string) (*models.Article, error)
	ArticleByContentID(ctx context.Context, contentID, authorID string) (*models.Article, error)
}
