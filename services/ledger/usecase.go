package ledger

import (
	"context"

	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/ledgersync/services/ledger BalanceGate,PayToSettler,OnChainSettler,EventReconciler,ChainWatcher,TransferUC

// BalanceGate answers the off-chain admission checks
type BalanceGate interface {
	AvailableBalance(ctx context.Context, userID string, currency models.Currency) (decimal.Decimal, error)
	DailySent(ctx context.Context, userID string, currency models.Currency) (decimal.Decimal, error)
}

// PayToSettler resolves a pending internal transfer
type PayToSettler interface {
	Settle(ctx context.Context, txID string) error
}

// OnChainSettler verifies the receipt of a user-submitted hash
type OnChainSettler interface {
	Settle(ctx context.Context, txID string) error
}

// EventReconciler folds one curation log into the ledger
type EventReconciler interface {
	Reconcile(ctx context.Context, log models.CurationLog) (models.ReconcileOutcome, error)
}

// ChainWatcher advances the contract watermark
type ChainWatcher interface {
	Sync(ctx context.Context) (*models.SyncReport, error)
}

// TransferUC accepts user transfers and exposes their state
type TransferUC interface {
	CreateTransfer(ctx context.Context, req models.TransferRequest) (*models.Transaction, error)
	SubmitChainTransfer(ctx context.Context, req models.ChainTransferRequest) (*models.Transaction, error)
	GetTransaction(ctx context.Context, userID, txID string) (*models.Transaction, error)
}
