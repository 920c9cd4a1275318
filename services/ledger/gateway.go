package ledger

import (
	"context"
	"time"

	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/ledgersync/services/ledger Notifier,CacheInvalidator,Alerter,Locker,ChainClient,JobQueue

// Notifier publishes settlement notices. Failures never roll back ledger state.
type Notifier interface {
	NotifySettlement(ctx context.Context, notice models.SettlementNotice) error
}

// CacheInvalidator drops response caches tagged with the given nodes
type CacheInvalidator interface {
	Invalidate(ctx context.Context, nodes []models.CacheNode) error
}

// Alerter pages operators
type Alerter interface {
	Raise(ctx context.Context, alert models.Alert) error
}

// Locker is a lease shared by every replica
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, key, token string) error
}

// ChainClient reads the curation contract
type ChainClient interface {
	ChainID() int64
	ContractAddress() string
	CurrentHeight(ctx context.Context) (uint64, error)
	FetchLogs(ctx context.Context, from, to uint64) ([]models.CurationLog, error)
	FetchReceipt(ctx context.Context, txHash string) (*models.ChainReceipt, error)
}

// JobQueue enqueues background jobs
type JobQueue interface {
	Enqueue(ctx context.Context, name string, payload interface{}, opts jobs.Options) (string, error)
}
