package usecase

import (
	"context"
	"time"

	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
	"github.com/shopspring/decimal"
)

// BalanceGateUC computes balances for admission checks. Reads are not isolated from
// concurrent settlements, so a cap can be exceeded by one in-flight transfer.
type BalanceGateUC struct {
	repo     ledger.LedgerRepo
	location *time.Location
	now      func() time.Time
}

// NewBalanceGate creates a balance gate whose day starts at midnight in cfg's timezone
func NewBalanceGate(cfg *models.Config, repo ledger.LedgerRepo) (*BalanceGateUC, error) {
	policy, err := newTransferPolicy(cfg.Settlement)
	if err != nil {
		return nil, err
	}
	return &BalanceGateUC{
		repo:     repo,
		location: policy.location,
		now:      time.Now,
	}, nil
}

// AvailableBalance sums succeeded and pending transfers, credits minus debits
func (g *BalanceGateUC) AvailableBalance(ctx context.Context, userID string, currency models.Currency) (decimal.Decimal, error) {
	return g.repo.Balance(ctx, userID, currency)
}

// DailySent sums today's succeeded donations sent by userID
func (g *BalanceGateUC) DailySent(ctx context.Context, userID string, currency models.Currency) (decimal.Decimal, error) {
	return g.repo.DailySent(ctx, userID, currency, startOfDay(g.now(), g.location))
}
