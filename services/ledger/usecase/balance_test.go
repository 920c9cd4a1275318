package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceGate_DailySentStartsAtLocalMidnight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockLedgerRepo(ctrl)
	gate, err := NewBalanceGate(&models.Config{Settlement: models.SettlementConfig{Timezone: "Asia/Hong_Kong"}}, repo)
	require.NoError(t, err)
	// 04:00 on May 2nd in Hong Kong
	gate.now = func() time.Time { return time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC) }

	wantSince := time.Date(2024, 5, 1, 16, 0, 0, 0, time.UTC)
	repo.EXPECT().
		DailySent(gomock.Any(), "u1", models.CurrencyFiat, gomock.AssignableToTypeOf(time.Time{})).
		DoAndReturn(func(_ context.Context, _ string, _ models.Currency, since time.Time) (decimal.Decimal, error) {
			assert.True(t, since.Equal(wantSince), since.String())
			return decimal.NewFromInt(42), nil
		})

	sent, err := gate.DailySent(context.Background(), "u1", models.CurrencyFiat)
	require.NoError(t, err)
	assert.True(t, sent.Equal(decimal.NewFromInt(42)))
}

func TestBalanceGate_AvailableBalanceCountsPending(t *testing.T) {
	f := newFixture()
	f.credit(t, f.curator.ID, "100")
	f.pendingTransfer(t, f.curator.ID, f.creator.ID, "30")
	f.pendingTransfer(t, f.creator.ID, f.curator.ID, "5")

	gate, err := NewBalanceGate(f.cfg, f.store)
	require.NoError(t, err)

	balance, err := gate.AvailableBalance(context.Background(), f.curator.ID, models.CurrencyFiat)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(75)), balance.String())

	balance, err = gate.AvailableBalance(context.Background(), f.creator.ID, models.CurrencyFiat)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(25)), balance.String())
}
