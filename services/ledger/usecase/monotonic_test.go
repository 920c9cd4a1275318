package usecase

import (
	"context"
	"testing"

	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every settlement path leaves a closed blockchain transaction untouched
func TestClosedTransactionsStayClosed(t *testing.T) {
	for i, state := range []models.TransactionState{
		models.TransactionStateSucceeded,
		models.TransactionStateFailed,
		models.TransactionStateCanceled,
	} {
		t.Run(string(state), func(t *testing.T) {
			f := newFixture()
			ctx := context.Background()
			hash := hashOf(i + 1)
			tx, chainTx := f.submitted(t, hash, "2")
			_, err := f.store.SettleChainTransfer(ctx, models.ChainSettlement{
				TxID: tx.ID, ChainTxID: chainTx.ID, TxState: state, ChainState: models.ChainTxStateSucceeded,
			})
			require.NoError(t, err)
			before := f.store.tx(tx.ID)

			// a differing amount would be corrected on a pending row
			_, err = f.reconciler().Reconcile(ctx, curationLog(hash, 300, 0, 9000000))
			require.NoError(t, err)

			f.chain.receipts[hash] = receiptWith(hash, true)
			require.NoError(t, f.onChainSettler().Settle(ctx, tx.ID))

			_, err = f.store.SettleTransaction(ctx, tx.ID, models.TransactionStatePending, "")
			require.NoError(t, err)

			after := f.store.tx(tx.ID)
			assert.Equal(t, before.State, after.State)
			assert.True(t, before.Amount.Equal(after.Amount))
			assert.Equal(t, models.ChainTxStateSucceeded, f.store.chainTx(chainTx.ID).State)
			assert.Empty(t, f.rec.notices)
		})
	}
}
