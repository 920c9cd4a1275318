package gateway

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/models"
	natspkg "github.com/piresc/ledgersync/internal/pkg/nats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNatsURL string

func TestMain(m *testing.M) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	srv := natsserver.RunServer(&opts)
	testNatsURL = srv.ClientURL()
	code := m.Run()
	srv.Shutdown()
	os.Exit(code)
}

func receive(t *testing.T, nc *natspkg.Client, subject string, publish func()) *nats.Msg {
	t.Helper()
	msgCh := make(chan *nats.Msg, 1)
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) { msgCh <- msg })
	require.NoError(t, err)
	defer sub.Unsubscribe()
	require.NoError(t, nc.GetConn().Flush())

	publish()

	select {
	case msg := <-msgCh:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("no message on %s", subject)
		return nil
	}
}

func TestNoticeGW_NotifySettlement(t *testing.T) {
	nc, err := natspkg.NewClient(testNatsURL)
	require.NoError(t, err)
	defer nc.Close()

	gw := NewNoticeGW(nc, constants.SubjectSettlementNotice)
	notice := models.SettlementNotice{
		Event:    models.EventPaymentReceived,
		UserID:   "bob",
		TxID:     "tx-1",
		Provider: models.ProviderBlockchain,
		Amount:   decimal.RequireFromString("0.5"),
		Currency: models.CurrencyStable,
	}

	msg := receive(t, nc, "ledger.notice.payment_received_donation", func() {
		require.NoError(t, gw.NotifySettlement(context.Background(), notice))
	})

	var got models.SettlementNotice
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "bob", got.UserID)
	assert.True(t, notice.Amount.Equal(got.Amount))
}

func TestAlertGW_Raise(t *testing.T) {
	nc, err := natspkg.NewClient(testNatsURL)
	require.NoError(t, err)
	defer nc.Close()

	gw := NewAlertGW(nc, constants.SubjectOpsAlert)

	msg := receive(t, nc, constants.SubjectOpsAlert, func() {
		require.NoError(t, gw.Raise(context.Background(), models.Alert{
			Severity: models.AlertCritical,
			Source:   constants.AlertSourceWatcher,
			Message:  "removed log in finalized range",
			Fields:   map[string]string{"tx_hash": "0xabc"},
		}))
	})

	var got models.Alert
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, models.AlertCritical, got.Severity)
	assert.Equal(t, "0xabc", got.Fields["tx_hash"])
	assert.False(t, got.RaisedAt.IsZero())
}
