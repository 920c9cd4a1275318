package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetGlobalLogger(logger.NewNopLogger())
}

func TestPayTo(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	payTo := mocks.NewMockPayToSettler(ctrl)
	h := NewJobHandler(payTo, mocks.NewMockOnChainSettler(ctrl), mocks.NewMockAlerter(ctrl))

	payTo.EXPECT().Settle(gomock.Any(), "tx-1").Return(nil)
	require.NoError(t, h.PayTo(context.Background(), jobs.Job{Name: constants.JobPayTo, Attempt: 1, Payload: []byte(`{"tx_id":"tx-1"}`)}))

	err := h.PayTo(context.Background(), jobs.Job{Name: constants.JobPayTo, Payload: []byte(`not json`)})
	assert.True(t, jobs.IsPermanent(err))
}

func TestSettleChain_PassesErrorsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	onChain := mocks.NewMockOnChainSettler(ctrl)
	h := NewJobHandler(mocks.NewMockPayToSettler(ctrl), onChain, mocks.NewMockAlerter(ctrl))

	notMined := jobs.Transient(errors.New("not mined"))
	onChain.EXPECT().Settle(gomock.Any(), "tx-2").Return(notMined)

	err := h.SettleChain(context.Background(), jobs.Job{Name: constants.JobSettleChain, Payload: []byte(`{"tx_id":"tx-2"}`)})
	assert.ErrorIs(t, err, notMined)
	assert.False(t, jobs.IsPermanent(err))
}

func TestExhaustedRaisesAlert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alerter := mocks.NewMockAlerter(ctrl)
	h := NewJobHandler(mocks.NewMockPayToSettler(ctrl), mocks.NewMockOnChainSettler(ctrl), alerter)

	alerter.EXPECT().Raise(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, a models.Alert) error {
		assert.Equal(t, models.AlertCritical, a.Severity)
		assert.Equal(t, constants.AlertSourceJobs, a.Source)
		assert.Equal(t, "tx-3", a.Fields["tx_id"])
		assert.Equal(t, "8", a.Fields["attempts"])
		assert.Equal(t, "not mined", a.Fields["error"])
		return nil
	})

	h.Exhausted(context.Background(), jobs.Job{
		ID:      "job-3",
		Name:    constants.JobSettleChain,
		Attempt: 8,
		Payload: []byte(`{"tx_id":"tx-3"}`),
	}, errors.New("not mined"))
}
