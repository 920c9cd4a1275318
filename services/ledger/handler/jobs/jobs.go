package jobs

import (
	"context"
	"strconv"

	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
)

// JobHandler turns queued jobs into settler calls
type JobHandler struct {
	payTo   ledger.PayToSettler
	onChain ledger.OnChainSettler
	alerter ledger.Alerter
}

// NewJobHandler creates the job handler
func NewJobHandler(payTo ledger.PayToSettler, onChain ledger.OnChainSettler, alerter ledger.Alerter) *JobHandler {
	return &JobHandler{payTo: payTo, onChain: onChain, alerter: alerter}
}

// PayTo settles the internal transfer named by a PayToJob
func (h *JobHandler) PayTo(ctx context.Context, job jobs.Job) error {
	var payload models.PayToJob
	if err := job.Decode(&payload); err != nil {
		return jobs.Permanent(err)
	}
	logger.DebugCtx(ctx, "Settling transfer",
		logger.String("tx_id", payload.TxID),
		logger.Int("attempt", job.Attempt))
	return h.payTo.Settle(ctx, payload.TxID)
}

// SettleChain verifies the receipt behind a SettleChainJob
func (h *JobHandler) SettleChain(ctx context.Context, job jobs.Job) error {
	var payload models.SettleChainJob
	if err := job.Decode(&payload); err != nil {
		return jobs.Permanent(err)
	}
	logger.DebugCtx(ctx, "Checking chain receipt",
		logger.String("tx_id", payload.TxID),
		logger.Int("attempt", job.Attempt))
	return h.onChain.Settle(ctx, payload.TxID)
}

// Exhausted pages an operator about a job that ran out of attempts.
// The transaction stays pending since a late receipt may still settle it.
func (h *JobHandler) Exhausted(ctx context.Context, job jobs.Job, cause error) {
	var payload struct {
		TxID string `json:"tx_id"`
	}
	_ = job.Decode(&payload)

	alert := models.Alert{
		Severity: models.AlertCritical,
		Source:   constants.AlertSourceJobs,
		Message:  job.Name + " job exhausted its attempts",
		Fields: map[string]string{
			"job":      job.Name,
			"job_id":   job.ID,
			"tx_id":    payload.TxID,
			"attempts": strconv.Itoa(job.Attempt),
			"error":    cause.Error(),
		},
	}
	if err := h.alerter.Raise(context.WithoutCancel(ctx), alert); err != nil {
		logger.ErrorCtx(ctx, "Failed to raise exhausted job alert",
			logger.String("job", job.Name),
			logger.String("job_id", job.ID),
			logger.Err(err))
	}
}
