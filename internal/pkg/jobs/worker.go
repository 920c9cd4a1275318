package jobs

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/metrics"
	natspkg "github.com/piresc/ledgersync/internal/pkg/nats"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/internal/pkg/requestcontext"
	"github.com/piresc/ledgersync/internal/pkg/retry"
)

// Message is the part of jetstream.Msg the worker needs
type Message interface {
	Data() []byte
	Headers() nats.Header
	Subject() string
	Ack() error
	NakWithDelay(delay time.Duration) error
	Term() error
}

// HandlerFunc processes one job. Return Permanent to discard the job.
type HandlerFunc func(ctx context.Context, job Job) error

// ExhaustedFunc is called once a job has failed its last attempt
type ExhaustedFunc func(ctx context.Context, job Job, err error)

// Outcomes reported per delivery
const (
	OutcomeAcked     = "acked"
	OutcomeRetried   = "retried"
	OutcomeDeferred  = "deferred"
	OutcomeDiscarded = "discarded"
	OutcomeExhausted = "exhausted"
	OutcomeMalformed = "malformed"
)

// Worker runs a handler for one job name
type Worker struct {
	name        string
	queue       *Queue
	handler     HandlerFunc
	onExhausted ExhaustedFunc
	nrApp       *newrelic.Application
	now         func() time.Time
}

// WorkerOption configures a Worker
type WorkerOption func(*Worker)

// WithExhaustedFunc sets the callback for jobs that ran out of attempts
func WithExhaustedFunc(fn ExhaustedFunc) WorkerOption {
	return func(w *Worker) { w.onExhausted = fn }
}

// WithNewRelic records each job as a background transaction
func WithNewRelic(app *newrelic.Application) WorkerOption {
	return func(w *Worker) { w.nrApp = app }
}

// NewWorker creates a worker for name. Retries are re-enqueued through queue.
func NewWorker(name string, queue *Queue, handler HandlerFunc, opts ...WorkerOption) *Worker {
	w := &Worker{
		name:    name,
		queue:   queue,
		handler: handler,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the job name the worker handles
func (w *Worker) Name() string {
	return w.name
}

// MessageHandler adapts the worker to a JetStream consumer
func (w *Worker) MessageHandler(ctx context.Context) natspkg.JetStreamMessageHandler {
	return func(msg jetstream.Msg) {
		w.Handle(ctx, msg)
	}
}

// Handle processes one delivery and settles it with the broker
func (w *Worker) Handle(ctx context.Context, msg Message) string {
	start := w.now()
	outcome := w.handle(ctx, msg)
	metrics.JobProcessed(w.name, outcome, w.now().Sub(start).Seconds())
	return outcome
}

func (w *Worker) handle(ctx context.Context, msg Message) string {
	job, err := parseJob(w.name, msg)
	if err != nil {
		logger.Error("Discarding malformed job message",
			logger.String("job", w.name),
			logger.String("subject", msg.Subject()),
			logger.Err(err))
		w.settle(msg.Term(), job)
		return OutcomeMalformed
	}

	if wait := job.NotBefore.Sub(w.now()); wait > 0 {
		w.settle(msg.NakWithDelay(wait), job)
		return OutcomeDeferred
	}

	ctx, txn, end := nrpkg.StartBackgroundTransaction(ctx, w.nrApp, "job/"+w.name)
	defer end()
	nrpkg.AddTransactionAttribute(txn, "job.id", job.ID)
	nrpkg.AddTransactionAttribute(txn, "job.attempt", job.Attempt)
	ctx = requestcontext.WithJob(ctx, requestcontext.Job{Name: w.name, ID: job.ID, Attempt: job.Attempt})

	err = w.handler(ctx, job)
	if err == nil {
		w.settle(msg.Ack(), job)
		return OutcomeAcked
	}
	nrpkg.NoticeTransactionError(txn, err)

	fields := []logger.Field{
		logger.Int("max_attempts", job.MaxAttempts),
		logger.Err(err),
	}

	if IsPermanent(err) {
		logger.WarnCtx(ctx, "Job discarded", fields...)
		w.settle(msg.Term(), job)
		return OutcomeDiscarded
	}

	if job.Attempt >= job.MaxAttempts {
		logger.ErrorCtx(ctx, "Job failed on its last attempt", fields...)
		if w.onExhausted != nil {
			w.onExhausted(ctx, job, err)
		}
		w.settle(msg.Term(), job)
		return OutcomeExhausted
	}

	delay := retry.Backoff(job.BackoffBase, job.BackoffMax, 2, job.Attempt-1)
	logger.WarnCtx(ctx, "Job failed, scheduling retry", append(fields, logger.Duration("retry_in", delay))...)
	if err := w.queue.requeue(ctx, job, delay); err != nil {
		logger.ErrorCtx(ctx, "Failed to requeue job, leaving it to redelivery", logger.Err(err))
		w.settle(msg.NakWithDelay(delay), job)
		return OutcomeRetried
	}
	w.settle(msg.Ack(), job)
	return OutcomeRetried
}

func (w *Worker) settle(err error, job Job) {
	if err != nil {
		logger.Warn("Failed to settle job message",
			logger.String("job", w.name),
			logger.String("job_id", job.ID),
			logger.Err(err))
	}
}
