package jobs

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetGlobalLogger(logger.NewNopLogger())
}

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*nats.Msg
	err  error
}

func (p *recordingPublisher) PublishMsg(_ context.Context, msg *nats.Msg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) last() *nats.Msg {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.msgs[len(p.msgs)-1]
}

// fakeMessage records how the worker settled a delivery
type fakeMessage struct {
	subject string
	data    []byte
	header  nats.Header

	acked    bool
	termed   bool
	nakDelay time.Duration
}

func newFakeMessage(m *nats.Msg) *fakeMessage {
	return &fakeMessage{subject: m.Subject, data: m.Data, header: m.Header}
}

func (m *fakeMessage) Data() []byte         { return m.data }
func (m *fakeMessage) Headers() nats.Header { return m.header }
func (m *fakeMessage) Subject() string      { return m.subject }
func (m *fakeMessage) Ack() error           { m.acked = true; return nil }
func (m *fakeMessage) Term() error          { m.termed = true; return nil }
func (m *fakeMessage) NakWithDelay(d time.Duration) error {
	m.nakDelay = d
	return nil
}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestQueue(pub Publisher) *Queue {
	q := NewQueue(pub, Options{MaxAttempts: 3, BackoffBase: time.Second, BackoffMax: time.Minute})
	q.now = func() time.Time { return epoch }
	q.newID = func() string { return "job-1" }
	return q
}

func TestPermanentAndTransient(t *testing.T) {
	base := errors.New("boom")

	assert.True(t, IsPermanent(Permanent(base)))
	assert.False(t, IsPermanent(Transient(base)))
	assert.False(t, IsPermanent(base))
	assert.ErrorIs(t, Permanent(base), base)
	assert.Nil(t, Permanent(nil))
	assert.Nil(t, Transient(nil))
}

func TestQueue_EnqueueHeaders(t *testing.T) {
	pub := &recordingPublisher{}
	q := newTestQueue(pub)

	id, err := q.Enqueue(context.Background(), constants.JobSettleChain, map[string]string{"tx_id": "tx-9"}, Options{
		Delay:       5 * time.Second,
		MaxAttempts: 8,
		BackoffBase: 10 * time.Second,
		Priority:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)

	msg := pub.last()
	assert.Equal(t, "ledger.jobs.settle_chain", msg.Subject)
	assert.JSONEq(t, `{"tx_id":"tx-9"}`, string(msg.Data))
	assert.Equal(t, "job-1", msg.Header.Get(constants.HeaderJobID))
	assert.Equal(t, "job-1:1", msg.Header.Get(nats.MsgIdHdr))
	assert.Equal(t, "1", msg.Header.Get(constants.HeaderJobAttempt))
	assert.Equal(t, "8", msg.Header.Get(constants.HeaderJobMaxAttempts))
	assert.Equal(t, "2", msg.Header.Get(constants.HeaderJobPriority))
	assert.Equal(t, "10s", msg.Header.Get(constants.HeaderJobBackoffBase))
	assert.Equal(t, "1m0s", msg.Header.Get(constants.HeaderJobBackoffMax))
	assert.Equal(t, strconv.FormatInt(epoch.Add(5*time.Second).UnixMilli(), 10), msg.Header.Get(constants.HeaderJobNotBefore))
}

func TestQueue_EnqueueUsesDefaults(t *testing.T) {
	pub := &recordingPublisher{}
	q := newTestQueue(pub)

	_, err := q.Enqueue(context.Background(), constants.JobPayTo, map[string]string{"tx_id": "tx-1"}, Options{})
	require.NoError(t, err)

	msg := pub.last()
	assert.Equal(t, "3", msg.Header.Get(constants.HeaderJobMaxAttempts))
	assert.Equal(t, "1s", msg.Header.Get(constants.HeaderJobBackoffBase))
	assert.Empty(t, msg.Header.Get(constants.HeaderJobNotBefore))
}

func TestQueue_EnqueuePublishError(t *testing.T) {
	q := newTestQueue(&recordingPublisher{err: errors.New("no responders")})
	_, err := q.Enqueue(context.Background(), constants.JobPayTo, struct{}{}, Options{})
	assert.ErrorContains(t, err, "failed to publish pay_to job")
}

func enqueueOne(t *testing.T, q *Queue, pub *recordingPublisher, opts Options) *fakeMessage {
	t.Helper()
	_, err := q.Enqueue(context.Background(), constants.JobPayTo, map[string]string{"tx_id": "tx-1"}, opts)
	require.NoError(t, err)
	return newFakeMessage(pub.last())
}

func TestWorker_Outcomes(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		wantOutcome string
		wantAck     bool
		wantTerm    bool
		wantRepub   bool
	}{
		{name: "success acks", handlerErr: nil, wantOutcome: OutcomeAcked, wantAck: true},
		{name: "permanent terminates", handlerErr: Permanent(errors.New("tx not found")), wantOutcome: OutcomeDiscarded, wantTerm: true},
		{name: "transient retries", handlerErr: Transient(errors.New("receipt not found")), wantOutcome: OutcomeRetried, wantAck: true, wantRepub: true},
		{name: "untagged retries", handlerErr: errors.New("rpc timeout"), wantOutcome: OutcomeRetried, wantAck: true, wantRepub: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &recordingPublisher{}
			q := newTestQueue(pub)
			msg := enqueueOne(t, q, pub, Options{})

			var got Job
			w := NewWorker(constants.JobPayTo, q, func(_ context.Context, job Job) error {
				got = job
				return tt.handlerErr
			})
			w.now = func() time.Time { return epoch }

			assert.Equal(t, tt.wantOutcome, w.Handle(context.Background(), msg))
			assert.Equal(t, tt.wantAck, msg.acked)
			assert.Equal(t, tt.wantTerm, msg.termed)
			assert.Equal(t, "job-1", got.ID)
			assert.Equal(t, 1, got.Attempt)

			if tt.wantRepub {
				require.Len(t, pub.msgs, 2)
				retry := pub.last()
				assert.Equal(t, "2", retry.Header.Get(constants.HeaderJobAttempt))
				assert.Equal(t, "job-1", retry.Header.Get(constants.HeaderJobID))
				assert.Equal(t, strconv.FormatInt(epoch.Add(time.Second).UnixMilli(), 10), retry.Header.Get(constants.HeaderJobNotBefore))
			} else {
				assert.Len(t, pub.msgs, 1)
			}
		})
	}
}

func TestWorker_DefersEarlyDelivery(t *testing.T) {
	pub := &recordingPublisher{}
	q := newTestQueue(pub)
	msg := enqueueOne(t, q, pub, Options{Delay: 5 * time.Second})

	called := false
	w := NewWorker(constants.JobPayTo, q, func(context.Context, Job) error { called = true; return nil })
	w.now = func() time.Time { return epoch.Add(2 * time.Second) }

	assert.Equal(t, OutcomeDeferred, w.Handle(context.Background(), msg))
	assert.False(t, called)
	assert.Equal(t, 3*time.Second, msg.nakDelay)
}

func TestWorker_ExhaustedAlertsAndTerminates(t *testing.T) {
	pub := &recordingPublisher{}
	q := newTestQueue(pub)
	msg := enqueueOne(t, q, pub, Options{MaxAttempts: 1})

	var exhausted Job
	var exhaustedErr error
	w := NewWorker(constants.JobPayTo, q,
		func(context.Context, Job) error { return errors.New("still failing") },
		WithExhaustedFunc(func(_ context.Context, job Job, err error) {
			exhausted = job
			exhaustedErr = err
		}))
	w.now = func() time.Time { return epoch }

	assert.Equal(t, OutcomeExhausted, w.Handle(context.Background(), msg))
	assert.True(t, msg.termed)
	assert.Equal(t, "job-1", exhausted.ID)
	assert.EqualError(t, exhaustedErr, "still failing")
	assert.Len(t, pub.msgs, 1)
}

func TestWorker_RequeueFailureNaks(t *testing.T) {
	pub := &recordingPublisher{}
	q := newTestQueue(pub)
	msg := enqueueOne(t, q, pub, Options{})
	pub.err = errors.New("stream unavailable")

	w := NewWorker(constants.JobPayTo, q, func(context.Context, Job) error { return errors.New("rpc timeout") })
	w.now = func() time.Time { return epoch }

	assert.Equal(t, OutcomeRetried, w.Handle(context.Background(), msg))
	assert.False(t, msg.acked)
	assert.Equal(t, time.Second, msg.nakDelay)
}

func TestWorker_MalformedMessage(t *testing.T) {
	msg := &fakeMessage{subject: "ledger.jobs.pay_to", data: []byte("{}"), header: nats.Header{}}
	w := NewWorker(constants.JobPayTo, newTestQueue(&recordingPublisher{}), func(context.Context, Job) error { return nil })

	assert.Equal(t, OutcomeMalformed, w.Handle(context.Background(), msg))
	assert.True(t, msg.termed)
}

func TestJob_Decode(t *testing.T) {
	var payload struct {
		TxID string `json:"tx_id"`
	}
	job := Job{ID: "j", Name: constants.JobPayTo, Payload: []byte(`{"tx_id":"tx-7"}`)}
	require.NoError(t, job.Decode(&payload))
	assert.Equal(t, "tx-7", payload.TxID)

	job.Payload = []byte("nope")
	assert.ErrorContains(t, job.Decode(&payload), "failed to decode pay_to job j")
}
