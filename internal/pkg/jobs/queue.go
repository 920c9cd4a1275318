package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/piresc/ledgersync/internal/pkg/constants"
	"github.com/piresc/ledgersync/internal/pkg/logger"
)

// Publisher stores a message in the job stream
type Publisher interface {
	PublishMsg(ctx context.Context, msg *nats.Msg) error
}

// Options control when and how often a job runs.
// Priority has no effect on delivery order; it travels as a header for operators.
type Options struct {
	Delay       time.Duration
	Priority    int
	MaxAttempts int
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// Job is one delivery of an enqueued payload
type Job struct {
	ID          string
	Name        string
	Attempt     int
	MaxAttempts int
	Priority    int
	NotBefore   time.Time
	BackoffBase time.Duration
	BackoffMax  time.Duration
	Payload     []byte
}

// Decode unmarshals the job payload
func (j Job) Decode(v interface{}) error {
	if err := json.Unmarshal(j.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s job %s: %w", j.Name, j.ID, err)
	}
	return nil
}

// Subject returns the stream subject for a job name
func Subject(name string) string {
	return constants.SubjectJobPrefix + name
}

// Queue enqueues jobs on the JetStream work queue
type Queue struct {
	pub      Publisher
	defaults Options
	now      func() time.Time
	newID    func() string
}

// NewQueue creates a queue. Zero fields of a job's Options fall back to defaults.
func NewQueue(pub Publisher, defaults Options) *Queue {
	if defaults.MaxAttempts < 1 {
		defaults.MaxAttempts = 1
	}
	return &Queue{
		pub:      pub,
		defaults: defaults,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Enqueue publishes payload as a new job and returns its id
func (q *Queue) Enqueue(ctx context.Context, name string, payload interface{}, opts Options) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s job: %w", name, err)
	}

	opts = q.withDefaults(opts)
	job := Job{
		ID:          q.newID(),
		Name:        name,
		Attempt:     1,
		MaxAttempts: opts.MaxAttempts,
		Priority:    opts.Priority,
		BackoffBase: opts.BackoffBase,
		BackoffMax:  opts.BackoffMax,
		Payload:     data,
	}
	if opts.Delay > 0 {
		job.NotBefore = q.now().Add(opts.Delay)
	}

	if err := q.publish(ctx, job); err != nil {
		return "", err
	}

	logger.InfoCtx(ctx, "Job enqueued",
		logger.String("job", name),
		logger.String("job_id", job.ID),
		logger.Duration("delay", opts.Delay),
		logger.Int("max_attempts", job.MaxAttempts))
	return job.ID, nil
}

// requeue schedules the next attempt of job after delay
func (q *Queue) requeue(ctx context.Context, job Job, delay time.Duration) error {
	job.Attempt++
	job.NotBefore = q.now().Add(delay)
	return q.publish(ctx, job)
}

func (q *Queue) publish(ctx context.Context, job Job) error {
	msg := nats.NewMsg(Subject(job.Name))
	msg.Data = job.Payload
	msg.Header.Set(nats.MsgIdHdr, fmt.Sprintf("%s:%d", job.ID, job.Attempt))
	msg.Header.Set(constants.HeaderJobID, job.ID)
	msg.Header.Set(constants.HeaderJobAttempt, strconv.Itoa(job.Attempt))
	msg.Header.Set(constants.HeaderJobMaxAttempts, strconv.Itoa(job.MaxAttempts))
	msg.Header.Set(constants.HeaderJobPriority, strconv.Itoa(job.Priority))
	msg.Header.Set(constants.HeaderJobBackoffBase, job.BackoffBase.String())
	msg.Header.Set(constants.HeaderJobBackoffMax, job.BackoffMax.String())
	if !job.NotBefore.IsZero() {
		msg.Header.Set(constants.HeaderJobNotBefore, strconv.FormatInt(job.NotBefore.UnixMilli(), 10))
	}

	if err := q.pub.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s job %s: %w", job.Name, job.ID, err)
	}
	return nil
}

func (q *Queue) withDefaults(opts Options) Options {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = q.defaults.MaxAttempts
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = q.defaults.BackoffBase
	}
	if opts.BackoffMax <= 0 {
		opts.BackoffMax = q.defaults.BackoffMax
	}
	if opts.Delay <= 0 {
		opts.Delay = q.defaults.Delay
	}
	if opts.Priority == 0 {
		opts.Priority = q.defaults.Priority
	}
	return opts
}

// parseJob rebuilds a Job from message headers
func parseJob(name string, msg Message) (Job, error) {
	h := msg.Headers()
	job := Job{Name: name, Payload: msg.Data()}

	job.ID = h.Get(constants.HeaderJobID)
	if job.ID == "" {
		return job, fmt.Errorf("missing %s header", constants.HeaderJobID)
	}

	var err error
	if job.Attempt, err = strconv.Atoi(h.Get(constants.HeaderJobAttempt)); err != nil || job.Attempt < 1 {
		return job, fmt.Errorf("invalid %s header %q", constants.HeaderJobAttempt, h.Get(constants.HeaderJobAttempt))
	}
	if job.MaxAttempts, err = strconv.Atoi(h.Get(constants.HeaderJobMaxAttempts)); err != nil || job.MaxAttempts < 1 {
		return job, fmt.Errorf("invalid %s header %q", constants.HeaderJobMaxAttempts, h.Get(constants.HeaderJobMaxAttempts))
	}
	if v := h.Get(constants.HeaderJobPriority); v != "" {
		job.Priority, _ = strconv.Atoi(v)
	}
	if v := h.Get(constants.HeaderJobNotBefore); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return job, fmt.Errorf("invalid %s header %q", constants.HeaderJobNotBefore, v)
		}
		job.NotBefore = time.UnixMilli(ms)
	}
	if v := h.Get(constants.HeaderJobBackoffBase); v != "" {
		if job.BackoffBase, err = time.ParseDuration(v); err != nil {
			return job, fmt.Errorf("invalid %s header %q", constants.HeaderJobBackoffBase, v)
		}
	}
	if v := h.Get(constants.HeaderJobBackoffMax); v != "" {
		if job.BackoffMax, err = time.ParseDuration(v); err != nil {
			return job, fmt.Errorf("invalid %s header %q", constants.HeaderJobBackoffMax, v)
		}
	}
	return job, nil
}
