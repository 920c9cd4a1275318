package nats

import (
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// StreamConfig describes a JetStream stream
type StreamConfig struct {
	Name      string
	Subjects  []string
	Retention jetstream.RetentionPolicy
	Storage   jetstream.StorageType
	Replicas  int
	MaxAge    time.Duration
	MaxBytes  int64
	MaxMsgs   int64
	Discard   jetstream.DiscardPolicy
}

func (c StreamConfig) toJetStream() jetstream.StreamConfig {
	return jetstream.StreamConfig{
		Name:      c.Name,
		Subjects:  c.Subjects,
		Retention: c.Retention,
		Storage:   c.Storage,
		Replicas:  c.Replicas,
		MaxAge:    c.MaxAge,
		MaxBytes:  c.MaxBytes,
		MaxMsgs:   c.MaxMsgs,
		Discard:   c.Discard,
	}
}

// ConsumerConfig describes a durable pull consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	FilterSubject string
	DeliverPolicy jetstream.DeliverPolicy
	AckPolicy     jetstream.AckPolicy
	AckWait       time.Duration
	MaxDeliver    int
	MaxAckPending int
}

func (c ConsumerConfig) toJetStream() jetstream.ConsumerConfig {
	return jetstream.ConsumerConfig{
		Durable:       c.ConsumerName,
		FilterSubject: c.FilterSubject,
		DeliverPolicy: c.DeliverPolicy,
		AckPolicy:     c.AckPolicy,
		AckWait:       c.AckWait,
		MaxDeliver:    c.MaxDeliver,
		MaxAckPending: c.MaxAckPending,
	}
}

// StreamConfigBuilder helps build stream configurations
type StreamConfigBuilder struct {
	config StreamConfig
}

// NewStreamConfigBuilder starts from a work-queue stream kept on disk for a week
func NewStreamConfigBuilder(name string) *StreamConfigBuilder {
	return &StreamConfigBuilder{
		config: StreamConfig{
			Name:      name,
			Retention: jetstream.WorkQueuePolicy,
			Storage:   jetstream.FileStorage,
			Replicas:  1,
			MaxAge:    7 * 24 * time.Hour,
			MaxBytes:  512 * 1024 * 1024,
			MaxMsgs:   -1,
			Discard:   jetstream.DiscardOld,
		},
	}
}

func (b *StreamConfigBuilder) WithSubjects(subjects ...string) *StreamConfigBuilder {
	b.config.Subjects = subjects
	return b
}

func (b *StreamConfigBuilder) WithStorage(storage jetstream.StorageType) *StreamConfigBuilder {
	b.config.Storage = storage
	return b
}

// Build returns the stream configuration
func (b *StreamConfigBuilder) Build() StreamConfig {
	return b.config
}

// ConsumerConfigBuilder helps build consumer configurations
type ConsumerConfigBuilder struct {
	config ConsumerConfig
}

// NewConsumerConfigBuilder starts from an explicit-ack durable consumer.
// Redelivery is driven by the job headers, so MaxDeliver stays unlimited.
func NewConsumerConfigBuilder(streamName, consumerName string) *ConsumerConfigBuilder {
	return &ConsumerConfigBuilder{
		config: ConsumerConfig{
			StreamName:    streamName,
			ConsumerName:  consumerName,
			DeliverPolicy: jetstream.DeliverAllPolicy,
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       2 * time.Minute,
			MaxDeliver:    -1,
			MaxAckPending: 256,
		},
	}
}

func (b *ConsumerConfigBuilder) WithSubject(subject string) *ConsumerConfigBuilder {
	b.config.FilterSubject = subject
	return b
}

func (b *ConsumerConfigBuilder) WithMaxAckPending(maxAckPending int) *ConsumerConfigBuilder {
	b.config.MaxAckPending = maxAckPending
	return b
}

// Build returns the consumer configuration
func (b *ConsumerConfigBuilder) Build() ConsumerConfig {
	return b.config
}
