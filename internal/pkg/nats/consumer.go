package nats

import (
	"context"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/ledgersync/internal/pkg/logger"
)

// JetStreamMessageHandler processes one message and is responsible for acking it
type JetStreamMessageHandler func(msg jetstream.Msg)

// Consumer pulls messages from a durable consumer and dispatches them with bounded concurrency
type Consumer struct {
	consumer    jetstream.Consumer
	consumeCtx  jetstream.ConsumeContext
	concurrency int
	sem         chan struct{}
	wg          sync.WaitGroup
	mu          sync.Mutex
	stopped     bool
}

// NewJetStreamConsumer ensures the durable consumer exists and wraps it
func NewJetStreamConsumer(ctx context.Context, client *Client, config ConsumerConfig, concurrency int) (*Consumer, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	if concurrency < 1 {
		concurrency = 1
	}

	consumer, err := client.EnsureConsumer(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		consumer:    consumer,
		concurrency: concurrency,
		sem:         make(chan struct{}, concurrency),
	}, nil
}

// Start begins consuming. At most concurrency handlers run at once.
func (c *Consumer) Start(handler JetStreamMessageHandler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.consumeCtx != nil {
		return fmt.Errorf("consumer is already running")
	}

	c.stopped = false
	cc, err := c.consumer.Consume(func(msg jetstream.Msg) {
		c.sem <- struct{}{}
		// wg.Add is serialized with Stop so Wait never races a new handler
		c.mu.Lock()
		if c.stopped {
			c.mu.Unlock()
			<-c.sem
			_ = msg.Nak()
			return
		}
		c.wg.Add(1)
		c.mu.Unlock()
		go func() {
			defer func() {
				<-c.sem
				c.wg.Done()
				if r := recover(); r != nil {
					logger.Error("Panic while handling JetStream message",
						logger.String("subject", msg.Subject()),
						logger.Any("panic", r))
					_ = msg.Nak()
				}
			}()
			handler(msg)
		}()
	}, jetstream.PullMaxMessages(c.concurrency))
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.consumeCtx = cc
	return nil
}

// Stop stops fetching and waits for in-flight handlers. Messages handed over
// after Stop are nak'd for redelivery instead of dispatched.
func (c *Consumer) Stop() {
	c.mu.Lock()
	c.stopped = true
	if c.consumeCtx != nil {
		c.consumeCtx.Stop()
		c.consumeCtx = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// GetPendingMessages returns the number of messages not yet delivered
func (c *Consumer) GetPendingMessages(ctx context.Context) (uint64, error) {
	info, err := c.consumer.Info(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get consumer info: %w", err)
	}
	return info.NumPending, nil
}
