package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/ledgersync/internal/pkg/logger"
)

// Client wraps a NATS connection and its JetStream context
type Client struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// NewClient connects to NATS and prepares JetStream
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name("ledgersync"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Client{conn: conn, js: js}, nil
}

// GetConn returns the underlying connection
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// JetStream returns the JetStream context
func (c *Client) JetStream() jetstream.JetStream {
	return c.js
}

// Publish sends a core NATS message to the specified subject
func (c *Client) Publish(subject string, data []byte) error {
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// PublishJSON marshals v and publishes it as a core NATS message
func (c *Client) PublishJSON(subject string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return c.Publish(subject, data)
}

// PublishMsg stores a message in JetStream and waits for the ack
func (c *Client) PublishMsg(ctx context.Context, msg *nats.Msg) error {
	if _, err := c.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to JetStream: %w", err)
	}
	return nil
}

// Subscribe subscribes to a subject and returns a subscription
func (c *Client) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	sub, err := c.conn.Subscribe(subject, handler)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject: %w", err)
	}
	return sub, nil
}

// EnsureStream creates the stream or updates it in place
func (c *Client) EnsureStream(ctx context.Context, cfg StreamConfig) (jetstream.Stream, error) {
	stream, err := c.js.CreateOrUpdateStream(ctx, cfg.toJetStream())
	if err != nil {
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.Name, err)
	}
	logger.Info("JetStream stream ready",
		logger.String("stream", cfg.Name),
		logger.Any("subjects", cfg.Subjects))
	return stream, nil
}

// EnsureConsumer creates the durable consumer or updates it in place
func (c *Client) EnsureConsumer(ctx context.Context, cfg ConsumerConfig) (jetstream.Consumer, error) {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, cfg.StreamName, cfg.toJetStream())
	if err != nil {
		return nil, fmt.Errorf("failed to ensure consumer %s on %s: %w", cfg.ConsumerName, cfg.StreamName, err)
	}
	return consumer, nil
}

// CheckHealth reports whether the connection is usable
func (c *Client) CheckHealth(ctx context.Context) error {
	if c.conn == nil {
		return errors.New("nats connection not initialised")
	}
	if status := c.conn.Status(); status != nats.CONNECTED {
		return fmt.Errorf("nats connection status: %s", status)
	}
	return nil
}

// Close drains and closes the connection
func (c *Client) Close() {
	if c.conn != nil {
		_ = c.conn.Drain()
		c.conn.Close()
	}
}
