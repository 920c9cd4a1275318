package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/piresc/ledgersync/internal/pkg/models"
	natspkg "github.com/piresc/ledgersync/internal/pkg/nats"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/services/ledger"
)

// NoticeGW publishes settlement notices on ledger.notice.{event}
type NoticeGW struct {
	natsClient *natspkg.Client
	subject    string
}

// NewNoticeGW creates a new notice gateway
func NewNoticeGW(client *natspkg.Client, subject string) ledger.Notifier {
	return &NoticeGW{
		natsClient: client,
		subject:    subject,
	}
}

// NotifySettlement publishes one notice
func (g *NoticeGW) NotifySettlement(ctx context.Context, notice models.SettlementNotice) error {
	data, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("failed to marshal settlement notice: %w", err)
	}
	return nrpkg.WithSegment(ctx, "NATS.PublishNotice", func() error {
		return g.natsClient.Publish(g.subject+"."+string(notice.Event), data)
	})
}

// AlertGW publishes operator alerts
type AlertGW struct {
	natsClient *natspkg.Client
	subject    string
	now        func() time.Time
}

// NewAlertGW creates a new alert gateway
func NewAlertGW(client *natspkg.Client, subject string) ledger.Alerter {
	return &AlertGW{
		natsClient: client,
		subject:    subject,
		now:        time.Now,
	}
}

// Raise publishes alert, stamping it when RaisedAt is unset
func (g *AlertGW) Raise(ctx context.Context, alert models.Alert) error {
	if alert.RaisedAt.IsZero() {
		alert.RaisedAt = g.now()
	}
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	return nrpkg.WithSegment(ctx, "NATS.PublishAlert", func() error {
		return g.natsClient.Publish(g.subject, data)
	})
}
