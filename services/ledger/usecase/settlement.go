package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
	"github.com/shopspring/decimal"
)

// transferPolicy holds the parsed off-chain limits
type transferPolicy struct {
	perTransferCap *decimal.Decimal
	dailyCap       *decimal.Decimal
	location       *time.Location
}

func newTransferPolicy(cfg models.SettlementConfig) (transferPolicy, error) {
	var p transferPolicy
	var err error

	if p.perTransferCap, err = parseCap(cfg.PerTransferCap); err != nil {
		return p, fmt.Errorf("invalid per-transfer cap: %w", err)
	}
	if p.dailyCap, err = parseCap(cfg.DailyCap); err != nil {
		return p, fmt.Errorf("invalid daily cap: %w", err)
	}

	p.location = time.UTC
	if cfg.Timezone != "" {
		if p.location, err = time.LoadLocation(cfg.Timezone); err != nil {
			return p, fmt.Errorf("invalid settlement timezone %q: %w", cfg.Timezone, err)
		}
	}
	return p, nil
}

// parseCap returns nil for an empty cap, which disables the check
func parseCap(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("cap %s is negative", s)
	}
	return &d, nil
}

// startOfDay returns local midnight of t in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// effects fires the fire-and-forget work that follows a successful settlement.
// Failures are logged and never returned.
type effects struct {
	notifier ledger.Notifier
	cache    ledger.CacheInvalidator
	now      func() time.Time
}

func newEffects(notifier ledger.Notifier, cache ledger.CacheInvalidator) *effects {
	return &effects{notifier: notifier, cache: cache, now: time.Now}
}

// settled notifies contactable parties and drops caches built from the transfer
func (e *effects) settled(ctx context.Context, tx *models.Transaction, sender, recipient *models.User) {
	settledAt := e.now()
	notify := func(user *models.User, event models.SettlementEvent) {
		if !user.Contactable() {
			return
		}
		notice := models.SettlementNotice{
			Event:      event,
			UserID:     user.ID,
			TxID:       tx.ID,
			Provider:   tx.Provider,
			Amount:     tx.Amount,
			Currency:   tx.Currency,
			TargetID:   tx.TargetID,
			TargetType: tx.TargetType,
			SettledAt:  settledAt,
		}
		if err := e.notifier.NotifySettlement(ctx, notice); err != nil {
			logger.WarnCtx(ctx, "Failed to send settlement notice",
				logger.String("tx_id", tx.ID),
				logger.String("user_id", user.ID),
				logger.String("event", string(event)),
				logger.Err(err))
		}
	}
	notify(sender, models.EventPaymentDonated)
	notify(recipient, models.EventPaymentReceived)

	var nodes []models.CacheNode
	if tx.SenderID != "" {
		nodes = append(nodes, models.CacheNode{Type: models.CacheNodeUser, ID: tx.SenderID})
	}
	if tx.RecipientID != "" {
		nodes = append(nodes, models.CacheNode{Type: models.CacheNodeUser, ID: tx.RecipientID})
	}
	if tx.TargetID != "" && tx.TargetType == models.TargetTypeArticle {
		nodes = append(nodes, models.CacheNode{Type: models.CacheNodeArticle, ID: tx.TargetID})
	}
	if len(nodes) == 0 {
		return
	}
	if err := e.cache.Invalidate(ctx, nodes); err != nil {
		logger.WarnCtx(ctx, "Failed to invalidate response caches",
			logger.String("tx_id", tx.ID),
			logger.Err(err))
	}
}
