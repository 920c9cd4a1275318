package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayToJob asks the off-chain settler to resolve a pending transfer
type PayToJob struct {
	TxID string `json:"tx_id"`
}

// SettleChainJob asks the on-chain settler to verify a submitted hash
type SettleChainJob struct {
	TxID string `json:"tx_id"`
}

// SettlementEvent names a settlement notice
type SettlementEvent string

const (
	EventPaymentDonated  SettlementEvent = "payment_donated"
	EventPaymentReceived SettlementEvent = "payment_received_donation"
)

// SettlementNotice is published to a party once a transfer succeeds
type SettlementNotice struct {
	Event      SettlementEvent     `json:"event"`
	UserID     string              `json:"user_id"`
	TxID       string              `json:"tx_id"`
	Provider   TransactionProvider `json:"provider"`
	Amount     decimal.Decimal     `json:"amount"`
	Currency   Currency            `json:"currency"`
	TargetID   string              `json:"target_id,omitempty"`
	TargetType TargetType          `json:"target_type,omitempty"`
	SettledAt  time.Time           `json:"settled_at"`
}

// CacheNode identifies a response cache entry to invalidate
type CacheNode struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

const (
	CacheNodeUser    = "User"
	CacheNodeArticle = "Article"
)

// AlertSeverity of an operator alert
type AlertSeverity string

const (
	AlertWarning  AlertSeverity = "warning"
	AlertCritical AlertSeverity = "critical"
)

// Alert is published on the operational alerting channel
type Alert struct {
	Severity AlertSeverity     `json:"severity"`
	Source   string            `json:"source"`
	Message  string            `json:"message"`
	Fields   map[string]string `json:"fields,omitempty"`
	RaisedAt time.Time         `json:"raised_at"`
}
