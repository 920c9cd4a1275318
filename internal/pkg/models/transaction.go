package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionState is the lifecycle state of a ledger transaction
type TransactionState string

const (
	TransactionStatePending   TransactionState = "pending"
	TransactionStateSucceeded TransactionState = "succeeded"
	TransactionStateFailed    TransactionState = "failed"
	TransactionStateCanceled  TransactionState = "canceled"
)

// IsTerminal reports whether the state can no longer change
func (s TransactionState) IsTerminal() bool {
	return s == TransactionStateSucceeded || s == TransactionStateFailed || s == TransactionStateCanceled
}

// TransactionProvider identifies who settles a transaction
type TransactionProvider string

const (
	ProviderInternal   TransactionProvider = "internal"
	ProviderGateway    TransactionProvider = "gateway"
	ProviderBlockchain TransactionProvider = "blockchain"
)

// Currency of a ledger amount
type Currency string

const (
	CurrencyFiat    Currency = "HKD"
	CurrencyUtility Currency = "LIKE"
	CurrencyStable  Currency = "USDT"
)

// TransactionPurpose describes why money moved
type TransactionPurpose string

const (
	PurposeDonation     TransactionPurpose = "donation"
	PurposeAddCredit    TransactionPurpose = "add-credit"
	PurposePayout       TransactionPurpose = "payout"
	PurposeSubscription TransactionPurpose = "subscription"
	PurposeRefund       TransactionPurpose = "refund"
	PurposeDispute      TransactionPurpose = "dispute"
)

// TargetType is the kind of entity a transaction pays for
type TargetType string

const (
	TargetTypeArticle TargetType = "article"
)

// Transaction is the authoritative ledger row.
// SenderID, RecipientID and TargetID are empty when absent.
type Transaction struct {
	ID           string              `json:"id" db:"id"`
	Provider     TransactionProvider `json:"provider" db:"provider"`
	ProviderTxID string              `json:"provider_tx_id" db:"provider_tx_id"`
	Amount       decimal.Decimal     `json:"amount" db:"amount"`
	Currency     Currency            `json:"currency" db:"currency"`
	State        TransactionState    `json:"state" db:"state"`
	Purpose      TransactionPurpose  `json:"purpose" db:"purpose"`
	SenderID     string              `json:"sender_id,omitempty" db:"sender_id"`
	RecipientID  string              `json:"recipient_id,omitempty" db:"recipient_id"`
	TargetID     string              `json:"target_id,omitempty" db:"target_id"`
	TargetType   TargetType          `json:"target_type,omitempty" db:"target_type"`
	Remark       string              `json:"remark,omitempty" db:"remark"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at" db:"updated_at"`
}

// HasParties reports whether both sides of the transfer are known
func (t *Transaction) HasParties() bool {
	return t.SenderID != "" && t.RecipientID != ""
}

// TransactionCorrection carries the on-chain truth applied to a linked
// transaction before it is marked succeeded
type TransactionCorrection struct {
	SenderID    string
	RecipientID string
	TargetID    string
	TargetType  TargetType
	Amount      decimal.Decimal
	Currency    Currency
}

// Matches reports whether the transaction already carries the corrected fields
func (c TransactionCorrection) Matches(tx *Transaction) bool {
	return tx.SenderID == c.SenderID &&
		tx.RecipientID == c.RecipientID &&
		tx.TargetID == c.TargetID &&
		tx.TargetType == c.TargetType &&
		tx.Currency == c.Currency &&
		tx.Amount.Equal(c.Amount)
}

// TransferRequest represents a user-initiated transfer
type TransferRequest struct {
	SenderID    string             `json:"-"`
	RecipientID string             `json:"recipient_id"`
	Amount      string             `json:"amount"`
	Currency    Currency           `json:"currency"`
	Purpose     TransactionPurpose `json:"purpose"`
	TargetID    string             `json:"target_id"`
	TargetType  TargetType         `json:"target_type"`
}

// ChainTransferRequest represents a user-submitted on-chain transfer hash
type ChainTransferRequest struct {
	SenderID    string `json:"-"`
	RecipientID string `json:"recipient_id"`
	Amount      string `json:"amount"`
	TargetID    string `json:"target_id"`
	TxHash      string `json:"tx_hash"`
}
