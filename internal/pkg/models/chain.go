package models

import (
	"math/big"
	"time"
)

// ChainTxState is the lifecycle state of an observed on-chain transaction
type ChainTxState string

const (
	ChainTxStatePending   ChainTxState = "pending"
	ChainTxStateSucceeded ChainTxState = "succeeded"
	ChainTxStateReverted  ChainTxState = "reverted"
	ChainTxStateTimeout   ChainTxState = "timeout"
	ChainTxStateCanceled  ChainTxState = "canceled"
)

// ChainTransaction tracks one on-chain transaction hash. (ChainID, TxHash) is unique.
type ChainTransaction struct {
	ID          string       `json:"id" db:"id"`
	ChainID     int64        `json:"chain_id" db:"chain_id"`
	TxHash      string       `json:"tx_hash" db:"tx_hash"`
	State       ChainTxState `json:"state" db:"state"`
	From        string       `json:"from,omitempty" db:"from_address"`
	To          string       `json:"to,omitempty" db:"to_address"`
	BlockNumber int64        `json:"block_number,omitempty" db:"block_number"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// SyncWatermark is the last durably reconciled block of one contract
type SyncWatermark struct {
	ChainID         int64     `json:"chain_id" db:"chain_id"`
	ContractAddress string    `json:"contract_address" db:"contract_address"`
	BlockNumber     int64     `json:"block_number" db:"block_number"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CurationEvent is the append-only audit row of a decoded curation log
type CurationEvent struct {
	ID             string    `json:"id" db:"id"`
	ChainTxID      string    `json:"chain_tx_id" db:"chain_tx_id"`
	ChainID        int64     `json:"chain_id" db:"chain_id"`
	TxHash         string    `json:"tx_hash" db:"tx_hash"`
	LogIndex       int64     `json:"log_index" db:"log_index"`
	BlockNumber    int64     `json:"block_number" db:"block_number"`
	CuratorAddress string    `json:"curator_address" db:"curator_address"`
	CreatorAddress string    `json:"creator_address" db:"creator_address"`
	TokenAddress   string    `json:"token_address" db:"token_address"`
	URI            string    `json:"uri" db:"uri"`
	Amount         string    `json:"amount" db:"amount"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CurationLog is one decoded Curation event as returned by the chain client
type CurationLog struct {
	ChainID         int64
	ContractAddress string
	TxHash          string
	BlockNumber     uint64
	LogIndex        uint
	Removed         bool
	CuratorAddress  string
	CreatorAddress  string
	TokenAddress    string
	URI             string
	Amount          *big.Int
}

// ChainReceipt is a mined transaction receipt with its decoded curation events
type ChainReceipt struct {
	TxHash      string
	BlockNumber uint64
	From        string
	To          string
	Reverted    bool
	Events      []CurationLog
}

// ReconcileOutcome is the result of reconciling one curation log
type ReconcileOutcome string

const (
	OutcomeSkipped           ReconcileOutcome = "skipped"
	OutcomeAlreadyReconciled ReconcileOutcome = "already_reconciled"
	OutcomeSettled           ReconcileOutcome = "settled"
	OutcomeCorrected         ReconcileOutcome = "corrected"
	OutcomeCreated           ReconcileOutcome = "created"
	OutcomeLostRace          ReconcileOutcome = "lost_race"
	OutcomeTerminalConflict  ReconcileOutcome = "terminal_conflict"
)

// SyncReport summarises one watcher run
type SyncReport struct {
	ChainID         int64
	ContractAddress string
	FromBlock       uint64
	ToBlock         uint64
	Logs            int
	Outcomes        map[ReconcileOutcome]int
	Skipped         bool
}

// ChainSettlement moves a blockchain transaction and its chain transaction
// to their final states in one write
type ChainSettlement struct {
	TxID        string
	ChainTxID   string
	TxState     TransactionState
	Remark      string
	ChainState  ChainTxState
	BlockNumber int64
	From        string
	To          string
}
