package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
	"github.com/shopspring/decimal"
)

const transactionColumns = `
	id, provider, COALESCE(provider_tx_id, '') AS provider_tx_id, amount, currency, state, purpose,
	COALESCE(sender_id, '') AS sender_id, COALESCE(recipient_id, '') AS recipient_id,
	COALESCE(target_id, '') AS target_id, COALESCE(target_type, '') AS target_type,
	COALESCE(remark, '') AS remark, created_at, updated_at`

const chainTransactionColumns = `
	id, chain_id, tx_hash, state,
	COALESCE(from_address, '') AS from_address, COALESCE(to_address, '') AS to_address,
	COALESCE(block_number, 0) AS block_number, created_at, updated_at`

const insertTransactionQuery = `
	INSERT INTO transactions (
		id, provider, provider_tx_id, amount, currency, state, purpose,
		sender_id, recipient_id, target_id, target_type, remark,
		created_at, updated_at
	) VALUES (
		:id, :provider, NULLIF(:provider_tx_id, ''), :amount, :currency, :state, :purpose,
		NULLIF(:sender_id, ''), NULLIF(:recipient_id, ''), NULLIF(:target_id, ''), NULLIF(:target_type, ''), NULLIF(:remark, ''),
		:created_at, :updated_at
	)
	ON CONFLICT DO NOTHING`

// LedgerRepo is the Postgres ledger store
type LedgerRepo struct {
	cfg *models.Config
	db  *sqlx.DB
	now func() time.Time
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(cfg *models.Config, db *sqlx.DB) *LedgerRepo {
	return &LedgerRepo{
		cfg: cfg,
		db:  db,
		now: time.Now,
	}
}

func notFound(what, key string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, key, ledger.ErrNotFound)
	}
	return fmt.Errorf("failed to get %s %s: %w", what, key, err)
}

// GetTransaction retrieves a transaction by ID
func (r *LedgerRepo) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	if err := r.db.GetContext(ctx, &tx, query, id); err != nil {
		return nil, notFound("transaction", id, err)
	}
	return &tx, nil
}

// CreateTransaction inserts a new transaction. A unique key clash returns ErrConflict.
func (r *LedgerRepo) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	r.prepare(tx)

	result, err := r.db.NamedExecContext(ctx, insertTransactionQuery, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	if rows, err := result.RowsAffected(); err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	} else if rows == 0 {
		return nil, fmt.Errorf("transaction for %s %s: %w", tx.Provider, tx.ProviderTxID, ledger.ErrConflict)
	}
	return tx, nil
}

func (r *LedgerRepo) prepare(tx *models.Transaction) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	now := r.now()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now
	if tx.State == "" {
		tx.State = models.TransactionStatePending
	}
}

// SettleTransaction moves a pending transaction to state
func (r *LedgerRepo) SettleTransaction(ctx context.Context, id string, state models.TransactionState, remark string) (bool, error) {
	query := `
		UPDATE transactions
		SET state = $1, remark = COALESCE(NULLIF($2, ''), remark), updated_at = $3
		WHERE id = $4 AND state = 'pending'
	`
	result, err := r.db.ExecContext(ctx, query, state, remark, r.now(), id)
	if err != nil {
		return false, fmt.Errorf("failed to settle transaction %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// GetChainTransaction retrieves a chain transaction by its natural key
func (r *LedgerRepo) GetChainTransaction(ctx context.Context, chainID int64, txHash string) (*models.ChainTransaction, error) {
	var ct models.ChainTransaction
	query := `SELECT ` + chainTransactionColumns + ` FROM chain_transactions WHERE chain_id = $1 AND tx_hash = $2`
	if err := r.db.GetContext(ctx, &ct, query, chainID, txHash); err != nil {
		return nil, notFound("chain transaction", fmt.Sprintf("%d:%s", chainID, txHash), err)
	}
	return &ct, nil
}

// GetChainTransactionByID retrieves a chain transaction by ID
func (r *LedgerRepo) GetChainTransactionByID(ctx context.Context, id string) (*models.ChainTransaction, error) {
	var ct models.ChainTransaction
	query := `SELECT ` + chainTransactionColumns + ` FROM chain_transactions WHERE id = $1`
	if err := r.db.GetContext(ctx, &ct, query, id); err != nil {
		return nil, notFound("chain transaction", id, err)
	}
	return &ct, nil
}

// UpsertChainTransaction inserts the chain transaction unless (chain_id, tx_hash) exists,
// then returns the stored row. An existing row is never overwritten.
func (r *LedgerRepo) UpsertChainTransaction(ctx context.Context, chainTx *models.ChainTransaction) (*models.ChainTransaction, error) {
	if chainTx.ID == "" {
		chainTx.ID = uuid.NewString()
	}
	if chainTx.State == "" {
		chainTx.State = models.ChainTxStatePending
	}
	now := r.now()

	query := `
		INSERT INTO chain_transactions (
			id, chain_id, tx_hash, state, from_address, to_address, block_number, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, 0), $8, $8)
		ON CONFLICT (chain_id, tx_hash) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query,
		chainTx.ID, chainTx.ChainID, chainTx.TxHash, chainTx.State,
		chainTx.From, chainTx.To, chainTx.BlockNumber, now,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert chain transaction %s: %w", chainTx.TxHash, err)
	}
	return r.GetChainTransaction(ctx, chainTx.ChainID, chainTx.TxHash)
}

// GetLinkedTransaction retrieves the blockchain transaction linked to a chain transaction
func (r *LedgerRepo) GetLinkedTransaction(ctx context.Context, chainTxID string) (*models.Transaction, error) {
	var tx models.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE provider = 'blockchain' AND provider_tx_id = $1`
	if err := r.db.GetContext(ctx, &tx, query, chainTxID); err != nil {
		return nil, notFound("transaction linked to chain transaction", chainTxID, err)
	}
	return &tx, nil
}

// AppendCurationEvent stores an audit row. Replays of the same log are ignored.
func (r *LedgerRepo) AppendCurationEvent(ctx context.Context, event *models.CurationEvent) (bool, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now()
	}

	query := `
		INSERT INTO curation_events (
			id, chain_tx_id, chain_id, tx_hash, log_index, block_number,
			curator_address, creator_address, token_address, uri, amount, created_at
		) VALUES (
			:id, :chain_tx_id, :chain_id, :tx_hash, :log_index, :block_number,
			:curator_address, :creator_address, :token_address, :uri, :amount, :created_at
		)
		ON CONFLICT (chain_id, tx_hash, log_index) DO NOTHING
	`
	result, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return false, fmt.Errorf("failed to append curation event %s:%d: %w", event.TxHash, event.LogIndex, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// ReconcileLinkedTransaction applies the optional correction to a pending linked
// transaction, marks it succeeded and marks the chain transaction succeeded, atomically.
// It returns false when the transaction was no longer pending.
func (r *LedgerRepo) ReconcileLinkedTransaction(ctx context.Context, txID, chainTxID string, correction *models.TransactionCorrection, blockNumber int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := r.now()
	var result sql.Result
	if correction != nil {
		result, err = tx.ExecContext(ctx, `
			UPDATE transactions
			SET sender_id = $1, recipient_id = $2, target_id = $3, target_type = $4,
				amount = $5, currency = $6, state = 'succeeded', updated_at = $7
			WHERE id = $8 AND state = 'pending'
		`, correction.SenderID, correction.RecipientID, correction.TargetID, correction.TargetType,
			correction.Amount, correction.Currency, now, txID)
	} else {
		result, err = tx.ExecContext(ctx, `
			UPDATE transactions SET state = 'succeeded', updated_at = $1
			WHERE id = $2 AND state = 'pending'
		`, now, txID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to settle transaction %s: %w", txID, err)
	}
	if rows, err := result.RowsAffected(); err != nil || rows == 0 {
		return false, err
	}

	if err := r.finishChainTransaction(ctx, tx, chainTxID, models.ChainTxStateSucceeded, blockNumber, "", "", now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// CreateSettledTransaction inserts a succeeded blockchain transaction linked through
// ProviderTxID and marks the chain transaction succeeded, atomically.
// It returns false when another transaction already links the chain transaction.
func (r *LedgerRepo) CreateSettledTransaction(ctx context.Context, settled *models.Transaction, blockNumber int64) (*models.Transaction, bool, error) {
	settled.State = models.TransactionStateSucceeded
	r.prepare(settled)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.NamedExecContext(ctx, insertTransactionQuery, settled)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert transaction: %w", err)
	}
	if rows, err := result.RowsAffected(); err != nil || rows == 0 {
		return nil, false, err
	}

	if err := r.finishChainTransaction(ctx, tx, settled.ProviderTxID, models.ChainTxStateSucceeded, blockNumber, "", "", settled.UpdatedAt); err != nil {
		return nil, false, err
	}
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return settled, true, nil
}

// SettleChainTransfer finalises a pending blockchain transaction and its chain transaction atomically.
// It returns false when the transaction was no longer pending.
func (r *LedgerRepo) SettleChainTransfer(ctx context.Context, s models.ChainSettlement) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := r.now()
	result, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET state = $1, remark = COALESCE(NULLIF($2, ''), remark), updated_at = $3
		WHERE id = $4 AND state = 'pending'
	`, s.TxState, s.Remark, now, s.TxID)
	if err != nil {
		return false, fmt.Errorf("failed to settle transaction %s: %w", s.TxID, err)
	}
	if rows, err := result.RowsAffected(); err != nil || rows == 0 {
		return false, err
	}

	if err := r.finishChainTransaction(ctx, tx, s.ChainTxID, s.ChainState, s.BlockNumber, s.From, s.To, now); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}

// finishChainTransaction moves a pending chain transaction to state. Non-pending rows are left alone.
func (r *LedgerRepo) finishChainTransaction(ctx context.Context, tx *sqlx.Tx, id string, state models.ChainTxState, blockNumber int64, from, to string, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE chain_transactions
		SET state = $1,
			block_number = COALESCE(NULLIF($2, 0), block_number),
			from_address = COALESCE(from_address, NULLIF($3, '')),
			to_address = COALESCE(to_address, NULLIF($4, '')),
			updated_at = $5
		WHERE id = $6 AND state = 'pending'
	`, state, blockNumber, from, to, now, id)
	if err != nil {
		return fmt.Errorf("failed to update chain transaction %s: %w", id, err)
	}
	return nil
}

// GetWatermark returns the watermark of a contract
func (r *LedgerRepo) GetWatermark(ctx context.Context, chainID int64, contractAddress string) (*models.SyncWatermark, error) {
	var wm models.SyncWatermark
	query := `
		SELECT chain_id, contract_address, block_number, updated_at
		FROM sync_watermarks
		WHERE chain_id = $1 AND contract_address = $2
	`
	if err := r.db.GetContext(ctx, &wm, query, chainID, contractAddress); err != nil {
		return nil, notFound("watermark", fmt.Sprintf("%d:%s", chainID, contractAddress), err)
	}
	return &wm, nil
}

// SaveWatermark stores blockNumber unless the stored watermark is already at or past it
func (r *LedgerRepo) SaveWatermark(ctx context.Context, chainID int64, contractAddress string, blockNumber int64) error {
	query := `
		INSERT INTO sync_watermarks (chain_id, contract_address, block_number, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chain_id, contract_address) DO UPDATE
		SET block_number = EXCLUDED.block_number, updated_at = EXCLUDED.updated_at
		WHERE sync_watermarks.block_number < EXCLUDED.block_number
	`
	if _, err := r.db.ExecContext(ctx, query, chainID, contractAddress, blockNumber, r.now()); err != nil {
		return fmt.Errorf("failed to save watermark %d:%s: %w", chainID, contractAddress, err)
	}
	return nil
}

var balanceStates = []string{
	string(models.TransactionStateSucceeded),
	string(models.TransactionStatePending),
}

// Balance returns credits minus debits of userID over succeeded and pending transactions
func (r *LedgerRepo) Balance(ctx context.Context, userID string, currency models.Currency) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN recipient_id = $1 THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE (sender_id = $1 OR recipient_id = $1)
			AND currency = $2
			AND state = ANY($3)
	`
	var balance decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, currency, pq.Array(balanceStates)).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute balance of %s: %w", userID, err)
	}
	return balance, nil
}

// DailySent sums succeeded donations sent by userID created at or after since
func (r *LedgerRepo) DailySent(ctx context.Context, userID string, currency models.Currency, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE sender_id = $1
			AND currency = $2
			AND purpose = $3
			AND state = $4
			AND created_at >= $5
	`
	var sent decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query,
		userID, currency, models.PurposeDonation, models.TransactionStateSucceeded, since,
	).Scan(&sent); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute daily sent of %s: %w", userID, err)
	}
	return sent, nil
}
