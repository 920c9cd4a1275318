package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/ledgersync/internal/pkg/jobs"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
	"github.com/shopspring/decimal"
)

func init() {
	logger.SetGlobalLogger(logger.NewNopLogger())
}

// memStore is an in-memory LedgerRepo and DirectoryRepo with the same
// pending-only write rules as the Postgres repository.
type memStore struct {
	mu         sync.Mutex
	txs        map[string]*models.Transaction
	chainTxs   map[string]*models.ChainTransaction
	events     map[string]models.CurationEvent
	watermarks map[string]int64
	users      map[string]*models.User
	articles   map[string]*models.Article
	now        time.Time
}

func newMemStore() *memStore {
	return &memStore{
		txs:        make(map[string]*models.Transaction),
		chainTxs:   make(map[string]*models.ChainTransaction),
		events:     make(map[string]models.CurationEvent),
		watermarks: make(map[string]int64),
		users:      make(map[string]*models.User),
		articles:   make(map[string]*models.Article),
		now:        time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) addUser(u *models.User)       { s.users[u.ID] = u }
func (s *memStore) addArticle(a *models.Article) { s.articles[a.ID] = a }

func (s *memStore) tx(id string) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.txs[id]
}

func (s *memStore) chainTx(id string) models.ChainTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.chainTxs[id]
}

func (s *memStore) count() (txs, chainTxs, events int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txs), len(s.chainTxs), len(s.events)
}

func (s *memStore) GetTransaction(_ context.Context, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok {
		return nil, fmt.Errorf("transaction %s: %w", id, ledger.ErrNotFound)
	}
	cp := *tx
	return &cp, nil
}

func (s *memStore) CreateTransaction(_ context.Context, tx *models.Transaction) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(tx)
	cp := *tx
	return &cp, nil
}

func (s *memStore) insert(tx *models.Transaction) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = s.now
	}
	tx.UpdatedAt = s.now
	cp := *tx
	s.txs[tx.ID] = &cp
}

func (s *memStore) SettleTransaction(_ context.Context, id string, state models.TransactionState, remark string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[id]
	if !ok || tx.State != models.TransactionStatePending {
		return false, nil
	}
	tx.State = state
	if remark != "" {
		tx.Remark = remark
	}
	return true, nil
}

func (s *memStore) GetChainTransaction(_ context.Context, chainID int64, txHash string) (*models.ChainTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chainByHash(chainID, txHash)
}

func (s *memStore) chainByHash(chainID int64, txHash string) (*models.ChainTransaction, error) {
	for _, c := range s.chainTxs {
		if c.ChainID == chainID && c.TxHash == txHash {
			cp := *c
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("chain transaction %s: %w", txHash, ledger.ErrNotFound)
}

func (s *memStore) GetChainTransactionByID(_ context.Context, id string) (*models.ChainTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chainTxs[id]
	if !ok {
		return nil, fmt.Errorf("chain transaction %s: %w", id, ledger.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) UpsertChainTransaction(_ context.Context, chainTx *models.ChainTransaction) (*models.ChainTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, err := s.chainByHash(chainTx.ChainID, chainTx.TxHash); err == nil {
		return existing, nil
	}
	cp := *chainTx
	cp.ID = uuid.NewString()
	s.chainTxs[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *memStore) GetLinkedTransaction(_ context.Context, chainTxID string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx := s.linked(chainTxID); tx != nil {
		cp := *tx
		return &cp, nil
	}
	return nil, fmt.Errorf("linked %s: %w", chainTxID, ledger.ErrNotFound)
}

func (s *memStore) linked(chainTxID string) *models.Transaction {
	for _, tx := range s.txs {
		if tx.Provider == models.ProviderBlockchain && tx.ProviderTxID == chainTxID {
			return tx
		}
	}
	return nil
}

func (s *memStore) AppendCurationEvent(_ context.Context, event *models.CurationEvent) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d:%s:%d", event.ChainID, event.TxHash, event.LogIndex)
	if _, ok := s.events[key]; ok {
		return false, nil
	}
	s.events[key] = *event
	return true, nil
}

func (s *memStore) finishChain(id string, state models.ChainTxState, block int64, from, to string) {
	c, ok := s.chainTxs[id]
	if !ok || c.State != models.ChainTxStatePending {
		return
	}
	c.State = state
	if block != 0 {
		c.BlockNumber = block
	}
	if c.From == "" {
		c.From = from
	}
	if c.To == "" {
		c.To = to
	}
}

func (s *memStore) ReconcileLinkedTransaction(_ context.Context, txID, chainTxID string, correction *models.TransactionCorrection, blockNumber int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[txID]
	if !ok || tx.State != models.TransactionStatePending {
		return false, nil
	}
	if correction != nil {
		applyCorrection(tx, *correction)
	}
	tx.State = models.TransactionStateSucceeded
	s.finishChain(chainTxID, models.ChainTxStateSucceeded, blockNumber, "", "")
	return true, nil
}

func (s *memStore) CreateSettledTransaction(_ context.Context, tx *models.Transaction, blockNumber int64) (*models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.linked(tx.ProviderTxID) != nil {
		return nil, false, nil
	}
	tx.State = models.TransactionStateSucceeded
	s.insert(tx)
	s.finishChain(tx.ProviderTxID, models.ChainTxStateSucceeded, blockNumber, "", "")
	cp := *tx
	return &cp, true, nil
}

func (s *memStore) SettleChainTransfer(_ context.Context, st models.ChainSettlement) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.txs[st.TxID]
	if !ok || tx.State != models.TransactionStatePending {
		return false, nil
	}
	tx.State = st.TxState
	if st.Remark != "" {
		tx.Remark = st.Remark
	}
	s.finishChain(st.ChainTxID, st.ChainState, st.BlockNumber, st.From, st.To)
	return true, nil
}

func (s *memStore) GetWatermark(_ context.Context, chainID int64, contract string) (*models.SyncWatermark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	block, ok := s.watermarks[fmt.Sprintf("%d:%s", chainID, contract)]
	if !ok {
		return nil, fmt.Errorf("watermark: %w", ledger.ErrNotFound)
	}
	return &models.SyncWatermark{ChainID: chainID, ContractAddress: contract, BlockNumber: block}, nil
}

func (s *memStore) SaveWatermark(_ context.Context, chainID int64, contract string, block int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d:%s", chainID, contract)
	if current, ok := s.watermarks[key]; !ok || current < block {
		s.watermarks[key] = block
	}
	return nil
}

func (s *memStore) Balance(_ context.Context, userID string, currency models.Currency) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance := decimal.Zero
	for _, tx := range s.txs {
		if tx.Currency != currency || (tx.State != models.TransactionStateSucceeded && tx.State != models.TransactionStatePending) {
			continue
		}
		switch userID {
		case tx.RecipientID:
			balance = balance.Add(tx.Amount)
		case tx.SenderID:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance, nil
}

func (s *memStore) DailySent(_ context.Context, userID string, currency models.Currency, since time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sent := decimal.Zero
	for _, tx := range s.txs {
		if tx.SenderID == userID && tx.Currency == currency && tx.Purpose == models.PurposeDonation &&
			tx.State == models.TransactionStateSucceeded && !tx.CreatedAt.Before(since) {
			sent = sent.Add(tx.Amount)
		}
	}
	return sent, nil
}

func (s *memStore) UserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, ledger.ErrNotFound)
}

func (s *memStore) UserByAddress(_ context.Context, address string) (*models.User, error) {
	for _, u := range s.users {
		if u.WalletAddress != "" && strings.EqualFold(u.WalletAddress, address) {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", address, ledger.ErrNotFound)
}

func (s *memStore) ArticleByID(_ context.Context, id string) (*models.Article, error) {
	if a, ok := s.articles[id]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("article %s: %w", id, ledger.ErrNotFound)
}

func (s *memStore) ArticleByContentID(_ context.Context, contentID, authorID string) (*models.Article, error) {
	for _, a := range s.articles {
		if a.DataHash == contentID && a.AuthorID == authorID {
			return a, nil
		}
	}
	return nil, fmt.Errorf("article %s: %w", contentID, ledger.ErrNotFound)
}

// recorder captures notices, cache invalidations, alerts and jobs
type recorder struct {
	mu      sync.Mutex
	notices []models.SettlementNotice
	nodes   [][]models.CacheNode
	alerts  []models.Alert
	jobs    []string
}

func (r *recorder) NotifySettlement(_ context.Context, n models.SettlementNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
	return nil
}

func (r *recorder) Invalidate(_ context.Context, nodes []models.CacheNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodes = append(r.nodes, nodes)
	return nil
}

func (r *recorder) Raise(_ context.Context, a models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerts = append(r.alerts, a)
	return nil
}

func (r *recorder) Enqueue(_ context.Context, name string, _ interface{}, _ jobs.Options) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, name)
	return uuid.NewString(), nil
}

func (r *recorder) noticesFor(userID string) []models.SettlementNotice {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SettlementNotice
	for _, n := range r.notices {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

// fakeChain serves logs and receipts from memory
type fakeChain struct {
	mu       sync.Mutex
	chainID  int64
	contract string
	head     uint64
	logs     []models.CurationLog
	receipts map[string]*models.ChainReceipt
	fetched  [][2]uint64
	// deadlines records the context deadline seen by each FetchLogs call
	deadlines []time.Time
}

func (c *fakeChain) ChainID() int64          { return c.chainID }
func (c *fakeChain) ContractAddress() string { return c.contract }

func (c *fakeChain) CurrentHeight(context.Context) (uint64, error) {
	return c.head, nil
}

func (c *fakeChain) FetchLogs(ctx context.Context, from, to uint64) ([]models.CurationLog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetched = append(c.fetched, [2]uint64{from, to})
	deadline, _ := ctx.Deadline()
	c.deadlines = append(c.deadlines, deadline)
	var out []models.CurationLog
	for i := len(c.logs) - 1; i >= 0; i-- {
		if l := c.logs[i]; l.BlockNumber >= from && l.BlockNumber <= to {
			out = append(out, l)
		}
	}
	return out, nil
}

func (c *fakeChain) FetchReceipt(_ context.Context, hash string) (*models.ChainReceipt, error) {
	if r, ok := c.receipts[hash]; ok {
		return r, nil
	}
	return nil, ledger.ErrReceiptNotFound
}

// fakeLocker grants the lock unless held is set
type fakeLocker struct {
	held     bool
	acquired int
	released int
}

func (l *fakeLocker) Acquire(context.Context, string, time.Duration) (string, bool, error) {
	if l.held {
		return "", false, nil
	}
	l.acquired++
	return "token", true, nil
}

func (l *fakeLocker) Release(context.Context, string, string) error {
	l.released++
	return nil
}
