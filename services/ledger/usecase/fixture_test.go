package usecase

import (
	"math/big"
	"time"

	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/piresc/ledgersync/services/ledger"
)

const (
	testChainID  = int64(137)
	testContract = "0x5f3a0b8b4f8c3b7e0d8b1a2c3d4e5f6a7b8c9d0e"
	testToken    = "0xc2132D05D31c914a87C6611C10748AEb04B58e8F"
	curatorAddr  = "0x1111111111111111111111111111111111111111"
	creatorAddr  = "0x2222222222222222222222222222222222222222"
	testCID      = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
)

// fixture is a ledger with one curator, one creator and one article
type fixture struct {
	cfg     *models.Config
	store   *memStore
	rec     *recorder
	chain   *fakeChain
	locker  *fakeLocker
	curator *models.User
	creator *models.User
	article *models.Article
}

func newFixture() *fixture {
	cfg := &models.Config{
		Chain: models.ChainConfig{
			ChainID:         testChainID,
			ContractAddress: testContract,
			TokenAddress:    testToken,
			TokenDecimals:   6,
			GenesisBlock:    100,
			Confirmations:   12,
			LockTTL:         time.Minute,
		},
		Jobs: models.JobsConfig{
			MaxAttempts:   3,
			BackoffBase:   time.Second,
			BackoffMax:    time.Minute,
			ChainDelay:    5 * time.Second,
			ChainAttempts: 8,
			ChainBackoff:  10 * time.Second,
		},
		Settlement: models.SettlementConfig{Timezone: "UTC"},
	}

	f := &fixture{
		cfg:    cfg,
		store:  newMemStore(),
		rec:    &recorder{},
		locker: &fakeLocker{},
		chain: &fakeChain{
			chainID:  testChainID,
			contract: testContract,
			receipts: make(map[string]*models.ChainReceipt),
		},
		curator: &models.User{ID: "user-curator", UserName: "curator", Email: "curator@example.com", State: models.UserStateActive, WalletAddress: curatorAddr},
		creator: &models.User{ID: "user-creator", UserName: "creator", Email: "creator@example.com", State: models.UserStateActive, WalletAddress: creatorAddr},
	}
	f.article = &models.Article{ID: "article-1", AuthorID: f.creator.ID, DataHash: testCID, Title: "On ledgers"}

	f.store.addUser(f.curator)
	f.store.addUser(f.creator)
	f.store.addArticle(f.article)
	return f
}

func (f *fixture) reconciler() *EventReconcilerUC {
	return NewEventReconciler(f.cfg, f.store, f.store, f.rec, f.rec, f.rec)
}

func (f *fixture) onChainSettler() *OnChainSettlerUC {
	return NewOnChainSettler(f.cfg, f.store, f.store, f.chain, f.rec, f.rec)
}

func (f *fixture) watcher(reconciler *EventReconcilerUC) *ChainWatcherUC {
	w, err := NewChainWatcher(f.cfg, f.store, f.chain, reconciler, f.locker, f.rec)
	if err != nil {
		panic(err)
	}
	return w
}

func (f *fixture) transfers() *TransferUCImpl {
	return NewTransferUC(f.cfg, f.store, f.store, f.rec)
}

// curationLog is a log paying the fixture article from curator to creator
func curationLog(hash string, block uint64, index uint, baseUnits int64) models.CurationLog {
	return models.CurationLog{
		ChainID:         testChainID,
		ContractAddress: testContract,
		TxHash:          hash,
		BlockNumber:     block,
		LogIndex:        index,
		CuratorAddress:  curatorAddr,
		CreatorAddress:  creatorAddr,
		TokenAddress:    testToken,
		URI:             "ipfs://" + testCID,
		Amount:          big.NewInt(baseUnits),
	}
}

func hashOf(n int) string {
	const hex = "0123456789abcdef"
	b := []byte("0x")
	for i := 0; i < 64; i++ {
		b = append(b, hex[(n+i)%16])
	}
	return string(b)
}

func (w *ChainWatcherUC) withReconciler(r ledger.EventReconciler) *ChainWatcherUC {
	w.reconciler = r
	return w
}
