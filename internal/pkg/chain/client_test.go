package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetGlobalLogger(logger.NewNopLogger())
}

const (
	contractHex = "0x1111111111111111111111111111111111111111"
	curatorHex  = "0xAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAaAa"
	creatorHex  = "0xBbbBbbbBbbbBbbbBbbbBbbbBbbbBbbbBbbbBbbbB"
	tokenHex    = "0x94b008aA00579c1307B0EF2c499aD98a8ce58e58"
)

type fakeRPC struct {
	head      uint64
	logs      []types.Log
	queries   []ethereum.FilterQuery
	receipts  map[common.Hash]*types.Receipt
	txs       map[common.Hash]*types.Transaction
	headErr   error
	filterErr error
}

func (f *fakeRPC) BlockNumber(context.Context) (uint64, error) {
	return f.head, f.headErr
}

func (f *fakeRPC) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	f.queries = append(f.queries, q)
	if f.filterErr != nil {
		return nil, f.filterErr
	}
	var out []types.Log
	for _, l := range f.logs {
		if l.BlockNumber >= q.FromBlock.Uint64() && l.BlockNumber <= q.ToBlock.Uint64() {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRPC) TransactionReceipt(_ context.Context, h common.Hash) (*types.Receipt, error) {
	if r, ok := f.receipts[h]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (f *fakeRPC) TransactionByHash(_ context.Context, h common.Hash) (*types.Transaction, bool, error) {
	if tx, ok := f.txs[h]; ok {
		return tx, false, nil
	}
	return nil, false, ethereum.NotFound
}

func curationLog(t *testing.T, block uint64, index uint, txHash common.Hash, uri string, amount int64) types.Log {
	t.Helper()
	event, err := CurationEvent()
	require.NoError(t, err)

	data, err := event.Inputs.NonIndexed().Pack(uri, big.NewInt(amount))
	require.NoError(t, err)

	return types.Log{
		Address: common.HexToAddress(contractHex),
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(common.HexToAddress(curatorHex).Bytes()),
			common.BytesToHash(common.HexToAddress(creatorHex).Bytes()),
			common.BytesToHash(common.HexToAddress(tokenHex).Bytes()),
		},
		Data:        data,
		BlockNumber: block,
		TxHash:      txHash,
		Index:       index,
	}
}

func newTestClient(t *testing.T, rpc RPC, maxRange uint64) *Client {
	t.Helper()
	c, err := NewClient(rpc, models.ChainConfig{
		RPCURL:          "http://rpc.test",
		ChainID:         10,
		ContractAddress: contractHex,
		MaxBlockRange:   maxRange,
	})
	require.NoError(t, err)
	return c
}

func TestDecodeCurationLog(t *testing.T) {
	event, err := CurationEvent()
	require.NoError(t, err)

	hash := common.HexToHash("0xabc")
	decoded, ok, err := DecodeCurationLog(event, 10, curationLog(t, 42, 3, hash, "ipfs://bafy123", 500000))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, int64(10), decoded.ChainID)
	assert.Equal(t, common.HexToAddress(contractHex).Hex(), decoded.ContractAddress)
	assert.Equal(t, hash.Hex(), decoded.TxHash)
	assert.Equal(t, uint64(42), decoded.BlockNumber)
	assert.Equal(t, uint(3), decoded.LogIndex)
	assert.Equal(t, common.HexToAddress(curatorHex).Hex(), decoded.CuratorAddress)
	assert.Equal(t, common.HexToAddress(creatorHex).Hex(), decoded.CreatorAddress)
	assert.Equal(t, common.HexToAddress(tokenHex).Hex(), decoded.TokenAddress)
	assert.Equal(t, "ipfs://bafy123", decoded.URI)
	assert.Equal(t, int64(500000), decoded.Amount.Int64())
}

func TestDecodeCurationLog_OtherEvent(t *testing.T) {
	event, err := CurationEvent()
	require.NoError(t, err)

	_, ok, err := DecodeCurationLog(event, 10, types.Log{Topics: []common.Hash{common.HexToHash("0xdead")}})
	assert.NoError(t, err)
	assert.False(t, ok)

	bad := curationLog(t, 1, 0, common.HexToHash("0x1"), "ipfs://x", 1)
	bad.Data = []byte{0x01}
	_, _, err = DecodeCurationLog(event, 10, bad)
	assert.Error(t, err)
}

func TestNewClient_InvalidContract(t *testing.T) {
	_, err := NewClient(&fakeRPC{}, models.ChainConfig{ContractAddress: "not-an-address"})
	assert.ErrorContains(t, err, "invalid contract address")
}

func TestClient_CurrentHeight(t *testing.T) {
	c := newTestClient(t, &fakeRPC{head: 1234}, 0)
	height, err := c.CurrentHeight(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1234), height)
	assert.Equal(t, int64(10), c.ChainID())
	assert.Equal(t, common.HexToAddress(contractHex).Hex(), c.ContractAddress())
}

func TestClient_CurrentHeight_NonRetryableError(t *testing.T) {
	c := newTestClient(t, &fakeRPC{headErr: errors.New("invalid api key")}, 0)
	_, err := c.CurrentHeight(context.Background())
	assert.ErrorContains(t, err, "invalid api key")
}

func TestClient_FetchLogs_Pages(t *testing.T) {
	rpc := &fakeRPC{logs: []types.Log{
		curationLog(t, 100, 0, common.HexToHash("0x01"), "ipfs://a", 1),
		curationLog(t, 105, 1, common.HexToHash("0x02"), "ipfs://b", 2),
		curationLog(t, 112, 0, common.HexToHash("0x03"), "ipfs://c", 3),
	}}
	c := newTestClient(t, rpc, 5)

	logs, err := c.FetchLogs(context.Background(), 100, 112)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "ipfs://c", logs[2].URI)

	require.Len(t, rpc.queries, 3)
	assert.Equal(t, uint64(100), rpc.queries[0].FromBlock.Uint64())
	assert.Equal(t, uint64(104), rpc.queries[0].ToBlock.Uint64())
	assert.Equal(t, uint64(105), rpc.queries[1].FromBlock.Uint64())
	assert.Equal(t, uint64(110), rpc.queries[2].FromBlock.Uint64())
	assert.Equal(t, uint64(112), rpc.queries[2].ToBlock.Uint64())
	assert.Equal(t, []common.Address{common.HexToAddress(contractHex)}, rpc.queries[0].Addresses)
}

func TestClient_FetchLogs_Error(t *testing.T) {
	c := newTestClient(t, &fakeRPC{filterErr: errors.New("query returned more than 10000 results")}, 0)
	_, err := c.FetchLogs(context.Background(), 1, 10)
	assert.ErrorContains(t, err, "failed to fetch logs for blocks 1-10")
}

func TestClient_FetchReceipt(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer := types.LatestSignerForChainID(big.NewInt(10))
	contract := common.HexToAddress(contractHex)
	tx := types.MustSignNewTx(key, signer, &types.DynamicFeeTx{
		ChainID:   big.NewInt(10),
		To:        &contract,
		Gas:       100000,
		GasFeeCap: big.NewInt(1),
		GasTipCap: big.NewInt(1),
	})

	event := curationLog(t, 77, 0, tx.Hash(), "ipfs://bafy", 500000)
	foreign := curationLog(t, 77, 1, tx.Hash(), "ipfs://other", 1)
	foreign.Address = common.HexToAddress("0x2222222222222222222222222222222222222222")

	rpc := &fakeRPC{
		receipts: map[common.Hash]*types.Receipt{tx.Hash(): {
			Status:      types.ReceiptStatusSuccessful,
			BlockNumber: big.NewInt(77),
			Logs:        []*types.Log{&event, &foreign},
		}},
		txs: map[common.Hash]*types.Transaction{tx.Hash(): tx},
	}
	c := newTestClient(t, rpc, 0)

	receipt, err := c.FetchReceipt(context.Background(), tx.Hash().Hex())
	require.NoError(t, err)
	assert.False(t, receipt.Reverted)
	assert.Equal(t, uint64(77), receipt.BlockNumber)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey).Hex(), receipt.From)
	assert.Equal(t, contract.Hex(), receipt.To)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, "ipfs://bafy", receipt.Events[0].URI)
}

func TestClient_FetchReceipt_Reverted(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	tx := types.MustSignNewTx(key, types.LatestSignerForChainID(big.NewInt(10)), &types.LegacyTx{Gas: 21000, GasPrice: big.NewInt(1)})

	rpc := &fakeRPC{
		receipts: map[common.Hash]*types.Receipt{tx.Hash(): {Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(5)}},
		txs:      map[common.Hash]*types.Transaction{tx.Hash(): tx},
	}
	receipt, err := newTestClient(t, rpc, 0).FetchReceipt(context.Background(), tx.Hash().Hex())
	require.NoError(t, err)
	assert.True(t, receipt.Reverted)
	assert.Empty(t, receipt.Events)
}

func TestClient_FetchReceipt_NotMined(t *testing.T) {
	c := newTestClient(t, &fakeRPC{}, 0)
	_, err := c.FetchReceipt(context.Background(), "0x1234")
	assert.ErrorIs(t, err, ErrReceiptNotFound)
}
