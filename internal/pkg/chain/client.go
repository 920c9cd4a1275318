package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/piresc/ledgersync/internal/pkg/circuitbreaker"
	"github.com/piresc/ledgersync/internal/pkg/logger"
	"github.com/piresc/ledgersync/internal/pkg/metrics"
	"github.com/piresc/ledgersync/internal/pkg/models"
	nrpkg "github.com/piresc/ledgersync/internal/pkg/newrelic"
	"github.com/piresc/ledgersync/internal/pkg/retry"
)

// ErrReceiptNotFound means the transaction has not been mined yet
var ErrReceiptNotFound = errors.New("transaction receipt not found")

// RPC is the part of ethclient.Client the adapter calls
type RPC interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
}

// Client reads the curation contract through a JSON-RPC endpoint
type Client struct {
	rpc      RPC
	closer   func()
	endpoint string
	chainID  int64
	contract common.Address
	maxRange uint64
	timeout  time.Duration
	event    abi.Event
	signer   types.Signer
	retrier  *retry.Retrier
	breaker  *circuitbreaker.CircuitBreaker
}

// Dial connects to cfg.RPCURL
func Dial(ctx context.Context, cfg models.ChainConfig) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc: %w", err)
	}
	c, err := NewClient(ec, cfg)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.closer = ec.Close
	return c, nil
}

// NewClient wraps an RPC with retries, a circuit breaker and APM segments
func NewClient(rpc RPC, cfg models.ChainConfig) (*Client, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}
	event, err := CurationEvent()
	if err != nil {
		return nil, err
	}

	maxRange := cfg.MaxBlockRange
	if maxRange == 0 {
		maxRange = 2000
	}
	timeout := cfg.RPCTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = 2

	breakerCfg := circuitbreaker.DefaultConfig("chain_rpc")
	breakerCfg.IsFailure = func(err error) bool {
		return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, ethereum.NotFound)
	}
	breakerCfg.OnStateChange = func(name string, _, to circuitbreaker.State) {
		metrics.BreakerState(name, int(to))
	}

	return &Client{
		rpc:      rpc,
		endpoint: cfg.RPCURL,
		chainID:  cfg.ChainID,
		contract: common.HexToAddress(cfg.ContractAddress),
		maxRange: maxRange,
		timeout:  timeout,
		event:    event,
		signer:   types.LatestSignerForChainID(big.NewInt(cfg.ChainID)),
		retrier:  retry.New(retryCfg, nil),
		breaker:  circuitbreaker.New(breakerCfg, nil),
	}, nil
}

// ChainID returns the configured chain id
func (c *Client) ChainID() int64 {
	return c.chainID
}

// ContractAddress returns the checksummed curation contract address
func (c *Client) ContractAddress() string {
	return c.contract.Hex()
}

// call runs fn with a per-attempt timeout behind the breaker and retrier
func (c *Client) call(ctx context.Context, procedure string, fn func(ctx context.Context) error) error {
	return nrpkg.WithExternalSegment(ctx, "go-ethereum", procedure, c.endpoint, func() error {
		return c.retrier.Execute(ctx, func(ctx context.Context) error {
			return c.breaker.Execute(ctx, func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, c.timeout)
				defer cancel()
				return fn(ctx)
			})
		})
	})
}

// CurrentHeight returns the latest block number
func (c *Client) CurrentHeight(ctx context.Context) (uint64, error) {
	var height uint64
	err := c.call(ctx, "eth_blockNumber", func(ctx context.Context) error {
		var err error
		height, err = c.rpc.BlockNumber(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get block number: %w", err)
	}
	metrics.ChainHead(c.chainID, height)
	return height, nil
}

// FetchLogs returns the curation logs in [from, to], paging by the configured max range.
// Logs keep the provider's order within each page.
func (c *Client) FetchLogs(ctx context.Context, from, to uint64) ([]models.CurationLog, error) {
	var out []models.CurationLog
	for start := from; start <= to; {
		end := start + c.maxRange - 1
		if end > to || end < start {
			end = to
		}

		query := ethereum.FilterQuery{
			FromBlock: new(big.Int).SetUint64(start),
			ToBlock:   new(big.Int).SetUint64(end),
			Addresses: []common.Address{c.contract},
			Topics:    [][]common.Hash{{c.event.ID}},
		}

		var raw []types.Log
		err := c.call(ctx, "eth_getLogs", func(ctx context.Context) error {
			var err error
			raw, err = c.rpc.FilterLogs(ctx, query)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch logs for blocks %d-%d: %w", start, end, err)
		}

		for _, l := range raw {
			decoded, ok, err := DecodeCurationLog(c.event, c.chainID, l)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, decoded)
			}
		}

		logger.DebugCtx(ctx, "Fetched curation logs",
			logger.Int64("chain_id", c.chainID),
			logger.Uint64("from_block", start),
			logger.Uint64("to_block", end),
			logger.Int("logs", len(raw)))

		if end == to {
			break
		}
		start = end + 1
	}
	return out, nil
}

// FetchReceipt returns the mined receipt of txHash with its decoded curation events.
// It returns ErrReceiptNotFound while the transaction is not mined.
func (c *Client) FetchReceipt(ctx context.Context, txHash string) (*models.ChainReceipt, error) {
	hash := common.HexToHash(txHash)

	var receipt *types.Receipt
	err := c.call(ctx, "eth_getTransactionReceipt", func(ctx context.Context) error {
		var err error
		receipt, err = c.rpc.TransactionReceipt(ctx, hash)
		return err
	})
	if errors.Is(err, ethereum.NotFound) || (err == nil && receipt == nil) {
		return nil, ErrReceiptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt %s: %w", txHash, err)
	}

	var tx *types.Transaction
	err = c.call(ctx, "eth_getTransactionByHash", func(ctx context.Context) error {
		var err error
		tx, _, err = c.rpc.TransactionByHash(ctx, hash)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", txHash, err)
	}

	result := &models.ChainReceipt{
		TxHash:   hash.Hex(),
		Reverted: receipt.Status != types.ReceiptStatusSuccessful,
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if from, err := types.Sender(c.signer, tx); err == nil {
		result.From = from.Hex()
	}
	if to := tx.To(); to != nil {
		result.To = to.Hex()
	}

	for _, l := range receipt.Logs {
		if l == nil || l.Address != c.contract {
			continue
		}
		decoded, ok, err := DecodeCurationLog(c.event, c.chainID, *l)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping undecodable receipt log",
				logger.String("tx_hash", txHash),
				logger.Err(err))
			continue
		}
		if ok {
			result.Events = append(result.Events, decoded)
		}
	}
	return result, nil
}

// CheckHealth asks the node for its head
func (c *Client) CheckHealth(ctx context.Context) error {
	_, err := c.rpc.BlockNumber(ctx)
	return err
}

// Close releases the RPC connection
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}
