package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/piresc/ledgersync/internal/pkg/models"
)

// CurationABI describes the single event the curation contract emits per payment
const CurationABI = `[{
	"anonymous": false,
	"name": "Curation",
	"type": "event",
	"inputs": [
		{"indexed": true,  "name": "from",   "type": "address"},
		{"indexed": true,  "name": "to",     "type": "address"},
		{"indexed": true,  "name": "token",  "type": "address"},
		{"indexed": false, "name": "uri",    "type": "string"},
		{"indexed": false, "name": "amount", "type": "uint256"}
	]
}]`

// CurationEvent returns the parsed Curation event definition
func CurationEvent() (abi.Event, error) {
	parsed, err := abi.JSON(strings.NewReader(CurationABI))
	if err != nil {
		return abi.Event{}, fmt.Errorf("failed to parse curation ABI: %w", err)
	}
	return parsed.Events["Curation"], nil
}

// DecodeCurationLog turns a raw log into a CurationLog.
// Logs that are not Curation events return ok=false.
func DecodeCurationLog(event abi.Event, chainID int64, log types.Log) (models.CurationLog, bool, error) {
	if len(log.Topics) == 0 || log.Topics[0] != event.ID {
		return models.CurationLog{}, false, nil
	}
	if len(log.Topics) != 4 {
		return models.CurationLog{}, false, fmt.Errorf("curation log %s:%d has %d topics", log.TxHash.Hex(), log.Index, len(log.Topics))
	}

	values, err := event.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return models.CurationLog{}, false, fmt.Errorf("failed to decode curation log %s:%d: %w", log.TxHash.Hex(), log.Index, err)
	}
	if len(values) != 2 {
		return models.CurationLog{}, false, fmt.Errorf("curation log %s:%d has %d data fields", log.TxHash.Hex(), log.Index, len(values))
	}
	uri, okURI := values[0].(string)
	amount, okAmount := values[1].(*big.Int)
	if !okURI || !okAmount {
		return models.CurationLog{}, false, fmt.Errorf("curation log %s:%d has unexpected data types", log.TxHash.Hex(), log.Index)
	}

	return models.CurationLog{
		ChainID:         chainID,
		ContractAddress: log.Address.Hex(),
		TxHash:          log.TxHash.Hex(),
		BlockNumber:     log.BlockNumber,
		LogIndex:        log.Index,
		Removed:         log.Removed,
		CuratorAddress:  common.BytesToAddress(log.Topics[1].Bytes()).Hex(),
		CreatorAddress:  common.BytesToAddress(log.Topics[2].Bytes()).Hex(),
		TokenAddress:    common.BytesToAddress(log.Topics[3].Bytes()).Hex(),
		URI:             uri,
		Amount:          amount,
	}, true, nil
}
