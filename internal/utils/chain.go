package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/piresc/ledgersync/internal/pkg/constants"
)

// NormalizeTxHash returns the lowercase 0x-prefixed form of a transaction hash,
// or "" when s is not a 32-byte hex hash
func NormalizeTxHash(s string) string {
	b, err := hexutil.Decode(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || len(b) != common.HashLength {
		return ""
	}
	return common.BytesToHash(b).Hex()
}

// SameAddress compares two EVM addresses ignoring checksum case
func SameAddress(a, b string) bool {
	return a != "" && strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ContentID extracts the content id from an ipfs:// uri
func ContentID(uri string) (string, bool) {
	if !strings.HasPrefix(uri, constants.ContentURIScheme) {
		return "", false
	}
	cid := strings.TrimSuffix(strings.TrimPrefix(uri, constants.ContentURIScheme), "/")
	if cid == "" {
		return "", false
	}
	return cid, true
}
