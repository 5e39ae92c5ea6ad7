package metadata

import (
	"math/big"
	"regexp"
	"strings"

	"nftproxy/errkind"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// validateContract checks contract is a 20-byte hex address and returns it
// lowercased for use as a cache/lookup key (spec.md §3 TokenKey).
func validateContract(contract string) (string, error) {
	if !addressPattern.MatchString(contract) {
		return "", errkind.New(errkind.Parsing, "contract is not a 20-byte hex address: "+contract, false)
	}
	return strings.ToLower(contract), nil
}

// parseTokenID parses tokenID as a non-negative arbitrary-precision integer
// in decimal, per spec.md §3 TokenKey ("represented canonically as decimal
// strings").
func parseTokenID(tokenID string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(tokenID, 10)
	if !ok || n.Sign() < 0 {
		return nil, errkind.New(errkind.Parsing, "token id is not a non-negative integer: "+tokenID, false)
	}
	return n, nil
}
