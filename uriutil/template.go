package uriutil

import (
	"math/big"
	"strings"
)

// SubstituteID replaces every occurrence of the literal "{id}" in uri with
// the token id's 32-byte hex representation: lowercase, unprefixed,
// left-padded to 64 hex characters. A no-op when "{id}" is absent.
func SubstituteID(uri string, tokenID *big.Int) string {
	if !strings.Contains(uri, "{id}") {
		return uri
	}
	return strings.ReplaceAll(uri, "{id}", HexTokenID(tokenID))
}

// HexTokenID renders tokenID as the lowercase, unprefixed, 64-hex-char
// representation the ERC-1155 {id} substitution rule requires.
func HexTokenID(tokenID *big.Int) string {
	hex := tokenID.Text(16)
	if len(hex) < 64 {
		hex = strings.Repeat("0", 64-len(hex)) + hex
	}
	return strings.ToLower(hex)
}
