package rpcresolver

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// selector returns the 4-byte ABI function selector for a Solidity
// signature like "tokenURI(uint256)".
func selector(signature string) []byte {
	return crypto.Keccak256([]byte(signature))[:4]
}

var (
	tokenURISelector = selector("tokenURI(uint256)")
	uriSelector      = selector("uri(uint256)")
)

// encodeCall packs sel followed by tokenID as a single left-padded 32-byte
// uint256 argument, ABI-encoding the `tokenURI(uint256)` / `uri(uint256)`
// call exactly as solc would.
func encodeCall(sel []byte, tokenID *big.Int) string {
	arg := make([]byte, 32)
	tokenID.FillBytes(arg)
	data := append(append([]byte{}, sel...), arg...)
	return hexutil.Encode(data)
}

// decodeStringResult decodes the ABI encoding of a single dynamic `string`
// return value: a 32-byte offset (always 0x20 for a single return),
// followed by a 32-byte length, followed by the UTF-8 bytes padded to a
// 32-byte boundary.
func decodeStringResult(hexResult string) (string, error) {
	raw, err := hexutil.Decode(hexResult)
	if err != nil {
		return "", fmt.Errorf("invalid hex result: %w", err)
	}
	if len(raw) < 64 {
		return "", fmt.Errorf("result too short to contain an ABI string (%d bytes)", len(raw))
	}

	length := new(big.Int).SetBytes(raw[32:64]).Uint64()
	start := uint64(64)
	end := start + length
	if end > uint64(len(raw)) {
		return "", fmt.Errorf("result length %d exceeds payload size %d", length, len(raw)-int(start))
	}
	return string(raw[start:end]), nil
}
