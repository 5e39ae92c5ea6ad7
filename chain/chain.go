// Package chain normalizes chain aliases and composes the ranked endpoint
// pool an RPC call fans out across, per spec.md §3-4.
package chain

import "strings"

// ID is a normalized chain identifier, a closed set per spec.md §3.
type ID string

const (
	Ethereum     ID = "eth"
	Arbitrum     ID = "arb"
	Optimism     ID = "op"
	Base         ID = "base"
	Polygon      ID = "polygon"
	ZkSync       ID = "zksync"
	Linea        ID = "linea"
	Scroll       ID = "scroll"
	PolygonZkEVM ID = "polygon-zkevm"
)

var known = map[ID]struct{}{
	Ethereum: {}, Arbitrum: {}, Optimism: {}, Base: {}, Polygon: {},
	ZkSync: {}, Linea: {}, Scroll: {}, PolygonZkEVM: {},
}

// aliases maps lowercased alternate spellings onto the canonical ID.
var aliases = map[string]ID{
	"ethereum":      Ethereum,
	"mainnet":       Ethereum,
	"eth":           Ethereum,
	"arbitrum":      Arbitrum,
	"arbitrum-one":  Arbitrum,
	"arb":           Arbitrum,
	"optimism":      Optimism,
	"op":            Optimism,
	"base":          Base,
	"polygon":       Polygon,
	"matic":         Polygon,
	"zksync":        ZkSync,
	"zksync-era":    ZkSync,
	"linea":         Linea,
	"scroll":        Scroll,
	"polygon-zkevm": PolygonZkEVM,
	"polygonzkevm":  PolygonZkEVM,
}

// Normalize folds case and known aliases into a canonical ID. The second
// return value is false when the input does not resolve to a known chain.
func Normalize(s string) (ID, bool) {
	id, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return id, ok
}

// Valid reports whether id is one of the closed set of known chain IDs.
func Valid(id ID) bool {
	_, ok := known[id]
	return ok
}

// EnvPrefix returns the upper-cased token used to build chain-specific
// environment variable names, e.g. "polygon-zkevm" -> "POLYGON_ZKEVM".
func (id ID) EnvPrefix() string {
	return strings.ToUpper(strings.ReplaceAll(string(id), "-", "_"))
}
