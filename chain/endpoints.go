package chain

import (
	"os"
	"strings"
)

// defaultEndpoints are the built-in fallback RPC URLs per chain, always
// appended to the pool after any override and environment entries.
var defaultEndpoints = map[ID][]string{
	Ethereum:     {"https://eth.llamarpc.com", "https://rpc.ankr.com/eth", "https://cloudflare-eth.com"},
	Arbitrum:     {"https://arb1.arbitrum.io/rpc", "https://rpc.ankr.com/arbitrum"},
	Optimism:     {"https://mainnet.optimism.io", "https://rpc.ankr.com/optimism"},
	Base:         {"https://mainnet.base.org", "https://rpc.ankr.com/base"},
	Polygon:      {"https://polygon-rpc.com", "https://rpc.ankr.com/polygon"},
	ZkSync:       {"https://mainnet.era.zksync.io"},
	Linea:        {"https://rpc.linea.build"},
	Scroll:       {"https://rpc.scroll.io"},
	PolygonZkEVM: {"https://zkevm-rpc.com"},
}

// EndpointPool composes the ranked endpoint list for id, in the order
// spec.md §4.3 requires: a request-scoped override first, then the
// chain-specific environment override, then the global environment
// override, then the built-in defaults — duplicates removed, first
// occurrence preserved.
func EndpointPool(id ID, override string) []string {
	var pool []string

	if override != "" {
		pool = append(pool, override)
	}

	pool = append(pool, splitCSV(os.Getenv(id.EnvPrefix()+"_RPC_URLS"))...)
	pool = append(pool, splitCSV(os.Getenv(id.EnvPrefix()+"_RPC_URL"))...)

	pool = append(pool, splitCSV(os.Getenv("RPC_URLS"))...)
	pool = append(pool, splitCSV(os.Getenv("RPC_URL"))...)

	pool = append(pool, defaultEndpoints[id]...)

	return dedupe(pool)
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
