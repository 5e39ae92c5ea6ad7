// Package rpcresolver implements the multi-endpoint token-URI resolver:
// fan-out across a ranked endpoint pool, ERC-721 tokenURI probed first, then
// ERC-1155 uri as fallback on the same endpoint, with network-vs-revert
// error discrimination per spec.md §4.3.
package rpcresolver

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"nftproxy/cache"
	"nftproxy/chain"
	"nftproxy/errkind"
	"nftproxy/uriutil"
)

// transportFunc performs one eth_call attempt. Tests inject a fake to avoid
// the network; production uses ethCall.
type transportFunc func(endpoint, contract, data string) callResult

type cacheKey struct {
	chain    chain.ID
	contract string
	tokenID  string
}

// Resolver resolves a token's on-chain URI, caching successful resolutions.
// It is an explicit collaborator (spec.md §9): callers construct their own
// instance rather than reaching for a package-level singleton, which is
// what makes §8's cache-fidelity property testable without a shared clock.
type Resolver struct {
	cache     *cache.TTLCache[cacheKey, string]
	transport transportFunc
	ttl       time.Duration
	now       func() time.Time
}

// New constructs a Resolver with its own cache, bounded to capacity entries
// with the given ttl (spec.md §4.1/§4.3 "look up the cache... on hit return").
func New(capacity int, ttl time.Duration) *Resolver {
	return &Resolver{
		cache:     cache.NewTTLCache[cacheKey, string](capacity),
		transport: ethCall,
		ttl:       ttl,
		now:       time.Now,
	}
}

// Options customize a single Resolve call.
type Options struct {
	// RPCURLOverride is the request-scoped endpoint override, highest
	// priority in the endpoint pool (spec.md §3 EndpointPool).
	RPCURLOverride string
}

func normalizeContract(contract string) string {
	return strings.ToLower(contract)
}

// Resolve returns the token's URI string, from cache if present, otherwise
// by fanning out across the chain's endpoint pool per spec.md §4.3.
func (r *Resolver) Resolve(ctx context.Context, chainID chain.ID, contract string, tokenID *big.Int, opts Options) (string, error) {
	key := cacheKey{chain: chainID, contract: normalizeContract(contract), tokenID: tokenID.String()}

	now := r.now()
	if v, ok := r.cache.Get(key, now); ok {
		return v, nil
	}

	pool := chain.EndpointPool(chainID, opts.RPCURLOverride)
	if len(pool) == 0 {
		return "", errkind.New(errkind.RPC, "no RPC endpoints configured for chain "+string(chainID), true)
	}

	tokenURIData := encodeCall(tokenURISelector, tokenID)
	uriData := encodeCall(uriSelector, tokenID)

	var attempts []errkind.Attempt
	sawNonNetworkFailure := false

	recordAttempt := func(endpoint string, res callResult) {
		attempts = append(attempts, errkind.Attempt{URL: endpoint, Error: res.errMessage})
		if !res.networkClass {
			sawNonNetworkFailure = true
		}
	}

endpoints:
	for _, endpoint := range pool {
		select {
		case <-ctx.Done():
			return "", errkind.New(errkind.RPC, "context canceled during resolution", true)
		default:
		}

		// Step 3: ERC-721 tokenURI.
		res := r.transport(endpoint, contract, tokenURIData)
		switch {
		case res.value != "":
			r.cache.Set(key, res.value, r.ttl, now)
			return res.value, nil
		case res.networkClass:
			recordAttempt(endpoint, res)
			continue endpoints
		case !res.revertClass:
			// Non-revert contract-class failure: record and move on to the
			// next endpoint without trying the ERC-1155 fallback here.
			recordAttempt(endpoint, res)
			continue endpoints
		default:
			recordAttempt(endpoint, res)
		}

		// Step 4: revert-class tokenURI failure falls through to ERC-1155
		// uri() on the same endpoint.
		res = r.transport(endpoint, contract, uriData)
		if res.value != "" {
			substituted := uriutil.SubstituteID(res.value, tokenID)
			r.cache.Set(key, substituted, r.ttl, now)
			return substituted, nil
		}
		recordAttempt(endpoint, res)
	}

	if !sawNonNetworkFailure {
		return "", errkind.NewWithAttempts(errkind.RPC, fmt.Sprintf("all %d endpoints failed at the transport level", len(pool)), true, attempts)
	}
	return "", errkind.NewWithAttempts(errkind.Contract, "no endpoint returned a token URI", false, attempts)
}
