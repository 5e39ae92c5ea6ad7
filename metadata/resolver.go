package metadata

import (
	"context"
	"math/big"
	"time"

	"nftproxy/cache"
	"nftproxy/chain"
	"nftproxy/config"
	"nftproxy/rpcresolver"
	"nftproxy/uriutil"
)

type cacheKey struct {
	chain    chain.ID
	contract string
	tokenID  string
}

// uriResolver is the subset of *rpcresolver.Resolver this package depends
// on. Tests inject a fake to exercise the metadata pipeline without
// touching the network or the RPC resolver's own cache.
type uriResolver interface {
	Resolve(ctx context.Context, chainID chain.ID, contract string, tokenID *big.Int, opts rpcresolver.Options) (string, error)
}

// Resolver resolves, fetches, and caches token metadata documents, per
// spec.md §4.4.
type Resolver struct {
	rpc         uriResolver
	cache       *cache.TTLCache[cacheKey, Record]
	ttl         time.Duration
	ipfsGateway string
	now         func() time.Time
}

// New constructs a Resolver backed by rpc for URI resolution, with its own
// metadata cache bounded to capacity entries.
func New(rpc uriResolver, capacity int, ttl time.Duration, ipfsGateway string) *Resolver {
	return &Resolver{
		rpc:         rpc,
		cache:       cache.NewTTLCache[cacheKey, Record](capacity),
		ttl:         ttl,
		ipfsGateway: ipfsGateway,
		now:         time.Now,
	}
}

// Options customizes a single Resolve call.
type Options struct {
	RPCURLOverride string
	// SkipCache bypasses both the read and write of the metadata cache,
	// forcing a fresh fetch. It does not invalidate the underlying
	// URI-resolution cache (spec.md §4.4 step 7).
	SkipCache bool
}

// Resolve returns the Record for (chainID, contract, tokenID), per spec.md
// §4.4 steps 1-7.
func (r *Resolver) Resolve(ctx context.Context, chainID chain.ID, contract, tokenID string, opts Options) (Record, error) {
	normContract, err := validateContract(contract)
	if err != nil {
		return Record{}, err
	}
	tokenIDInt, err := parseTokenID(tokenID)
	if err != nil {
		return Record{}, err
	}
	canonicalTokenID := tokenIDInt.String()

	key := cacheKey{chain: chainID, contract: normContract, tokenID: canonicalTokenID}
	now := r.now()

	if !opts.SkipCache {
		if v, ok := r.cache.Get(key, now); ok {
			return v, nil
		}
	}

	metadataURI, err := r.rpc.Resolve(ctx, chainID, normContract, tokenIDInt, rpcresolver.Options{RPCURLOverride: opts.RPCURLOverride})
	if err != nil {
		return Record{}, err
	}

	metadataURL := resolveMetadataURL(metadataURI, r.ipfsGateway)
	doc, err := fetchDocument(metadataURL)
	if err != nil {
		return Record{}, err
	}

	record := Record{
		Contract:    normContract,
		TokenID:     canonicalTokenID,
		MetadataURI: metadataURI,
		MetadataURL: metadataURL,
		Metadata:    doc,
	}

	if imageURI := extractImageField(doc); imageURI != "" {
		record.ImageURI = imageURI
		record.ImageURL = uriutil.RewriteIPFS(uriutil.SubstituteID(imageURI, tokenIDInt), r.ipfsGateway)
	}

	if !opts.SkipCache {
		r.cache.Set(key, record, r.ttl, now)
	}
	return record, nil
}

// NewDefault constructs a Resolver using package config defaults.
func NewDefault(rpc uriResolver, ipfsGateway string) *Resolver {
	return New(rpc, config.MetadataCacheCapacity, config.MetadataCacheTTL, ipfsGateway)
}
