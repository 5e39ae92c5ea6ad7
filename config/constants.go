// Package config centralizes environment-driven configuration: cache sizes
// and TTLs, the default IPFS gateway, pin-probe providers, and the handful
// of knobs spec.md calls out as configuration rather than code.
package config

import "time"

// Cache defaults.
const (
	URICacheCapacity            = 10_000
	URICacheTTL                 = 5 * time.Minute
	MetadataCacheCapacity       = 10_000
	MetadataCacheTTL            = 5 * time.Minute
	ImageBytesCacheCapacity     = 2_000
	ImageBytesCacheTTL          = 5 * time.Minute
	ImageTransformCacheCapacity = 2_000
	ImageTransformCacheTTL      = 5 * time.Minute
)

// Outbound timeouts, per spec.md §5.
const (
	RPCCallTimeout       = 10 * time.Second
	MetadataFetchTimeout = 10 * time.Second
	ImageFetchTimeout    = 15 * time.Second
	HealthProbeTimeout   = 5 * time.Second
)

// Image transform clamps, per spec.md §4.5.
const (
	ImageDimensionMin     = 16
	ImageDimensionMax     = 2048
	ImageDimensionDefault = 512
	ImageQualityMin       = 30
	ImageQualityMax       = 90
	ImageQualityDefault   = 70
)

// SlowResponseThreshold marks a fetch as "isSlow" past this latency.
const SlowResponseThreshold = 1000 * time.Millisecond

// DefaultIPFSGateway is used when IPFS_GATEWAY is unset. No trailing slash.
const DefaultIPFSGateway = "https://ipfs.io/ipfs"

// DefaultPinGateways are raced during a pin probe when the pinning service
// check doesn't yield a positive answer. Order has no bearing on semantics;
// all are queried concurrently.
var DefaultPinGateways = []string{
	"https://ipfs.io/ipfs",
	"https://cloudflare-ipfs.com/ipfs",
	"https://dweb.link/ipfs",
}

// WalletAuditConcurrency is the default bounded parallelism for a wallet scan.
const WalletAuditConcurrency = 6

// WalletListingPageCap bounds the total number of items the wallet-listing
// adapter will accumulate across pages — a safety bound, not a documented
// contract of the upstream indexer (spec.md §9).
const WalletListingPageCap = 2000

// DefaultCacheControlMaxAge is the base "s" in the Cache-Control policy.
const DefaultCacheControlMaxAge = 86400 * time.Second
