// Package storage classifies a URI into a provenance category — on-chain,
// IPFS, Arweave, centralized, or unknown — per spec.md §4.6.
package storage

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Category is a storage provenance classification.
type Category string

const (
	OnChain      Category = "on-chain"
	IPFS         Category = "ipfs"
	Arweave      Category = "arweave"
	Centralized  Category = "centralized"
	UnknownStore Category = "unknown"
)

var ipfsGatewayMarkers = []string{"/ipfs/", ".ipfs."}

// Classify returns uri's storage category and, for centralized URIs, its
// registrable domain for display.
func Classify(uri string) (Category, string) {
	trimmed := strings.TrimSpace(uri)
	if trimmed == "" {
		return UnknownStore, ""
	}

	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "data:"):
		return OnChain, ""
	case strings.HasPrefix(lower, "ipfs://"):
		return IPFS, ""
	case strings.HasPrefix(lower, "ar://"):
		return Arweave, ""
	case strings.Contains(lower, "arweave.net/"):
		return Arweave, ""
	}

	for _, marker := range ipfsGatewayMarkers {
		if strings.Contains(lower, marker) {
			return IPFS, ""
		}
	}

	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		domain := registrableDomain(trimmed)
		if domain == "" {
			return UnknownStore, ""
		}
		return Centralized, domain
	}

	return UnknownStore, ""
}

// registrableDomain extracts the registrable domain (eTLD+1) from uri,
// using the public suffix list; falls back to the naive "last two DNS
// labels" heuristic spec.md describes when the list has no matching rule.
func registrableDomain(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())

	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && domain != "" {
		return domain
	}
	return naiveLastTwoLabels(host)
}

func naiveLastTwoLabels(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}
