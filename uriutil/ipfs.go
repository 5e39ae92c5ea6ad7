package uriutil

import "strings"

// RewriteIPFS rewrites ipfs://ipfs/<cid...> and ipfs://<cid...> to
// <gateway>/<cid...>. Non-matching input passes through unchanged. gateway
// must have no trailing slash (config.IPFSGateway already enforces this).
func RewriteIPFS(uri, gateway string) string {
	const scheme = "ipfs://"
	if !strings.HasPrefix(uri, scheme) {
		return uri
	}
	rest := strings.TrimPrefix(uri, scheme)
	rest = strings.TrimPrefix(rest, "ipfs/")
	return gateway + "/" + rest
}

// IsIPFS reports whether uri uses the ipfs:// scheme.
func IsIPFS(uri string) bool {
	return strings.HasPrefix(uri, "ipfs://")
}

// ExtractCID pulls the leading CID-looking path segment out of an ipfs://
// URI or a gateway URL of the form <host>/ipfs/<cid>/... Returns "" when no
// CID-shaped segment is found.
func ExtractCID(uri string) string {
	var rest string
	switch {
	case strings.HasPrefix(uri, "ipfs://"):
		rest = strings.TrimPrefix(uri, "ipfs://")
		rest = strings.TrimPrefix(rest, "ipfs/")
	case strings.Contains(uri, "/ipfs/"):
		idx := strings.Index(uri, "/ipfs/")
		rest = uri[idx+len("/ipfs/"):]
	default:
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
