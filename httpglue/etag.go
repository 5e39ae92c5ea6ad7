// Package httpglue provides the small pieces of HTTP plumbing shared by the
// server's JSON and binary responses: weak ETag computation, conditional
// "not modified" short-circuiting, and Cache-Control policy, per spec.md §6.
package httpglue

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"nftproxy/config"
)

// WeakETag computes a weak validator from data's length and the first 16
// hex characters of its SHA-1 sum: `W/"<byte-length>-<sha1-first-16-hex>"`
// (spec.md §6). Weak because it is cheap to compute and does not guarantee
// byte-for-byte equality across encodings of the same logical resource.
func WeakETag(data []byte) string {
	sum := sha1.Sum(data)
	return fmt.Sprintf(`W/"%d-%s"`, len(data), hex.EncodeToString(sum[:])[:16])
}

// NotModified reports whether the request's If-None-Match header matches
// etag, per the conditional-GET semantics spec.md §6 describes.
func NotModified(c *fiber.Ctx, etag string) bool {
	inm := c.Get(fiber.HeaderIfNoneMatch)
	return inm != "" && inm == etag
}

// ApplyCaching sets the ETag and Cache-Control headers for a response, and
// short-circuits with 304 when the request's validator matches. The
// Cache-Control policy matches spec.md §6: public, immutable, with
// stale-while-revalidate at 7x the max-age.
func ApplyCaching(c *fiber.Ctx, etag string, maxAge time.Duration) bool {
	seconds := int(maxAge.Seconds())
	c.Set(fiber.HeaderETag, etag)
	c.Set(fiber.HeaderCacheControl, fmt.Sprintf(
		"public, max-age=%d, s-maxage=%d, immutable, stale-while-revalidate=%d",
		seconds, seconds, seconds*7,
	))
	if NotModified(c, etag) {
		c.Status(fiber.StatusNotModified)
		return true
	}
	return false
}

// DefaultMaxAge is the Cache-Control max-age applied when a route doesn't
// override it.
var DefaultMaxAge = config.DefaultCacheControlMaxAge
