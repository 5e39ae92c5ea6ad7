// Package imagepipe fetches image bytes, caches them, and optionally
// transforms them into a bounded raster derivative (WebP), per spec.md
// §4.5.
package imagepipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"nftproxy/cache"
	"nftproxy/config"
	"nftproxy/errkind"
	"nftproxy/uriutil"
)

// Fetched is a fetched image's content type and raw bytes.
type Fetched struct {
	ContentType string
	Bytes       []byte
}

// Fetcher fetches and caches source image bytes by URL. A shared tier sits
// behind the in-process cache: a miss there is checked against shared
// before hitting the network, and a successful network fetch populates
// both tiers.
type Fetcher struct {
	cache  *cache.TTLCache[string, Fetched]
	shared *cache.SharedStore
	ttl    time.Duration
	now    func() time.Time
	get    func(url string) (status int, body []byte, err error)
}

// NewFetcher constructs a Fetcher with its own bytes cache bounded to
// capacity entries and no shared tier. Use WithSharedStore to attach one.
func NewFetcher(capacity int, ttl time.Duration) *Fetcher {
	return &Fetcher{
		cache: cache.NewTTLCache[string, Fetched](capacity),
		ttl:   ttl,
		now:   time.Now,
		get:   httpGet,
	}
}

// NewDefaultFetcher constructs a Fetcher using package config defaults.
func NewDefaultFetcher() *Fetcher {
	return NewFetcher(config.ImageBytesCacheCapacity, config.ImageBytesCacheTTL)
}

// WithSharedStore attaches a shared cache tier that fetches consult on an
// in-process miss and populate on a successful network fetch. A nil or
// unavailable store leaves the fetcher's behavior unchanged.
func (f *Fetcher) WithSharedStore(shared *cache.SharedStore) *Fetcher {
	f.shared = shared
	return f
}

// Fetch returns (contentType, bytes) for url, from cache or via a GET with
// a 15 s timeout and no HTTP caching (spec.md §4.5 fetcher contract). A
// data: URL is decoded directly and never touches the network, the
// in-process cache, or the shared tier.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Fetched, error) {
	if strings.HasPrefix(url, "data:") {
		mime, data, err := uriutil.DecodeDataURL(url)
		if err != nil {
			return Fetched{}, err
		}
		return Fetched{ContentType: mime, Bytes: data}, nil
	}

	now := f.now()
	if v, ok := f.cache.Get(url, now); ok {
		return v, nil
	}

	if f.shared.Available() {
		var v Fetched
		if f.shared.Get(ctx, sharedKey(url), &v) {
			f.cache.Set(url, v, f.ttl, now)
			return v, nil
		}
	}

	status, body, err := f.get(url)
	if err != nil {
		return Fetched{}, errkind.New(errkind.ImageFetch, fmt.Sprintf("fetching image: %v", err), true)
	}
	if status < 200 || status >= 300 {
		return Fetched{}, errkind.New(errkind.ImageFetch, fmt.Sprintf("image fetch returned status %d", status), status >= 500)
	}

	fetched := Fetched{ContentType: http.DetectContentType(body), Bytes: body}
	f.cache.Set(url, fetched, f.ttl, now)
	if f.shared.Available() {
		_ = f.shared.Set(ctx, sharedKey(url), fetched, f.ttl)
	}
	return fetched, nil
}

func sharedKey(url string) string {
	return "imagepipe:bytes:" + url
}

func httpGet(url string) (int, []byte, error) {
	agent := fiber.Get(url)
	agent.Timeout(config.ImageFetchTimeout)
	agent.Set("Cache-Control", "no-cache")

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return 0, nil, errs[0]
	}
	return status, body, nil
}
