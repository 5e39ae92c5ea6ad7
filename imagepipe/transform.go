package imagepipe

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"nftproxy/cache"
	"nftproxy/config"
	"nftproxy/httpglue"
)

// Options bounds a single transform request (spec.md §4.5 "numeric
// parameters and clamping").
type Options struct {
	Width              int
	Height             int
	Quality            int
	PermitSVGRasterize bool
}

// Transformed is a derived raster output.
type Transformed struct {
	ContentType string
	Bytes       []byte
}

// Pipeline caches transform derivatives and runs the raster pipeline.
type Pipeline struct {
	cache *cache.TTLCache[string, Transformed]
	ttl   time.Duration
	now   func() time.Time
}

// NewPipeline constructs a Pipeline with its own transform cache bounded to
// capacity entries.
func NewPipeline(capacity int, ttl time.Duration) *Pipeline {
	return &Pipeline{
		cache: cache.NewTTLCache[string, Transformed](capacity),
		ttl:   ttl,
		now:   time.Now,
	}
}

// NewDefaultPipeline constructs a Pipeline using package config defaults.
func NewDefaultPipeline() *Pipeline {
	return NewPipeline(config.ImageTransformCacheCapacity, config.ImageTransformCacheTTL)
}

// bypass reports whether contentType should never be rasterized, per
// spec.md §4.5's transform-decision bypass rules.
func bypass(contentType string, permitSVGRasterize bool) bool {
	ct := strings.ToLower(contentType)
	if !strings.HasPrefix(ct, "image/") {
		return true
	}
	if strings.Contains(ct, "svg") {
		return !permitSVGRasterize
	}
	if strings.Contains(ct, "gif") {
		return true
	}
	return false
}

// Transform returns a derived raster image fit within (opts.Width,
// opts.Height) at opts.Quality, encoded to WebP. A nil result with a nil
// error means the caller should serve the original bytes unchanged: either
// the content type is bypassed, or the raster pipeline (including the BMP
// fallback) could not process the input.
func (p *Pipeline) Transform(fetched Fetched, opts Options) (*Transformed, error) {
	if bypass(fetched.ContentType, opts.PermitSVGRasterize) {
		return nil, nil
	}

	w := clampDimension(opts.Width)
	h := clampDimension(opts.Height)
	q := clampQuality(opts.Quality)

	key := fmt.Sprintf("%dx%d:%d:%s:%s", w, h, q, fetched.ContentType, httpglue.WeakETag(fetched.Bytes))
	now := p.now()
	if v, ok := p.cache.Get(key, now); ok {
		return &v, nil
	}

	src, err := decodeSource(fetched.Bytes, fetched.ContentType)
	if err != nil {
		return nil, nil
	}

	dst := fitResize(src, w, h)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: float32(q)}); err != nil {
		return nil, nil
	}

	out := Transformed{ContentType: "image/webp", Bytes: buf.Bytes()}
	p.cache.Set(key, out, p.ttl, now)
	return &out, nil
}

// decodeSource decodes image bytes into an image.Image, using the BMP
// fallback decoder when the declared content type is image/bmp (spec.md
// §4.5's primary-path-then-BMP-fallback rule collapses here: stdlib decoders
// cover png/jpeg and chai2010/webp covers webp, so bmp is the only content
// type that needs the hand-rolled path).
func decodeSource(data []byte, contentType string) (image.Image, error) {
	if strings.Contains(strings.ToLower(contentType), "bmp") {
		return decodeBMP(data)
	}
	if strings.Contains(strings.ToLower(contentType), "webp") {
		return webp.Decode(bytes.NewReader(data))
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// fitResize scales src to fit within (maxW, maxH) preserving aspect ratio,
// never upscaling (spec.md §4.5).
func fitResize(src image.Image, maxW, maxH int) image.Image {
	bounds := src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	if sw <= 0 || sh <= 0 {
		return src
	}

	scale := 1.0
	if sw > maxW || sh > maxH {
		wScale := float64(maxW) / float64(sw)
		hScale := float64(maxH) / float64(sh)
		scale = wScale
		if hScale < scale {
			scale = hScale
		}
	}

	dw := int(float64(sw) * scale)
	dh := int(float64(sh) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}
	if dw == sw && dh == sh {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
