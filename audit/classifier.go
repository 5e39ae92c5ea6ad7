package audit

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"nftproxy/chain"
	"nftproxy/config"
	"nftproxy/errkind"
	"nftproxy/metadata"
	"nftproxy/pinprobe"
	"nftproxy/storage"
)

// metadataResolver is the subset of *metadata.Resolver this package needs.
type metadataResolver interface {
	Resolve(ctx context.Context, chainID chain.ID, contract, tokenID string, opts metadata.Options) (metadata.Record, error)
}

// pinProber is the subset of *pinprobe.Prober this package needs.
type pinProber interface {
	Probe(uri string) pinprobe.Status
}

// Classifier runs the health audit for one token, per spec.md §4.8.
type Classifier struct {
	metadata metadataResolver
	pin      pinProber
	checkImg func(ctx context.Context, url string) (imageCheckResult, error)
	now      func() time.Time
}

// New constructs a Classifier wired to the given metadata resolver and pin
// prober.
func New(resolver metadataResolver, pin pinProber) *Classifier {
	return &Classifier{
		metadata: resolver,
		pin:      pin,
		checkImg: checkImageURL,
		now:      time.Now,
	}
}

// Audit runs the full health classification for (chainID, contract,
// tokenID), per spec.md §4.8 steps 1-7.
func (c *Classifier) Audit(ctx context.Context, chainID chain.ID, contract, tokenID string) Record {
	record := Record{Contract: contract, TokenID: tokenID}

	start := c.now()
	meta, err := c.metadata.Resolve(ctx, chainID, contract, tokenID, metadata.Options{})
	record.MetadataResponseTimeMs = c.now().Sub(start).Milliseconds()
	record.MetadataIsSlow = time.Duration(record.MetadataResponseTimeMs)*time.Millisecond > config.SlowResponseThreshold

	if err != nil {
		applyError(&record, err)
		record.MetadataOk = false
		record.ImageOk = false
		return record
	}

	record.MetadataOk = true
	record.MetadataURI = meta.MetadataURI
	metaCategory, metaDomain := storage.Classify(meta.MetadataURL)
	record.MetadataStorage = string(metaCategory)
	record.MetadataCentralizedDomain = metaDomain
	if metaCategory == storage.IPFS {
		record.MetadataIpfsPinStatus = string(c.pin.Probe(meta.MetadataURI))
	}

	if meta.ImageURL == "" {
		record.ImageOk = true
		return record
	}
	record.ImageURI = meta.ImageURI

	c.classifyImage(ctx, &record, meta.ImageURL)
	return record
}

func (c *Classifier) classifyImage(ctx context.Context, record *Record, imageURL string) {
	imgCategory, imgDomain := storage.Classify(imageURL)
	record.ImageStorage = string(imgCategory)
	record.ImageCentralizedDomain = imgDomain
	if imgCategory == storage.IPFS {
		record.ImageIpfsPinStatus = string(c.pin.Probe(imageURL))
	}

	start := c.now()
	result, err := c.checkImg(ctx, imageURL)
	record.ImageResponseTimeMs = c.now().Sub(start).Milliseconds()
	record.ImageIsSlow = time.Duration(record.ImageResponseTimeMs)*time.Millisecond > config.SlowResponseThreshold

	if err != nil {
		applyError(record, err)
		record.ImageOk = false
		return
	}

	record.ImageOk = true
	record.ImageFormat = sniffFormat(result.contentType)
	record.ImageSizeBytes = result.sizeBytes
}

func applyError(record *Record, err error) {
	if kindErr, ok := errkind.As(err); ok {
		record.ErrorKind = kindErr.Kind
		record.IsTransient = kindErr.Transient
		record.Message = kindErr.Message
		return
	}
	record.ErrorKind = errkind.Unknown
	record.IsTransient = false
	record.Message = err.Error()
}

type imageCheckResult struct {
	contentType string
	sizeBytes   int64
}

var imageCheckClient = &http.Client{}

// checkImageURL performs the HEAD-then-ranged-GET check spec.md §4.8 step 4
// describes: HEAD first (5s timeout); on non-2xx or a refused HEAD, fall
// back to a ranged GET for the first 11 bytes. Response-header introspection
// (Content-Type, Content-Length) is the one place this module reaches for
// net/http directly rather than the Fiber client — see DESIGN.md.
func checkImageURL(ctx context.Context, url string) (imageCheckResult, error) {
	headCtx, cancel := context.WithTimeout(ctx, config.HealthProbeTimeout)
	defer cancel()

	if headReq, err := http.NewRequestWithContext(headCtx, http.MethodHead, url, nil); err == nil {
		if resp, err := imageCheckClient.Do(headReq); err == nil {
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return imageCheckResult{
					contentType: resp.Header.Get("Content-Type"),
					sizeBytes:   resp.ContentLength,
				}, nil
			}
		}
	}

	getCtx, cancel2 := context.WithTimeout(ctx, config.HealthProbeTimeout)
	defer cancel2()

	getReq, err := http.NewRequestWithContext(getCtx, http.MethodGet, url, nil)
	if err != nil {
		return imageCheckResult{}, errkind.New(errkind.ImageFetch, fmt.Sprintf("building image check request: %v", err), false)
	}
	getReq.Header.Set("Range", "bytes=0-10")

	resp, err := imageCheckClient.Do(getReq)
	if err != nil {
		return imageCheckResult{}, errkind.New(errkind.ImageFetch, fmt.Sprintf("image check failed: %v", err), true)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return imageCheckResult{}, errkind.New(errkind.ImageFetch, fmt.Sprintf("image check returned status %d", resp.StatusCode), false)
	}

	body := make([]byte, 11)
	n, _ := resp.Body.Read(body)
	return imageCheckResult{contentType: resp.Header.Get("Content-Type"), sizeBytes: int64(n)}, nil
}

func sniffFormat(contentType string) ImageFormat {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "png"):
		return FormatPNG
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "jpg"):
		return FormatJPEG
	case strings.Contains(ct, "gif"):
		return FormatGIF
	case strings.Contains(ct, "webp"):
		return FormatWebP
	case strings.Contains(ct, "svg"):
		return FormatSVG
	case strings.Contains(ct, "bmp"):
		return FormatBMP
	case strings.Contains(ct, "avif"):
		return FormatAVIF
	default:
		return FormatUnknown
	}
}
