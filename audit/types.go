// Package audit implements the per-token health classifier: it runs the
// metadata and image fetch pipelines, classifies storage provenance and pin
// status, and measures response latency, per spec.md §4.8.
package audit

import "nftproxy/errkind"

// ImageFormat is a sniffed image content-type classification.
type ImageFormat string

const (
	FormatPNG     ImageFormat = "png"
	FormatJPEG    ImageFormat = "jpeg"
	FormatGIF     ImageFormat = "gif"
	FormatWebP    ImageFormat = "webp"
	FormatSVG     ImageFormat = "svg"
	FormatBMP     ImageFormat = "bmp"
	FormatAVIF    ImageFormat = "avif"
	FormatUnknown ImageFormat = "unknown"
)

// Record is the per-token audit result, per spec.md §3 AuditRecord.
type Record struct {
	Contract string `json:"contract"`
	TokenID  string `json:"tokenId"`

	MetadataOk bool `json:"metadataOk"`
	ImageOk    bool `json:"imageOk"`

	ErrorKind   errkind.Kind `json:"errorKind,omitempty"`
	IsTransient bool         `json:"isTransient,omitempty"`
	Message     string       `json:"message,omitempty"`

	MetadataStorage string `json:"metadataStorage,omitempty"`
	ImageStorage    string `json:"imageStorage,omitempty"`

	MetadataIpfsPinStatus string `json:"metadataIpfsPinStatus,omitempty"`
	ImageIpfsPinStatus    string `json:"imageIpfsPinStatus,omitempty"`

	MetadataCentralizedDomain string `json:"metadataCentralizedDomain,omitempty"`
	ImageCentralizedDomain    string `json:"imageCentralizedDomain,omitempty"`

	MetadataResponseTimeMs int64 `json:"metadataResponseTimeMs"`
	MetadataIsSlow         bool  `json:"metadataIsSlow,omitempty"`
	ImageResponseTimeMs    int64 `json:"imageResponseTimeMs"`
	ImageIsSlow            bool  `json:"imageIsSlow,omitempty"`

	ImageFormat    ImageFormat `json:"imageFormat,omitempty"`
	ImageSizeBytes int64       `json:"imageSizeBytes,omitempty"`

	MetadataURI string `json:"metadataUri,omitempty"`
	ImageURI    string `json:"imageUri,omitempty"`
}
