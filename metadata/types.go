// Package metadata resolves a token's metadata document: URI resolution via
// rpcresolver, data:/HTTP fetch, JSON parsing, and image-field extraction,
// per spec.md §4.4.
package metadata

// Record is the resolved metadata for one token. ImageURI and ImageURL are
// empty when the metadata document carries no recognized image field —
// absence, not failure (spec.md §3 invariant: "imageOk is true when metadata
// successfully resolved but carries no image field").
type Record struct {
	Contract    string `json:"contract"`
	TokenID     string `json:"tokenId"`
	MetadataURI string `json:"metadataUri"`
	MetadataURL string `json:"metadataUrl"`
	Metadata    any    `json:"metadata"`
	ImageURI    string `json:"imageUri,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// imageFieldNames is the canonical set of JSON object keys checked, in
// order, for the metadata document's image reference (spec.md §3).
var imageFieldNames = []string{"image", "image_url", "imageUrl", "imageURI", "imageUri"}
