package metadata

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"nftproxy/config"
	"nftproxy/errkind"
	"nftproxy/uriutil"
)

// resolveMetadataURL computes the HTTP-resolved form of a raw, contract-
// returned metadata URI: a data: URL passes through unchanged, anything
// else gets its ipfs:// scheme rewritten to the configured gateway
// (spec.md §3 MetadataRecord.metadataUrl).
func resolveMetadataURL(metadataURI, ipfsGateway string) string {
	if strings.HasPrefix(metadataURI, "data:") {
		return metadataURI
	}
	return uriutil.RewriteIPFS(metadataURI, ipfsGateway)
}

// fetchDocument retrieves and JSON-decodes the metadata document at
// metadataURL, per spec.md §4.4 step 4.
func fetchDocument(metadataURL string) (any, error) {
	if strings.HasPrefix(metadataURL, "data:") {
		_, data, err := uriutil.DecodeDataURL(metadataURL)
		if err != nil {
			return nil, err
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errkind.New(errkind.Parsing, fmt.Sprintf("parsing data: URL metadata JSON: %v", err), false)
		}
		return doc, nil
	}

	agent := fiber.Get(metadataURL)
	agent.Timeout(config.MetadataFetchTimeout)
	agent.Set("Accept", "application/json")

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errkind.New(errkind.MetadataFetch, fmt.Sprintf("fetching metadata: %v", errs[0]), true)
	}
	if status < 200 || status >= 300 {
		transient := status != fiber.StatusBadRequest && status != fiber.StatusNotFound && status != fiber.StatusGone
		return nil, errkind.New(errkind.MetadataFetch, fmt.Sprintf("metadata fetch returned status %d", status), transient)
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, errkind.New(errkind.Parsing, fmt.Sprintf("parsing metadata JSON: %v", err), false)
	}
	return doc, nil
}
