// Package uriutil implements the URI-level primitives spec.md §4.2 requires:
// data: URL decoding, ipfs:// gateway rewriting, and ERC-1155 {id} template
// substitution. Pure in-memory computation, no network.
package uriutil

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"nftproxy/errkind"
)

// DecodeDataURL decodes a data: URL per the token-split grammar spec.md §9
// settles on (not the regex variant): the prefix up to the first comma is
// split on ';'; the first token containing '/' is the mime type (default
// application/octet-stream); if any token equals "base64" the payload is
// base64-decoded, otherwise it is percent-decoded ('+' stays a literal '+').
func DecodeDataURL(uri string) (mime string, data []byte, err error) {
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return "", nil, errkind.New(errkind.Parsing, "not a data: URL", false)
	}
	rest := uri[len(prefix):]

	commaIdx := strings.IndexByte(rest, ',')
	if commaIdx < 0 {
		return "", nil, errkind.New(errkind.Parsing, "data: URL missing comma separator", false)
	}

	head := rest[:commaIdx]
	payload := rest[commaIdx+1:]

	mime = "application/octet-stream"
	isBase64 := false
	if head != "" {
		for _, tok := range strings.Split(head, ";") {
			if tok == "base64" {
				isBase64 = true
				continue
			}
			if strings.Contains(tok, "/") && mime == "application/octet-stream" {
				mime = tok
			}
		}
	}

	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, errkind.New(errkind.Parsing, fmt.Sprintf("malformed base64 payload: %v", err), false)
		}
		return mime, data, nil
	}

	decoded, err := url.PathUnescape(payload)
	if err != nil {
		return "", nil, errkind.New(errkind.Parsing, fmt.Sprintf("malformed percent-encoded payload: %v", err), false)
	}
	return mime, []byte(decoded), nil
}

// EncodeDataURL is the inverse of DecodeDataURL, used by round-trip tests
// and by any caller that needs to re-serialize on-chain metadata.
func EncodeDataURL(mime string, data []byte, useBase64 bool) string {
	var b strings.Builder
	b.WriteString("data:")
	b.WriteString(mime)
	if useBase64 {
		b.WriteString(";base64,")
		b.WriteString(base64.StdEncoding.EncodeToString(data))
	} else {
		b.WriteByte(',')
		b.WriteString(url.PathEscape(string(data)))
	}
	return b.String()
}
