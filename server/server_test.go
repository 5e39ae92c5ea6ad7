package server

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nftproxy/audit"
	"nftproxy/chain"
	"nftproxy/imagepipe"
	"nftproxy/metadata"
	"nftproxy/rpcresolver"
	"nftproxy/walletaudit"
	"nftproxy/walletindex"
)

type fakeURIResolver struct {
	uri string
	err error
}

func (f *fakeURIResolver) Resolve(ctx context.Context, chainID chain.ID, contract string, tokenID *big.Int, opts rpcresolver.Options) (string, error) {
	return f.uri, f.err
}

func newTestDeps(uriResolver *fakeURIResolver) Dependencies {
	return Dependencies{
		Metadata:      metadata.New(uriResolver, 10, time.Minute, "https://ipfs.io/ipfs"),
		ImageFetcher:  imagepipe.NewFetcher(10, time.Minute),
		ImagePipeline: imagepipe.NewPipeline(10, time.Minute),
		WalletList:    walletindex.New(""),
		WalletAudit:   walletaudit.New(stubClassifier{}, 2),
	}
}

type stubClassifier struct{}

func (stubClassifier) Audit(ctx context.Context, chainID chain.ID, contract, tokenID string) audit.Record {
	return audit.Record{Contract: contract, TokenID: tokenID, MetadataOk: true, ImageOk: true}
}

const metadataDataURL = "data:application/json;base64,eyJuYW1lIjoiVG9rZW4iLCJpbWFnZSI6ImRhdGE6aW1hZ2UvcG5nO2Jhc2U2NCxpVkJPUncwS0dnbz0ifQ=="

func TestMetadataRouteServesRecordAndETag(t *testing.T) {
	app := New(newTestDeps(&fakeURIResolver{uri: metadataDataURL}))

	req := httptest.NewRequest(http.MethodGet, "/eth/0x7BD29408F11D2BFC23C34F18275BBF23BB716BC1/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("ETag") == "" {
		t.Error("expected an ETag header")
	}

	var record metadata.Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if record.ImageURI == "" {
		t.Error("expected an image URI extracted from the metadata document")
	}
}

func TestMetadataRouteUnknownChainIs400(t *testing.T) {
	app := New(newTestDeps(&fakeURIResolver{uri: metadataDataURL}))

	req := httptest.NewRequest(http.MethodGet, "/notachain/0x7BD29408F11D2BFC23C34F18275BBF23BB716BC1/1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestImageRouteServesDataURLImageBytes(t *testing.T) {
	app := New(newTestDeps(&fakeURIResolver{uri: metadataDataURL}))

	req := httptest.NewRequest(http.MethodGet, "/eth/0x7BD29408F11D2BFC23C34F18275BBF23BB716BC1/1/image?raw=1", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestImageRouteNoImageFieldServesSVGPlaceholder(t *testing.T) {
	noImage := "data:application/json;base64," + base64NoImage
	app := New(newTestDeps(&fakeURIResolver{uri: noImage}))

	req := httptest.NewRequest(http.MethodGet, "/eth/0x7BD29408F11D2BFC23C34F18275BBF23BB716BC1/1/image", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
}

// base64NoImage is `{"name":"Token"}`.
const base64NoImage = "eyJuYW1lIjoiVG9rZW4ifQ=="

func TestAuditRouteRejectsInvalidWallet(t *testing.T) {
	app := New(newTestDeps(&fakeURIResolver{uri: metadataDataURL}))

	req := httptest.NewRequest(http.MethodGet, "/eth/not-a-wallet/audit", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
