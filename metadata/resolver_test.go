package metadata

import (
	"context"
	"math/big"
	"testing"
	"time"

	"nftproxy/chain"
	"nftproxy/rpcresolver"
)

type fakeURIResolver struct {
	uri   string
	err   error
	calls int
}

func (f *fakeURIResolver) Resolve(ctx context.Context, chainID chain.ID, contract string, tokenID *big.Int, opts rpcresolver.Options) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.uri, nil
}

const validContract = "0x7BD29408F11D2BFC23C34F18275BBF23BB716BC1"

func TestResolveDataURLWithImageField(t *testing.T) {
	rpc := &fakeURIResolver{uri: `data:application/json;base64,eyJuYW1lIjoiVG9rZW4iLCJpbWFnZSI6ImlwZnM6Ly9RbTEyMy97aWR9LnBuZyJ9`}
	r := New(rpc, 8, time.Minute, "https://ipfs.io/ipfs")
	r.now = func() time.Time { return time.Unix(1, 0) }

	record, err := r.Resolve(context.Background(), chain.Ethereum, validContract, "1", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ImageURI != "ipfs://Qm123/{id}.png" {
		t.Errorf("ImageURI = %q", record.ImageURI)
	}
	wantPrefix := "https://ipfs.io/ipfs/Qm123/"
	if len(record.ImageURL) < len(wantPrefix) || record.ImageURL[:len(wantPrefix)] != wantPrefix {
		t.Errorf("ImageURL = %q, want prefix %q", record.ImageURL, wantPrefix)
	}
	if rpc.calls != 1 {
		t.Errorf("expected 1 rpc call, got %d", rpc.calls)
	}
}

func TestResolveCachesAndSkipsSecondRPCCall(t *testing.T) {
	rpc := &fakeURIResolver{uri: `data:application/json,{"name":"x"}`}
	r := New(rpc, 8, time.Minute, "https://ipfs.io/ipfs")
	r.now = func() time.Time { return time.Unix(1, 0) }

	if _, err := r.Resolve(context.Background(), chain.Ethereum, validContract, "1", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Resolve(context.Background(), chain.Ethereum, validContract, "1", Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rpc.calls != 1 {
		t.Errorf("expected cache hit to skip the second rpc call, got %d calls", rpc.calls)
	}
}

func TestResolveSkipCacheForcesFreshFetch(t *testing.T) {
	rpc := &fakeURIResolver{uri: `data:application/json,{"name":"x"}`}
	r := New(rpc, 8, time.Minute, "https://ipfs.io/ipfs")
	r.now = func() time.Time { return time.Unix(1, 0) }

	if _, err := r.Resolve(context.Background(), chain.Ethereum, validContract, "1", Options{SkipCache: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Resolve(context.Background(), chain.Ethereum, validContract, "1", Options{SkipCache: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rpc.calls != 2 {
		t.Errorf("expected skipCache to force 2 rpc calls, got %d", rpc.calls)
	}
}

func TestResolveMissingImageFieldIsNotAnError(t *testing.T) {
	rpc := &fakeURIResolver{uri: `data:application/json,{"name":"no image here"}`}
	r := New(rpc, 8, time.Minute, "https://ipfs.io/ipfs")
	r.now = func() time.Time { return time.Unix(1, 0) }

	record, err := r.Resolve(context.Background(), chain.Ethereum, validContract, "1", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.ImageURI != "" || record.ImageURL != "" {
		t.Errorf("expected empty image fields, got URI=%q URL=%q", record.ImageURI, record.ImageURL)
	}
}

func TestResolveInvalidContractFailsValidation(t *testing.T) {
	rpc := &fakeURIResolver{uri: "data:,ignored"}
	r := New(rpc, 8, time.Minute, "https://ipfs.io/ipfs")

	if _, err := r.Resolve(context.Background(), chain.Ethereum, "not-an-address", "1", Options{}); err == nil {
		t.Fatal("expected a validation error")
	}
	if rpc.calls != 0 {
		t.Errorf("expected validation failure to short-circuit before any rpc call, got %d", rpc.calls)
	}
}

func TestResolveNegativeTokenIDFailsValidation(t *testing.T) {
	rpc := &fakeURIResolver{uri: "data:,ignored"}
	r := New(rpc, 8, time.Minute, "https://ipfs.io/ipfs")

	if _, err := r.Resolve(context.Background(), chain.Ethereum, validContract, "-1", Options{}); err == nil {
		t.Fatal("expected a validation error for negative token id")
	}
}
