package audit

import (
	"context"
	"testing"
	"time"

	"nftproxy/chain"
	"nftproxy/errkind"
	"nftproxy/metadata"
	"nftproxy/pinprobe"
)

type fakeMetadataResolver struct {
	record metadata.Record
	err    error
}

func (f *fakeMetadataResolver) Resolve(ctx context.Context, chainID chain.ID, contract, tokenID string, opts metadata.Options) (metadata.Record, error) {
	return f.record, f.err
}

type fakePinProber struct {
	status pinprobe.Status
}

func (f *fakePinProber) Probe(uri string) pinprobe.Status { return f.status }

func TestAuditMetadataFailureSetsBothFlagsFalse(t *testing.T) {
	meta := &fakeMetadataResolver{err: errkind.New(errkind.RPC, "all endpoints failed", true)}
	c := New(meta, &fakePinProber{})
	c.now = func() time.Time { return time.Unix(0, 0) }

	record := c.Audit(context.Background(), chain.Ethereum, "0xabc", "1")
	if record.MetadataOk || record.ImageOk {
		t.Errorf("expected both flags false on metadata failure, got metadataOk=%v imageOk=%v", record.MetadataOk, record.ImageOk)
	}
	if record.ErrorKind != errkind.RPC || !record.IsTransient {
		t.Errorf("expected rpc/transient classification, got kind=%s transient=%v", record.ErrorKind, record.IsTransient)
	}
}

func TestAuditNoImageFieldIsImageOk(t *testing.T) {
	meta := &fakeMetadataResolver{record: metadata.Record{MetadataURI: "data:,{}", MetadataURL: "data:,{}"}}
	c := New(meta, &fakePinProber{})
	c.now = func() time.Time { return time.Unix(0, 0) }

	record := c.Audit(context.Background(), chain.Ethereum, "0xabc", "1")
	if !record.MetadataOk {
		t.Fatal("expected metadataOk = true")
	}
	if !record.ImageOk {
		t.Error("expected imageOk = true when no image field is present")
	}
}

func TestAuditImageCheckSuccess(t *testing.T) {
	meta := &fakeMetadataResolver{record: metadata.Record{
		MetadataURI: "data:,{}",
		MetadataURL: "data:,{}",
		ImageURI:    "ipfs://Qm123/a.png",
		ImageURL:    "https://ipfs.io/ipfs/Qm123/a.png",
	}}
	c := New(meta, &fakePinProber{status: pinprobe.Available})
	c.now = func() time.Time { return time.Unix(0, 0) }
	c.checkImg = func(ctx context.Context, url string) (imageCheckResult, error) {
		return imageCheckResult{contentType: "image/png", sizeBytes: 2048}, nil
	}

	record := c.Audit(context.Background(), chain.Ethereum, "0xabc", "1")
	if !record.ImageOk {
		t.Fatal("expected imageOk = true")
	}
	if record.ImageFormat != FormatPNG {
		t.Errorf("ImageFormat = %q, want png", record.ImageFormat)
	}
	if record.ImageStorage != "ipfs" {
		t.Errorf("ImageStorage = %q, want ipfs", record.ImageStorage)
	}
	if record.ImageIpfsPinStatus != string(pinprobe.Available) {
		t.Errorf("ImageIpfsPinStatus = %q, want available", record.ImageIpfsPinStatus)
	}
}

func TestAuditImageCheckFailureClassifiesError(t *testing.T) {
	meta := &fakeMetadataResolver{record: metadata.Record{
		MetadataURI: "data:,{}",
		MetadataURL: "data:,{}",
		ImageURI:    "https://example.com/a.png",
		ImageURL:    "https://example.com/a.png",
	}}
	c := New(meta, &fakePinProber{})
	c.now = func() time.Time { return time.Unix(0, 0) }
	c.checkImg = func(ctx context.Context, url string) (imageCheckResult, error) {
		return imageCheckResult{}, errkind.New(errkind.ImageFetch, "both HEAD and GET failed", true)
	}

	record := c.Audit(context.Background(), chain.Ethereum, "0xabc", "1")
	if record.ImageOk {
		t.Fatal("expected imageOk = false")
	}
	if record.ErrorKind != errkind.ImageFetch {
		t.Errorf("ErrorKind = %q, want image_fetch", record.ErrorKind)
	}
}
