package walletaudit

import (
	"testing"
	"time"

	"nftproxy/audit"
	"nftproxy/chain"
	"nftproxy/walletindex"
)

func TestSummarizeCountsOkAndErrorItems(t *testing.T) {
	results := []Result{
		{
			Item:   walletindex.Item{Contract: "0xa", TokenID: "1"},
			Record: audit.Record{Contract: "0xa", TokenID: "1", MetadataOk: true, ImageOk: true},
		},
		{
			Item:   walletindex.Item{Contract: "0xb", TokenID: "2"},
			Record: audit.Record{Contract: "0xb", TokenID: "2", MetadataOk: false, ImageOk: false},
		},
		{
			Item:   walletindex.Item{Contract: "0xc", TokenID: "3"},
			Record: audit.Record{Contract: "0xc", TokenID: "3", MetadataOk: true, ImageOk: false},
		},
	}
	scannedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got := Summarize(chain.Ethereum, "0xowner", results, scannedAt)

	if got.OKCount != 1 || got.ErrorCount != 2 {
		t.Errorf("OKCount=%d ErrorCount=%d, want 1 and 2", got.OKCount, got.ErrorCount)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got.Items))
	}
	if got.Items[0].Contract != "0xa" || got.Items[0].Audit.MetadataOk != true {
		t.Errorf("unexpected first item: %+v", got.Items[0])
	}
	if got.Wallet != "0xowner" || got.Chain != chain.Ethereum {
		t.Errorf("unexpected wallet/chain: %+v", got)
	}
	if !got.ScannedAt.Equal(scannedAt) {
		t.Errorf("ScannedAt = %v, want %v", got.ScannedAt, scannedAt)
	}
}
