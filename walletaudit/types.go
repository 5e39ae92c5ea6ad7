package walletaudit

import (
	"time"

	"nftproxy/audit"
	"nftproxy/chain"
)

// TokenAuditItem pairs one wallet-listing item with its audit outcome.
type TokenAuditItem struct {
	Contract     string       `json:"contract"`
	TokenID      string       `json:"tokenId"`
	Title        string       `json:"title,omitempty"`
	Collection   string       `json:"collection,omitempty"`
	ThumbnailURL string       `json:"thumbnailUrl,omitempty"`
	Audit        audit.Record `json:"audit"`
}

// WalletAuditRecord aggregates a wallet's per-token audits into a single
// scan result.
type WalletAuditRecord struct {
	Chain      chain.ID         `json:"chain"`
	Wallet     string           `json:"wallet"`
	Items      []TokenAuditItem `json:"items"`
	ScannedAt  time.Time        `json:"scannedAt"`
	OKCount    int              `json:"okCount"`
	ErrorCount int              `json:"errorCount"`
}

// Summarize folds a dispatcher's per-item results into a WalletAuditRecord.
// An item counts as ok only when both its metadata and image checks
// succeeded (audit.Record.ImageOk is true for "no image field" too, per the
// classifier's own contract).
func Summarize(chainID chain.ID, wallet string, results []Result, scannedAt time.Time) WalletAuditRecord {
	record := WalletAuditRecord{
		Chain:     chainID,
		Wallet:    wallet,
		Items:     make([]TokenAuditItem, 0, len(results)),
		ScannedAt: scannedAt,
	}

	for _, r := range results {
		record.Items = append(record.Items, TokenAuditItem{
			Contract:     r.Item.Contract,
			TokenID:      r.Item.TokenID,
			Title:        r.Item.Title,
			Collection:   r.Item.Collection,
			ThumbnailURL: r.Item.ThumbnailURL,
			Audit:        r.Record,
		})
		if r.Record.MetadataOk && r.Record.ImageOk {
			record.OKCount++
		} else {
			record.ErrorCount++
		}
	}

	return record
}
