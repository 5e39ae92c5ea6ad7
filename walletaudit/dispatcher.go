// Package walletaudit fans a wallet's token list out across the health
// classifier with bounded parallelism, per spec.md §4.9.
package walletaudit

import (
	"context"
	"sync"

	"nftproxy/audit"
	"nftproxy/chain"
	"nftproxy/config"
	"nftproxy/walletindex"
)

// classifier is the subset of *audit.Classifier this package needs.
type classifier interface {
	Audit(ctx context.Context, chainID chain.ID, contract, tokenID string) audit.Record
}

// Dispatcher runs one audit.Classifier.Audit call per token in a wallet's
// holdings, bounding in-flight work to a fixed concurrency.
type Dispatcher struct {
	classifier  classifier
	concurrency int
}

// New constructs a Dispatcher with the given bounded concurrency. A
// concurrency of 0 or less falls back to config.WalletAuditConcurrency.
func New(c classifier, concurrency int) *Dispatcher {
	if concurrency <= 0 {
		concurrency = config.WalletAuditConcurrency
	}
	return &Dispatcher{classifier: c, concurrency: concurrency}
}

// Result pairs one wallet item with its audit outcome.
type Result struct {
	Item   walletindex.Item
	Record audit.Record
}

// Audit dispatches one classifier task per item in items, bounded to the
// dispatcher's configured concurrency (teacher's semaphore + WaitGroup
// idiom from farm.services / portfolio.services, generalized from image
// fetches to audit tasks). Results preserve items' input order regardless
// of completion order, per spec.md §4.9. A context cancellation prevents
// new dispatch; tasks already in flight run to completion, but a task that
// finishes after the cancellation has its record discarded. Items that were
// never dispatched or whose record was discarded carry only their Item.
func (d *Dispatcher) Audit(ctx context.Context, chainID chain.ID, items []walletindex.Item) []Result {
	results := make([]Result, len(items))
	semaphore := make(chan struct{}, d.concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		select {
		case <-ctx.Done():
			results[i] = Result{Item: item}
			continue
		default:
		}

		wg.Add(1)
		semaphore <- struct{}{}
		go func(idx int, it walletindex.Item) {
			defer wg.Done()
			defer func() { <-semaphore }()

			record := d.classifier.Audit(ctx, chainID, it.Contract, it.TokenID)
			if ctx.Err() != nil {
				results[idx] = Result{Item: it}
				return
			}
			results[idx] = Result{Item: it, Record: record}
		}(i, item)
	}

	wg.Wait()
	return results
}
