package repositories

import "github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"

// QuoteCache is a persistent map from an actual part key to the vendor
// quotes last fetched for it. Implementations evict entries older than
// their TTL on load, and drop keys whose quote list becomes empty.
//
// The aggregator checks the cache before calling a QuoteProvider and writes
// through immediately after any successful fetch, so each actual part is
// fetched at most once per run.
type QuoteCache interface {
	// Get returns the cached quotes for key and whether the key was present.
	Get(key entities.ActualPartKey) ([]entities.VendorQuote, bool)
	// Put stores quotes for key, replacing any previous entry.
	Put(key entities.ActualPartKey, quotes []entities.VendorQuote)
	// Save persists the full cache.
	Save() error
}
