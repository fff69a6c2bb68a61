package memory

import (
	"sync"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
)

// QuoteCache is a non-persistent quote cache. The map is mutex-guarded so
// that a future concurrent fetch loop cannot corrupt it; the cache is the
// only shared mutable resource in a run.
type QuoteCache struct {
	mu      sync.RWMutex
	entries map[entities.ActualPartKey][]entities.VendorQuote
}

// NewQuoteCache creates an empty in-memory quote cache.
func NewQuoteCache() *QuoteCache {
	return &QuoteCache{entries: make(map[entities.ActualPartKey][]entities.VendorQuote)}
}

// Verify interface compliance
var _ repositories.QuoteCache = (*QuoteCache)(nil)

// Get returns the cached quotes for key.
func (c *QuoteCache) Get(key entities.ActualPartKey) ([]entities.VendorQuote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	quotes, ok := c.entries[key]
	return quotes, ok
}

// Put stores quotes for key, replacing any previous entry.
func (c *QuoteCache) Put(key entities.ActualPartKey, quotes []entities.VendorQuote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = quotes
}

// Save is a no-op for the in-memory cache.
func (c *QuoteCache) Save() error {
	return nil
}

// Len reports how many keys are cached.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
