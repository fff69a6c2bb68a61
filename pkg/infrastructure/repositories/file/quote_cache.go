// Package file implements the persistent quote cache as a single versioned
// JSON document on disk, replacing the language-specific object dump the
// cache contract forbids.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
)

// SchemaVersion identifies the persisted cache layout. A document with a
// different version is treated as an empty cache rather than an error.
const SchemaVersion = 1

// DefaultTTL is how long a fetched quote stays usable.
const DefaultTTL = 48 * time.Hour

// QuoteCache is a file-backed quote cache. Entries older than the TTL are
// evicted when the file is loaded; keys whose quote list becomes empty are
// dropped entirely.
type QuoteCache struct {
	path   string
	ttl    time.Duration
	logger *log.Logger

	mu      sync.RWMutex
	entries map[entities.ActualPartKey][]entities.VendorQuote

	// now is swappable for TTL tests.
	now func() time.Time
}

// Verify interface compliance
var _ repositories.QuoteCache = (*QuoteCache)(nil)

// cacheDocument is the on-disk shape of the whole cache.
type cacheDocument struct {
	SchemaVersion int          `json:"schema_version"`
	Entries       []cacheEntry `json:"entries"`
}

type cacheEntry struct {
	Manufacturer string       `json:"manufacturer"`
	PartNumber   string       `json:"manufacturer_part_name"`
	Quotes       []cacheQuote `json:"quotes"`
}

type cacheQuote struct {
	VendorName     string       `json:"vendor_name"`
	VendorPartName string       `json:"vendor_part_name"`
	Available      int          `json:"available_quantity"`
	Currency       string       `json:"currency,omitempty"`
	Breaks         []cacheBreak `json:"price_breaks"`
	FetchedAt      int64        `json:"fetched_at"` // epoch seconds
}

type cacheBreak struct {
	MinQuantity int    `json:"min_quantity"`
	UnitPrice   string `json:"unit_price"`
}

// Open loads the cache at path, evicting quotes older than ttl. A missing
// file yields an empty cache. ttl <= 0 selects DefaultTTL.
func Open(path string, ttl time.Duration, logger *log.Logger) (*QuoteCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	cache := &QuoteCache{
		path:    path,
		ttl:     ttl,
		logger:  logger,
		entries: make(map[entities.ActualPartKey][]entities.VendorQuote),
		now:     time.Now,
	}
	if err := cache.load(); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *QuoteCache) load() error {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read quote cache %s: %w", c.path, err)
	}

	var document cacheDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return fmt.Errorf("failed to parse quote cache %s: %w", c.path, err)
	}
	if document.SchemaVersion != SchemaVersion {
		c.logger.Warn("quote cache schema mismatch, starting empty",
			"path", c.path, "have", document.SchemaVersion, "want", SchemaVersion)
		return nil
	}

	oldest := c.now().Add(-c.ttl)
	evicted := 0
	for _, entry := range document.Entries {
		key := entities.ActualPartKey{
			Manufacturer: entry.Manufacturer,
			PartNumber:   entry.PartNumber,
		}
		var quotes []entities.VendorQuote
		for _, stored := range entry.Quotes {
			fetchedAt := time.Unix(stored.FetchedAt, 0)
			if fetchedAt.Before(oldest) {
				evicted++
				continue
			}
			quote, err := decodeQuote(key, stored, fetchedAt)
			if err != nil {
				return fmt.Errorf("quote cache %s entry %s: %w", c.path, key, err)
			}
			quotes = append(quotes, quote)
		}
		// Keys left with no fresh quotes are dropped entirely.
		if len(quotes) > 0 {
			c.entries[key] = quotes
		}
	}
	if evicted > 0 {
		c.logger.Debug("evicted stale cached quotes", "count", evicted, "ttl", c.ttl)
	}
	return nil
}

func decodeQuote(key entities.ActualPartKey, stored cacheQuote, fetchedAt time.Time) (entities.VendorQuote, error) {
	breaks := make([]entities.PriceBreak, 0, len(stored.Breaks))
	for _, b := range stored.Breaks {
		price, err := decimal.NewFromString(b.UnitPrice)
		if err != nil {
			return entities.VendorQuote{}, fmt.Errorf("bad unit price %q: %w", b.UnitPrice, err)
		}
		breaks = append(breaks, entities.PriceBreak{MinQuantity: b.MinQuantity, UnitPrice: price})
	}
	return entities.VendorQuote{
		ActualKey:      key,
		VendorName:     stored.VendorName,
		VendorPartName: stored.VendorPartName,
		Available:      stored.Available,
		Currency:       stored.Currency,
		Breaks:         breaks,
		FetchedAt:      fetchedAt,
	}, nil
}

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

// Save persists the full cache to its file, creating parent directories as
// needed. Keys are written in a stable order for diff-friendly output.
func (c *QuoteCache) Save() error {
	c.mu.RLock()
	document := cacheDocument{SchemaVersion: SchemaVersion}
	for key, quotes := range c.entries {
		entry := cacheEntry{
			Manufacturer: key.Manufacturer,
			PartNumber:   key.PartNumber,
		}
		for _, quote := range quotes {
			stored := cacheQuote{
				VendorName:     quote.VendorName,
				VendorPartName: quote.VendorPartName,
				Available:      quote.Available,
				Currency:       quote.Currency,
				FetchedAt:      quote.FetchedAt.Unix(),
			}
			for _, b := range quote.Breaks {
				stored.Breaks = append(stored.Breaks, cacheBreak{
					MinQuantity: b.MinQuantity,
					UnitPrice:   b.UnitPrice.String(),
				})
			}
			entry.Quotes = append(entry.Quotes, stored)
		}
		document.Entries = append(document.Entries, entry)
	}
	c.mu.RUnlock()

	sort.Slice(document.Entries, func(i, j int) bool {
		a, b := document.Entries[i], document.Entries[j]
		if a.Manufacturer != b.Manufacturer {
			return a.Manufacturer < b.Manufacturer
		}
		return a.PartNumber < b.PartNumber
	})

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode quote cache: %w", err)
	}
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write quote cache %s: %w", c.path, err)
	}
	return nil
}

// Len reports how many keys are cached.
func (c *QuoteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
