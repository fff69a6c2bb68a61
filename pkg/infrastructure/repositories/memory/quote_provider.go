package memory

import (
	"context"
	"time"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
)

// StaticQuoteProvider serves vendor quotes from a preloaded table, typically
// read from a quotes CSV. An actual part with no entry yields zero quotes,
// the same shape a live vendor lookup returns for an unknown part.
type StaticQuoteProvider struct {
	quotes map[entities.ActualPartKey][]entities.VendorQuote
}

// NewStaticQuoteProvider creates a provider over quotes.
func NewStaticQuoteProvider(quotes map[entities.ActualPartKey][]entities.VendorQuote) *StaticQuoteProvider {
	if quotes == nil {
		quotes = make(map[entities.ActualPartKey][]entities.VendorQuote)
	}
	return &StaticQuoteProvider{quotes: quotes}
}

// Verify interface compliance
var _ repositories.QuoteProvider = (*StaticQuoteProvider)(nil)

// Fetch returns the stored quotes for part, stamped with the current time.
func (p *StaticQuoteProvider) Fetch(ctx context.Context, part *entities.ActualPart) ([]entities.VendorQuote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stored := p.quotes[part.Key]
	quotes := make([]entities.VendorQuote, len(stored))
	copy(quotes, stored)
	now := time.Now()
	for i := range quotes {
		quotes[i].FetchedAt = now
	}
	return quotes, nil
}
