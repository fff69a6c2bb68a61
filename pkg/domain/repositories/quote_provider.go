package repositories

import (
	"context"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
)

// QuoteProvider returns current vendor quotes for an actual part. The
// implementation (web scrape, distributor API) is outside the core; fetches
// must be idempotent and safe to retry. A failed or empty fetch is treated
// by callers as zero quotes, never as a fatal error.
type QuoteProvider interface {
	Fetch(ctx context.Context, part *entities.ActualPart) ([]entities.VendorQuote, error)
}
