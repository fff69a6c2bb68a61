package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ActualPartKey identifies a specific manufacturer part.
type ActualPartKey struct {
	Manufacturer string
	PartNumber   string
}

func (k ActualPartKey) String() string {
	return k.Manufacturer + ":" + k.PartNumber
}

// ActualPart is a specific manufacturer part together with the vendor quotes
// collected for it. Quotes grow as they arrive; everything else is immutable
// after catalog load.
type ActualPart struct {
	Key    ActualPartKey
	Quotes []VendorQuote
}

// NewActualPart creates a validated ActualPart.
func NewActualPart(manufacturer, partNumber string) (*ActualPart, error) {
	if manufacturer == "" {
		return nil, fmt.Errorf("manufacturer name cannot be empty")
	}
	if partNumber == "" {
		return nil, fmt.Errorf("manufacturer part number cannot be empty")
	}
	return &ActualPart{Key: ActualPartKey{Manufacturer: manufacturer, PartNumber: partNumber}}, nil
}

// AppendQuote adds a vendor quote to the part.
func (p *ActualPart) AppendQuote(quote VendorQuote) {
	p.Quotes = append(p.Quotes, quote)
}

// VendorKey identifies a vendor's offer for an actual part.
type VendorKey struct {
	VendorName     string
	VendorPartName string
}

// VendorQuote is a distributor's offer for an actual part: its own part
// number, current stock, and a price-break ladder.
type VendorQuote struct {
	ActualKey      ActualPartKey
	VendorName     string
	VendorPartName string
	Available      int
	Currency       string // ISO 4217 code; "" means USD
	Breaks         []PriceBreak
	FetchedAt      time.Time
}

// VendorKey returns the quote's identity key.
func (q VendorQuote) VendorKey() VendorKey {
	return VendorKey{VendorName: q.VendorName, VendorPartName: q.VendorPartName}
}

// PriceBreak is one tier of a vendor's pricing ladder.
type PriceBreak struct {
	MinQuantity int
	UnitPrice   decimal.Decimal
}

// NewPriceBreak creates a validated PriceBreak.
func NewPriceBreak(minQuantity int, unitPrice decimal.Decimal) (PriceBreak, error) {
	if minQuantity <= 0 {
		return PriceBreak{}, fmt.Errorf("price break minimum quantity must be positive, got %d", minQuantity)
	}
	if unitPrice.IsNegative() {
		return PriceBreak{}, fmt.Errorf("price break unit price cannot be negative, got %s", unitPrice)
	}
	return PriceBreak{MinQuantity: minQuantity, UnitPrice: unitPrice}, nil
}
