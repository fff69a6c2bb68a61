package entities

import "github.com/shopspring/decimal"

// SelectionResult is the chosen (actual part, vendor quote, price break)
// triple for one choice part. It is derived state: recomputed whenever the
// excluded-vendor set changes and never persisted.
type SelectionResult struct {
	Choice           PartName
	RequiredQuantity int
	ActualKey        ActualPartKey
	VendorName       string
	VendorPartName   string
	PriceBreakIndex  int
	OrderQuantity    int
	TotalCost        decimal.Decimal
}
