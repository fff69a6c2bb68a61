package services

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
)

// ErrUnfulfillable reports that no vendor quote can satisfy a choice part
// under the current exclusion set. It is a per-part reporting signal, not a
// fatal error: the caller counts it and keeps going.
var ErrUnfulfillable = errors.New("no fulfillable vendor quote")

// ChoicePartSelector picks the lowest-total-cost (actual part, vendor quote,
// price break) triple for one choice part.
type ChoicePartSelector struct {
	catalog repositories.PartCatalog
}

// NewChoicePartSelector creates a selector over catalog.
func NewChoicePartSelector(catalog repositories.PartCatalog) *ChoicePartSelector {
	return &ChoicePartSelector{catalog: catalog}
}

// candidate is one feasible triple. The three indices exist purely as a
// deterministic tie-break, not a business preference.
type candidate struct {
	totalCost     decimal.Decimal
	orderQuantity int
	actualIndex   int
	quoteIndex    int
	breakIndex    int
	actualKey     entities.ActualPartKey
	quote         entities.VendorQuote
}

// Select enumerates every eligible triple for choice and returns the one
// minimizing (total cost, order quantity, actual index, quote index, break
// index). A vendor in excluded is skipped, as is any quote whose available
// stock cannot cover the order quantity, where the order quantity is the
// larger of the required quantity and the break's minimum.
func (s *ChoicePartSelector) Select(
	choice *entities.ChoicePart,
	required int,
	excluded map[string]bool,
) (*entities.SelectionResult, error) {
	var candidates []candidate

	for actualIndex, key := range choice.ActualPartKeys {
		actual, err := s.catalog.ActualPart(key)
		if err != nil {
			// Key was deduplicated away or never collected; nothing to price.
			continue
		}
		for quoteIndex, quote := range actual.Quotes {
			if excluded[quote.VendorName] {
				continue
			}
			for breakIndex, priceBreak := range quote.Breaks {
				orderQuantity := required
				if priceBreak.MinQuantity > orderQuantity {
					orderQuantity = priceBreak.MinQuantity
				}
				if quote.Available < orderQuantity {
					continue
				}
				totalCost := priceBreak.UnitPrice.Mul(decimal.NewFromInt(int64(orderQuantity)))
				candidates = append(candidates, candidate{
					totalCost:     totalCost,
					orderQuantity: orderQuantity,
					actualIndex:   actualIndex,
					quoteIndex:    quoteIndex,
					breakIndex:    breakIndex,
					actualKey:     key,
					quote:         quote,
				})
			}
		}
	}

	if len(candidates) == 0 {
		return nil, ErrUnfulfillable
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if cmp := a.totalCost.Cmp(b.totalCost); cmp != 0 {
			return cmp < 0
		}
		if a.orderQuantity != b.orderQuantity {
			return a.orderQuantity < b.orderQuantity
		}
		if a.actualIndex != b.actualIndex {
			return a.actualIndex < b.actualIndex
		}
		if a.quoteIndex != b.quoteIndex {
			return a.quoteIndex < b.quoteIndex
		}
		return a.breakIndex < b.breakIndex
	})

	best := candidates[0]
	return &entities.SelectionResult{
		Choice:           choice.Name,
		RequiredQuantity: required,
		ActualKey:        best.actualKey,
		VendorName:       best.quote.VendorName,
		VendorPartName:   best.quote.VendorPartName,
		PriceBreakIndex:  best.breakIndex,
		OrderQuantity:    best.orderQuantity,
		TotalCost:        best.totalCost,
	}, nil
}
