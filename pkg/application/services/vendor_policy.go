package services

import (
	"github.com/shopspring/decimal"
)

// Auto-assigned vendor priorities start here; the 0-9 band is reserved for
// vendors configured as expensive to order from, and 1000+ for explicitly
// preferred vendors.
const autoPriorityStart = 10

// VendorPolicy carries the ordering business rules: minimum-order
// thresholds, vendor exclusion priorities, the assumed per-vendor shipping
// cost, the vendor that is never auto-excluded, and the fixed exchange-rate
// snapshot used to normalize foreign-currency quotes.
type VendorPolicy struct {
	Minimums          map[string]decimal.Decimal
	Priorities        map[string]int
	ShippingThreshold decimal.Decimal
	NeverExclude      string
	ExchangeRates     map[string]decimal.Decimal

	nextPriority int
}

// NewVendorPolicy creates a policy with the default tables: Verical and
// Chip1Stop carry $100 minimum orders, trans-oceanic vendors sort first for
// exclusion, the major US distributors sort last, and Digi-Key is never
// auto-excluded.
func NewVendorPolicy() *VendorPolicy {
	return &VendorPolicy{
		Minimums: map[string]decimal.Decimal{
			"Verical":   decimal.NewFromInt(100),
			"Chip1Stop": decimal.NewFromInt(100),
		},
		Priorities: map[string]int{
			// 0-9: vendors with significant minimums or trans-oceanic shipping.
			"Verical":                0,
			"Chip1Stop":              1,
			"Farnell element14":      2,
			"element14 Asia-Pacific": 2,
			// 1000+: explicitly preferred vendors.
			"Arrow":         1000,
			"Avnet Express": 1001,
			"Newark":        1002,
			"Mouser":        1003,
			"Digi-Key":      1004,
		},
		ShippingThreshold: decimal.NewFromInt(15),
		NeverExclude:      "Digi-Key",
		ExchangeRates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("1.08"),
			"GBP": decimal.RequireFromString("1.27"),
		},
		nextPriority: autoPriorityStart,
	}
}

// PriorityFor returns the exclusion priority for vendor, assigning an
// increasing value the first time an unknown vendor name is seen.
func (p *VendorPolicy) PriorityFor(vendor string) int {
	if priority, ok := p.Priorities[vendor]; ok {
		return priority
	}
	if p.Priorities == nil {
		p.Priorities = make(map[string]int)
	}
	if p.nextPriority < autoPriorityStart {
		p.nextPriority = autoPriorityStart
	}
	priority := p.nextPriority
	p.Priorities[vendor] = priority
	p.nextPriority++
	return priority
}
