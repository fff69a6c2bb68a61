// Package config loads order-run settings from a TOML file and turns them
// into a vendor policy. Every field has a default, so an absent file or an
// empty one yields a usable configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/application/services"
)

// Config mirrors the on-disk TOML layout.
type Config struct {
	Order         OrderConfig       `toml:"order"`
	Cache         CacheConfig       `toml:"cache"`
	Vendors       VendorsConfig     `toml:"vendors"`
	ExchangeRates map[string]string `toml:"exchange_rates"`
}

// OrderConfig tunes the vendor-set optimization.
type OrderConfig struct {
	// ShippingThreshold is the assumed per-vendor shipping cost in dollars.
	ShippingThreshold string `toml:"shipping_threshold"`
	// NeverExcludeVendor is immune to the shipping-cost reduction pass.
	NeverExcludeVendor string `toml:"never_exclude_vendor"`
	// AllowedVendors, when set, restricts selection to these vendors.
	AllowedVendors []string `toml:"allowed_vendors"`
	// ExcludedVendors are dropped before any optimization runs.
	ExcludedVendors []string `toml:"excluded_vendors"`
}

// CacheConfig locates the persistent quote cache.
type CacheConfig struct {
	Path     string `toml:"path"`
	TTLHours int    `toml:"ttl_hours"`
}

// VendorsConfig carries per-vendor order minimums (decimal dollar strings)
// and exclusion priorities.
type VendorsConfig struct {
	Minimums   map[string]string `toml:"minimums"`
	Priorities map[string]int    `toml:"priorities"`
}

// Default returns the built-in configuration, matching the vendor policy
// defaults.
func Default() *Config {
	return &Config{
		Order: OrderConfig{
			ShippingThreshold:  "15.00",
			NeverExcludeVendor: "Digi-Key",
		},
		Cache: CacheConfig{
			Path:     ".bom_cache.json",
			TTLHours: 48,
		},
	}
}

// Load reads a TOML configuration file, layering it over the defaults. A
// missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}
	return cfg, nil
}

// VendorPolicy converts the configuration into a vendor policy, starting
// from the built-in tables and overlaying any configured overrides.
func (c *Config) VendorPolicy() (*services.VendorPolicy, error) {
	policy := services.NewVendorPolicy()

	if c.Order.ShippingThreshold != "" {
		threshold, err := decimal.NewFromString(c.Order.ShippingThreshold)
		if err != nil {
			return nil, fmt.Errorf("invalid shipping_threshold %q: %w", c.Order.ShippingThreshold, err)
		}
		policy.ShippingThreshold = threshold
	}
	if c.Order.NeverExcludeVendor != "" {
		policy.NeverExclude = c.Order.NeverExcludeVendor
	}

	for vendor, raw := range c.Vendors.Minimums {
		minimum, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum for vendor %q: %w", vendor, err)
		}
		policy.Minimums[vendor] = minimum
	}
	for vendor, priority := range c.Vendors.Priorities {
		policy.Priorities[vendor] = priority
	}
	for currency, raw := range c.ExchangeRates {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid exchange rate for %q: %w", currency, err)
		}
		policy.ExchangeRates[currency] = rate
	}

	return policy, nil
}
