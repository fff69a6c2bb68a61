package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Expected missing config file to not be an error: %v", err)
	}

	policy, err := cfg.VendorPolicy()
	if err != nil {
		t.Fatalf("Expected default policy to build: %v", err)
	}
	if !policy.ShippingThreshold.Equal(decimal.NewFromInt(15)) {
		t.Errorf("Expected default shipping threshold 15, got %s", policy.ShippingThreshold)
	}
	if policy.NeverExclude != "Digi-Key" {
		t.Errorf("Expected default never-exclude Digi-Key, got %s", policy.NeverExclude)
	}
	if cfg.Cache.TTLHours != 48 {
		t.Errorf("Expected default cache TTL 48h, got %d", cfg.Cache.TTLHours)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.toml")
	document := `
[order]
shipping_threshold = "20.00"
never_exclude_vendor = "Mouser"
excluded_vendors = ["Verical"]

[cache]
path = "/tmp/cache.json"
ttl_hours = 24

[vendors.minimums]
"Acme Components" = "50.00"

[vendors.priorities]
"Acme Components" = 5

[exchange_rates]
EUR = "1.10"
JPY = "0.0068"
`
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected load to succeed: %v", err)
	}
	if cfg.Cache.TTLHours != 24 {
		t.Errorf("Expected TTL 24h, got %d", cfg.Cache.TTLHours)
	}
	if len(cfg.Order.ExcludedVendors) != 1 || cfg.Order.ExcludedVendors[0] != "Verical" {
		t.Errorf("Expected excluded vendors [Verical], got %v", cfg.Order.ExcludedVendors)
	}

	policy, err := cfg.VendorPolicy()
	if err != nil {
		t.Fatalf("Expected policy to build: %v", err)
	}
	if !policy.ShippingThreshold.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("Expected shipping threshold 20.00, got %s", policy.ShippingThreshold)
	}
	if policy.NeverExclude != "Mouser" {
		t.Errorf("Expected never-exclude Mouser, got %s", policy.NeverExclude)
	}
	if !policy.Minimums["Acme Components"].Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("Expected Acme minimum 50.00, got %s", policy.Minimums["Acme Components"])
	}
	// Built-in minimums survive an overlay.
	if !policy.Minimums["Verical"].Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected Verical minimum to survive, got %s", policy.Minimums["Verical"])
	}
	if policy.PriorityFor("Acme Components") != 5 {
		t.Errorf("Expected Acme priority 5, got %d", policy.PriorityFor("Acme Components"))
	}
	if !policy.ExchangeRates["JPY"].Equal(decimal.RequireFromString("0.0068")) {
		t.Errorf("Expected JPY rate 0.0068, got %s", policy.ExchangeRates["JPY"])
	}
	// Overridden rate replaces the snapshot value.
	if !policy.ExchangeRates["EUR"].Equal(decimal.RequireFromString("1.10")) {
		t.Errorf("Expected EUR rate 1.10, got %s", policy.ExchangeRates["EUR"])
	}
}

func TestVendorPolicy_BadDecimal(t *testing.T) {
	cfg := Default()
	cfg.Vendors.Minimums = map[string]string{"Acme": "not-a-number"}
	if _, err := cfg.VendorPolicy(); err == nil {
		t.Error("Expected error for malformed minimum")
	}

	cfg = Default()
	cfg.Order.ShippingThreshold = "lots"
	if _, err := cfg.VendorPolicy(); err == nil {
		t.Error("Expected error for malformed shipping threshold")
	}
}
