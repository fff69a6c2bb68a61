// Package output renders the result of an order run: BOM listings sorted by
// price, vendor, or part name, an order CSV per vendor upload, the vendor
// reduction report, and a per-board assembly summary.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/waynegramlich/bom-manager-sub001/pkg/application/services"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/events"
)

// Config holds configuration for report generation.
type Config struct {
	Format    string // "text" or "csv"
	OutputDir string
	Verbose   bool
}

// Generate renders result in the configured format. Text goes to stdout; when
// an output directory is set, the full report set is written there as well.
func Generate(result *services.OrderResult, store events.Store, config Config) error {
	switch config.Format {
	case "text":
		if err := WriteBOMByPrice(os.Stdout, result); err != nil {
			return err
		}
		if err := WriteSummary(os.Stdout, result); err != nil {
			return err
		}
	case "csv":
		if config.OutputDir == "" {
			return fmt.Errorf("output directory required for csv format")
		}
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}

	if config.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	reports := []struct {
		name  string
		write func(*os.File) error
	}{
		{"bom_by_price.txt", func(f *os.File) error { return WriteBOMByPrice(f, result) }},
		{"bom_by_vendor.txt", func(f *os.File) error { return WriteBOMByVendor(f, result) }},
		{"bom_by_name.txt", func(f *os.File) error { return WriteBOMByName(f, result) }},
		{"order.csv", func(f *os.File) error { return WriteOrderCSV(f, result) }},
		{"vendor_reduction_report.txt", func(f *os.File) error { return WriteVendorReduction(f, store) }},
		{"assembly_summary.txt", func(f *os.File) error { return WriteAssemblySummary(f, result) }},
	}

	for _, report := range reports {
		path := filepath.Join(config.OutputDir, report.name)
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := report.write(file); err != nil {
			file.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		if config.Verbose {
			fmt.Printf("Report saved to: %s\n", path)
		}
	}

	return nil
}
