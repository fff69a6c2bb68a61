package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/csv"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/memory"
	"github.com/waynegramlich/bom-manager-sub001/pkg/interfaces/cli/commands"
)

func main() {
	// Command line flags
	var (
		partsFile      = flag.String("parts", "", "Path to choice parts CSV file")
		quotesFile     = flag.String("quotes", "", "Path to vendor quotes CSV file")
		boardsFile     = flag.String("boards", "", "Path to boards CSV file")
		boardPartsFile = flag.String("board-parts", "", "Path to board parts CSV file")
		configFile     = flag.String("config", "", "Path to TOML configuration file (optional)")
		name           = flag.String("name", "order", "Order name used in reports")
		outputDir      = flag.String("output", "", "Output directory for report files (optional)")
		format         = flag.String("format", "text", "Output format: text, csv")
		exclude        = flag.String("exclude", "", "Comma-separated vendors to exclude")
		includeOnly    = flag.String("include-only", "", "Comma-separated vendor allow-list")
		verbose        = flag.Bool("verbose", false, "Enable verbose output")
		help           = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	catalog, provider, err := loadCatalog(*partsFile, *quotesFile, *help, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	config := commands.Config{
		Name:            *name,
		BoardsFile:      *boardsFile,
		BoardPartsFile:  *boardPartsFile,
		ConfigFile:      *configFile,
		OutputDir:       *outputDir,
		Format:          *format,
		ExcludedVendors: *exclude,
		AllowedVendors:  *includeOnly,
		Verbose:         *verbose,
		Help:            *help,
	}

	cmd := commands.NewOrderCommand(config, catalog, provider, logger)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadCatalog builds the part catalog and quote provider from the parts and
// quotes CSV files. When -help is set the inputs may be absent.
func loadCatalog(partsFile, quotesFile string, help bool, logger *log.Logger) (*memory.PartCatalog, *memory.StaticQuoteProvider, error) {
	if help {
		return memory.NewPartCatalog(0, logger), memory.NewStaticQuoteProvider(nil), nil
	}
	if partsFile == "" {
		return nil, nil, fmt.Errorf("parts file is required")
	}
	if quotesFile == "" {
		return nil, nil, fmt.Errorf("quotes file is required")
	}

	loader := csv.NewLoader()
	parts, err := loader.LoadChoiceParts(partsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading parts: %w", err)
	}
	quotes, err := loader.LoadVendorQuotes(quotesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading quotes: %w", err)
	}

	catalog := memory.NewPartCatalog(len(parts), logger)
	for _, part := range parts {
		catalog.RegisterChoicePart(part)
	}
	return catalog, memory.NewStaticQuoteProvider(quotes), nil
}
