// Package commands wires the order pipeline behind the CLI: it loads the
// configuration and board CSVs, validates the part catalog, runs the order,
// and hands the result to the report writers.
package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/waynegramlich/bom-manager-sub001/pkg/application/services"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
	domainservices "github.com/waynegramlich/bom-manager-sub001/pkg/domain/services"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/config"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/events"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/csv"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/file"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/memory"
	"github.com/waynegramlich/bom-manager-sub001/pkg/interfaces/cli/output"
)

// Config holds configuration for the order command.
type Config struct {
	Name            string
	BoardsFile      string
	BoardPartsFile  string
	ConfigFile      string
	OutputDir       string
	Format          string
	ExcludedVendors string // comma-separated
	AllowedVendors  string // comma-separated
	Verbose         bool
	Help            bool
}

// OrderCommand runs one procurement order end to end. The part catalog and
// quote provider are supplied by the caller; boards and their references come
// from CSV files.
type OrderCommand struct {
	config   Config
	catalog  *memory.PartCatalog
	provider repositories.QuoteProvider
	logger   *log.Logger
}

// NewOrderCommand creates an order command over a populated catalog and a
// quote provider.
func NewOrderCommand(config Config, catalog *memory.PartCatalog, provider repositories.QuoteProvider, logger *log.Logger) *OrderCommand {
	if logger == nil {
		logger = log.Default()
	}
	return &OrderCommand{config: config, catalog: catalog, provider: provider, logger: logger}
}

// Execute runs the order command.
func (c *OrderCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	cfg, err := config.Load(c.config.ConfigFile)
	if err != nil {
		return err
	}
	policy, err := cfg.VendorPolicy()
	if err != nil {
		return err
	}

	validation := domainservices.NewCatalogValidator().Validate(c.catalog.AllParts())
	if !validation.Valid() {
		return fmt.Errorf("part catalog validation failed: %s",
			strings.Join(validation.Errors, "; "))
	}

	loader := csv.NewLoader()
	boards, err := loader.LoadBoards(c.config.BoardsFile)
	if err != nil {
		return fmt.Errorf("error loading boards: %w", err)
	}
	boardParts, err := loader.LoadBoardParts(c.config.BoardPartsFile, boards)
	if err != nil {
		return fmt.Errorf("error loading board parts: %w", err)
	}

	if c.config.Verbose {
		c.logger.Info("input loaded", "boards", len(boards), "catalog_parts", len(c.catalog.AllParts()))
	}

	cache, err := file.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour, c.logger)
	if err != nil {
		return fmt.Errorf("error opening quote cache: %w", err)
	}

	store := events.NewInMemoryStore()
	aggregator := services.NewOrderAggregator(c.catalog, cache, c.provider, policy, store, c.logger,
		services.OrderOptions{
			Name:            c.config.Name,
			ExcludedVendors: mergeVendorLists(cfg.Order.ExcludedVendors, c.config.ExcludedVendors),
			AllowedVendors:  mergeVendorLists(cfg.Order.AllowedVendors, c.config.AllowedVendors),
		})
	for _, board := range boards {
		aggregator.AddBoard(board, boardParts[board.Name])
	}

	result, err := aggregator.Process(ctx)
	if err != nil {
		return fmt.Errorf("order failed: %w", err)
	}

	if result.ErrorCount > 0 {
		c.logger.Warn("some board references could not be resolved", "errors", result.ErrorCount)
	}
	if result.MissingParts > 0 {
		c.logger.Warn("some parts have no fulfillable vendor quote", "missing", result.MissingParts)
	}

	return output.Generate(result, store, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

func (c *OrderCommand) validateInputs() error {
	if c.config.BoardsFile == "" {
		return fmt.Errorf("boards file is required")
	}
	if c.config.BoardPartsFile == "" {
		return fmt.Errorf("board parts file is required")
	}
	if c.config.Format != "text" && c.config.Format != "csv" {
		return fmt.Errorf("format must be 'text' or 'csv', got %q", c.config.Format)
	}
	return nil
}

// mergeVendorLists combines a configured vendor list with a comma-separated
// command-line override, dropping blanks and duplicates.
func mergeVendorLists(configured []string, flagValue string) []string {
	seen := make(map[string]bool)
	var merged []string
	add := func(vendor string) {
		vendor = strings.TrimSpace(vendor)
		if vendor == "" || seen[vendor] {
			return
		}
		seen[vendor] = true
		merged = append(merged, vendor)
	}
	for _, vendor := range configured {
		add(vendor)
	}
	for _, vendor := range strings.Split(flagValue, ",") {
		add(vendor)
	}
	return merged
}

func (c *OrderCommand) showHelp() {
	fmt.Println(`bom order - resolve a schematic BOM into a vendor order

Usage:
  bom -boards <boards.csv> -board-parts <board_parts.csv> [options]

Options:
  -boards string       Boards CSV file (header: name,count)
  -board-parts string  Board parts CSV file (header: board,reference,part,comment)
  -config string       TOML configuration file
  -name string         Order name used in reports
  -output string       Directory for report files
  -format string       Output format: text or csv (default text)
  -exclude string      Comma-separated vendors to exclude
  -include-only string Comma-separated vendor allow-list (skips shipping pass)
  -verbose             Verbose progress logging
  -help                Show this help`)
}
