package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/events"
)

// OrderOptions adjusts how one order run behaves.
type OrderOptions struct {
	// Name labels the order in logs and events.
	Name string
	// ExcludedVendors are never considered, before any optimization runs.
	ExcludedVendors []string
	// AllowedVendors, when non-empty, restricts selection to exactly these
	// vendors and disables the shipping-cost reduction pass.
	AllowedVendors []string
}

// OrderResult is what an order run hands to report generators.
type OrderResult struct {
	// Selections holds one entry per fulfillable choice part, sorted by
	// schematic part name.
	Selections []entities.SelectionResult
	// References maps each choice part to its grouped board-reference text.
	References map[entities.PartName]string
	// BoardCounts maps each choice part to per-board reference counts.
	BoardCounts map[entities.PartName]map[string]int
	// MissingParts counts choice parts with no fulfillable quote.
	MissingParts int
	// ErrorCount counts board parts skipped because their schematic name
	// could not be resolved.
	ErrorCount int
	// ExcludedVendors is the final exclusion set, sorted.
	ExcludedVendors []string
	// VendorMessages explains each exclusion the optimizer made.
	VendorMessages []string
	// TotalCost sums the cost of every selection.
	TotalCost decimal.Decimal
}

// OrderAggregator walks boards to their resolved choice parts, drives the
// quote cache and provider, runs the vendor-set optimizer, and produces the
// final per-part selections. A single unresolved or unfulfillable part never
// aborts the run; such conditions are counted and reported.
type OrderAggregator struct {
	catalog   repositories.PartCatalog
	cache     repositories.QuoteCache
	provider  repositories.QuoteProvider
	resolver  *PartResolver
	selector  *ChoicePartSelector
	optimizer *VendorSetOptimizer
	policy    *VendorPolicy
	events    events.Store
	logger    *log.Logger
	options   OrderOptions

	boards []boardEntry
}

type boardEntry struct {
	board *entities.Board
	parts []entities.BoardPart
}

// NewOrderAggregator wires an aggregator over the given collaborators. A nil
// event store or logger falls back to an in-memory store and the default
// logger.
func NewOrderAggregator(
	catalog repositories.PartCatalog,
	cache repositories.QuoteCache,
	provider repositories.QuoteProvider,
	policy *VendorPolicy,
	store events.Store,
	logger *log.Logger,
	options OrderOptions,
) *OrderAggregator {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = events.NewInMemoryStore()
	}
	if policy == nil {
		policy = NewVendorPolicy()
	}
	selector := NewChoicePartSelector(catalog)
	return &OrderAggregator{
		catalog:   catalog,
		cache:     cache,
		provider:  provider,
		resolver:  NewPartResolver(catalog, logger),
		selector:  selector,
		optimizer: NewVendorSetOptimizer(selector, policy, logger),
		policy:    policy,
		events:    store,
		logger:    logger,
		options:   options,
	}
}

// AddBoard queues a board and its parts for the next Process call.
func (a *OrderAggregator) AddBoard(board *entities.Board, parts []entities.BoardPart) {
	a.boards = append(a.boards, boardEntry{board: board, parts: parts})
}

// Events returns the run's event store.
func (a *OrderAggregator) Events() events.Store {
	return a.events
}

// Process runs the full order pipeline. Only structurally invalid catalog
// data (an inconsistent fractional denominator) or a cache persistence
// failure aborts it; everything else degrades to counters and log entries.
func (a *OrderAggregator) Process(ctx context.Context) (*OrderResult, error) {
	result := &OrderResult{
		References:  make(map[entities.PartName]string),
		BoardCounts: make(map[entities.PartName]map[string]int),
		TotalCost:   decimal.Zero,
	}

	a.catalog.CollectActualParts()

	choiceParts := a.resolveBoards(result)

	if err := a.fetchQuotes(ctx, choiceParts); err != nil {
		return nil, err
	}

	excluded := make(map[string]bool)
	for _, vendor := range a.options.ExcludedVendors {
		excluded[vendor] = true
	}
	if len(a.options.AllowedVendors) > 0 {
		a.applyAllowList(choiceParts, excluded)
	}

	demands := make([]PartDemand, 0, len(choiceParts))
	for _, choice := range choiceParts {
		required, err := a.resolver.RequiredQuantity(choice)
		if err != nil {
			return nil, fmt.Errorf("quantity for %q: %w", choice.Name, err)
		}
		demands = append(demands, PartDemand{Choice: choice, Required: required})
	}

	skipShipping := len(a.options.AllowedVendors) > 0
	messages := a.optimizer.Optimize(demands, excluded, skipShipping)
	for _, message := range messages {
		a.events.Append(events.Event{
			Type:    events.TypeVendorExcluded,
			Stream:  a.options.Name,
			Message: message,
		})
	}
	result.VendorMessages = messages

	for _, demand := range demands {
		selection, err := a.selector.Select(demand.Choice, demand.Required, excluded)
		if err != nil {
			if errors.Is(err, ErrUnfulfillable) {
				result.MissingParts++
				a.logger.Warn("no fulfillable vendor quote", "part", demand.Choice.Name)
				a.events.Append(events.Event{
					Type:    events.TypePartUnfulfilled,
					Stream:  a.options.Name,
					Message: fmt.Sprintf("No vendor quote fulfills %q", demand.Choice.Name),
				})
				continue
			}
			return nil, err
		}
		result.Selections = append(result.Selections, *selection)
		result.TotalCost = result.TotalCost.Add(selection.TotalCost)
		result.References[demand.Choice.Name] = a.resolver.ReferencesText(demand.Choice)
		result.BoardCounts[demand.Choice.Name] = a.resolver.BoardCounts(demand.Choice)
	}

	for vendor := range excluded {
		result.ExcludedVendors = append(result.ExcludedVendors, vendor)
	}
	sort.Strings(result.ExcludedVendors)

	return result, nil
}

// resolveBoards flattens every queued board part into its choice parts,
// deduplicated across boards and sorted by schematic part name. Unresolved
// parts are logged, counted, and skipped.
func (a *OrderAggregator) resolveBoards(result *OrderResult) []*entities.ChoicePart {
	sort.SliceStable(a.boards, func(i, j int) bool {
		return a.boards[i].board.Name < a.boards[j].board.Name
	})

	seen := make(map[entities.PartName]bool)
	var choiceParts []*entities.ChoicePart

	for _, entry := range a.boards {
		parts := append([]entities.BoardPart{}, entry.parts...)
		sort.SliceStable(parts, func(i, j int) bool {
			prefixI, numberI := entities.ReferenceSortKey(parts[i].Reference)
			prefixJ, numberJ := entities.ReferenceSortKey(parts[j].Reference)
			if prefixI != prefixJ {
				return prefixI < prefixJ
			}
			return numberI < numberJ
		})

		for _, boardPart := range parts {
			part, err := a.catalog.Lookup(boardPart.Part)
			if err != nil {
				result.ErrorCount++
				a.logger.Error("schematic part not found",
					"board", entry.board.Name, "reference", boardPart.Reference, "part", boardPart.Part)
				a.events.Append(events.Event{
					Type:   events.TypePartUnresolved,
					Stream: a.options.Name,
					Message: fmt.Sprintf("Board %q reference %q: unknown schematic part %q",
						entry.board.Name, boardPart.Reference, boardPart.Part),
				})
				continue
			}

			resolutions, err := a.resolver.Resolve(part)
			if err != nil {
				result.ErrorCount++
				a.logger.Error("schematic part resolution failed",
					"board", entry.board.Name, "reference", boardPart.Reference, "error", err)
				a.events.Append(events.Event{
					Type:   events.TypePartUnresolved,
					Stream: a.options.Name,
					Message: fmt.Sprintf("Board %q reference %q: %v",
						entry.board.Name, boardPart.Reference, err),
				})
				continue
			}

			for _, resolution := range resolutions {
				if !seen[resolution.Choice.Name] {
					seen[resolution.Choice.Name] = true
					choiceParts = append(choiceParts, resolution.Choice)
				}
				a.resolver.Attach(entry.board, boardPart, resolution)
			}
		}
	}

	sort.Slice(choiceParts, func(i, j int) bool {
		return choiceParts[i].Name < choiceParts[j].Name
	})
	return choiceParts
}

// fetchQuotes loads vendor quotes for every actual part referenced by the
// choice parts, cache-first, with at most one provider fetch per actual part
// per run. A provider failure is treated as zero quotes. The cache is
// persisted once all fetches complete.
func (a *OrderAggregator) fetchQuotes(ctx context.Context, choiceParts []*entities.ChoicePart) error {
	handled := make(map[entities.ActualPartKey]bool)

	for _, choice := range choiceParts {
		for _, key := range choice.ActualPartKeys {
			if handled[key] {
				continue
			}
			handled[key] = true

			quotes, hit := a.cache.Get(key)
			if !hit {
				actual, err := a.catalog.ActualPart(key)
				if err != nil {
					// Dropped during deduplication; nothing to fetch.
					continue
				}
				quotes, err = a.provider.Fetch(ctx, actual)
				if err != nil {
					a.logger.Warn("quote fetch failed, treating as zero quotes",
						"part", key, "error", err)
					quotes = nil
				}
				quotes = a.normalizeQuotes(key, quotes)
				a.cache.Put(key, quotes)
				a.events.Append(events.Event{
					Type:    events.TypeQuotesFetched,
					Stream:  a.options.Name,
					Message: fmt.Sprintf("Fetched %d quotes for %s", len(quotes), key),
				})
			}

			if err := a.catalog.AttachQuotes(key, quotes); err != nil {
				a.logger.Warn("could not attach quotes", "part", key, "error", err)
			}
		}
	}

	if err := a.cache.Save(); err != nil {
		return fmt.Errorf("failed to persist quote cache: %w", err)
	}
	return nil
}

// normalizeQuotes converts foreign-currency price breaks to dollars with the
// policy's fixed exchange-rate snapshot. Quotes in a currency without a
// configured rate cannot be priced and are dropped.
func (a *OrderAggregator) normalizeQuotes(key entities.ActualPartKey, quotes []entities.VendorQuote) []entities.VendorQuote {
	normalized := quotes[:0]
	for _, quote := range quotes {
		currency := quote.Currency
		if currency == "" || currency == "USD" {
			normalized = append(normalized, quote)
			continue
		}
		rate, ok := a.policy.ExchangeRates[currency]
		if !ok {
			a.logger.Warn("dropping quote in unknown currency",
				"part", key, "vendor", quote.VendorName, "currency", currency)
			continue
		}
		converted := quote
		converted.Currency = "USD"
		converted.Breaks = make([]entities.PriceBreak, len(quote.Breaks))
		for i, priceBreak := range quote.Breaks {
			converted.Breaks[i] = entities.PriceBreak{
				MinQuantity: priceBreak.MinQuantity,
				UnitPrice:   priceBreak.UnitPrice.Mul(rate).Round(4),
			}
		}
		normalized = append(normalized, converted)
	}
	return normalized
}

// applyAllowList excludes every vendor quoting the order's parts that is not
// on the caller's allow-list.
func (a *OrderAggregator) applyAllowList(choiceParts []*entities.ChoicePart, excluded map[string]bool) {
	allowed := make(map[string]bool, len(a.options.AllowedVendors))
	for _, vendor := range a.options.AllowedVendors {
		allowed[vendor] = true
	}
	for _, choice := range choiceParts {
		for _, key := range choice.ActualPartKeys {
			actual, err := a.catalog.ActualPart(key)
			if err != nil {
				continue
			}
			for _, quote := range actual.Quotes {
				if !allowed[quote.VendorName] {
					excluded[quote.VendorName] = true
				}
			}
		}
	}
}
