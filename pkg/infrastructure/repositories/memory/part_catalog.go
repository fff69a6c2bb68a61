package memory

import (
	"github.com/charmbracelet/log"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
)

// PartCatalog provides in-memory part storage. Schematic parts live in an
// arena slice with a name index; actual parts are deduplicated into their
// own arena during CollectActualParts.
type PartCatalog struct {
	parts    []entities.SchematicPart
	partsMap map[entities.PartName]int

	actualParts []entities.ActualPart
	actualsMap  map[entities.ActualPartKey]int

	duplicates int
	collected  bool
	logger     *log.Logger
}

// NewPartCatalog creates an in-memory part catalog sized for the expected
// number of schematic parts.
func NewPartCatalog(expectedParts int, logger *log.Logger) *PartCatalog {
	if logger == nil {
		logger = log.Default()
	}
	return &PartCatalog{
		parts:      make([]entities.SchematicPart, 0, expectedParts),
		partsMap:   make(map[entities.PartName]int, expectedParts),
		actualsMap: make(map[entities.ActualPartKey]int),
		logger:     logger,
	}
}

// Verify interface compliance
var _ repositories.PartCatalog = (*PartCatalog)(nil)

// RegisterChoicePart adds a choice part; a duplicate name is a non-fatal
// warning and the first registration wins.
func (c *PartCatalog) RegisterChoicePart(part *entities.ChoicePart) {
	c.register(part)
}

// RegisterAliasPart adds an alias part under the same duplicate rules.
func (c *PartCatalog) RegisterAliasPart(part *entities.AliasPart) {
	c.register(part)
}

// RegisterFractionalPart adds a fractional part under the same duplicate rules.
func (c *PartCatalog) RegisterFractionalPart(part *entities.FractionalPart) {
	c.register(part)
}

func (c *PartCatalog) register(part entities.SchematicPart) {
	name := part.PartName()
	if _, exists := c.partsMap[name]; exists {
		c.duplicates++
		c.logger.Warn("duplicate schematic part registration ignored", "part", name)
		return
	}
	c.partsMap[name] = len(c.parts)
	c.parts = append(c.parts, part)
}

// Lookup returns the schematic part registered under name.
func (c *PartCatalog) Lookup(name entities.PartName) (entities.SchematicPart, error) {
	index, exists := c.partsMap[name]
	if !exists {
		return nil, repositories.ErrPartNotFound
	}
	return c.parts[index], nil
}

// AllParts returns every registered schematic part in registration order.
func (c *PartCatalog) AllParts() []entities.SchematicPart {
	parts := make([]entities.SchematicPart, len(c.parts))
	copy(parts, c.parts)
	return parts
}

// CollectActualParts walks every choice part and deduplicates the actual
// parts they reference. A (manufacturer, part number) key seen twice is a
// non-fatal warning; the first instance wins. Repeat calls are no-ops.
func (c *PartCatalog) CollectActualParts() {
	if c.collected {
		return
	}
	c.collected = true
	for _, part := range c.parts {
		choice, ok := part.(*entities.ChoicePart)
		if !ok {
			continue
		}
		for _, key := range choice.ActualPartKeys {
			if _, exists := c.actualsMap[key]; exists {
				c.duplicates++
				c.logger.Warn("duplicate actual part discarded",
					"manufacturer", key.Manufacturer, "part_number", key.PartNumber)
				continue
			}
			c.actualsMap[key] = len(c.actualParts)
			c.actualParts = append(c.actualParts, entities.ActualPart{Key: key})
		}
	}
}

// ActualPart returns the deduplicated actual part for key.
func (c *PartCatalog) ActualPart(key entities.ActualPartKey) (*entities.ActualPart, error) {
	index, exists := c.actualsMap[key]
	if !exists {
		return nil, repositories.ErrPartNotFound
	}
	return &c.actualParts[index], nil
}

// AttachQuotes appends vendor quotes to the actual part for key.
func (c *PartCatalog) AttachQuotes(key entities.ActualPartKey, quotes []entities.VendorQuote) error {
	index, exists := c.actualsMap[key]
	if !exists {
		return repositories.ErrPartNotFound
	}
	part := &c.actualParts[index]
	for _, quote := range quotes {
		part.AppendQuote(quote)
	}
	return nil
}

// DuplicateCount reports how many duplicate registrations were discarded.
func (c *PartCatalog) DuplicateCount() int {
	return c.duplicates
}
