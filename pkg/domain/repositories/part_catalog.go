package repositories

import (
	"errors"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
)

// ErrPartNotFound is returned when a schematic part name or an actual part
// key is not present in the catalog.
var ErrPartNotFound = errors.New("part not found")

// PartCatalog stores every known schematic part keyed by name and every
// deduplicated actual part keyed by (manufacturer, part number).
//
// Duplicate registrations are non-fatal: the first registration wins and the
// duplicate is reported through the implementation's logger.
type PartCatalog interface {
	// RegisterChoicePart adds a choice part to the catalog.
	RegisterChoicePart(part *entities.ChoicePart)
	// RegisterAliasPart adds an alias part to the catalog.
	RegisterAliasPart(part *entities.AliasPart)
	// RegisterFractionalPart adds a fractional part to the catalog.
	RegisterFractionalPart(part *entities.FractionalPart)

	// Lookup returns the schematic part registered under name, or
	// ErrPartNotFound.
	Lookup(name entities.PartName) (entities.SchematicPart, error)

	// CollectActualParts runs the deduplication pass over every choice
	// part's actual-part references. Must be called after bulk registration
	// and before quotes are attached.
	CollectActualParts()

	// ActualPart returns the deduplicated actual part for key, or
	// ErrPartNotFound.
	ActualPart(key entities.ActualPartKey) (*entities.ActualPart, error)

	// AttachQuotes appends vendor quotes to the actual part for key.
	AttachQuotes(key entities.ActualPartKey, quotes []entities.VendorQuote) error

	// DuplicateCount reports how many duplicate registrations (schematic or
	// actual) were discarded.
	DuplicateCount() int
}
