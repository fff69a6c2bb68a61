package memory

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/repositories"
)

func newChoice(t *testing.T, name string, keys ...entities.ActualPartKey) *entities.ChoicePart {
	t.Helper()
	part, err := entities.NewChoicePart(name, "fp", "", keys...)
	if err != nil {
		t.Fatalf("Failed to build choice part %q: %v", name, err)
	}
	return part
}

func TestPartCatalog_DuplicateRegistrationFirstWins(t *testing.T) {
	catalog := NewPartCatalog(2, nil)

	first := newChoice(t, "10K;1608", entities.ActualPartKey{Manufacturer: "Yageo", PartNumber: "A"})
	second := newChoice(t, "10K;1608", entities.ActualPartKey{Manufacturer: "Vishay", PartNumber: "B"})

	catalog.RegisterChoicePart(first)
	catalog.RegisterChoicePart(second)

	if catalog.DuplicateCount() != 1 {
		t.Errorf("Expected 1 duplicate, got %d", catalog.DuplicateCount())
	}

	part, err := catalog.Lookup("10K;1608")
	if err != nil {
		t.Fatalf("Expected lookup to succeed: %v", err)
	}
	choice, ok := part.(*entities.ChoicePart)
	if !ok {
		t.Fatalf("Expected a choice part, got %T", part)
	}
	if choice.ActualPartKeys[0].Manufacturer != "Yageo" {
		t.Errorf("Expected first registration to win, got %s", choice.ActualPartKeys[0].Manufacturer)
	}
}

func TestPartCatalog_LookupMiss(t *testing.T) {
	catalog := NewPartCatalog(0, nil)

	_, err := catalog.Lookup("MISSING;1608")
	if !errors.Is(err, repositories.ErrPartNotFound) {
		t.Errorf("Expected ErrPartNotFound, got %v", err)
	}
}

func TestPartCatalog_CollectActualParts(t *testing.T) {
	catalog := NewPartCatalog(2, nil)

	shared := entities.ActualPartKey{Manufacturer: "Yageo", PartNumber: "RC0603FR-0710KL"}
	catalog.RegisterChoicePart(newChoice(t, "10K;1608", shared))
	catalog.RegisterChoicePart(newChoice(t, "10K-PULL;1608", shared,
		entities.ActualPartKey{Manufacturer: "Vishay", PartNumber: "CRCW060310K0FKEA"}))

	catalog.CollectActualParts()

	if catalog.DuplicateCount() != 1 {
		t.Errorf("Expected 1 duplicate actual part, got %d", catalog.DuplicateCount())
	}

	// Repeat calls must not re-count duplicates.
	catalog.CollectActualParts()
	if catalog.DuplicateCount() != 1 {
		t.Errorf("Expected CollectActualParts to be idempotent, got %d duplicates", catalog.DuplicateCount())
	}

	if _, err := catalog.ActualPart(shared); err != nil {
		t.Errorf("Expected shared key to resolve: %v", err)
	}
}

func TestPartCatalog_AttachQuotes(t *testing.T) {
	catalog := NewPartCatalog(1, nil)
	key := entities.ActualPartKey{Manufacturer: "Yageo", PartNumber: "RC0603FR-0710KL"}
	catalog.RegisterChoicePart(newChoice(t, "10K;1608", key))
	catalog.CollectActualParts()

	quote := entities.VendorQuote{
		ActualKey: key, VendorName: "Digi-Key", VendorPartName: "311-10.0KHRCT-ND",
		Available: 1000,
		Breaks:    []entities.PriceBreak{{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.10")}},
	}
	if err := catalog.AttachQuotes(key, []entities.VendorQuote{quote}); err != nil {
		t.Fatalf("Expected AttachQuotes to succeed: %v", err)
	}

	actual, err := catalog.ActualPart(key)
	if err != nil {
		t.Fatalf("Expected actual part lookup to succeed: %v", err)
	}
	if len(actual.Quotes) != 1 {
		t.Errorf("Expected 1 quote, got %d", len(actual.Quotes))
	}

	missing := entities.ActualPartKey{Manufacturer: "Nobody", PartNumber: "NOPE"}
	if err := catalog.AttachQuotes(missing, nil); !errors.Is(err, repositories.ErrPartNotFound) {
		t.Errorf("Expected ErrPartNotFound for unknown key, got %v", err)
	}
}
