package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	infratesting "github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/testing"
)

func TestChoicePartSelector_PicksCheapestFulfillableBreak(t *testing.T) {
	catalog, resistor := infratesting.BuildResistorTestData()
	selector := NewChoicePartSelector(catalog)

	// VendorA has the better ladder but only 3 in stock; 5 units must come
	// from VendorB, whose 5-break beats its 1-break.
	selection, err := selector.Select(resistor, 5, nil)
	if err != nil {
		t.Fatalf("Expected selection to succeed: %v", err)
	}
	if selection.VendorName != "VendorB" {
		t.Errorf("Expected VendorB, got %s", selection.VendorName)
	}
	if selection.OrderQuantity != 5 {
		t.Errorf("Expected order quantity 5, got %d", selection.OrderQuantity)
	}
	if !selection.TotalCost.Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("Expected total cost 0.30, got %s", selection.TotalCost)
	}
	if selection.RequiredQuantity != 5 {
		t.Errorf("Expected required quantity 5, got %d", selection.RequiredQuantity)
	}
}

func TestChoicePartSelector_OrderQuantityRaisedToBreakMinimum(t *testing.T) {
	catalog, resistor := infratesting.BuildResistorTestData()
	selector := NewChoicePartSelector(catalog)

	// Required 4: VendorB's 5-break orders 5 units for 0.30, cheaper than 4
	// units at the 1-break (0.48). VendorA cannot cover 4 units.
	selection, err := selector.Select(resistor, 4, nil)
	if err != nil {
		t.Fatalf("Expected selection to succeed: %v", err)
	}
	if selection.VendorName != "VendorB" || selection.OrderQuantity != 5 {
		t.Errorf("Expected VendorB with order quantity 5, got %s qty %d",
			selection.VendorName, selection.OrderQuantity)
	}
	if !selection.TotalCost.Equal(decimal.RequireFromString("0.30")) {
		t.Errorf("Expected total cost 0.30, got %s", selection.TotalCost)
	}
}

func TestChoicePartSelector_TieBreaksPreferSmallerOrder(t *testing.T) {
	catalog, resistor := infratesting.BuildResistorTestData()
	selector := NewChoicePartSelector(catalog)

	// Required 3: VendorA 1-break gives 3 x 0.10 = 0.30, VendorB 5-break
	// gives 5 x 0.06 = 0.30. The smaller order quantity wins the tie.
	selection, err := selector.Select(resistor, 3, nil)
	if err != nil {
		t.Fatalf("Expected selection to succeed: %v", err)
	}
	if selection.VendorName != "VendorA" {
		t.Errorf("Expected VendorA to win the cost tie with fewer units, got %s", selection.VendorName)
	}
	if selection.OrderQuantity != 3 {
		t.Errorf("Expected order quantity 3, got %d", selection.OrderQuantity)
	}
}

func TestChoicePartSelector_ExcludedVendorsAreSkipped(t *testing.T) {
	catalog, resistor := infratesting.BuildResistorTestData()
	selector := NewChoicePartSelector(catalog)

	selection, err := selector.Select(resistor, 3, map[string]bool{"VendorA": true})
	if err != nil {
		t.Fatalf("Expected selection to succeed: %v", err)
	}
	if selection.VendorName != "VendorB" {
		t.Errorf("Expected VendorB after excluding VendorA, got %s", selection.VendorName)
	}
}

func TestChoicePartSelector_Unfulfillable(t *testing.T) {
	catalog, resistor := infratesting.BuildResistorTestData()
	selector := NewChoicePartSelector(catalog)

	// More units than anyone stocks.
	if _, err := selector.Select(resistor, 1000, nil); !errors.Is(err, ErrUnfulfillable) {
		t.Errorf("Expected ErrUnfulfillable, got %v", err)
	}

	// All vendors excluded.
	excluded := map[string]bool{"VendorA": true, "VendorB": true}
	if _, err := selector.Select(resistor, 1, excluded); !errors.Is(err, ErrUnfulfillable) {
		t.Errorf("Expected ErrUnfulfillable with all vendors excluded, got %v", err)
	}

	// No quotes attached at all.
	bare, err := entities.NewChoicePart("BARE;1608", "fp", "",
		entities.ActualPartKey{Manufacturer: "M", PartNumber: "NOPE"})
	if err != nil {
		t.Fatalf("Failed to build choice part: %v", err)
	}
	if _, err := selector.Select(bare, 1, nil); !errors.Is(err, ErrUnfulfillable) {
		t.Errorf("Expected ErrUnfulfillable for quoteless part, got %v", err)
	}
}
