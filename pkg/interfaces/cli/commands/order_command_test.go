package commands

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/memory"
)

func TestMergeVendorLists(t *testing.T) {
	merged := mergeVendorLists([]string{"Verical", "Mouser"}, " Mouser , Digi-Key ,,")
	expected := []string{"Verical", "Mouser", "Digi-Key"}
	if !reflect.DeepEqual(merged, expected) {
		t.Errorf("Expected %v, got %v", expected, merged)
	}

	if merged := mergeVendorLists(nil, ""); len(merged) != 0 {
		t.Errorf("Expected empty merge, got %v", merged)
	}
}

func TestOrderCommand_ValidateInputs(t *testing.T) {
	catalog := memory.NewPartCatalog(0, nil)
	provider := memory.NewStaticQuoteProvider(nil)

	command := NewOrderCommand(Config{Format: "text"}, catalog, provider, nil)
	if err := command.Execute(context.Background()); err == nil {
		t.Error("Expected error for missing boards file")
	}

	command = NewOrderCommand(Config{
		BoardsFile:     "boards.csv",
		BoardPartsFile: "parts.csv",
		Format:         "xml",
	}, catalog, provider, nil)
	if err := command.Execute(context.Background()); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestOrderCommand_EndToEnd(t *testing.T) {
	dir := t.TempDir()

	boardsPath := filepath.Join(dir, "boards.csv")
	if err := os.WriteFile(boardsPath, []byte("name,count\nmain,2\n"), 0o644); err != nil {
		t.Fatalf("Failed to write boards: %v", err)
	}
	boardPartsPath := filepath.Join(dir, "board_parts.csv")
	boardParts := "board,reference,part,comment\nmain,R1,10K;1608,\nmain,R2,10K;1608,DNI\n"
	if err := os.WriteFile(boardPartsPath, []byte(boardParts), 0o644); err != nil {
		t.Fatalf("Failed to write board parts: %v", err)
	}
	configPath := filepath.Join(dir, "bom.toml")
	document := "[cache]\npath = \"" + filepath.Join(dir, "cache.json") + "\"\n"
	if err := os.WriteFile(configPath, []byte(document), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	catalog := memory.NewPartCatalog(1, nil)
	key := entities.ActualPartKey{Manufacturer: "Yageo", PartNumber: "RC0603FR-0710KL"}
	resistor, err := entities.NewChoicePart("10K;1608", "fp", "10K resistor", key)
	if err != nil {
		t.Fatalf("Failed to build choice part: %v", err)
	}
	catalog.RegisterChoicePart(resistor)

	provider := memory.NewStaticQuoteProvider(map[entities.ActualPartKey][]entities.VendorQuote{
		key: {
			{
				ActualKey: key, VendorName: "Digi-Key", VendorPartName: "311-10.0KHRCT-ND",
				Available: 100000,
				Breaks:    []entities.PriceBreak{{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.10")}},
			},
		},
	})

	outputDir := filepath.Join(dir, "reports")
	command := NewOrderCommand(Config{
		Name:           "test_order",
		BoardsFile:     boardsPath,
		BoardPartsFile: boardPartsPath,
		ConfigFile:     configPath,
		OutputDir:      outputDir,
		Format:         "csv",
	}, catalog, provider, nil)

	if err := command.Execute(context.Background()); err != nil {
		t.Fatalf("Expected command to succeed: %v", err)
	}

	for _, name := range []string{
		"bom_by_price.txt", "bom_by_vendor.txt", "bom_by_name.txt",
		"order.csv", "vendor_reduction_report.txt", "assembly_summary.txt",
	} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("Expected report %s to exist: %v", name, err)
		}
	}

	// The quote cache must be persisted where the config points.
	if _, err := os.Stat(filepath.Join(dir, "cache.json")); err != nil {
		t.Errorf("Expected quote cache file: %v", err)
	}
}
