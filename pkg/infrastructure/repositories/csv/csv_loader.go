// Package csv loads boards and their schematic part references from CSV
// files, the bulk-input path for the order command.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
)

// Loader handles loading order input data from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadBoards loads boards from a CSV file with header: name, count.
func (l *Loader) LoadBoards(filename string) ([]*entities.Board, error) {
	records, err := readAll(filename, "boards")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"name", "count"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("boards CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var boards []*entities.Board
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("boards CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		count, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("boards CSV row %d: invalid count: %s", i+2, record[1])
		}

		board, err := entities.NewBoard(strings.TrimSpace(record[0]), count)
		if err != nil {
			return nil, fmt.Errorf("boards CSV row %d: %w", i+2, err)
		}
		boards = append(boards, board)
	}

	return boards, nil
}

// LoadBoardParts loads board part references from a CSV file with header:
// board, reference, part, comment. The part column is a full schematic part
// name ("base;footprint" with an optional ":comment" suffix); a comment
// column of DNI marks the reference as not installed.
func (l *Loader) LoadBoardParts(filename string, boards []*entities.Board) (map[string][]entities.BoardPart, error) {
	records, err := readAll(filename, "board parts")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"board", "reference", "part", "comment"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("board parts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	byName := make(map[string]*entities.Board, len(boards))
	for _, board := range boards {
		byName[board.Name] = board
	}

	parts := make(map[string][]entities.BoardPart)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("board parts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		boardName := strings.TrimSpace(record[0])
		if _, exists := byName[boardName]; !exists {
			return nil, fmt.Errorf("board parts CSV row %d: unknown board %q", i+2, boardName)
		}

		partName, err := entities.NewPartName(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("board parts CSV row %d: %w", i+2, err)
		}

		parts[boardName] = append(parts[boardName], entities.BoardPart{
			Board:     boardName,
			Reference: strings.TrimSpace(record[1]),
			Part:      partName,
			Comment:   strings.TrimSpace(record[3]),
		})
	}

	return parts, nil
}

func readAll(filename, kind string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", kind, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	return records, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

// LoadChoiceParts loads choice parts from a CSV file with header: part,
// footprint, description, manufacturer, manufacturer_part_number. One row per
// acceptable manufacturer part; rows sharing a part name accumulate onto one
// choice part, preserving row order as the preference order.
func (l *Loader) LoadChoiceParts(filename string) ([]*entities.ChoicePart, error) {
	records, err := readAll(filename, "parts")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"part", "footprint", "description", "manufacturer", "manufacturer_part_number"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("parts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	byName := make(map[entities.PartName]*entities.ChoicePart)
	var parts []*entities.ChoicePart
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("parts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		name := strings.TrimSpace(record[0])
		key := entities.ActualPartKey{
			Manufacturer: strings.TrimSpace(record[3]),
			PartNumber:   strings.TrimSpace(record[4]),
		}
		if key.Manufacturer == "" || key.PartNumber == "" {
			return nil, fmt.Errorf("parts CSV row %d: manufacturer and manufacturer_part_number are required", i+2)
		}

		if existing, ok := byName[entities.PartName(name)]; ok {
			existing.AddActualPart(key)
			continue
		}

		part, err := entities.NewChoicePart(name, strings.TrimSpace(record[1]), strings.TrimSpace(record[2]), key)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}
		byName[part.Name] = part
		parts = append(parts, part)
	}

	return parts, nil
}

// LoadVendorQuotes loads vendor quotes from a CSV file with header:
// manufacturer, manufacturer_part_number, vendor, vendor_part_number,
// available, currency, min_quantity, unit_price. Consecutive rows sharing the
// same (manufacturer part, vendor part) accumulate a price-break ladder.
func (l *Loader) LoadVendorQuotes(filename string) (map[entities.ActualPartKey][]entities.VendorQuote, error) {
	records, err := readAll(filename, "quotes")
	if err != nil {
		return nil, err
	}

	expectedHeader := []string{"manufacturer", "manufacturer_part_number", "vendor",
		"vendor_part_number", "available", "currency", "min_quantity", "unit_price"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("quotes CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	quotes := make(map[entities.ActualPartKey][]entities.VendorQuote)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("quotes CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		key := entities.ActualPartKey{
			Manufacturer: strings.TrimSpace(record[0]),
			PartNumber:   strings.TrimSpace(record[1]),
		}
		vendorKey := entities.VendorKey{
			VendorName:     strings.TrimSpace(record[2]),
			VendorPartName: strings.TrimSpace(record[3]),
		}

		available, err := strconv.Atoi(strings.TrimSpace(record[4]))
		if err != nil {
			return nil, fmt.Errorf("quotes CSV row %d: invalid available: %s", i+2, record[4])
		}
		minQuantity, err := strconv.Atoi(strings.TrimSpace(record[6]))
		if err != nil {
			return nil, fmt.Errorf("quotes CSV row %d: invalid min_quantity: %s", i+2, record[6])
		}
		unitPrice, err := decimal.NewFromString(strings.TrimSpace(record[7]))
		if err != nil {
			return nil, fmt.Errorf("quotes CSV row %d: invalid unit_price: %s", i+2, record[7])
		}
		priceBreak, err := entities.NewPriceBreak(minQuantity, unitPrice)
		if err != nil {
			return nil, fmt.Errorf("quotes CSV row %d: %w", i+2, err)
		}

		existing := quotes[key]
		if n := len(existing); n > 0 && existing[n-1].VendorKey() == vendorKey {
			existing[n-1].Breaks = append(existing[n-1].Breaks, priceBreak)
			continue
		}

		quotes[key] = append(existing, entities.VendorQuote{
			ActualKey:      key,
			VendorName:     vendorKey.VendorName,
			VendorPartName: vendorKey.VendorPartName,
			Available:      available,
			Currency:       strings.TrimSpace(record[5]),
			Breaks:         []entities.PriceBreak{priceBreak},
		})
	}

	return quotes, nil
}
