package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/waynegramlich/bom-manager-sub001/pkg/application/services"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/events"
)

// WriteSummary prints the order totals and any error counters.
func WriteSummary(w io.Writer, result *services.OrderResult) error {
	fmt.Fprintf(w, "\nOrder Summary\n")
	fmt.Fprintf(w, "=============\n")
	fmt.Fprintf(w, "Line items:      %d\n", len(result.Selections))
	fmt.Fprintf(w, "Total cost:      $%s\n", result.TotalCost.StringFixed(2))
	if result.MissingParts > 0 {
		fmt.Fprintf(w, "Missing parts:   %d\n", result.MissingParts)
	}
	if result.ErrorCount > 0 {
		fmt.Fprintf(w, "Input errors:    %d\n", result.ErrorCount)
	}
	if len(result.ExcludedVendors) > 0 {
		fmt.Fprintf(w, "Excluded vendors:")
		for _, vendor := range result.ExcludedVendors {
			fmt.Fprintf(w, " %q", vendor)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteBOMByPrice lists selections from most to least expensive, so the
// biggest spend is visible first.
func WriteBOMByPrice(w io.Writer, result *services.OrderResult) error {
	selections := sortedSelections(result, func(a, b entities.SelectionResult) bool {
		if cmp := a.TotalCost.Cmp(b.TotalCost); cmp != 0 {
			return cmp > 0
		}
		return a.Choice < b.Choice
	})
	return writeBOMTable(w, "BOM by Price", selections, result)
}

// WriteBOMByVendor groups selections by vendor, then part name.
func WriteBOMByVendor(w io.Writer, result *services.OrderResult) error {
	selections := sortedSelections(result, func(a, b entities.SelectionResult) bool {
		if a.VendorName != b.VendorName {
			return a.VendorName < b.VendorName
		}
		return a.Choice < b.Choice
	})
	return writeBOMTable(w, "BOM by Vendor", selections, result)
}

// WriteBOMByName lists selections alphabetically by schematic part name.
func WriteBOMByName(w io.Writer, result *services.OrderResult) error {
	selections := sortedSelections(result, func(a, b entities.SelectionResult) bool {
		return a.Choice < b.Choice
	})
	return writeBOMTable(w, "BOM by Name", selections, result)
}

func sortedSelections(result *services.OrderResult, less func(a, b entities.SelectionResult) bool) []entities.SelectionResult {
	selections := make([]entities.SelectionResult, len(result.Selections))
	copy(selections, result.Selections)
	sort.SliceStable(selections, func(i, j int) bool { return less(selections[i], selections[j]) })
	return selections
}

func writeBOMTable(w io.Writer, title string, selections []entities.SelectionResult, result *services.OrderResult) error {
	fmt.Fprintf(w, "%s\n", title)
	for range title {
		fmt.Fprint(w, "=")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-28s %-6s %-6s %-20s %-22s %-10s\n",
		"Part", "Need", "Order", "Vendor", "Vendor Part", "Cost")
	fmt.Fprintf(w, "%-28s %-6s %-6s %-20s %-22s %-10s\n",
		"----------------------------", "------", "------", "--------------------", "----------------------", "----------")

	for _, selection := range selections {
		fmt.Fprintf(w, "%-28s %-6d %-6d %-20s %-22s $%-9s\n",
			selection.Choice,
			selection.RequiredQuantity,
			selection.OrderQuantity,
			selection.VendorName,
			selection.VendorPartName,
			selection.TotalCost.StringFixed(2))
		if refs := result.References[selection.Choice]; refs != "" {
			fmt.Fprintf(w, "    %s\n", refs)
		}
	}

	fmt.Fprintf(w, "\nTotal: $%s\n\n", result.TotalCost.StringFixed(2))
	return nil
}

// WriteOrderCSV writes the order as one CSV row per selection, suitable for
// uploading to a vendor cart.
func WriteOrderCSV(w io.Writer, result *services.OrderResult) error {
	writer := csv.NewWriter(w)

	header := []string{"part", "required_quantity", "order_quantity", "manufacturer",
		"manufacturer_part_number", "vendor", "vendor_part_number", "total_cost", "references"}
	if err := writer.Write(header); err != nil {
		return err
	}

	selections := sortedSelections(result, func(a, b entities.SelectionResult) bool {
		if a.VendorName != b.VendorName {
			return a.VendorName < b.VendorName
		}
		return a.Choice < b.Choice
	})
	for _, selection := range selections {
		record := []string{
			string(selection.Choice),
			strconv.Itoa(selection.RequiredQuantity),
			strconv.Itoa(selection.OrderQuantity),
			selection.ActualKey.Manufacturer,
			selection.ActualKey.PartNumber,
			selection.VendorName,
			selection.VendorPartName,
			selection.TotalCost.StringFixed(2),
			result.References[selection.Choice],
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteVendorReduction reports why each vendor was dropped from the order,
// from the run's event log.
func WriteVendorReduction(w io.Writer, store events.Store) error {
	fmt.Fprintf(w, "Vendor Reduction Report\n")
	fmt.Fprintf(w, "=======================\n")

	excluded := store.ReadType(events.TypeVendorExcluded)
	if len(excluded) == 0 {
		fmt.Fprintf(w, "No vendors were excluded.\n")
		return nil
	}
	for _, event := range excluded {
		fmt.Fprintf(w, "%s\n", event.Message)
	}
	return nil
}

// WriteAssemblySummary lists, per board, how many references each selected
// part occupies.
func WriteAssemblySummary(w io.Writer, result *services.OrderResult) error {
	boards := make(map[string]map[entities.PartName]int)
	for part, counts := range result.BoardCounts {
		for board, count := range counts {
			if boards[board] == nil {
				boards[board] = make(map[entities.PartName]int)
			}
			boards[board][part] = count
		}
	}

	boardNames := make([]string, 0, len(boards))
	for name := range boards {
		boardNames = append(boardNames, name)
	}
	sort.Strings(boardNames)

	fmt.Fprintf(w, "Assembly Summary\n")
	fmt.Fprintf(w, "================\n")
	for _, boardName := range boardNames {
		fmt.Fprintf(w, "\nBoard %s:\n", boardName)

		parts := make([]entities.PartName, 0, len(boards[boardName]))
		for part := range boards[boardName] {
			parts = append(parts, part)
		}
		sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })

		for _, part := range parts {
			fmt.Fprintf(w, "  %-28s x%d\n", part, boards[boardName][part])
		}
	}
	return nil
}
