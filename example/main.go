package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/application/services"
	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/memory"
	"github.com/waynegramlich/bom-manager-sub001/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	catalog := memory.NewPartCatalog(8, logger)
	quotes := setupPartsDatabase(catalog)

	board, err := entities.NewBoard("sensor_hub", 3)
	if err != nil {
		fmt.Printf("example setup failed: %v\n", err)
		return
	}

	aggregator := services.NewOrderAggregator(
		catalog,
		memory.NewQuoteCache(),
		memory.NewStaticQuoteProvider(quotes),
		services.NewVendorPolicy(),
		nil,
		logger,
		services.OrderOptions{Name: "sensor_hub_rev_a"},
	)
	aggregator.AddBoard(board, boardParts(board))

	fmt.Println("Resolving sensor hub BOM (3 boards)...")
	fmt.Println()

	result, err := aggregator.Process(ctx)
	if err != nil {
		fmt.Printf("order failed: %v\n", err)
		return
	}

	if err := output.WriteBOMByPrice(os.Stdout, result); err != nil {
		fmt.Printf("report failed: %v\n", err)
		return
	}
	if err := output.WriteVendorReduction(os.Stdout, aggregator.Events()); err != nil {
		fmt.Printf("report failed: %v\n", err)
		return
	}
	_ = output.WriteSummary(os.Stdout, result)
}

// boardParts lists the schematic references of the demo board: pull-up
// resistors, a decoupling cap, a 6-pin slice of a break-away header, and one
// DNI debug resistor.
func boardParts(board *entities.Board) []entities.BoardPart {
	refs := []struct {
		reference string
		part      string
		comment   string
	}{
		{"R1", "10K;1608", ""},
		{"R2", "10K;1608", ""},
		{"R3", "10K;1608", "DNI"},
		{"C1", "100NF;1608", ""},
		{"CN1", "HDR6;M1X6", ""},
	}

	parts := make([]entities.BoardPart, 0, len(refs))
	for _, ref := range refs {
		name, err := entities.NewPartName(ref.part)
		if err != nil {
			panic(err)
		}
		parts = append(parts, entities.BoardPart{
			Board:     board.Name,
			Reference: ref.reference,
			Part:      name,
			Comment:   ref.comment,
		})
	}
	return parts
}

// setupPartsDatabase registers the demo catalog and returns the vendor quote
// table the static provider serves.
func setupPartsDatabase(catalog *memory.PartCatalog) map[entities.ActualPartKey][]entities.VendorQuote {
	yageo := entities.ActualPartKey{Manufacturer: "Yageo", PartNumber: "RC0603FR-0710KL"}
	kemet := entities.ActualPartKey{Manufacturer: "KEMET", PartNumber: "C0603C104K5RAC"}
	sullins := entities.ActualPartKey{Manufacturer: "Sullins", PartNumber: "PRPC040SAAN-RC"}

	resistor, err := entities.NewChoicePart("10K;1608", "IPC7351:RESC1608X55N", "10K 1% resistor", yageo)
	if err != nil {
		panic(err)
	}
	capacitor, err := entities.NewChoicePart("100NF;1608", "IPC7351:CAPC1608X90N", "100nF X7R capacitor", kemet)
	if err != nil {
		panic(err)
	}
	// A 40-pin break-away strip; boards consume it in fractional slices.
	header, err := entities.NewChoicePart("HDR40;M1X40", "Pin_Headers:1x40", "40-pin break-away header", sullins)
	if err != nil {
		panic(err)
	}
	slice6, err := entities.NewFractionalPart("HDR6;M1X6", "HDR40;M1X40", 6, 40, "6-pin header slice")
	if err != nil {
		panic(err)
	}

	catalog.RegisterChoicePart(resistor)
	catalog.RegisterChoicePart(capacitor)
	catalog.RegisterChoicePart(header)
	catalog.RegisterFractionalPart(slice6)

	return map[entities.ActualPartKey][]entities.VendorQuote{
		yageo: {
			{
				ActualKey: yageo, VendorName: "Digi-Key", VendorPartName: "311-10.0KHRCT-ND",
				Available: 250000,
				Breaks: []entities.PriceBreak{
					{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.10")},
					{MinQuantity: 10, UnitPrice: decimal.RequireFromString("0.021")},
				},
			},
			{
				ActualKey: yageo, VendorName: "Mouser", VendorPartName: "603-RC0603FR-0710KL",
				Available: 90000,
				Breaks: []entities.PriceBreak{
					{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.12")},
				},
			},
		},
		kemet: {
			{
				ActualKey: kemet, VendorName: "Digi-Key", VendorPartName: "399-1096-1-ND",
				Available: 180000,
				Breaks: []entities.PriceBreak{
					{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.10")},
					{MinQuantity: 100, UnitPrice: decimal.RequireFromString("0.018")},
				},
			},
		},
		sullins: {
			{
				ActualKey: sullins, VendorName: "Digi-Key", VendorPartName: "S1011EC-40-ND",
				Available: 5000,
				Breaks: []entities.PriceBreak{
					{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.62")},
				},
			},
		},
	}
}
