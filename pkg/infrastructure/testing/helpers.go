// Package testing provides shared catalog fixtures for tests.
package testing

import (
	"github.com/shopspring/decimal"

	"github.com/waynegramlich/bom-manager-sub001/pkg/domain/entities"
	"github.com/waynegramlich/bom-manager-sub001/pkg/infrastructure/repositories/memory"
)

// BuildResistorTestData builds a single-part catalog with two competing
// vendor quotes: VendorA is cheaper per unit at its high break but has too
// little stock, VendorB can actually fill the order. Quotes are pre-attached.
func BuildResistorTestData() (*memory.PartCatalog, *entities.ChoicePart) {
	catalog := memory.NewPartCatalog(1, nil)

	key := entities.ActualPartKey{Manufacturer: "Yageo", PartNumber: "RC0603FR-0710KL"}
	resistor, err := entities.NewChoicePart("10K;1608", "IPC7351:RESC1608X55N", "10K 1% resistor", key)
	if err != nil {
		panic(err)
	}
	catalog.RegisterChoicePart(resistor)
	catalog.CollectActualParts()

	quotes := []entities.VendorQuote{
		{
			ActualKey: key, VendorName: "VendorA", VendorPartName: "A-10K",
			Available: 3,
			Breaks: []entities.PriceBreak{
				{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.10")},
				{MinQuantity: 10, UnitPrice: decimal.RequireFromString("0.05")},
			},
		},
		{
			ActualKey: key, VendorName: "VendorB", VendorPartName: "B-10K",
			Available: 100,
			Breaks: []entities.PriceBreak{
				{MinQuantity: 1, UnitPrice: decimal.RequireFromString("0.12")},
				{MinQuantity: 5, UnitPrice: decimal.RequireFromString("0.06")},
			},
		},
	}
	if err := catalog.AttachQuotes(key, quotes); err != nil {
		panic(err)
	}

	return catalog, resistor
}

// BuildHeaderTestData builds a catalog with a 40-pin break-away header choice
// part plus 6-of-40 and 8-of-40 fractional slices of it. No quotes are
// attached.
func BuildHeaderTestData() (*memory.PartCatalog, *entities.ChoicePart) {
	catalog := memory.NewPartCatalog(3, nil)

	key := entities.ActualPartKey{Manufacturer: "Sullins", PartNumber: "PRPC040SAAN-RC"}
	header, err := entities.NewChoicePart("HDR40;M1X40", "Pin_Headers:1x40", "40-pin break-away header", key)
	if err != nil {
		panic(err)
	}
	slice6, err := entities.NewFractionalPart("HDR6;M1X6", "HDR40;M1X40", 6, 40, "6-pin header slice")
	if err != nil {
		panic(err)
	}
	slice8, err := entities.NewFractionalPart("HDR8;M1X8", "HDR40;M1X40", 8, 40, "8-pin header slice")
	if err != nil {
		panic(err)
	}

	catalog.RegisterChoicePart(header)
	catalog.RegisterFractionalPart(slice6)
	catalog.RegisterFractionalPart(slice8)

	return catalog, header
}

// MustBoard builds a Board or panics; for fixture setup only.
func MustBoard(name string, count int) *entities.Board {
	board, err := entities.NewBoard(name, count)
	if err != nil {
		panic(err)
	}
	return board
}

// MustPartName parses a schematic part name or panics; for fixture setup only.
func MustPartName(name string) entities.PartName {
	partName, err := entities.NewPartName(name)
	if err != nil {
		panic(err)
	}
	return partName
}
