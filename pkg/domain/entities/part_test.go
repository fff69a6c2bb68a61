package entities

import "testing"

func TestPartName_Parsing(t *testing.T) {
	name, err := NewPartName("10K;1608:DNI")
	if err != nil {
		t.Fatalf("Expected valid part name to parse: %v", err)
	}
	if name.BaseName() != "10K" {
		t.Errorf("Expected base name 10K, got %s", name.BaseName())
	}
	if name.ShortFootprint() != "1608" {
		t.Errorf("Expected short footprint 1608, got %s", name.ShortFootprint())
	}
	if name.Comment() != "DNI" {
		t.Errorf("Expected comment DNI, got %s", name.Comment())
	}

	plain, err := NewPartName("100NF;1608")
	if err != nil {
		t.Fatalf("Expected valid part name to parse: %v", err)
	}
	if plain.Comment() != "" {
		t.Errorf("Expected empty comment, got %s", plain.Comment())
	}

	testCases := []struct {
		name  string
		input string
	}{
		{"no separator", "10K"},
		{"two separators", "10K;1608;extra"},
		{"empty", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewPartName(tc.input); err == nil {
				t.Errorf("Expected error for part name %q", tc.input)
			}
		})
	}
}

func TestChoicePart_Validation(t *testing.T) {
	key := ActualPartKey{Manufacturer: "Yageo", PartNumber: "RC0603FR-0710KL"}

	part, err := NewChoicePart("10K;1608", "IPC7351:RESC1608X55N", "10K resistor", key)
	if err != nil {
		t.Fatalf("Expected valid choice part creation to succeed: %v", err)
	}
	if len(part.ActualPartKeys) != 1 {
		t.Errorf("Expected 1 actual part key, got %d", len(part.ActualPartKeys))
	}

	part.AddActualPart(ActualPartKey{Manufacturer: "Vishay", PartNumber: "CRCW060310K0FKEA"})
	if len(part.ActualPartKeys) != 2 {
		t.Errorf("Expected 2 actual part keys after AddActualPart, got %d", len(part.ActualPartKeys))
	}
	if part.ActualPartKeys[0] != key {
		t.Errorf("Expected preference order to keep %v first, got %v", key, part.ActualPartKeys[0])
	}

	if _, err := NewChoicePart("10K", "fp", ""); err == nil {
		t.Error("Expected error for malformed part name")
	}
	if _, err := NewChoicePart("10K;1608", "", ""); err == nil {
		t.Error("Expected error for empty footprint")
	}
}

func TestAliasPart_Validation(t *testing.T) {
	target := AliasTarget{Count: 2, Target: "10K;1608"}

	alias, err := NewAliasPart("PULLUP;1608", target)
	if err != nil {
		t.Fatalf("Expected valid alias part creation to succeed: %v", err)
	}
	if len(alias.Targets) != 1 {
		t.Errorf("Expected 1 target, got %d", len(alias.Targets))
	}

	if _, err := NewAliasPart("PULLUP;1608"); err == nil {
		t.Error("Expected error for alias with no targets")
	}
	if _, err := NewAliasPart("PULLUP;1608", AliasTarget{Count: 0, Target: "10K;1608"}); err == nil {
		t.Error("Expected error for zero target count")
	}
}

func TestFractionalPart_Validation(t *testing.T) {
	part, err := NewFractionalPart("HDR6;M1X6", "HDR40;M1X40", 6, 40, "6-pin slice")
	if err != nil {
		t.Fatalf("Expected valid fractional part creation to succeed: %v", err)
	}
	if part.Choice != "HDR40;M1X40" {
		t.Errorf("Expected choice reference HDR40;M1X40, got %s", part.Choice)
	}

	testCases := []struct {
		name        string
		numerator   int
		denominator int
	}{
		{"zero numerator", 0, 40},
		{"negative numerator", -1, 40},
		{"numerator over denominator", 41, 40},
		{"zero denominator", 6, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewFractionalPart("HDR6;M1X6", "HDR40;M1X40", tc.numerator, tc.denominator, ""); err == nil {
				t.Errorf("Expected error for %d/%d", tc.numerator, tc.denominator)
			}
		})
	}
}
