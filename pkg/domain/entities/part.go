package entities

import (
	"fmt"
	"strings"
)

// PartName identifies a schematic part. The format is
// "<base_name>;<short_footprint>[:comment]" and must contain exactly one ';'.
type PartName string

// NewPartName validates a schematic part name.
func NewPartName(name string) (PartName, error) {
	if strings.Count(name, ";") != 1 {
		return "", fmt.Errorf("schematic part name %q must contain exactly one ';'", name)
	}
	return PartName(name), nil
}

// BaseName returns the portion of the name before the ';'.
func (n PartName) BaseName() string {
	name := string(n)
	if i := strings.Index(name, ";"); i >= 0 {
		return name[:i]
	}
	return name
}

// ShortFootprint returns the portion between the ';' and the optional ':comment'.
func (n PartName) ShortFootprint() string {
	name := string(n)
	if i := strings.Index(name, ";"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[:i]
	}
	return name
}

// Comment returns the portion after the ':', or "" when there is none.
func (n PartName) Comment() string {
	name := string(n)
	if i := strings.Index(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// SchematicPart is the closed set of part variants that can appear in a
// schematic: a ChoicePart, an AliasPart, or a FractionalPart. Resolution
// dispatches exhaustively on the concrete type.
type SchematicPart interface {
	PartName() PartName
	schematicPart()
}

// Placement carries pick-and-place metadata for a choice part.
type Placement struct {
	Rotation float64
	PickDX   float64
	PickDY   float64
	Height   float64
}

// ChoicePart is a schematic part with one or more acceptable concrete
// manufacturer parts, listed in preference order.
type ChoicePart struct {
	Name           PartName
	Footprint      string // full footprint identifier (e.g. KiCad footprint name)
	Description    string
	Placement      Placement
	ActualPartKeys []ActualPartKey
}

// NewChoicePart creates a validated ChoicePart.
func NewChoicePart(name, footprint, description string, keys ...ActualPartKey) (*ChoicePart, error) {
	partName, err := NewPartName(name)
	if err != nil {
		return nil, err
	}
	if footprint == "" {
		return nil, fmt.Errorf("choice part %q: footprint cannot be empty", name)
	}
	return &ChoicePart{
		Name:           partName,
		Footprint:      footprint,
		Description:    description,
		ActualPartKeys: keys,
	}, nil
}

// AddActualPart appends a manufacturer part key to the preference list.
func (p *ChoicePart) AddActualPart(key ActualPartKey) {
	p.ActualPartKeys = append(p.ActualPartKeys, key)
}

// PartName implements SchematicPart.
func (p *ChoicePart) PartName() PartName { return p.Name }

func (p *ChoicePart) schematicPart() {}

// AliasTarget is one substitution entry of an alias part. Count expands the
// target that many times for placement and BOM-quantity purposes.
type AliasTarget struct {
	Count  int
	Target PartName
}

// AliasPart is a pure redirect to one or more other schematic parts.
type AliasPart struct {
	Name    PartName
	Targets []AliasTarget
}

// NewAliasPart creates a validated AliasPart.
func NewAliasPart(name string, targets ...AliasTarget) (*AliasPart, error) {
	partName, err := NewPartName(name)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("alias part %q must have at least one target", name)
	}
	for _, target := range targets {
		if target.Count <= 0 {
			return nil, fmt.Errorf("alias part %q: target %q count must be positive, got %d",
				name, target.Target, target.Count)
		}
	}
	return &AliasPart{Name: partName, Targets: targets}, nil
}

// PartName implements SchematicPart.
func (p *AliasPart) PartName() PartName { return p.Name }

func (p *AliasPart) schematicPart() {}

// FractionalPart represents a sub-quantity slice of a choice part, such as a
// 6-of-40 break-away header. Choice is a name reference, not an owning
// pointer, so the part graph stays acyclic.
type FractionalPart struct {
	Name        PartName
	Choice      PartName
	Numerator   int
	Denominator int
	Description string
}

// NewFractionalPart creates a validated FractionalPart.
func NewFractionalPart(name, choice string, numerator, denominator int, description string) (*FractionalPart, error) {
	partName, err := NewPartName(name)
	if err != nil {
		return nil, err
	}
	choiceName, err := NewPartName(choice)
	if err != nil {
		return nil, fmt.Errorf("fractional part %q: %w", name, err)
	}
	if denominator <= 0 {
		return nil, fmt.Errorf("fractional part %q: denominator must be positive, got %d", name, denominator)
	}
	if numerator <= 0 || numerator > denominator {
		return nil, fmt.Errorf("fractional part %q: numerator must be in 1..%d, got %d",
			name, denominator, numerator)
	}
	return &FractionalPart{
		Name:        partName,
		Choice:      choiceName,
		Numerator:   numerator,
		Denominator: denominator,
		Description: description,
	}, nil
}

// PartName implements SchematicPart.
func (p *FractionalPart) PartName() PartName { return p.Name }

func (p *FractionalPart) schematicPart() {}
