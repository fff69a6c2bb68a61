package entities

import (
	"fmt"
	"strconv"
	"unicode"
)

// Board is a named PCB design with a build count.
type Board struct {
	Name  string
	Count int
}

// NewBoard creates a validated Board.
func NewBoard(name string, count int) (*Board, error) {
	if name == "" {
		return nil, fmt.Errorf("board name cannot be empty")
	}
	if count <= 0 {
		return nil, fmt.Errorf("board %q: build count must be positive, got %d", name, count)
	}
	return &Board{Name: name, Count: count}, nil
}

// BoardPart binds a board to one schematic reference (e.g. "R123") and the
// schematic part installed there.
type BoardPart struct {
	Board     string
	Reference string
	Part      PartName
	Comment   string
}

// Install reports whether the part is actually populated. A "DNI" comment
// (Do Not Install) marks a reference that stays empty.
func (p BoardPart) Install() bool {
	return p.Comment != "DNI"
}

// ReferenceSortKey splits a schematic reference into its alphabetic prefix
// and numeric suffix, so "SW12" sorts after "SW2" and before "U1".
func ReferenceSortKey(reference string) (string, int) {
	var prefix []rune
	var digits []rune
	for _, r := range reference {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		} else {
			prefix = append(prefix, unicode.ToUpper(r))
		}
	}
	number, _ := strconv.Atoi(string(digits))
	return string(prefix), number
}
