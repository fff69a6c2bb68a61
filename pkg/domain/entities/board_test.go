package entities

import "testing"

func TestNewBoard_Validation(t *testing.T) {
	board, err := NewBoard("main", 3)
	if err != nil {
		t.Fatalf("Expected valid board creation to succeed: %v", err)
	}
	if board.Count != 3 {
		t.Errorf("Expected count 3, got %d", board.Count)
	}

	if _, err := NewBoard("", 1); err == nil {
		t.Error("Expected error for empty board name")
	}
	if _, err := NewBoard("main", 0); err == nil {
		t.Error("Expected error for zero build count")
	}
}

func TestBoardPart_Install(t *testing.T) {
	installed := BoardPart{Board: "main", Reference: "R1", Part: "10K;1608"}
	if !installed.Install() {
		t.Error("Expected part without comment to be installed")
	}

	dni := BoardPart{Board: "main", Reference: "R2", Part: "10K;1608", Comment: "DNI"}
	if dni.Install() {
		t.Error("Expected DNI part to not be installed")
	}

	other := BoardPart{Board: "main", Reference: "R3", Part: "10K;1608", Comment: "precision"}
	if !other.Install() {
		t.Error("Expected part with non-DNI comment to be installed")
	}
}

func TestReferenceSortKey(t *testing.T) {
	testCases := []struct {
		reference string
		prefix    string
		number    int
	}{
		{"R1", "R", 1},
		{"R123", "R", 123},
		{"SW12", "SW", 12},
		{"sw2", "SW", 2},
		{"CN1", "CN", 1},
		{"X", "X", 0},
	}
	for _, tc := range testCases {
		prefix, number := ReferenceSortKey(tc.reference)
		if prefix != tc.prefix || number != tc.number {
			t.Errorf("ReferenceSortKey(%q) = (%q, %d), expected (%q, %d)",
				tc.reference, prefix, number, tc.prefix, tc.number)
		}
	}

	// SW12 must sort after SW2 and before U1.
	prefixA, numberA := ReferenceSortKey("SW2")
	prefixB, numberB := ReferenceSortKey("SW12")
	if prefixA != prefixB || numberA >= numberB {
		t.Error("Expected SW2 to sort before SW12")
	}
}
