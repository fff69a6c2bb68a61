package events

import (
	"testing"
	"time"
)

func TestInMemoryStore_AppendAndRead(t *testing.T) {
	store := NewInMemoryStore()

	store.Append(Event{Type: TypeVendorExcluded, Stream: "order1", Message: "Excluding 'Verical'"})
	store.Append(Event{Type: TypePartUnresolved, Stream: "order1", Message: "unknown part"})
	store.Append(Event{Type: TypeVendorExcluded, Stream: "order1", Message: "Excluding 'Chip1Stop'"})

	all := store.ReadAll()
	if len(all) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(all))
	}
	if all[0].Timestamp.IsZero() {
		t.Error("Expected Append to stamp the event time")
	}

	excluded := store.ReadType(TypeVendorExcluded)
	if len(excluded) != 2 {
		t.Fatalf("Expected 2 vendor-excluded events, got %d", len(excluded))
	}
	if excluded[1].Message != "Excluding 'Chip1Stop'" {
		t.Errorf("Expected append order preserved, got %q", excluded[1].Message)
	}
}

func TestInMemoryStore_KeepsExplicitTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	stamp := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	store.Append(Event{Type: TypeQuotesFetched, Timestamp: stamp})

	events := store.ReadAll()
	if !events[0].Timestamp.Equal(stamp) {
		t.Errorf("Expected explicit timestamp to survive, got %v", events[0].Timestamp)
	}
}
