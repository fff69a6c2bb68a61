// Package events records what happened during an order run so report
// writers can explain the outcome (which vendors were dropped and why,
// which parts could not be resolved or fulfilled).
package events

import "time"

// Event types emitted by the order pipeline.
const (
	TypeVendorExcluded  = "vendor_excluded"
	TypePartUnresolved  = "part_unresolved"
	TypePartUnfulfilled = "part_unfulfilled"
	TypeQuotesFetched   = "quotes_fetched"
)

// Event is one timestamped occurrence in an order run. Stream groups
// related events (usually the order name).
type Event struct {
	Type      string
	Stream    string
	Message   string
	Timestamp time.Time
}

// Store accumulates events for later reporting.
type Store interface {
	Append(event Event)
	ReadAll() []Event
	ReadType(eventType string) []Event
}
