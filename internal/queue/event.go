// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Event types published to the rental.events queue.
const (
	EventReserved = "reserved"
	EventReturned = "returned"
)

// RentalEvent is published after a reservation is created or a unit is
// returned.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type RentalEvent struct {
	Type          string `json:"type"` // reserved | returned
	ReservationID uint64 `json:"reservation_id,omitempty"`
	UserID        uint64 `json:"user_id,omitempty"`
	UnitID        int    `json:"vr_id"`
	StartAt       string `json:"start_at,omitempty"`
	EndAt         string `json:"end_at,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}
