package model

import "time"

// Reservation records a user's rental of a single VR unit over the
// half-open interval [StartAt, EndAt).  A reservation is active while
// EndAt lies strictly in the future; returning a unit rewrites EndAt to
// the return instant.  That transition is one-way: there is no
// cancellation, extension or re-activation path.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who made the reservation.
//  UnitID    – rented VR unit (1..fleet.PoolSize).
//  StartAt   – beginning of the rental interval (UTC).
//  EndAt     – end of the rental interval (UTC); rewritten on return.
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	UserID    uint64    // reservations.user_id
	UnitID    int       // reservations.vr_id
	StartAt   time.Time // reservations.start_at
	EndAt     time.Time // reservations.end_at
	CreatedAt time.Time // reservations.created_at
}
