// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them to HTTP statuses.
package repository

import "errors"

// ErrEmailExists is returned when inserting a user whose email is
// already registered. Handlers treat this as idempotent re-registration
// rather than a failure.
var ErrEmailExists = errors.New("email already exists")

// ErrUnitUnavailable is returned when a reservation is requested for a
// unit that already has a reservation overlapping the requested
// interval. Handlers should translate this into an HTTP 409 response.
var ErrUnitUnavailable = errors.New("unit unavailable for requested interval")

// ErrNoActiveReservation is returned when a return is requested for a
// unit with no active reservation at this instant. Handlers should
// translate this into an HTTP 404 response.
var ErrNoActiveReservation = errors.New("no active reservation for unit")
