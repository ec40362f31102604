package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vr-rental-reservation/internal/fleet"
	"github.com/iliyamo/vr-rental-reservation/internal/model"
	"github.com/iliyamo/vr-rental-reservation/internal/queue"
	"github.com/iliyamo/vr-rental-reservation/internal/repository"
)

// RentalStore is the reservation ledger surface the rental handlers need.
// *repository.ReservationRepo satisfies it; tests substitute stubs.
type RentalStore interface {
	ActiveUnitIDs(ctx context.Context, now time.Time) ([]int, error)
	Reserve(ctx context.Context, userID uint64, unitID int, startAt, endAt time.Time) (uint64, error)
	CloseActive(ctx context.Context, unitID int, now time.Time) error
	ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error)
}

// RentalHandler serves availability, reservation and return endpoints.
// Publish is the best-effort event hook; a nil Publish disables event
// emission (used in tests).
type RentalHandler struct {
	Rentals RentalStore
	Publish func(ctx context.Context, ev queue.RentalEvent) error
}

func NewRentalHandler(rentals RentalStore, publish func(ctx context.Context, ev queue.RentalEvent) error) *RentalHandler {
	return &RentalHandler{Rentals: rentals, Publish: publish}
}

// ----- DTOs -----

type reserveReq struct {
	UserID  uint64 `json:"user_id"`
	UnitID  int    `json:"vr_id"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
}
type returnReq struct {
	UnitID int `json:"vr_id"`
}

type reservationPart struct {
	ID      uint64 `json:"id"`
	UnitID  int    `json:"vr_id"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
	Active  bool   `json:"active"`
}

// Status reports fleet availability at the current instant: how many
// units are free, how many are rented, and the smallest free unit id.
func (h *RentalHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rented, err := h.Rentals.ActiveUnitIDs(ctx, time.Now().UTC())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "availability query failed"})
	}
	return c.JSON(http.StatusOK, fleet.Derive(rented))
}

// Reserve creates a reservation for a unit over the requested interval.
// A unit that already has a reservation overlapping the interval yields
// 409; the ledger enforces this inside a single transaction.
func (h *RentalHandler) Reserve(c echo.Context) error {
	var req reserveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
	}
	if !fleet.InPool(req.UnitID) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vr_id out of range"})
	}
	startAt, err := parseTime(req.StartAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_at"})
	}
	endAt, err := parseTime(req.EndAt)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_at"})
	}
	if !endAt.After(startAt) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_at must be after start_at"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Rentals.Reserve(ctx, req.UserID, req.UnitID, startAt, endAt)
	if err != nil {
		if errors.Is(err, repository.ErrUnitUnavailable) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "unit already reserved for this interval"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.RentalEvent{
			Type:          queue.EventReserved,
			ReservationID: id,
			UserID:        req.UserID,
			UnitID:        req.UnitID,
			StartAt:       startAt.Format(time.RFC3339),
			EndAt:         endAt.Format(time.RFC3339),
			OccurredAt:    time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"vr_id": req.UnitID, "message": "reservation created"})
}

// Return ends the unit's active rental immediately by rewriting its end
// time to now.  A unit with no active reservation, including one that was
// never reserved, yields 404.
func (h *RentalHandler) Return(c echo.Context) error {
	var req returnReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.UnitID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vr_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if err := h.Rentals.CloseActive(ctx, req.UnitID, now); err != nil {
		if errors.Is(err, repository.ErrNoActiveReservation) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no active rental for unit"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "return failed"})
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.RentalEvent{
			Type:       queue.EventReturned,
			UnitID:     req.UnitID,
			OccurredAt: now.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "return completed"})
}

// MyReservations lists the authenticated caller's reservations, newest
// first.  Requires the JWT middleware.
func (h *RentalHandler) MyReservations(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Rentals.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	now := time.Now().UTC()
	out := make([]reservationPart, 0, len(list))
	for _, m := range list {
		out = append(out, reservationPart{
			ID:      m.ID,
			UnitID:  m.UnitID,
			StartAt: m.StartAt.UTC().Format(time.RFC3339),
			EndAt:   m.EndAt.UTC().Format(time.RFC3339),
			Active:  m.EndAt.After(now),
		})
	}
	return c.JSON(http.StatusOK, out)
}

// Me returns the authenticated user's id.  Mostly useful for clients
// checking whether a stored token is still valid.
func (h *RentalHandler) Me(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": uid})
}

// currentUserID reads the user id stored by the JWT middleware.
func currentUserID(c echo.Context) (uint64, bool) {
	uid, ok := c.Get("user_id").(uint64)
	return uid, ok && uid != 0
}

// parseTime accepts RFC3339 as well as the plain DATETIME formats sent by
// the web client's datetime-local inputs.  Times without a zone are
// interpreted as UTC.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("unrecognized time format")
}
