package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/vr-rental-reservation/internal/model"
)

// ReservationRepo is the reservation ledger: it records rental intervals
// per unit per user and answers availability queries.  All timestamps are
// stored in UTC.
type ReservationRepo struct{ db *sql.DB }

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// ActiveUnitIDs returns the distinct ids of units with a reservation whose
// end_at lies strictly after now.  The caller derives availability as the
// complement of this set within the fleet pool.
func (r *ReservationRepo) ActiveUnitIDs(ctx context.Context, now time.Time) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT vr_id FROM reservations WHERE end_at > ?", now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ids := make([]int, 0, 8)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Reserve inserts a reservation for the unit over [startAt, endAt) and
// returns the new reservation id.  The availability check and the insert
// run in one transaction: existing rows for the unit that overlap the
// requested interval are locked with FOR UPDATE, so two concurrent
// reservations of the same unit cannot both pass the check.  An overlap
// yields ErrUnitUnavailable.
func (r *ReservationRepo) Reserve(ctx context.Context, userID uint64, unitID int, startAt, endAt time.Time) (uint64, error) {
	startAt, endAt = startAt.UTC(), endAt.UTC()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Overlap of [start_at, end_at) with the requested interval.
	var conflicts int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservations WHERE vr_id=? AND end_at > ? AND start_at < ? FOR UPDATE",
		unitID, startAt, endAt).Scan(&conflicts)
	if err != nil {
		return 0, err
	}
	if conflicts > 0 {
		return 0, ErrUnitUnavailable
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (user_id, vr_id, start_at, end_at) VALUES (?,?,?,?)",
		userID, unitID, startAt, endAt)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// CloseActive ends the unit's current rental by rewriting end_at to now on
// the active reservation with the latest start_at (ties broken by highest
// id, keeping the selection deterministic).  The update is a single atomic
// statement; when it matches no row the unit has no active reservation and
// ErrNoActiveReservation is returned.
func (r *ReservationRepo) CloseActive(ctx context.Context, unitID int, now time.Time) error {
	now = now.UTC()
	res, err := r.db.ExecContext(ctx,
		"UPDATE reservations SET end_at=? WHERE vr_id=? AND end_at > ? ORDER BY start_at DESC, id DESC LIMIT 1",
		now, unitID, now)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoActiveReservation
	}
	return nil
}

// ListByUser returns the user's reservations newest-first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, vr_id, start_at, end_at, created_at
		 FROM reservations WHERE user_id=? ORDER BY start_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var m model.Reservation
		if err := rows.Scan(&m.ID, &m.UserID, &m.UnitID, &m.StartAt, &m.EndAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
