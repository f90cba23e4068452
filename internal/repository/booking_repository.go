package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/shareit/internal/model"
)

// BookingRepo provides persistence for bookings.  Every read joins the
// items table so callers get the item name and owner in one round trip;
// relations are always fetched by explicit query, never held as live
// references on the booking itself.
type BookingRepo struct{ db *sql.DB }

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// BookingDetail is a booking row joined with the fields of its item
// that the service layer needs for authorization checks and response
// projections.
type BookingDetail struct {
	ID          uint64
	Start       time.Time
	End         time.Time
	Status      string
	BookerID    uint64
	ItemID      uint64
	ItemName    string
	ItemOwnerID uint64
}

const bookingSelect = `SELECT b.id, b.start_date, b.end_date, b.status, b.booker_id,
       b.item_id, i.name, i.owner_id
FROM bookings b
JOIN items i ON i.id = b.item_id`

func scanBookingDetail(row interface{ Scan(...any) error }) (BookingDetail, error) {
	var d BookingDetail
	err := row.Scan(&d.ID, &d.Start, &d.End, &d.Status, &d.BookerID,
		&d.ItemID, &d.ItemName, &d.ItemOwnerID)
	return d, err
}

// Create inserts a booking and populates the generated ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO bookings (start_date, end_date, item_id, booker_id, status) VALUES (?, ?, ?, ?, ?)",
		b.Start, b.End, b.ItemID, b.BookerID, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a booking with its item fields.  Returns
// ErrBookingNotFound when absent.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx,
		bookingSelect+" WHERE b.id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return BookingDetail{}, ErrBookingNotFound
	}
	return d, err
}

// UpdateStatus persists a new status for the booking.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Distinguish a missing row from an unchanged status.
		var exists int
		if err := r.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM bookings WHERE id = ?", id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrBookingNotFound
		}
	}
	return nil
}

// stateCond translates a listing state bucket into a SQL fragment on
// the bookings columns plus its bind arguments.  ALL contributes no
// condition.
//
//	| state    | predicate                     |
//	| ALL      | —                             |
//	| CURRENT  | start_date < now < end_date   |
//	| PAST     | end_date < now                |
//	| FUTURE   | start_date > now              |
//	| WAITING  | status = 'WAITING'            |
//	| REJECTED | status = 'REJECTED'           |
func stateCond(state model.State, now time.Time) (string, []any) {
	switch state {
	case model.StateCurrent:
		return " AND b.start_date < ? AND b.end_date > ?", []any{now, now}
	case model.StatePast:
		return " AND b.end_date < ?", []any{now}
	case model.StateFuture:
		return " AND b.start_date > ?", []any{now}
	case model.StateWaiting, model.StateRejected:
		return " AND b.status = ?", []any{string(state)}
	default: // StateAll
		return "", nil
	}
}

// ListByBooker returns one page of a user's own bookings filtered by
// state and ordered by start descending.
func (r *BookingRepo) ListByBooker(ctx context.Context, bookerID uint64, state model.State, now time.Time, limit, offset int) ([]BookingDetail, error) {
	cond, condArgs := stateCond(state, now)
	args := append([]any{bookerID}, condArgs...)
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+" WHERE b.booker_id = ?"+cond+
			" ORDER BY b.start_date DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListByOwner returns one page of the bookings placed against any of an
// owner's items, filtered by state and ordered by start descending.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64, state model.State, now time.Time, limit, offset int) ([]BookingDetail, error) {
	cond, condArgs := stateCond(state, now)
	args := append([]any{ownerID}, condArgs...)
	args = append(args, limit, offset)
	rows, err := r.db.QueryContext(ctx,
		bookingSelect+" WHERE i.owner_id = ?"+cond+
			" ORDER BY b.start_date DESC LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// ListApprovedForItems returns every APPROVED booking of the given
// items ordered by start ascending, for last/next booking decorations.
func (r *BookingRepo) ListApprovedForItems(ctx context.Context, itemIDs []uint64) ([]BookingDetail, error) {
	if len(itemIDs) == 0 {
		return []BookingDetail{}, nil
	}
	query := bookingSelect + " WHERE b.item_id IN (" + placeholders(len(itemIDs)) +
		") AND b.status = ? ORDER BY b.start_date"
	args := make([]any, 0, len(itemIDs)+1)
	for _, id := range itemIDs {
		args = append(args, id)
	}
	args = append(args, model.StatusApproved)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

// CountCompleted reports how many bookings the user has for the item
// with an end time strictly before now.  The comment ledger uses this
// as the completed-stay gate.
func (r *BookingRepo) CountCompleted(ctx context.Context, itemID, bookerID uint64, now time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE item_id = ? AND booker_id = ? AND end_date < ?",
		itemID, bookerID, now).Scan(&n)
	return n, err
}

// CountOverlapping reports bookings of the item whose range touches
// [start, end].  No service calls it today, so two concurrent bookings
// over the same range can both succeed.
// TODO: wire into booking creation once an overlap policy is decided.
func (r *BookingRepo) CountOverlapping(ctx context.Context, itemID uint64, start, end time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE item_id = ?
		   AND (start_date BETWEEN ? AND ? OR end_date BETWEEN ? AND ?)`,
		itemID, start, end, start, end).Scan(&n)
	return n, err
}

func collectBookings(rows *sql.Rows) ([]BookingDetail, error) {
	bookings := make([]BookingDetail, 0)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, d)
	}
	return bookings, rows.Err()
}
