package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/ktvilla/villa-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their member
// records.  Date columns are DATE values interpreted in UTC.  The
// conflict-sensitive reads expose explicit Tx variants so the engine can
// keep the read-check-write sequence inside one transaction.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// ErrCodeExists is returned by CreateTx when the generated share code
// collides with an existing booking.  The engine regenerates and
// retries.
var ErrCodeExists = errors.New("booking code already exists")

const bookingCols = `id, code, owner_id, start_date, end_date, max_guests, num_guests,
	   status, with_pets, with_infants, item_id, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	var itemID sql.NullInt64
	err := row.Scan(
		&b.ID, &b.Code, &b.OwnerID, &b.StartDate, &b.EndDate,
		&b.MaxGuests, &b.NumGuests, &b.Status, &b.WithPets, &b.WithInfants,
		&itemID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return model.Booking{}, err
	}
	if itemID.Valid {
		id := uint64(itemID.Int64)
		b.ItemID = &id
	}
	return b, nil
}

// CreateTx inserts a new booking within the scope of an existing
// transaction and populates the record from the committed row.  A
// duplicate share code maps to ErrCodeExists so the caller can retry
// with a fresh code; any other error is returned as-is.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
		(code, owner_id, start_date, end_date, max_guests, num_guests, status, with_pets, with_infants)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		b.Code, b.OwnerID, b.StartDate, b.EndDate,
		b.MaxGuests, b.NumGuests, b.Status, b.WithPets, b.WithInfants)
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "1062") && strings.Contains(low, "code") {
			return ErrCodeExists
		}
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	// Query back the full row to populate timestamps and defaults.
	got, err := r.getTx(ctx, tx, uint64(id))
	if err != nil {
		return err
	}
	*b = got
	return nil
}

func (r *BookingRepo) getTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	return scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
}

// ListFutureTx returns every booking whose stay starts after the given
// instant, sorted ascending by start date, with the rows locked for the
// duration of the transaction.  The lock is what serializes concurrent
// creations: two creates cannot both read the calendar and insert
// overlapping ranges.  Status is deliberately not filtered; pending
// bookings occupy the calendar too.
func (r *BookingRepo) ListFutureTx(ctx context.Context, tx *sql.Tx, after time.Time) ([]model.Booking, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE start_date > ? ORDER BY start_date ASC FOR UPDATE`,
		after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a single booking.  sql.ErrNoRows is returned when the
// booking does not exist.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
}

// GetByCode fetches a single booking by its share code.
func (r *BookingRepo) GetByCode(ctx context.Context, code string) (model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE code = ?`, code))
}

// GetForUpdateTx fetches a booking with its row locked until the
// transaction ends.  Member approvals lock the booking here so that the
// guest counter is read and written by one approval at a time.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	return scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ? FOR UPDATE`, id))
}

// AttachItemTx sets the booking's welcome packet item.  The item is only
// written when none is attached yet, keeping repeated approvals
// idempotent.
func (r *BookingRepo) AttachItemTx(ctx context.Context, tx *sql.Tx, bookingID, itemID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE bookings SET item_id = ? WHERE id = ? AND item_id IS NULL`,
		itemID, bookingID)
	return err
}

// IncrementGuestsTx bumps num_guests by exactly one.  With guard set the
// increment only applies while a seat is free and the return value
// reports whether it did; without the guard the counter is bumped
// unconditionally, reproducing the legacy behavior.
func (r *BookingRepo) IncrementGuestsTx(ctx context.Context, tx *sql.Tx, id uint64, guard bool) (bool, error) {
	q := `UPDATE bookings SET num_guests = num_guests + 1 WHERE id = ?`
	if guard {
		q += ` AND num_guests < max_guests`
	}
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateStatus overwrites the booking status without any conflict
// re-check.  This is the admin escape hatch; the caller is responsible
// for the calendar staying sane afterwards.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string) (model.Booking, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return model.Booking{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Row may exist with the same status already; distinguish via read.
		return r.GetByID(ctx, id)
	}
	return r.GetByID(ctx, id)
}

// BookingUpdate carries the optional fields an admin may overwrite on a
// booking.  Nil fields are left untouched.
type BookingUpdate struct {
	StartDate   *time.Time
	EndDate     *time.Time
	MaxGuests   *int
	NumGuests   *int
	Status      *string
	WithPets    *bool
	WithInfants *bool
}

// Validate checks the supplied fields for internal consistency and
// aggregates every failing rule, so the admin sees all problems in one
// round trip.
func (u BookingUpdate) Validate() error {
	var errs *multierror.Error
	if u.StartDate != nil && u.EndDate != nil && !u.StartDate.Before(*u.EndDate) {
		errs = multierror.Append(errs, errors.New("start_date must be before end_date"))
	}
	if u.MaxGuests != nil && (*u.MaxGuests < 1 || *u.MaxGuests > 4) {
		errs = multierror.Append(errs, errors.New("max_guests must be between 1 and 4"))
	}
	if u.NumGuests != nil && *u.NumGuests < 0 {
		errs = multierror.Append(errs, errors.New("num_guests must not be negative"))
	}
	if u.Status != nil {
		switch *u.Status {
		case model.StatusPending, model.StatusApproved, model.StatusRejected:
		default:
			errs = multierror.Append(errs, errors.New("status must be pending, approved or rejected"))
		}
	}
	return errs.ErrorOrNil()
}

// Update applies an admin field edit.  No conflict detection or capacity
// accounting runs here; see UpdateStatus for the rationale.
func (r *BookingRepo) Update(ctx context.Context, id uint64, upd BookingUpdate) (model.Booking, error) {
	sets := make([]string, 0, 7)
	args := make([]any, 0, 8)
	if upd.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *upd.StartDate)
	}
	if upd.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *upd.EndDate)
	}
	if upd.MaxGuests != nil {
		sets = append(sets, "max_guests = ?")
		args = append(args, *upd.MaxGuests)
	}
	if upd.NumGuests != nil {
		sets = append(sets, "num_guests = ?")
		args = append(args, *upd.NumGuests)
	}
	if upd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *upd.Status)
	}
	if upd.WithPets != nil {
		sets = append(sets, "with_pets = ?")
		args = append(args, *upd.WithPets)
	}
	if upd.WithInfants != nil {
		sets = append(sets, "with_infants = ?")
		args = append(args, *upd.WithInfants)
	}
	if len(sets) > 0 {
		args = append(args, id)
		q := "UPDATE bookings SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
			return model.Booking{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a booking.  Member records cascade through the foreign
// key; welcome packet items survive because they belong to users, not
// bookings.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListByOwner returns the user's own bookings ordered by start date
// ascending.
func (r *BookingRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE owner_id = ? ORDER BY start_date ASC`,
		ownerID)
}

// ListAll returns every booking ordered by start date ascending, for the
// admin screen.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.Booking, error) {
	return r.list(ctx,
		`SELECT `+bookingCols+` FROM bookings ORDER BY start_date ASC`)
}

// ListJoinable returns future bookings that still have a free seat and
// are not owned by the calling user, ordered by start date ascending.
// limit <= 0 means no limit.
func (r *BookingRepo) ListJoinable(ctx context.Context, excludeOwnerID uint64, limit int) ([]model.Booking, error) {
	q := `SELECT ` + bookingCols + ` FROM bookings
		  WHERE num_guests < max_guests AND start_date > ? AND owner_id != ?
		  ORDER BY start_date ASC`
	args := []any{time.Now().UTC(), excludeOwnerID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return r.list(ctx, q, args...)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
