package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ktvilla/villa-booking/internal/model"
)

// MemberRepo provides CRUD operations for member booking records.  The
// approval path is transaction-scoped: the engine locks the parent
// booking, rewrites the member status, attaches the packet and bumps the
// guest counter as one unit.
type MemberRepo struct {
	db *sql.DB
}

// NewMemberRepo returns a new MemberRepo bound to the given database.
func NewMemberRepo(db *sql.DB) *MemberRepo { return &MemberRepo{db: db} }

const memberCols = `id, booking_id, user_id, status, item_id, created_at, updated_at`

func scanMember(row interface{ Scan(...any) error }) (model.MemberBooking, error) {
	var m model.MemberBooking
	var itemID sql.NullInt64
	err := row.Scan(&m.ID, &m.BookingID, &m.UserID, &m.Status, &itemID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.MemberBooking{}, err
	}
	if itemID.Valid {
		id := uint64(itemID.Int64)
		m.ItemID = &id
	}
	return m, nil
}

// Create inserts a pending member record for a join request and returns
// the committed row.
func (r *MemberRepo) Create(ctx context.Context, bookingID, userID uint64) (model.MemberBooking, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO member_bookings (booking_id, user_id, status) VALUES (?, ?, ?)`,
		bookingID, userID, model.StatusPending)
	if err != nil {
		return model.MemberBooking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MemberBooking{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// CreateApprovedTx inserts a member record that is already approved with
// its packet attached, the shape produced when the owner adds a member
// directly.
func (r *MemberRepo) CreateApprovedTx(ctx context.Context, tx *sql.Tx, bookingID, userID, itemID uint64) (model.MemberBooking, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO member_bookings (booking_id, user_id, status, item_id) VALUES (?, ?, ?, ?)`,
		bookingID, userID, model.StatusApproved, itemID)
	if err != nil {
		return model.MemberBooking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.MemberBooking{}, err
	}
	return scanMember(tx.QueryRowContext(ctx,
		`SELECT `+memberCols+` FROM member_bookings WHERE id = ?`, id))
}

// GetByID fetches a single member record.
func (r *MemberRepo) GetByID(ctx context.Context, id uint64) (model.MemberBooking, error) {
	return scanMember(r.db.QueryRowContext(ctx,
		`SELECT `+memberCols+` FROM member_bookings WHERE id = ?`, id))
}

// GetForUpdateTx fetches a member record and locks its row.  The parent
// booking must be locked separately via BookingRepo.GetForUpdateTx
// before touching the guest counter.
func (r *MemberRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.MemberBooking, error) {
	return scanMember(tx.QueryRowContext(ctx,
		`SELECT `+memberCols+` FROM member_bookings WHERE id = ? FOR UPDATE`, id))
}

// UpdateStatusTx writes the member status inside the caller's
// transaction.
func (r *MemberRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE member_bookings SET status = ? WHERE id = ?`, status, id)
	return err
}

// AttachItemTx sets the member's packet.  The write only lands when no
// packet is attached yet; a second approval of the same record changes
// nothing.
func (r *MemberRepo) AttachItemTx(ctx context.Context, tx *sql.Tx, id, itemID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE member_bookings SET item_id = ? WHERE id = ? AND item_id IS NULL`,
		itemID, id)
	return err
}

// MemberJoinRequest is a member record joined with its booking, returned
// when listing a user's outgoing join requests.
type MemberJoinRequest struct {
	ID        uint64    `json:"id"`
	Status    string    `json:"status"`
	Code      string    `json:"code"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ListByUser returns the user's join requests ordered by the booking's
// start date ascending.
func (r *MemberRepo) ListByUser(ctx context.Context, userID uint64) ([]MemberJoinRequest, error) {
	const q = `SELECT m.id, m.status, b.code, b.start_date, b.end_date
			   FROM member_bookings m
			   JOIN bookings b ON b.id = m.booking_id
			   WHERE m.user_id = ?
			   ORDER BY b.start_date ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]MemberJoinRequest, 0)
	for rows.Next() {
		var m MemberJoinRequest
		if err := rows.Scan(&m.ID, &m.Status, &m.Code, &m.StartDate, &m.EndDate); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
