package repository

import (
	"context"
	"database/sql"
	"time"
)

// ItemInfo is the welcome packet projection embedded in booking details.
type ItemInfo struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// MemberDetail is a member booking joined with the member's user and
// packet, as shown on the booking page.
type MemberDetail struct {
	ID       uint64    `json:"id"`
	UserID   uint64    `json:"user_id"`
	UserName string    `json:"user_name"`
	Status   string    `json:"status"`
	Item     *ItemInfo `json:"item,omitempty"`
	JoinedAt time.Time `json:"joined_at"`
}

// BookingDetail is a fully hydrated booking aggregate: the booking, its
// owner, its packet and all member records with their packets.  It is
// assembled in two queries so listing pages never degenerate into
// per-member fetches.
type BookingDetail struct {
	ID          uint64         `json:"id"`
	Code        string         `json:"code"`
	OwnerID     uint64         `json:"owner_id"`
	OwnerName   string         `json:"owner_name"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	MaxGuests   int            `json:"max_guests"`
	NumGuests   int            `json:"num_guests"`
	Status      string         `json:"status"`
	WithPets    bool           `json:"with_pets"`
	WithInfants bool           `json:"with_infants"`
	Item        *ItemInfo      `json:"item,omitempty"`
	Members     []MemberDetail `json:"members"`
}

// GetDetailByCode loads the aggregate for one booking looked up by its
// share code.  sql.ErrNoRows is returned when the code is unknown.
func (r *BookingRepo) GetDetailByCode(ctx context.Context, code string) (*BookingDetail, error) {
	const q = `SELECT b.id, b.code, b.owner_id, u.name, b.start_date, b.end_date,
					  b.max_guests, b.num_guests, b.status, b.with_pets, b.with_infants,
					  i.id, i.title, i.image_url
			   FROM bookings b
			   JOIN users u ON u.id = b.owner_id
			   LEFT JOIN user_items i ON i.id = b.item_id
			   WHERE b.code = ?`
	var det BookingDetail
	var itemID sql.NullInt64
	var itemTitle, itemURL sql.NullString
	err := r.db.QueryRowContext(ctx, q, code).Scan(
		&det.ID, &det.Code, &det.OwnerID, &det.OwnerName, &det.StartDate, &det.EndDate,
		&det.MaxGuests, &det.NumGuests, &det.Status, &det.WithPets, &det.WithInfants,
		&itemID, &itemTitle, &itemURL,
	)
	if err != nil {
		return nil, err
	}
	if itemID.Valid {
		det.Item = &ItemInfo{ID: uint64(itemID.Int64), Title: itemTitle.String, ImageURL: itemURL.String}
	}
	det.Members = []MemberDetail{}
	// Members in insertion order, with user names and packets in one query.
	const memberQ = `SELECT m.id, m.user_id, mu.name, m.status, m.created_at,
							mi.id, mi.title, mi.image_url
					 FROM member_bookings m
					 JOIN users mu ON mu.id = m.user_id
					 LEFT JOIN user_items mi ON mi.id = m.item_id
					 WHERE m.booking_id = ?
					 ORDER BY m.id ASC`
	rows, err := r.db.QueryContext(ctx, memberQ, det.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m MemberDetail
		var miID sql.NullInt64
		var miTitle, miURL sql.NullString
		if err := rows.Scan(&m.ID, &m.UserID, &m.UserName, &m.Status, &m.JoinedAt,
			&miID, &miTitle, &miURL); err != nil {
			return nil, err
		}
		if miID.Valid {
			m.Item = &ItemInfo{ID: uint64(miID.Int64), Title: miTitle.String, ImageURL: miURL.String}
		}
		det.Members = append(det.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &det, nil
}
