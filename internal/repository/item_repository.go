package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ktvilla/villa-booking/internal/model"
)

// ItemRepo stores welcome packet items.  Items are keyed by user and
// claim date; the assigner reuses an existing item instead of creating a
// second one for the same stay.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo returns a new ItemRepo bound to the given database.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// GetByUserAndDateTx looks up the user's item for a claim date inside
// the caller's transaction.  sql.ErrNoRows means no item exists yet.
func (r *ItemRepo) GetByUserAndDateTx(ctx context.Context, tx *sql.Tx, userID uint64, date time.Time) (model.UserItem, error) {
	var it model.UserItem
	err := tx.QueryRowContext(ctx,
		`SELECT id, user_id, claim_date, title, image_url, created_at
		 FROM user_items WHERE user_id = ? AND claim_date = ? LIMIT 1`,
		userID, date).Scan(&it.ID, &it.UserID, &it.ClaimDate, &it.Title, &it.ImageURL, &it.CreatedAt)
	return it, err
}

// CreateTx inserts a new item and populates its generated ID.
func (r *ItemRepo) CreateTx(ctx context.Context, tx *sql.Tx, it *model.UserItem) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO user_items (user_id, claim_date, title, image_url) VALUES (?, ?, ?, ?)`,
		it.UserID, it.ClaimDate, it.Title, it.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	return nil
}

// GetByID fetches a single item.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (model.UserItem, error) {
	var it model.UserItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, claim_date, title, image_url, created_at
		 FROM user_items WHERE id = ?`,
		id).Scan(&it.ID, &it.UserID, &it.ClaimDate, &it.Title, &it.ImageURL, &it.CreatedAt)
	return it, err
}
