package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ktvilla/villa-booking/internal/model"
	"github.com/ktvilla/villa-booking/internal/repository"
)

// ItemAssigner produces the welcome packet item for a user and a stay
// date.  Assignment runs inside the caller's transaction so that a
// failed assignment aborts the surrounding approval; no half-approved
// state is ever committed.
type ItemAssigner interface {
	Assign(ctx context.Context, tx *sql.Tx, userID uint64, date time.Time) (model.UserItem, error)
}

// PacketAssigner is the default ItemAssigner.  It reuses the user's
// existing packet for the date when one exists and otherwise creates one
// with a deterministic title and artwork seeded from the user and date,
// so repeated assignment for the same user/date converges on one item.
type PacketAssigner struct {
	Items *repository.ItemRepo
}

var packetAdjectives = []string{
	"Sunny", "Quiet", "Salty", "Golden", "Misty", "Breezy", "Mellow", "Wild",
}

var packetNouns = []string{
	"Harbor", "Meadow", "Lagoon", "Summit", "Grove", "Shore", "Terrace", "Trail",
}

// Assign returns the packet for the user and date, creating it on first
// use.
func (a *PacketAssigner) Assign(ctx context.Context, tx *sql.Tx, userID uint64, date time.Time) (model.UserItem, error) {
	existing, err := a.Items.GetByUserAndDateTx(ctx, tx, userID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return model.UserItem{}, err
	}
	seed := userID + uint64(date.Unix())
	item := model.UserItem{
		UserID:    userID,
		ClaimDate: date,
		Title: fmt.Sprintf("%s %s",
			packetAdjectives[seed%uint64(len(packetAdjectives))],
			packetNouns[(seed/uint64(len(packetAdjectives)))%uint64(len(packetNouns))]),
		ImageURL: fmt.Sprintf("https://picsum.photos/seed/villa-%d/600/400", seed),
	}
	if err := a.Items.CreateTx(ctx, tx, &item); err != nil {
		return model.UserItem{}, err
	}
	return item, nil
}
