package model

import "time"

// UserItem is the "welcome packet" content item assigned to a user for a
// particular stay date.  One item exists per user and claim date; both
// booking owners and approved members receive one when their booking or
// membership is approved.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user the packet belongs to.
//  ClaimDate – stay start date the packet was generated for.
//  Title     – generated packet title.
//  ImageURL  – generated artwork for the packet.
//  CreatedAt – creation timestamp.
type UserItem struct {
	ID        uint64    // user_items.id
	UserID    uint64    // user_items.user_id
	ClaimDate time.Time // user_items.claim_date
	Title     string    // user_items.title
	ImageURL  string    // user_items.image_url
	CreatedAt time.Time // user_items.created_at
}
