package model

import "time"

// Booking statuses.  A booking starts out pending or approved depending
// on the owner's trust level and can move to rejected by an admin.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Booking represents a stay at the villa reserved by one owner for a
// date range.  Other members may join it through MemberBooking records.
// This struct corresponds to a row in the `bookings` table.
//
// Fields:
//  ID         – primary key identifier.
//  Code       – unique 6-character share code, assigned at creation,
//               immutable afterwards.
//  OwnerID    – user who created the booking.
//  StartDate  – first day of the stay (inclusive).
//  EndDate    – last day of the stay (exclusive); must be after StartDate.
//  MaxGuests  – capacity of the stay including the owner (1..4).
//  NumGuests  – current guest count; starts at 1 for the owner.
//  Status     – pending, approved or rejected.
//  WithPets   – whether the party brings pets (informational).
//  WithInfants– whether the party brings infants (informational).
//  ItemID     – welcome packet item assigned once the booking is approved.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Booking struct {
	ID          uint64     // bookings.id
	Code        string     // bookings.code
	OwnerID     uint64     // bookings.owner_id
	StartDate   time.Time  // bookings.start_date
	EndDate     time.Time  // bookings.end_date
	MaxGuests   int        // bookings.max_guests
	NumGuests   int        // bookings.num_guests
	Status      string     // bookings.status
	WithPets    bool       // bookings.with_pets
	WithInfants bool       // bookings.with_infants
	ItemID      *uint64    // bookings.item_id (nullable)
	CreatedAt   time.Time  // bookings.created_at
	UpdatedAt   time.Time  // bookings.updated_at
}

// MemberBooking records another member's request (or grant) to join an
// existing booking.  Records are created pending by a join request, or
// already approved when the owner adds a member directly.  The item is
// attached exactly once, at the moment the record becomes approved.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – booking being joined.
//  UserID    – the joining member.
//  Status    – pending, approved or rejected.
//  ItemID    – welcome packet item, set once at approval.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type MemberBooking struct {
	ID        uint64    // member_bookings.id
	BookingID uint64    // member_bookings.booking_id
	UserID    uint64    // member_bookings.user_id
	Status    string    // member_bookings.status
	ItemID    *uint64   // member_bookings.item_id (nullable)
	CreatedAt time.Time // member_bookings.created_at
	UpdatedAt time.Time // member_bookings.updated_at
}
