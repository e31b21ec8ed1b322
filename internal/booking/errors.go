// Package booking implements the reservation engine for the villa: date
// conflict detection, the trust-based approval lifecycle, and the member
// join workflow with its capacity rules.  Handlers translate the sentinel
// errors defined here into HTTP responses.
package booking

import "errors"

// ErrGuestBounds is returned when a booking requests a guest capacity
// outside the allowed 1..4 range.  Handlers map it to 400.
var ErrGuestBounds = errors.New("pick between 1 and 4 guests")

// ErrDateOrder is returned when a booking's end date is not strictly
// after its start date.  Handlers map it to 400.
var ErrDateOrder = errors.New("end date must be after start date")

// ErrDateConflict is returned when a candidate range collides with an
// existing future booking, including exact boundary touches.  Handlers
// map it to 409.
var ErrDateConflict = errors.New("invalid dates: conflicts with existing booking")

// ErrBookingNotFound is returned when no booking matches the given id or
// share code.  Handlers map it to 404.
var ErrBookingNotFound = errors.New("booking not found")

// ErrMemberNotFound is returned when no member booking matches the given
// id.  Handlers map it to 404.
var ErrMemberNotFound = errors.New("member booking not found")

// ErrBookingFull is returned when a booking has no free guest seats
// left.  Handlers map it to 409.
var ErrBookingFull = errors.New("booking not available for joining")

// ErrForbidden is returned when the acting user is not the booking owner
// (or otherwise lacks the required authority).  Handlers map it to 403.
var ErrForbidden = errors.New("permission denied")

// ErrUserAmbiguous is returned when a username resolves to zero or more
// than one user.  Handlers map it to 400.
var ErrUserAmbiguous = errors.New("username matches no user or more than one")

// ErrNotApprovable is returned when an admin tries to approve a rejected
// booking through the normal path.  Handlers map it to 409.
var ErrNotApprovable = errors.New("booking is not approvable")
