package booking

// Guest capacity policy for the property.  MaxGuests on a booking must
// fall inside this range; the owner always counts as the first guest.
const (
	MinCapacity = 1
	MaxCapacity = 4
)

// ValidateCapacity checks the requested maximum guest count for a new
// booking.
func ValidateCapacity(maxGuests int) error {
	if maxGuests < MinCapacity || maxGuests > MaxCapacity {
		return ErrGuestBounds
	}
	return nil
}

// CanJoin reports whether a booking has a free seat for one more guest.
// Join requests are checked here at request time; the approval step
// re-checks only when the engine runs with strict capacity enabled (see
// Service).
func CanJoin(numGuests, maxGuests int) error {
	if numGuests >= maxGuests {
		return ErrBookingFull
	}
	return nil
}
