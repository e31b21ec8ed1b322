package booking

import "time"

// DateRange is a half-open [Start, End) stay interval.  End must be
// strictly after Start.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate checks that the range is well formed.  Equal start and end is
// not a valid stay.
func (r DateRange) Validate() error {
	if !r.Start.Before(r.End) {
		return ErrDateOrder
	}
	return nil
}

// CheckAvailable decides whether a candidate range may be accepted
// against the bookings that already occupy the calendar.  taken must be
// sorted ascending by start date; it holds every booking with a start
// date in the future regardless of status, so a pending booking blocks
// new candidates just like an approved one.
//
// All comparisons are strict: a candidate whose start equals an existing
// booking's end (or vice versa) is rejected.  The property requires a
// free turnover day between stays, not mere non-overlap.
func CheckAvailable(candidate DateRange, taken []DateRange) error {
	if len(taken) == 0 {
		return nil
	}
	// Entirely before the earliest booking.
	if candidate.End.Before(taken[0].Start) {
		return nil
	}
	// Entirely after the latest booking.
	if candidate.Start.After(taken[len(taken)-1].End) {
		return nil
	}
	// Strictly inside a gap between two adjacent bookings.
	for i := 0; i < len(taken)-1; i++ {
		curr, next := taken[i], taken[i+1]
		if curr.End.Before(candidate.Start) && candidate.End.Before(next.Start) {
			return nil
		}
	}
	return ErrDateConflict
}
