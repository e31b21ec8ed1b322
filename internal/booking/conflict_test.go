package booking

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) DateRange {
	return DateRange{Start: day(start), End: day(end)}
}

func TestDateRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       DateRange
		wantErr error
	}{
		{"start before end", rng("2024-07-01", "2024-07-05"), nil},
		{"single night", rng("2024-07-01", "2024-07-02"), nil},
		{"equal start and end", rng("2024-07-01", "2024-07-01"), ErrDateOrder},
		{"end before start", rng("2024-07-05", "2024-07-01"), ErrDateOrder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.r.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckAvailable(t *testing.T) {
	taken := []DateRange{
		rng("2024-07-01", "2024-07-05"),
		rng("2024-07-10", "2024-07-15"),
		rng("2024-08-01", "2024-08-07"),
	}

	tests := []struct {
		name      string
		candidate DateRange
		taken     []DateRange
		wantErr   error
	}{
		{"empty calendar accepts anything", rng("2024-07-01", "2024-07-05"), nil, nil},
		{"entirely before the earliest", rng("2024-06-20", "2024-06-25"), taken, nil},
		{"entirely after the latest", rng("2024-08-10", "2024-08-14"), taken, nil},
		{"strictly inside a gap", rng("2024-07-06", "2024-07-09"), taken, nil},
		{"inside the second gap", rng("2024-07-20", "2024-07-25"), taken, nil},

		{"overlaps an existing stay", rng("2024-07-03", "2024-07-08"), taken, ErrDateConflict},
		{"contained inside an existing stay", rng("2024-07-02", "2024-07-04"), taken, ErrDateConflict},
		{"spans an entire existing stay", rng("2024-06-28", "2024-07-20"), taken, ErrDateConflict},

		// No turnover day: touching an existing boundary is a conflict
		// even though the half-open ranges do not overlap.
		{"starts on an existing end date", rng("2024-07-05", "2024-07-08"), taken, ErrDateConflict},
		{"ends on an existing start date", rng("2024-07-07", "2024-07-10"), taken, ErrDateConflict},
		{"touches the earliest start", rng("2024-06-25", "2024-07-01"), taken, ErrDateConflict},
		{"touches the latest end", rng("2024-08-07", "2024-08-12"), taken, ErrDateConflict},

		{"fills a gap exactly", rng("2024-07-15", "2024-08-01"), taken, ErrDateConflict},
		{"one day of air on both sides", rng("2024-07-16", "2024-07-31"), taken, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckAvailable(tt.candidate, tt.taken); !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckAvailable() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckAvailableSingleExisting(t *testing.T) {
	taken := []DateRange{rng("2024-07-01", "2024-07-05")}

	tests := []struct {
		name      string
		candidate DateRange
		wantErr   error
	}{
		{"before", rng("2024-06-20", "2024-06-28"), nil},
		{"after", rng("2024-07-08", "2024-07-12"), nil},
		{"start equals existing end", rng("2024-07-05", "2024-07-09"), ErrDateConflict},
		{"day after existing end", rng("2024-07-06", "2024-07-09"), nil},
		{"overlap", rng("2024-07-04", "2024-07-09"), ErrDateConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckAvailable(tt.candidate, taken); !errors.Is(err, tt.wantErr) {
				t.Errorf("CheckAvailable() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
