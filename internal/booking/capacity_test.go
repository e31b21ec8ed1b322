package booking

import (
	"errors"
	"testing"
)

func TestValidateCapacity(t *testing.T) {
	tests := []struct {
		name      string
		maxGuests int
		wantErr   error
	}{
		{"minimum", 1, nil},
		{"maximum", 4, nil},
		{"middle", 2, nil},
		{"zero", 0, ErrGuestBounds},
		{"negative", -1, ErrGuestBounds},
		{"above maximum", 5, ErrGuestBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateCapacity(tt.maxGuests); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCapacity(%d) = %v, want %v", tt.maxGuests, err, tt.wantErr)
			}
		})
	}
}

func TestCanJoin(t *testing.T) {
	tests := []struct {
		name      string
		numGuests int
		maxGuests int
		wantErr   error
	}{
		{"seat free", 1, 2, nil},
		{"last seat", 3, 4, nil},
		{"full", 2, 2, ErrBookingFull},
		{"over capacity already", 3, 2, ErrBookingFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CanJoin(tt.numGuests, tt.maxGuests); !errors.Is(err, tt.wantErr) {
				t.Errorf("CanJoin(%d, %d) = %v, want %v", tt.numGuests, tt.maxGuests, err, tt.wantErr)
			}
		})
	}
}
