package repository

import (
	"strings"
	"testing"
	"time"
)

func strPtr(s string) *string       { return &s }
func intPtr(n int) *int             { return &n }
func datePtr(s string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBookingUpdateValidate(t *testing.T) {
	tests := []struct {
		name     string
		upd      BookingUpdate
		wantErrs []string
	}{
		{"empty update is valid", BookingUpdate{}, nil},
		{
			"valid full update",
			BookingUpdate{
				StartDate: datePtr("2024-07-01"),
				EndDate:   datePtr("2024-07-05"),
				MaxGuests: intPtr(3),
				NumGuests: intPtr(2),
				Status:    strPtr("approved"),
			},
			nil,
		},
		{
			"start not before end",
			BookingUpdate{StartDate: datePtr("2024-07-05"), EndDate: datePtr("2024-07-05")},
			[]string{"start_date must be before end_date"},
		},
		{
			"start alone is not checked against end",
			BookingUpdate{StartDate: datePtr("2024-07-05")},
			nil,
		},
		{
			"max guests out of range",
			BookingUpdate{MaxGuests: intPtr(9)},
			[]string{"max_guests must be between 1 and 4"},
		},
		{
			"unknown status",
			BookingUpdate{Status: strPtr("archived")},
			[]string{"status must be pending, approved or rejected"},
		},
		{
			"every broken field is reported at once",
			BookingUpdate{
				StartDate: datePtr("2024-07-09"),
				EndDate:   datePtr("2024-07-01"),
				MaxGuests: intPtr(0),
				NumGuests: intPtr(-1),
				Status:    strPtr("archived"),
			},
			[]string{
				"start_date must be before end_date",
				"max_guests must be between 1 and 4",
				"num_guests must not be negative",
				"status must be pending, approved or rejected",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.upd.Validate()
			if len(tt.wantErrs) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want errors %v", tt.wantErrs)
			}
			for _, want := range tt.wantErrs {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() error %q does not mention %q", err.Error(), want)
				}
			}
		})
	}
}
