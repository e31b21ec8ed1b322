package booking

import (
	"testing"

	"github.com/ktvilla/villa-booking/internal/model"
)

func TestNeedsItem(t *testing.T) {
	itemID := uint64(7)

	tests := []struct {
		name      string
		member    model.MemberBooking
		newStatus string
		want      bool
	}{
		{
			name:      "first approval assigns the packet",
			member:    model.MemberBooking{Status: model.StatusPending},
			newStatus: model.StatusApproved,
			want:      true,
		},
		{
			name:      "re-approval with a packet already attached is a no-op",
			member:    model.MemberBooking{Status: model.StatusApproved, ItemID: &itemID},
			newStatus: model.StatusApproved,
			want:      false,
		},
		{
			name:      "rejection has no side effects",
			member:    model.MemberBooking{Status: model.StatusPending},
			newStatus: model.StatusRejected,
			want:      false,
		},
		{
			name:      "setting back to pending has no side effects",
			member:    model.MemberBooking{Status: model.StatusApproved, ItemID: &itemID},
			newStatus: model.StatusPending,
			want:      false,
		},
		{
			name:      "approved record that somehow lost its packet gets one",
			member:    model.MemberBooking{Status: model.StatusApproved},
			newStatus: model.StatusApproved,
			want:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsItem(tt.member, tt.newStatus); got != tt.want {
				t.Errorf("NeedsItem(%+v, %q) = %v, want %v", tt.member, tt.newStatus, got, tt.want)
			}
		})
	}
}
