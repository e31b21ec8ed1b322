package booking

import "github.com/ktvilla/villa-booking/internal/model"

// NeedsItem decides whether writing newStatus onto the member record must
// be followed by the assign-item-and-increment step.  The step runs only
// on a genuine transition into approved: a rejection carries no side
// effects, and a record that already holds an item was approved before,
// so re-approving it is a no-op.  This keeps approvals idempotent: the
// guest count is never bumped twice for the same member.
func NeedsItem(member model.MemberBooking, newStatus string) bool {
	if newStatus != model.StatusApproved {
		return false
	}
	return member.ItemID == nil
}
