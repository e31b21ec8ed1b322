package booking

import "github.com/ktvilla/villa-booking/internal/model"

// InitialStatus maps the booking owner's trust level to the status a new
// booking starts in.  Trusted members are approved on the spot; everyone
// else waits for an admin.  The caller, not this function, triggers the
// welcome packet assignment when the decision is approved.
func InitialStatus(trustLevel string) string {
	if trustLevel == model.TrustTrusted {
		return model.StatusApproved
	}
	return model.StatusPending
}
