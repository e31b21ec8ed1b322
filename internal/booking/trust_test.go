package booking

import (
	"testing"

	"github.com/ktvilla/villa-booking/internal/model"
)

func TestInitialStatus(t *testing.T) {
	tests := []struct {
		name       string
		trustLevel string
		want       string
	}{
		{"trusted owner is approved immediately", model.TrustTrusted, model.StatusApproved},
		{"untrusted owner waits for review", model.TrustUntrusted, model.StatusPending},
		{"unknown level is treated as untrusted", "suspicious", model.StatusPending},
		{"empty level is treated as untrusted", "", model.StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InitialStatus(tt.trustLevel); got != tt.want {
				t.Errorf("InitialStatus(%q) = %q, want %q", tt.trustLevel, got, tt.want)
			}
		})
	}
}
