package notify

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name         string
		template     string
		data         map[string]string
		wantSubject  string
		wantInBody   []string
	}{
		{
			name:        "booking created",
			template:    TemplateBookingCreated,
			data:        map[string]string{"code": "a1B2c3", "link": "https://www.kt-villa.com/admin/bookings"},
			wantSubject: "New Booking Created",
			wantInBody:  []string{"a1B2c3", "https://www.kt-villa.com/admin/bookings"},
		},
		{
			name:        "join request",
			template:    TemplateJoinRequest,
			data:        map[string]string{"name": "Mina", "code": "a1B2c3", "link": "https://www.kt-villa.com/booking/a1B2c3"},
			wantSubject: "Request to join your trip",
			wantInBody:  []string{"Mina", "a1B2c3"},
		},
		{
			name:        "join approved",
			template:    TemplateJoinApproved,
			data:        map[string]string{"name": "Mina", "code": "a1B2c3", "link": "https://www.kt-villa.com/public-booking/a1B2c3"},
			wantSubject: "Your request to join is approved",
			wantInBody:  []string{"Mina", "confirmed"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body, err := Render(tt.template, tt.data)
			if err != nil {
				t.Fatalf("Render(%q) error = %v", tt.template, err)
			}
			if subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
			for _, want := range tt.wantInBody {
				if !strings.Contains(body, want) {
					t.Errorf("body %q does not contain %q", body, want)
				}
			}
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, err := Render("password_reset", nil); err == nil {
		t.Error("Render() with unknown template name should fail")
	}
}
