package notify

import (
	"bytes"
	"fmt"
	"text/template"
)

// Template names for the messages the engine sends.  Each name maps to a
// subject line and a body template rendered with the event payload.
const (
	TemplateBookingCreated = "booking_created"
	TemplateJoinRequest    = "join_request"
	TemplateJoinApproved   = "join_approved"
)

type messageTemplate struct {
	subject string
	body    *template.Template
}

var messageTemplates = map[string]messageTemplate{
	TemplateBookingCreated: {
		subject: "New Booking Created",
		body: template.Must(template.New(TemplateBookingCreated).Parse(
			"A new booking {{.code}} was created.\nReview it at {{.link}}\n")),
	},
	TemplateJoinRequest: {
		subject: "Request to join your trip",
		body: template.Must(template.New(TemplateJoinRequest).Parse(
			"{{.name}} asked to join your booking {{.code}}.\nManage it at {{.link}}\n")),
	},
	TemplateJoinApproved: {
		subject: "Your request to join is approved",
		body: template.Must(template.New(TemplateJoinApproved).Parse(
			"Hi {{.name}}, you are in! Your spot on booking {{.code}} is confirmed.\nSee the trip at {{.link}}\n")),
	},
}

// Render produces the subject and body for a named template.  Unknown
// template names are an error so typos surface in tests rather than as
// silently dropped mail.
func Render(name string, data map[string]string) (subject, body string, err error) {
	mt, ok := messageTemplates[name]
	if !ok {
		return "", "", fmt.Errorf("notify: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := mt.body.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("notify: render %s: %w", name, err)
	}
	return mt.subject, buf.String(), nil
}
