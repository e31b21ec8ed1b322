// Package queue defines message payloads exchanged over the message
// broker and the background consumer that delivers them.
package queue

// NotificationQueueName is the durable queue carrying rendered
// notification messages from the engine to the delivery worker.
const NotificationQueueName = "booking.notifications"

// NotificationEvent is a rendered message waiting for delivery.  The
// engine renders subject and body up front so the consumer needs no
// template knowledge and no database access.
type NotificationEvent struct {
	Template  string `json:"template"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	SentAt    string `json:"sent_at"`
}
