// Package metrics registers the Prometheus collectors exposed on
// /metrics: per-route HTTP counters and the booking engine's own
// business counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "villa_http_requests_total",
		Help: "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "villa_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// BookingsCreated counts accepted bookings by their initial status.
	BookingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "villa_bookings_created_total",
		Help: "Bookings created, by initial status.",
	}, []string{"status"})

	// ConflictsRejected counts creations rejected by the conflict
	// detector.
	ConflictsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "villa_booking_conflicts_rejected_total",
		Help: "Booking creations rejected because of date conflicts.",
	})

	// MembersApproved counts member approvals that assigned a packet and
	// bumped the guest count.
	MembersApproved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "villa_members_approved_total",
		Help: "Member join approvals that allocated a seat.",
	})

	// JoinRequests counts incoming join requests by outcome.
	JoinRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "villa_join_requests_total",
		Help: "Join requests received, by outcome.",
	}, []string{"outcome"})
)
