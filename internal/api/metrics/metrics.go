// Package metrics defines and registers all custom Prometheus metrics for the
// housing marketplace API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// UsersRegisteredTotal counts successful account registrations.
// Label:
//   - user_type: "student" or "broker"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered, by user type.",
	},
	[]string{"user_type"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// PropertiesCreatedTotal counts newly created listings.
// Label:
//   - type: "apartment", "house", "townhouse" or "studio"
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of property listings created, by property type.",
	},
	[]string{"type"},
)

// RentalTogglesTotal counts rental status flips.
// Label:
//   - state: "rented_out" or "available"
var RentalTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rental_toggles_total",
		Help:      "Total number of rental status toggles, by resulting state.",
	},
	[]string{"state"},
)

// BookmarkTogglesTotal counts bookmark membership flips.
// Label:
//   - action: "added" or "removed"
var BookmarkTogglesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bookmark_toggles_total",
		Help:      "Total number of bookmark toggles, by action taken.",
	},
	[]string{"action"},
)

// InterestRequestsTotal counts accepted interest requests. Requests inside
// the guard window count too since the caller sees the same outcome.
var InterestRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interest_requests_total",
		Help:      "Total number of accepted interest requests.",
	},
)
