// Package metrics exposes the Prometheus collectors for the enroll service.
// Collectors are registered once at package init so services and handlers
// can record without carrying a registry around.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedemptionsTotal counts redemption attempts by outcome.
	// outcome: created, welcome_back, invalid, inactive, expired, full,
	// validation_error, error
	RedemptionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "enroll",
		Subsystem: "invites",
		Name:      "redemptions_total",
		Help:      "Total number of invite redemption attempts by outcome.",
	}, []string{"outcome"})

	// ValidationsTotal counts code validation calls by verdict.
	// verdict: valid, invalid, inactive, expired, full
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "enroll",
		Subsystem: "invites",
		Name:      "validations_total",
		Help:      "Total number of invite code validations by verdict.",
	}, []string{"verdict"})

	// LookupsTotal counts returning-user lookups.
	// result: found, not_found, error
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "enroll",
		Subsystem: "users",
		Name:      "lookups_total",
		Help:      "Total number of returning-user email lookups by result.",
	}, []string{"result"})

	// SessionsIssuedTotal counts sessions minted across all entry paths.
	SessionsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enroll",
		Subsystem: "sessions",
		Name:      "issued_total",
		Help:      "Total number of sessions issued.",
	})

	// SessionsPurgedTotal counts expired sessions removed by housekeeping.
	SessionsPurgedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "enroll",
		Subsystem: "sessions",
		Name:      "purged_total",
		Help:      "Total number of expired sessions removed by housekeeping.",
	})
)
