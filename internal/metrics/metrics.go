// Package metrics holds the Prometheus collectors for the access session.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collectors groups the session metrics. The zero value is not usable; build
// one with New.
type Collectors struct {
	Registry *prometheus.Registry

	streamRecords      *prometheus.CounterVec
	phaseTransitions   *prometheus.CounterVec
	verificationChecks *prometheus.CounterVec
	purchaseDuration   *prometheus.HistogramVec
}

func New() *Collectors {
	c := &Collectors{
		Registry: prometheus.NewRegistry(),
		streamRecords: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sensor_access",
				Subsystem: "stream",
				Name:      "records_total",
				Help:      "Inbound stream records by outcome.",
			},
			[]string{"result"},
		),
		phaseTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sensor_access",
				Subsystem: "session",
				Name:      "transitions_total",
				Help:      "Orchestrator phase transitions.",
			},
			[]string{"from", "to"},
		),
		verificationChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "sensor_access",
				Subsystem: "verification",
				Name:      "attempts_total",
				Help:      "Verification endpoint attempts by outcome.",
			},
			[]string{"outcome"},
		),
		purchaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "sensor_access",
				Subsystem: "purchase",
				Name:      "duration_seconds",
				Help:      "Time from price read to finalized receipt.",
				Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10), // 250ms to ~2m
			},
			[]string{"result"},
		),
	}

	c.Registry.MustRegister(c.streamRecords, c.phaseTransitions, c.verificationChecks, c.purchaseDuration)
	return c
}

// Handler exposes the registry over HTTP.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{})
}

// The recording methods accept a nil receiver so components can run without
// metrics wired.

func (c *Collectors) RecordAccepted() {
	if c == nil {
		return
	}
	c.streamRecords.WithLabelValues("accepted").Inc()
}

func (c *Collectors) RecordDropped() {
	if c == nil {
		return
	}
	c.streamRecords.WithLabelValues("dropped").Inc()
}

func (c *Collectors) Transition(from, to string) {
	if c == nil {
		return
	}
	c.phaseTransitions.WithLabelValues(from, to).Inc()
}

func (c *Collectors) VerificationAttempt(outcome string) {
	if c == nil {
		return
	}
	c.verificationChecks.WithLabelValues(outcome).Inc()
}

func (c *Collectors) PurchaseFinished(result string, seconds float64) {
	if c == nil {
		return
	}
	c.purchaseDuration.WithLabelValues(result).Observe(seconds)
}
