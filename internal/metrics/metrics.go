// Package metrics exposes prometheus counters for the session engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
)

type Metrics struct {
	registry *prometheus.Registry

	SessionsCreated prometheus.Counter
	MovesTotal      *prometheus.CounterVec
}

// New builds the metrics set on its own registry, so tests can create
// multiple instances without duplicate registration panics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		SessionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Number of game sessions created.",
		}),
		MovesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moves_total",
			Help: "Number of submitted moves by outcome.",
		}, []string{"outcome"}),
	}
}

// Handler serves the registry in the prometheus exposition format.
func (that *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(that.registry, promhttp.HandlerOpts{})
}
