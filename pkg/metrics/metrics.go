// Package metrics exposes engine counters on the default Prometheus
// registry. The engine itself never serves them; whatever process embeds it
// decides whether and where they are scraped.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ChecksTotal counts full integrity passes over a snapshot.
	ChecksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tally_checks_total",
		Help: "Number of integrity check passes run.",
	})

	// FindingsTotal counts emitted findings by severity.
	FindingsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tally_findings_total",
		Help: "Number of integrity findings emitted, by severity.",
	}, []string{"severity"})

	// SummariesTotal counts balance derivations.
	SummariesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tally_summaries_total",
		Help: "Number of balance summaries computed.",
	})

	// AllocationsTotal counts split allocations by method.
	AllocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tally_allocations_total",
		Help: "Number of split allocations applied, by method.",
	}, []string{"method"})
)
