// Package metrics defines and registers all custom Prometheus metrics for the
// freight quoting API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quoting"

// ── Quote metrics ─────────────────────────────────────────────────────────────

// QuotesComputedTotal counts quotes that completed the full pricing pipeline.
// Labels:
//   - mode: transport mode of the quoted shipment (e.g. "air")
//   - urgency: requested service level (e.g. "express")
var QuotesComputedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_computed_total",
		Help:      "Total number of quotes successfully computed.",
	},
	[]string{"mode", "urgency"},
)

// QuoteComputationDuration measures how long one quote takes end-to-end,
// including the rate repository read.
// Label:
//   - mode: transport mode of the quoted shipment
var QuoteComputationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "quote_computation_duration_seconds",
		Help:      "Duration of quote computation from normalization to aggregation.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"mode"},
)

// ── Rate resolution metrics ───────────────────────────────────────────────────

// RateLookupsTotal counts tariff rate resolutions by outcome.
// Label:
//   - result: "cache_hit", "resolved", or "zero" (no applicable rate, the
//     valid duty-free outcome)
var RateLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_lookups_total",
		Help:      "Total number of tariff rate resolutions, labelled by outcome.",
	},
	[]string{"result"},
)

// ── Transit metrics ───────────────────────────────────────────────────────────

// TransitLookupsTotal counts route lookups for transit estimation.
// Label:
//   - result: "found" or "not_found"
var TransitLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transit_lookups_total",
		Help:      "Total number of shipping route lookups, labelled by result.",
	},
	[]string{"result"},
)

// ── Persistence metrics ───────────────────────────────────────────────────────

// PersistQueueDepth tracks the number of save jobs waiting in each persistence
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PersistQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "persist_queue_depth",
		Help:      "Current number of save jobs pending in each persistence worker channel.",
	},
	[]string{"worker_id"},
)

// PersistErrorsTotal counts failed fire-and-forget saves.
// Label:
//   - kind: "shipment", "result", or "duty_audit"
var PersistErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "persist_errors_total",
		Help:      "Total number of failed asynchronous persistence writes.",
	},
	[]string{"kind"},
)
