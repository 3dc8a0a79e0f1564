// Package metrics holds the Prometheus collectors of the service. A nil *Metrics is
// valid and records nothing, so handlers and tests can run without a registry.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"printshop/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "printshop"

type Metrics struct {
	registry *prometheus.Registry

	transitions       *prometheus.CounterVec
	ledgerAppends     *prometheus.CounterVec
	ledgerRejections  *prometheus.CounterVec
	consistencyErrors *prometheus.CounterVec
	ledgerDrift       *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "workflow",
				Name:      "transitions_total",
				Help:      "Stage transitions applied to order items.",
			},
			[]string{"from", "to"},
		),
		ledgerAppends: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "appends_total",
				Help:      "Inventory transactions appended to the ledger.",
			},
			[]string{"type"},
		),
		ledgerRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "rejections_total",
				Help:      "Ledger appends rejected by validation.",
			},
			[]string{"type", "reason"},
		),
		consistencyErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "reservation",
				Name:      "consistency_errors_total",
				Help:      "Failed compensations that left an allocation disagreeing with the ledger.",
			},
			[]string{"operation"},
		),
		ledgerDrift: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "drift_total",
				Help:      "Reconciliation runs that found counters disagreeing with the ledger replay.",
			},
			[]string{"paper_id"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "path", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "path"},
		),
	}

	m.registry.MustRegister(
		m.transitions,
		m.ledgerAppends,
		m.ledgerRejections,
		m.consistencyErrors,
		m.ledgerDrift,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry is used by tests to gather collected values.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ObserveLedgerAppend(txType string) {
	if m == nil {
		return
	}
	m.ledgerAppends.WithLabelValues(txType).Inc()
}

// ObserveLedgerRejection labels the rejection with the typed error it carries.
func (m *Metrics) ObserveLedgerRejection(txType string, err error) {
	if m == nil {
		return
	}
	m.ledgerRejections.WithLabelValues(txType, reason(err)).Inc()
}

func (m *Metrics) ObserveConsistencyError(operation string) {
	if m == nil {
		return
	}
	m.consistencyErrors.WithLabelValues(operation).Inc()
}

func (m *Metrics) ObserveLedgerDrift(paperID string) {
	if m == nil {
		return
	}
	m.ledgerDrift.WithLabelValues(paperID).Inc()
}

func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func reason(err error) string {
	switch {
	case errors.Is(err, errs.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, errs.ErrOverRelease):
		return "over_release"
	case errors.Is(err, errs.ErrDoubleConsume):
		return "double_consume"
	case errors.Is(err, errs.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, errs.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, errs.ErrObjectNotFound):
		return "not_found"
	default:
		return "other"
	}
}
