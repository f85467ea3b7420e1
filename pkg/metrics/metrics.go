// Package metrics provides Prometheus instrumentation for lustre-limiter components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for lustre-limiter components.
type Registry struct {
	// Limiter Metrics
	Pushes      *prometheus.CounterVec
	Emissions   *prometheus.CounterVec
	Dropped     *prometheus.CounterVec
	StaleChecks *prometheus.CounterVec
	Reopens     *prometheus.CounterVec
	PendingLen  *prometheus.GaugeVec

	// Loop Metrics
	Schedules  *prometheus.CounterVec
	Dispatches *prometheus.CounterVec
	QueueDepth *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by lustre-limiter components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		Pushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lustre",
				Subsystem: "limiter",
				Name:      "pushes_total",
				Help:      "Total number of payloads pushed into the limiter",
			},
			[]string{"mode", "limiter_name"},
		),

		Emissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lustre",
				Subsystem: "limiter",
				Name:      "emissions_total",
				Help:      "Total number of payloads delivered to the consumer",
			},
			[]string{"mode", "limiter_name"},
		),

		Dropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lustre",
				Subsystem: "limiter",
				Name:      "dropped_total",
				Help:      "Total number of payloads dropped while the limiter was closed",
			},
			[]string{"mode", "limiter_name"},
		),

		StaleChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lustre",
				Subsystem: "limiter",
				Name:      "stale_checks_total",
				Help:      "Total number of settle checks that fired stale and were ignored",
			},
			[]string{"mode", "limiter_name"},
		),

		Reopens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lustre",
				Subsystem: "limiter",
				Name:      "reopens_total",
				Help:      "Total number of reopen transitions after a throttle interval",
			},
			[]string{"mode", "limiter_name"},
		),

		PendingLen: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "lustre",
				Subsystem: "limiter",
				Name:      "pending_payloads",
				Help:      "Number of payloads buffered while a debounce burst settles",
			},
			[]string{"mode", "limiter_name"},
		),

		Schedules: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lustre",
				Subsystem: "loop",
				Name:      "schedules_total",
				Help:      "Total number of delayed messages handed to the scheduler",
			},
			[]string{"limiter_name"},
		),

		Dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lustre",
				Subsystem: "loop",
				Name:      "dispatches_total",
				Help:      "Total number of messages dispatched immediately",
			},
			[]string{"limiter_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "lustre",
				Subsystem: "loop",
				Name:      "queue_depth",
				Help:      "Number of messages waiting in the loop's queue",
			},
			[]string{"limiter_name"},
		),
	}
}
