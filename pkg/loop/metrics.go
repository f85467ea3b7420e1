package loop

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/7verdy/lustre-limiter/pkg/limit"
	"github.com/7verdy/lustre-limiter/pkg/metrics"
)

// NewDebounceWithMetrics creates a debounce loop with metrics enabled.
func NewDebounceWithMetrics[P any](sink func(P), cooldown time.Duration, name string) *Loop[P] {
	// Use a separate registry for each metrics-enabled component to avoid conflicts
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewDebounceWithConfigAndMetrics(sink, cooldown, Config[P]{}, name, config)
}

// NewDebounceWithConfigAndMetrics creates a debounce loop with custom config and metrics.
func NewDebounceWithConfigAndMetrics[P any](sink func(P), cooldown time.Duration, config Config[P], name string, metricsConfig metrics.Config) *Loop[P] {
	l := NewDebounceWithConfig(sink, cooldown, config)
	l.setupMetrics(name, metricsConfig)
	return l
}

// NewThrottleWithMetrics creates a throttle loop with metrics enabled.
func NewThrottleWithMetrics[P any](sink func(P), interval time.Duration, name string) *Loop[P] {
	registry := prometheus.NewRegistry()
	config := metrics.Config{
		Enabled:  true,
		Registry: registry,
	}

	return NewThrottleWithConfigAndMetrics(sink, interval, Config[P]{}, name, config)
}

// NewThrottleWithConfigAndMetrics creates a throttle loop with custom config and metrics.
func NewThrottleWithConfigAndMetrics[P any](sink func(P), interval time.Duration, config Config[P], name string, metricsConfig metrics.Config) *Loop[P] {
	l := NewThrottleWithConfig(sink, interval, config)
	l.setupMetrics(name, metricsConfig)
	return l
}

func (l *Loop[P]) setupMetrics(name string, config metrics.Config) {
	l.name = name
	if !config.Enabled {
		return
	}

	registry := metrics.DefaultRegistry
	if config.Registry != nil {
		registry = metrics.NewRegistry(config.Registry)
	}

	l.registry = registry
	l.observed = true
}

// EnableMetrics enables metrics collection.
func (l *Loop[P]) EnableMetrics(config metrics.Config) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if config.Registry != nil {
		l.registry = metrics.NewRegistry(config.Registry)
	} else if l.registry == nil {
		l.registry = metrics.DefaultRegistry
	}
	l.observed = config.Enabled
	return nil
}

// DisableMetrics disables metrics collection.
func (l *Loop[P]) DisableMetrics() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.observed = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (l *Loop[P]) MetricsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.observed
}

// observeEmission records a payload delivered to the sink.
func (l *Loop[P]) observeEmission() {
	if !l.MetricsEnabled() {
		return
	}
	l.registry.Emissions.WithLabelValues(l.Mode(), l.name).Inc()
}

// observeUpdate records the outcome of one limiter update.
func (l *Loop[P]) observeUpdate(msg limit.Msg[P], stateBefore limit.State, next limit.Limiter[P, limit.Msg[P]], eff limit.Effect[limit.Msg[P]]) {
	if !l.MetricsEnabled() {
		return
	}

	mode := next.Mode()

	switch msg.Kind {
	case limit.KindPush:
		l.registry.Pushes.WithLabelValues(mode, l.name).Inc()
		if stateBefore == limit.Closed {
			l.registry.Dropped.WithLabelValues(mode, l.name).Inc()
		}
	case limit.KindEmitIfSettled:
		if eff.IsNone() {
			l.registry.StaleChecks.WithLabelValues(mode, l.name).Inc()
		}
	case limit.KindReopen:
		l.registry.Reopens.WithLabelValues(mode, l.name).Inc()
	}

	for _, op := range eff.Ops() {
		switch op.Kind {
		case limit.OpDispatch:
			l.registry.Dispatches.WithLabelValues(l.name).Inc()
		case limit.OpSchedule:
			l.registry.Schedules.WithLabelValues(l.name).Inc()
		}
	}

	l.registry.PendingLen.WithLabelValues(mode, l.name).Set(float64(len(next.Pending())))
	l.registry.QueueDepth.WithLabelValues(l.name).Set(float64(len(l.msgs)))
}
