// Package metrics exposes Prometheus counters for bakery activity.
// Collectors live on their own registry so tests and multiple servers don't collide.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/dessert-clicker/internal/clicker"
)

// Share results used as the "result" label.
const (
	ShareOK          = "ok"
	ShareUnavailable = "unavailable"
	ShareFailed      = "failed"
)

// Recorder holds the collectors for one process.
type Recorder struct {
	registry *prometheus.Registry

	UnitsSold      prometheus.Counter
	Revenue        prometheus.Counter
	Resets         prometheus.Counter
	Shares         *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dessert_units_sold_total",
			Help: "Total number of desserts sold",
		}),
		Revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dessert_revenue_total",
			Help: "Total revenue earned from dessert sales",
		}),
		Resets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dessert_resets_total",
			Help: "Total number of bakeries started over",
		}),
		Shares: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dessert_shares_total",
			Help: "Share attempts by result",
		}, []string{"result"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dessert_active_sessions",
			Help: "Number of bakeries currently open",
		}),
	}

	r.registry.MustRegister(r.UnitsSold, r.Revenue, r.Resets, r.Shares, r.ActiveSessions)
	return r
}

// Observe subscribes to a controller and turns consecutive states into
// counter increments. The returned function stops observing.
func (r *Recorder) Observe(ctrl *clicker.Controller) (stop func()) {
	var prev clicker.GameState
	first := true

	r.ActiveSessions.Inc()
	cancel := ctrl.Subscribe(func(s clicker.GameState) {
		if first {
			first = false
			prev = s
			return
		}
		switch {
		case s.UnitsSold > prev.UnitsSold:
			r.UnitsSold.Add(float64(s.UnitsSold - prev.UnitsSold))
			r.Revenue.Add(float64(s.Revenue - prev.Revenue))
		case s.UnitsSold < prev.UnitsSold || (s.UnitsSold == 0 && prev.UnitsSold == 0):
			r.Resets.Inc()
		}
		prev = s
	})

	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		cancel()
		r.ActiveSessions.Dec()
	}
}

// ShareResult counts one share attempt.
func (r *Recorder) ShareResult(result string) {
	r.Shares.WithLabelValues(result).Inc()
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
