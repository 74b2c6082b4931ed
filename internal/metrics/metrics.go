// Package metrics exposes simulation counters to Prometheus.
//
// Collectors live on a private registry so several simulations (and tests)
// can coexist in one process. All methods are safe on a nil *Metrics.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Faultbox/blockworld/internal/logger"
)

const namespace = "blockworld"

// Edit and save result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultMiss  = "miss"
)

// Metrics holds the simulation collectors.
type Metrics struct {
	registry *prometheus.Registry

	tickSeconds prometheus.Histogram
	blocks      prometheus.Gauge
	edits       *prometheus.CounterVec
	grounded    prometheus.Gauge
	saves       *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tickSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_seconds",
			Help:      "Wall time spent in one simulation step.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
		blocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "blocks",
			Help:      "Number of blocks in the world grid.",
		}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "edits_total",
			Help:      "Break and place attempts by outcome.",
		}, []string{"op", "result"}),
		grounded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "player_grounded",
			Help:      "1 when the player stands on a block, 0 when airborne.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "World save and load operations by outcome.",
		}, []string{"op", "result"}),
	}

	m.registry.MustRegister(m.tickSeconds, m.blocks, m.edits, m.grounded, m.saves)
	return m
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveTick records the duration of one step.
func (m *Metrics) ObserveTick(d time.Duration) {
	if m == nil {
		return
	}
	m.tickSeconds.Observe(d.Seconds())
}

// SetBlocks records the current block count.
func (m *Metrics) SetBlocks(n int) {
	if m == nil {
		return
	}
	m.blocks.Set(float64(n))
}

// Edit counts one break or place attempt.
func (m *Metrics) Edit(op, result string) {
	if m == nil {
		return
	}
	m.edits.WithLabelValues(op, result).Inc()
}

// SetGrounded records the player's ground state.
func (m *Metrics) SetGrounded(onGround bool) {
	if m == nil {
		return
	}
	v := 0.0
	if onGround {
		v = 1
	}
	m.grounded.Set(v)
}

// SaveOp counts one save or load, labelled by whether err is nil.
func (m *Metrics) SaveOp(op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.saves.WithLabelValues(op, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve starts a /metrics endpoint on addr in the background. The
// returned server can be shut down by the caller.
func (m *Metrics) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log := logger.Named("metrics")
	go func() {
		log.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	return srv
}
