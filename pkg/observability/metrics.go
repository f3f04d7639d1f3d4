package observability

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/sweetwater/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects run metrics from lifecycle hooks.
type Metrics struct {
	registry *prometheus.Registry

	stageVisits   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	gridEvents    *prometheus.CounterVec
	score         prometheus.Gauge
	awareness     prometheus.Gauge
	length        prometheus.Gauge
	tickInterval  prometheus.Gauge

	mu      sync.Mutex
	entered map[domain.StageID]time.Time
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		stageVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sweetwater_stage_visits_total",
				Help: "Total number of stage activations",
			},
			[]string{"stage"},
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sweetwater_stage_duration_seconds",
				Help:    "Time spent in each stage",
				Buckets: []float64{1, 2, 5, 10, 30, 60, 120, 300},
			},
			[]string{"stage"},
		),
		gridEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sweetwater_grid_events_total",
				Help: "Notable minigame ticks by kind",
			},
			[]string{"kind"},
		),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweetwater_score",
			Help: "Current session score",
		}),
		awareness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweetwater_awareness",
			Help: "Current awareness multiplier",
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweetwater_grid_length",
			Help: "Occupant length at the last grid event",
		}),
		tickInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sweetwater_grid_tick_interval_seconds",
			Help: "Minigame tick interval at the last grid event",
		}),
		entered: make(map[domain.StageID]time.Time),
	}
	m.registry.MustRegister(
		m.stageVisits,
		m.stageDuration,
		m.gridEvents,
		m.score,
		m.awareness,
		m.length,
		m.tickInterval,
	)
	return m
}

// Registry exposes the underlying registry (mostly for tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageEnter: func(_ context.Context, e *domain.StageEvent) {
			m.stageVisits.WithLabelValues(string(e.StageID)).Inc()
			m.mu.Lock()
			m.entered[e.StageID] = e.Timestamp
			m.mu.Unlock()
		},
		OnStageLeave: func(_ context.Context, e *domain.StageEvent) {
			m.mu.Lock()
			start, ok := m.entered[e.StageID]
			delete(m.entered, e.StageID)
			m.mu.Unlock()
			if ok {
				m.stageDuration.WithLabelValues(string(e.StageID)).Observe(e.Timestamp.Sub(start).Seconds())
			}
		},
		OnScore: func(_ context.Context, e *domain.SessionEvent) {
			m.score.Set(float64(e.Score))
		},
		OnAwareness: func(_ context.Context, e *domain.SessionEvent) {
			m.awareness.Set(e.Awareness)
		},
		OnGridEvent: func(_ context.Context, e *domain.GridEvent) {
			m.gridEvents.WithLabelValues(string(e.Kind)).Inc()
			m.length.Set(float64(e.Length))
			m.tickInterval.Set(e.TickInterval.Seconds())
		},
	}
}
