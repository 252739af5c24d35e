package monitoring

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var (
	ticketsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tickets_generated_total",
			Help: "Total tickets generated per category",
		},
		[]string{"category_id"},
	)

	generationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_generation_duration_seconds",
			Help:    "Duration of ticket generation runs",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
		},
		[]string{"category_id"},
	)

	saturatedRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_generation_saturated_total",
			Help: "Generation runs that found the category already at stock",
		},
		[]string{"category_id"},
	)

	activeGenerationLocks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ticket_generation_locks_active",
			Help: "Generation leases currently held in Redis",
		},
	)

	goroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_goroutines_total",
			Help: "Current number of active goroutines",
		},
	)

	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total API requests by method and status",
		},
		[]string{"method", "status"},
	)

	eventsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "events_total",
			Help: "Current number of events",
		},
	)
)

// RequestMetrics counts every API request by method and response status.
func RequestMetrics() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		err := e.Next()
		apiRequests.WithLabelValues(e.Request.Method, strconv.Itoa(e.Status())).Inc()
		return err
	}
}

// TrackGeneration records one successful generation run.
func TrackGeneration(categoryID string, count int, duration time.Duration) {
	ticketsGenerated.WithLabelValues(categoryID).Add(float64(count))
	generationDuration.WithLabelValues(categoryID).Observe(duration.Seconds())
}

// TrackSaturation records a run that had nothing left to generate.
func TrackSaturation(categoryID string) {
	saturatedRuns.WithLabelValues(categoryID).Inc()
}

type Monitor struct {
	redis       *redis.Client
	interval    time.Duration
	countEvents func(ctx context.Context) (int64, error)
}

func NewMonitor(redisClient *redis.Client, interval time.Duration, countEvents func(ctx context.Context) (int64, error)) *Monitor {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	monitor := &Monitor{redis: redisClient, interval: interval, countEvents: countEvents}

	go monitor.collectMetrics()

	return monitor
}

func (m *Monitor) collectMetrics() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		m.collectLockMetrics(ctx)
		m.collectEventMetrics(ctx)
		cancel()

		goroutineCount.Set(float64(runtime.NumGoroutine()))
	}
}

func (m *Monitor) collectEventMetrics(ctx context.Context) {
	if m.countEvents == nil {
		return
	}
	count, err := m.countEvents(ctx)
	if err != nil {
		return
	}
	eventsTotal.Set(float64(count))
}

func (m *Monitor) collectLockMetrics(ctx context.Context) {
	keys, err := m.redis.Keys(ctx, "lock:generate:*").Result()
	if err != nil {
		return
	}
	activeGenerationLocks.Set(float64(len(keys)))
}
