package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crewfit",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "crewfit",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	battlesStarted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "crewfit",
			Name:      "battles_started_total",
			Help:      "Total number of battles started.",
		},
	)

	battlesFinished = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "crewfit",
			Name:      "battles_finished_total",
			Help:      "Total number of battles finished.",
		},
	)

	notificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crewfit",
			Name:      "notifications_created_total",
			Help:      "Total number of notifications persisted.",
		},
		[]string{"type"},
	)

	pushDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "crewfit",
			Name:      "push_deliveries_total",
			Help:      "Push delivery attempts by result (sent, skipped, failed).",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		battlesStarted,
		battlesFinished,
		notificationsCreated,
		pushDeliveries,
	)
}

// Handler exposes the registry for scraping.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// Middleware records request counts and latency by route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		httpRequests.WithLabelValues(c.Method(), path, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), path).Observe(time.Since(start).Seconds())
		return err
	}
}

func RecordBattleStarted() {
	battlesStarted.Inc()
}

func RecordBattleFinished() {
	battlesFinished.Inc()
}

func RecordNotificationCreated(notificationType string) {
	notificationsCreated.WithLabelValues(notificationType).Inc()
}

// RecordPushDelivery counts a push attempt; result is "sent", "skipped" or "failed".
func RecordPushDelivery(result string) {
	pushDeliveries.WithLabelValues(result).Inc()
}
