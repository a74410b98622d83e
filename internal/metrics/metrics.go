// Package metrics - prometheus-метрики HTTP и предметной области
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry - собственный реестр, чтобы тесты не конфликтовали с DefaultRegisterer
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "quickgig",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quickgig",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "quickgig",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	AuthEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quickgig",
			Subsystem: "auth",
			Name:      "events_total",
			Help:      "Registrations, logins and logouts by outcome.",
		},
		[]string{"event"},
	)

	ShiftsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quickgig",
			Subsystem: "shifts",
			Name:      "created_total",
			Help:      "Total number of published shifts.",
		},
	)

	ApplicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quickgig",
			Subsystem: "applications",
			Name:      "created_total",
			Help:      "Applications created (repeated applies are not counted).",
		},
	)

	ApplicationStatusChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quickgig",
			Subsystem: "applications",
			Name:      "status_changes_total",
			Help:      "Application status transitions by target status.",
		},
		[]string{"status"},
	)

	ReviewsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quickgig",
			Subsystem: "reviews",
			Name:      "created_total",
			Help:      "Total number of reviews.",
		},
	)

	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quickgig",
			Subsystem: "notifications",
			Name:      "sent_total",
			Help:      "Email notifications by result.",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		AuthEvents,
		ShiftsCreated,
		ApplicationsCreated,
		ApplicationStatusChanges,
		ReviewsCreated,
		NotificationsSent,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler отдает метрики из Registry
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware собирает метрики запросов. Маршрут берется из шаблона gin, а не из URL.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "/metrics" {
			c.Next()
			return
		}
		if route == "" {
			route = "unmatched"
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
