package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Abraxas-365/internhub/pkg/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "internhub",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "internhub",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	applicationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "internhub",
			Subsystem: "applications",
			Name:      "created_total",
			Help:      "Total number of submitted applications.",
		},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "internhub",
			Subsystem: "applications",
			Name:      "transitions_total",
			Help:      "Total number of application status transitions by target status.",
		},
		[]string{"status"},
	)

	transitionConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "internhub",
			Subsystem: "applications",
			Name:      "transition_conflicts_total",
			Help:      "Transitions rejected because the application changed concurrently.",
		},
	)

	notificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "internhub",
			Subsystem: "notifications",
			Name:      "delivery_failures_total",
			Help:      "Notifications that could not be stored on first attempt.",
		},
	)

	outboxRedelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "internhub",
			Subsystem: "notifications",
			Name:      "outbox_redelivery_total",
			Help:      "Outbox redelivery attempts by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		applicationsCreated,
		transitions,
		transitionConflicts,
		notificationFailures,
		outboxRedelivered,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// FiberHandler serves Handler on a fiber route.
func FiberHandler() fiber.Handler {
	return adaptor.HTTPHandler(Handler())
}

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}

		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

func statusFromError(err error) int {
	if e, ok := errx.As(err); ok {
		return e.HTTPStatus
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return http.StatusInternalServerError
}

func RecordApplicationCreated() {
	applicationsCreated.Inc()
}

func RecordTransition(status string) {
	transitions.WithLabelValues(status).Inc()
}

func RecordTransitionConflict() {
	transitionConflicts.Inc()
}

func RecordNotificationFailure() {
	notificationFailures.Inc()
}

// RecordOutboxRedelivery counts an outbox attempt; result is "delivered", "retried" or "dropped".
func RecordOutboxRedelivery(result string) {
	outboxRedelivered.WithLabelValues(result).Inc()
}
