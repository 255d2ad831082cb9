package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var requestLabels = []string{"method", "route", "status"}

var (
	requestsServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rentora",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requests answered by the API, by route template and final status code",
	}, requestLabels)

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rentora",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent answering API requests",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, requestLabels)

	requestsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "rentora",
		Subsystem: "http",
		Name:      "inflight_requests",
		Help:      "Requests currently being answered",
	})
)

// Metrics counts and times every request. It runs before the app ErrorHandler
// writes the response, so a returned error decides the recorded status.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestsActive.Inc()
		defer requestsActive.Dec()

		began := time.Now()
		err := c.Next()

		values := []string{c.Method(), routeLabel(c), strconv.Itoa(finalStatus(c, err))}
		requestLatency.WithLabelValues(values...).Observe(time.Since(began).Seconds())
		requestsServed.WithLabelValues(values...).Inc()

		return err
	}
}

// finalStatus mirrors the ErrorHandler: *fiber.Error keeps its code, anything else is a 500
func finalStatus(c fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// routeLabel prefers the registered template over the raw path
func routeLabel(c fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return c.Path()
}
