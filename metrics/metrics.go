package metrics

import (
	"strconv"
	"time"

	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_portal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estate_portal_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	PriceRequestsResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_portal_price_requests_resolved_total",
			Help: "Price change requests resolved, by terminal status",
		},
		[]string{"status"},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estate_portal_status_transitions_total",
			Help: "Property status transitions applied",
		},
		[]string{"new_status"},
	)
)

// Middleware records a counter and duration sample per request.
func Middleware(ctx iris.Context) {
	start := time.Now()
	ctx.Next()

	duration := time.Since(start).Seconds()
	method := ctx.Method()
	path := ctx.Path()
	if route := ctx.GetCurrentRoute(); route != nil {
		path = route.Path() // route pattern, not the raw URL, to bound cardinality
	}
	status := strconv.Itoa(ctx.GetStatusCode())

	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
}

// Handler exposes the default registry for the /metrics endpoint.
func Handler() iris.Handler {
	return iris.FromStd(promhttp.Handler())
}
