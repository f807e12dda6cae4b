package metrics

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MountChecksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwatch_mount_checks_total",
			Help: "Total storage mount checks by outcome",
		},
		[]string{"result"},
	)

	MountCheckDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sandwatch_mount_check_duration_seconds",
			Help:    "Time to run a storage mount check end to end",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
		},
	)

	ProcessListDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sandwatch_process_list_duration_seconds",
			Help:    "Time to list and enrich the sandbox process table",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"with_logs"},
	)

	GatewayLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwatch_gateway_lookups_total",
			Help: "Total gateway process lookups by outcome",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sandwatch_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		MountChecksTotal,
		MountCheckDuration,
		ProcessListDuration,
		GatewayLookupsTotal,
		HTTPRequestsTotal,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// EchoMiddleware returns Echo middleware that instruments HTTP requests.
func EchoMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			HTTPRequestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				strconv.Itoa(status),
			).Inc()

			return err
		}
	}
}
