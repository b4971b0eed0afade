package middleware

import (
	"errors"
	"reflect"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type MetricsConfig struct {
	Skipper             Skipper
	Namespace           string
	Buckets             []float64
	NormalizeHTTPStatus bool
	MetricsPath         string
}

const (
	httpRequestsDuration = "http_request_duration_seconds"
	notFoundPath         = "/not-found"
)

var DefaultMetricsConfig = MetricsConfig{
	Skipper: DefaultSkipper,
	Buckets: []float64{
		0.001, // 1ms
		0.005,
		0.01, // 10ms
		0.05,
		0.1, // 100 ms
		0.25,
		0.5,
		1.0, // 1s
		2.5,
		5.0,
		10.0, // 10s
		30.0, // large uploads
	},
	MetricsPath: "/metrics",
}

func statusLabel(status int, normalize bool) string {
	if !normalize {
		return strconv.Itoa(status)
	}
	class := min(max(status/100, 1), 5)
	return strconv.Itoa(class) + "xx"
}

// routeLabel is the registered route, or one shared label for unmatched
// requests to bound cardinality.
func routeLabel(c echo.Context) string {
	if isNotFoundHandler(c.Handler()) {
		return notFoundPath
	}
	return c.Path()
}

func isNotFoundHandler(handler echo.HandlerFunc) bool {
	if handler == nil {
		return false
	}
	return reflect.ValueOf(handler).Pointer() == reflect.ValueOf(echo.NotFoundHandler).Pointer()
}

func Metrics() echo.MiddlewareFunc {
	return MetricsWithConfig(DefaultMetricsConfig)
}

// MetricsWithConfig records request durations by status, method and route,
// and serves the prometheus registry on MetricsPath.
func MetricsWithConfig(config MetricsConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultSkipper
	}
	httpMetrics, err := registerHTTPMetrics(config)
	if err != nil {
		panic(err)
	}

	var promHandler echo.HandlerFunc
	if config.MetricsPath != "" {
		promHandler = echo.WrapHandler(promhttp.Handler())
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if promHandler != nil && req.URL.Path == config.MetricsPath {
				return promHandler(c)
			}
			if config.Skipper(c) {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			httpMetrics.
				WithLabelValues(statusLabel(c.Response().Status, config.NormalizeHTTPStatus), req.Method, routeLabel(c)).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func registerHTTPMetrics(config MetricsConfig) (*prometheus.HistogramVec, error) {
	httpMetrics := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: config.Namespace,
		Name:      httpRequestsDuration,
		Help:      "Time spent processing a route",
		Buckets:   config.Buckets,
	}, []string{"code", "method", "path"})

	err := prometheus.Register(httpMetrics)
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		return existing, nil
	}
	return httpMetrics, err
}
