package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRequest(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestMetricsMiddleware(t *testing.T) {
	httpMetrics, err := registerHTTPMetrics(DefaultMetricsConfig)
	require.NoError(t, err)
	httpMetrics.Reset()

	e := echo.New()
	e.Use(Metrics())
	e.GET("/api/agents/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("id"))
	})
	e.DELETE("/api/delete-agent", func(c echo.Context) error {
		return fmt.Errorf("boom")
	})

	for i := range 5 {
		makeRequest(e, http.MethodGet, fmt.Sprintf("/api/agents/%d", i))
	}
	for range 3 {
		makeRequest(e, http.MethodDelete, "/api/delete-agent")
	}
	for i := range 4 {
		makeRequest(e, http.MethodGet, fmt.Sprintf("/missing/%d", i))
	}

	body := makeRequest(e, http.MethodGet, "/metrics").Body.String()
	assert.Contains(t, body, `http_request_duration_seconds_count{code="200",method="GET",path="/api/agents/:id"} 5`)
	assert.Contains(t, body, `http_request_duration_seconds_count{code="500",method="DELETE",path="/api/delete-agent"} 3`)
	assert.Contains(t, body, `http_request_duration_seconds_count{code="404",method="GET",path="/not-found"} 4`)
}

func TestStatusLabel(t *testing.T) {
	for status, want := range map[int]string{101: "1xx", 201: "2xx", 304: "3xx", 403: "4xx", 503: "5xx", 499: "4xx"} {
		assert.Equal(t, want, statusLabel(status, true))
	}
	assert.Equal(t, "499", statusLabel(499, false))
}
