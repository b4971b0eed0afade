package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		message  string
		hasCause bool
	}{
		{name: "validation", err: models.MissingField("price"), status: http.StatusBadRequest, message: "price: is required"},
		{name: "bare validation", err: fmt.Errorf("bind: %w", models.ErrValidation), status: http.StatusBadRequest, message: "bind: validation failed"},
		{
			name:    "upload permission",
			err:     fmt.Errorf("%w: a.png: %w", models.ErrUpload, models.ErrPermissionDenied),
			status:  http.StatusForbidden,
			message: "insufficient permission to upload asset",
		},
		{
			name:    "commit permission",
			err:     fmt.Errorf("%w: create user: %w", models.ErrCommit, models.ErrPermissionDenied),
			status:  http.StatusForbidden,
			message: "insufficient permission to write document",
		},
		{name: "not found", err: fmt.Errorf("get: %w", models.ErrNotFound), status: http.StatusNotFound, message: "document not found"},
		{name: "upload", err: fmt.Errorf("%w: timeout", models.ErrUpload), status: http.StatusInternalServerError, message: "failed to upload asset", hasCause: true},
		{
			name:     "upload to missing dataset",
			err:      fmt.Errorf("%w: a.png: upload image: %w", models.ErrUpload, models.ErrNotFound),
			status:   http.StatusInternalServerError,
			message:  "failed to upload asset",
			hasCause: true,
		},
		{name: "edit missing document", err: fmt.Errorf("%w: patch user: %w", models.ErrCommit, models.ErrNotFound), status: http.StatusNotFound, message: "document not found"},
		{name: "commit", err: fmt.Errorf("%w: boom", models.ErrCommit), status: http.StatusInternalServerError, message: "failed to write document", hasCause: true},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError, message: "internal server error", hasCause: true},
		{name: "echo", err: echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"), status: http.StatusRequestEntityTooLarge, message: "Request Entity Too Large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := errorResponse(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, resp.Message)
			if tt.hasCause {
				assert.Equal(t, tt.err.Error(), resp.Error)
			} else {
				assert.Empty(t, resp.Error)
			}
		})
	}
}

func TestErrorHandlerClientClosed(t *testing.T) {
	e := echo.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	ErrorHandler(zap.NewNop().Sugar())(fmt.Errorf("list: %w", context.Canceled), e.NewContext(req, rec))
	assert.Equal(t, StatusClientClosedRequest, rec.Code)
}

type denyAll struct{}

func (denyAll) Authorize(echo.Context) error {
	return fmt.Errorf("caller: %w", models.ErrPermissionDenied)
}

func TestAuthorize(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(zap.NewNop().Sugar())
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	e.POST("/allowed", ok, Authorize(AllowAll{Log: zap.NewNop().Sugar()}))
	e.POST("/denied", ok, Authorize(denyAll{}))

	assert.Equal(t, http.StatusOK, makeRequest(e, http.MethodPost, "/allowed").Code)
	assert.Equal(t, http.StatusForbidden, makeRequest(e, http.MethodPost, "/denied").Code)
}

func TestCORS(t *testing.T) {
	e := echo.New()
	e.Use(CORS(regexp.MustCompile(`^https?://localhost(:[0-9]+)?$`)))
	e.GET("/api/agents", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/api/agents", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))

	req = httptest.NewRequest(http.MethodGet, "/api/agents", nil)
	req.Header.Set(echo.HeaderOrigin, "https://evil.example.com")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

type recordingLogger struct {
	entries []map[string]any
}

func (l *recordingLogger) record(args ...any) {
	entry := map[string]any{}
	for i := 0; i+1 < len(args); i += 2 {
		entry[args[i].(string)] = args[i+1]
	}
	l.entries = append(l.entries, entry)
}

func (l *recordingLogger) Debugw(_ string, args ...any) { l.record(args...) }
func (l *recordingLogger) Infow(_ string, args ...any)  { l.record(args...) }
func (l *recordingLogger) Warnw(_ string, args ...any)  { l.record(args...) }
func (l *recordingLogger) Errorw(_ string, args ...any) { l.record(args...) }

func TestLogRequestSkipsLargeBodies(t *testing.T) {
	log := &recordingLogger{}
	e := echo.New()
	e.Use(LogRequest(LogRequestConfig{Logger: log, MaxBodySize: 64}))
	e.POST("/echo", func(c echo.Context) error {
		var body map[string]any
		require.NoError(t, c.Bind(&body))
		return c.JSON(http.StatusCreated, body)
	})

	send := func(payload string) {
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}

	send(`{"first_name":"Ann"}`)
	send(`{"imageBase64":"data:image/png;base64,` + strings.Repeat("A", 200) + `"}`)

	require.Len(t, log.entries, 2)
	assert.JSONEq(t, `{"first_name":"Ann"}`, string(log.entries[0]["request_body"].(json.RawMessage)))
	assert.Equal(t, map[string]int64{"size": int64(len(`{"imageBase64":"data:image/png;base64,`) + 200 + 2)}, log.entries[1]["request_body"])
	assert.Contains(t, log.entries[1], "response_body_size")
	assert.Equal(t, http.StatusCreated, log.entries[0]["status"])
}
