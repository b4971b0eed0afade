package middleware

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// DefaultMaxLoggedBody keeps inline images and contract files out of the
// request log.
const DefaultMaxLoggedBody = 4 << 10

type (
	// LogRequestConfig store middleware configuration
	LogRequestConfig struct {
		Logger       Logger
		Enabled      func(c echo.Context) bool
		RequestID    func(c echo.Context) string
		RequestBody  func(c echo.Context) bool
		ResponseBody func(c echo.Context) bool
		QueryParams  func(c echo.Context) bool
		ParamValues  func(c echo.Context) bool
		KeyAndValues func(c echo.Context) []any
		// MaxBodySize bounds logged request and response bodies.
		MaxBodySize int64
	}
	bodyDumpWriter struct {
		io.Writer
		http.ResponseWriter
	}
)

func always(echo.Context) bool { return true }

func never(echo.Context) bool { return false }

func (config *LogRequestConfig) setDefaults() {
	if config.Logger == nil {
		panic("Logger is required to use LogRequest")
	}
	for _, fn := range []*func(echo.Context) bool{
		&config.Enabled, &config.RequestBody, &config.ResponseBody, &config.ParamValues,
	} {
		if *fn == nil {
			*fn = always
		}
	}
	if config.QueryParams == nil {
		config.QueryParams = never
	}
	if config.RequestID == nil {
		config.RequestID = GetRequestID
	}
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxLoggedBody
	}
}

// LogRequest logs one line per request. Request and response bodies above
// MaxBodySize are replaced by their size.
func LogRequest(config LogRequestConfig) echo.MiddlewareFunc {
	config.setDefaults()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !config.Enabled(c) {
				return next(c)
			}

			start := time.Now()
			req := c.Request()
			res := c.Response()

			var reqBody any
			if config.RequestBody(c) && isJSON(req.Header.Get(echo.HeaderContentType)) {
				reqBody = readRequestBody(req, config.MaxBodySize)
			}

			var resBuf *bytes.Buffer
			if config.ResponseBody(c) {
				resBuf = &bytes.Buffer{}
				res.Writer = &bodyDumpWriter{Writer: io.MultiWriter(res.Writer, resBuf), ResponseWriter: res.Writer}
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := config.requestFields(c, time.Since(start))
			if reqBody != nil {
				fields = append(fields, "request_body", reqBody)
			}
			if resBuf != nil && isJSON(res.Header().Get(echo.HeaderContentType)) {
				fields = append(fields, responseBodyField(resBuf, config.MaxBodySize)...)
			}

			switch {
			case res.Status >= http.StatusInternalServerError:
				if err != nil {
					fields = append(fields, "error", err.Error())
				}
				config.Logger.Errorw("", fields...)
			case res.Status >= http.StatusBadRequest:
				config.Logger.Warnw("", fields...)
			default:
				config.Logger.Infow("", fields...)
			}

			return err
		}
	}
}

func (config *LogRequestConfig) requestFields(c echo.Context, latency time.Duration) []any {
	req := c.Request()
	fields := make([]any, 0, 32)
	fields = append(fields,
		"status", c.Response().Status,
		"method", req.Method,
		"uri", req.RequestURI,
		"latency_ms", latency.Milliseconds(),
		"real_ip", c.RealIP(),
		"user_agent", req.UserAgent(),
		"request_id", config.RequestID(c),
	)
	if config.QueryParams(c) {
		if query := c.QueryParams(); len(query) > 0 {
			fields = append(fields, "query", query)
		}
	}
	if config.ParamValues(c) && len(c.ParamNames()) > 0 {
		params := make(map[string]string, len(c.ParamNames()))
		for _, name := range c.ParamNames() {
			params[name] = c.Param(name)
		}
		fields = append(fields, "params", params)
	}
	if config.KeyAndValues != nil {
		fields = append(fields, config.KeyAndValues(c)...)
	}
	return fields
}

func responseBodyField(buf *bytes.Buffer, limit int64) []any {
	if int64(buf.Len()) > limit {
		return []any{"response_body_size", buf.Len()}
	}
	return []any{"response_body", json.RawMessage(buf.Bytes())}
}

// readRequestBody returns the body for logging and rewinds it for the
// handler. Bodies of unknown or oversized length are reported by size only.
func readRequestBody(req *http.Request, limit int64) any {
	if req.ContentLength < 0 || req.ContentLength > limit {
		return map[string]int64{"size": req.ContentLength}
	}
	body, _ := io.ReadAll(req.Body)
	req.Body = io.NopCloser(bytes.NewReader(body))
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

func isJSON(contentType string) bool {
	return strings.HasPrefix(contentType, echo.MIMEApplicationJSON)
}

func (w *bodyDumpWriter) WriteHeader(code int) {
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyDumpWriter) Write(b []byte) (int, error) {
	return w.Writer.Write(b)
}

func (w *bodyDumpWriter) Flush() {
	w.ResponseWriter.(http.Flusher).Flush()
}

func (w *bodyDumpWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return w.ResponseWriter.(http.Hijacker).Hijack()
}
