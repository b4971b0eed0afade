package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

var corsMethods = strings.Join([]string{
	http.MethodOptions,
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}, ", ")

// CORS allows origins matching pattern. Preflight requests are answered
// directly.
func CORS(pattern *regexp.Regexp) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			respHeader := c.Response().Header()
			respHeader.Add(echo.HeaderVary, echo.HeaderOrigin)
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" || !pattern.MatchString(origin) {
				return next(c)
			}
			respHeader.Set(echo.HeaderAccessControlAllowOrigin, origin)
			if c.Request().Method == http.MethodOptions {
				// `*` only may not cover Authorization header in Safari 12
				respHeader.Set(echo.HeaderAccessControlAllowHeaders, "*, Authorization, Content-Type")
				respHeader.Set(echo.HeaderAccessControlAllowMethods, corsMethods)
				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
