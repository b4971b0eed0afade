package middleware

import (
	"github.com/labstack/echo/v4"
)

// Authorizer decides whether the caller may perform a mutating request.
// Returning an error wrapping models.ErrPermissionDenied yields a 403.
type Authorizer interface {
	Authorize(c echo.Context) error
}

// AllowAll admits every request. Routes still pass through Authorize so a
// real policy can be plugged in without touching them.
type AllowAll struct {
	Log Logger
}

func (a AllowAll) Authorize(c echo.Context) error {
	if a.Log != nil {
		a.Log.Debugw("request authorized",
			"policy", "allow_all",
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", GetRequestID(c),
		)
	}
	return nil
}

func Authorize(a Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := a.Authorize(c); err != nil {
				return err
			}
			return next(c)
		}
	}
}
