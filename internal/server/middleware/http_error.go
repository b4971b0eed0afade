package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nguyentranbao-ct/estate-backoffice/internal/models"
)

// StatusClientClosedRequest is used when the caller went away.
const StatusClientClosedRequest = 499

// ErrorHandler maps domain errors onto HTTP responses.
func ErrorHandler(log Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if err == nil || c.Response().Committed {
			return
		}

		status, resp := errorResponse(err)
		if errors.Is(err, context.Canceled) && errors.Is(c.Request().Context().Err(), context.Canceled) {
			status = StatusClientClosedRequest
		}
		if status == http.StatusNotFound && isNotFoundHandler(c.Handler()) {
			resp.Message = "no route matched"
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, resp)
		}
		if err != nil {
			log.Errorw("could not response", "code", status, "response_body", resp)
		}
	}
}

func errorResponse(err error) (int, ErrorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := fmt.Sprint(he.Message)
		if he.Internal != nil && he.Code < http.StatusInternalServerError {
			msg = fmt.Sprintf("%s: %v", msg, he.Internal)
		}
		return he.Code, ErrorResponse{Message: msg}
	}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, ErrorResponse{Message: verr.Error()}
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, ErrorResponse{Message: err.Error()}
	case errors.Is(err, models.ErrPermissionDenied):
		msg := "insufficient permission to write document"
		if errors.Is(err, models.ErrUpload) {
			msg = "insufficient permission to upload asset"
		}
		return http.StatusForbidden, ErrorResponse{Message: msg}
	case errors.Is(err, models.ErrUpload):
		return http.StatusInternalServerError, ErrorResponse{Message: "failed to upload asset", Error: err.Error()}
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "document not found"}
	case errors.Is(err, models.ErrCommit):
		return http.StatusInternalServerError, ErrorResponse{Message: "failed to write document", Error: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Message: "internal server error", Error: err.Error()}
}
