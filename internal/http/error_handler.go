package http

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "examplar-api/pkg/errors"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

const (
	jsonKeyError     = "error"
	jsonKeyRequestID = "request_id"
	unknownRequestID = "unknown"
)

// NewHTTPErrorHandler returns the handler for every error produced by
// handlers and middleware. Typed application errors map to their status,
// echo errors keep theirs, and anything else is reported as a 500 without
// exposing the cause.
func NewHTTPErrorHandler(logger log.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var code int
		var message string

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprintf("%v", httpErr.Message)
			if code >= http.StatusInternalServerError {
				message = apperrors.PublicMessage(err)
			}
		} else {
			code = apperrors.StatusCode(err)
			message = apperrors.PublicMessage(err)
		}

		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		if requestID == "" {
			requestID = unknownRequestID
		}

		entry := logger.WithFields(log.Fields{
			"request_id": requestID,
			"status":     code,
			"error":      err.Error(),
		})
		if code >= http.StatusInternalServerError {
			entry.Error("internal_server_error")
		} else {
			entry.Warn("client_error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]interface{}{
				jsonKeyError:     message,
				jsonKeyRequestID: requestID,
			})
		}
		if err != nil {
			logger.WithError(err).Error("write error response")
		}
	}
}
