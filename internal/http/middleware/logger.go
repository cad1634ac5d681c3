package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// RequestLogger writes one structured entry per request. Errors are handed
// to the echo error handler first so the logged status is final.
func RequestLogger(logger log.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := logger.WithFields(log.Fields{
				"request_id":  GetRequestID(c),
				"method":      req.Method,
				"uri":         req.RequestURI,
				"route":       c.Path(),
				"status":      res.Status,
				"bytes_out":   res.Size,
				"remote_ip":   c.RealIP(),
				"duration_ms": time.Since(start).Milliseconds(),
			})

			if res.Status >= http.StatusInternalServerError {
				entry.Error("request")
			} else {
				entry.Info("request")
			}

			return nil
		}
	}
}
