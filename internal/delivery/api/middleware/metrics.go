package middleware

import (
	"net/http"
	"time"

	domainerrors "taskboard/internal/domain/errors"
	"taskboard/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RequestMetrics observes latency per registered route. Unmatched paths share one label.
func RequestMetrics(recorder metrics.Recorder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			recorder.RecordRequest(c.Request().Method, route, statusOf(c, err), time.Since(start))

			return err
		}
	}
}

// statusOf predicts the status HandleHTTPError will write, since it runs after the chain returns.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
