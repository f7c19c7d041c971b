package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/vibast-solutions/ms-go-records/app/metrics"

	"github.com/labstack/echo/v4"
)

// RecordMetrics counts requests by route template, not by raw URI, so ids do
// not blow up label cardinality.
func RecordMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			} else if !c.Response().Committed {
				status = http.StatusInternalServerError
			}
		}

		path := c.Path()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request().Method, path, status, time.Since(start))
		return err
	}
}
