package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"shuno-backend/metrics"
)

// Metrics counts requests and reports 4xx/5xx responses to the error
// reporter, keyed by method and route pattern.
func Metrics(reporter *metrics.ErrorReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		metrics.IncHTTP(c.Request.Method, strconv.Itoa(status))

		if status >= 400 && reporter != nil {
			route := c.FullPath()
			if route == "" {
				route = c.Request.URL.Path
			}
			message := c.Errors.String()
			reporter.Report(c.Request.Method+" "+route, status, message)
		}
	}
}
