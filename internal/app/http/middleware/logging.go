package middleware

import (
	"strconv"
	"time"

	"orchestra-site/internal/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger logs one line per request and feeds the HTTP metrics.
func RequestLogger(log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(elapsed.Seconds())

		fields := []interface{}{
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", elapsed,
			"request_id", c.GetString(RequestIDKey),
		}
		switch {
		case status >= 500:
			log.Errorw("request failed", fields...)
		case status >= 400:
			log.Warnw("request rejected", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}
