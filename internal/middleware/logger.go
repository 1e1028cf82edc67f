package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/domain"
)

// Logger returns a gin middleware that writes one access log line per request
// using the provided slog.Logger: method, route, path, status, size, latency,
// client IP and, on admin routes, the caller's user id.
//
// The log level is chosen based on the response status code:
//   - 2xx/3xx: Info
//   - 4xx: Warn
//   - 5xx: Error
//
// Context-aware logging lets the handler attach the request_id set by RequestID.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Int("bytes", c.Writer.Size()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}
		ctx := c.Request.Context()
		if caller := domain.CallerFrom(ctx); caller != nil {
			attrs = append(attrs, slog.String("user_id", caller.UserID))
		}
		if hit := c.Writer.Header().Get(cacheHeader); hit != "" {
			attrs = append(attrs, slog.String("cache", hit))
		}

		switch {
		case status >= 500:
			logger.LogAttrs(ctx, slog.LevelError, "request", attrs...)
		case status >= 400:
			logger.LogAttrs(ctx, slog.LevelWarn, "request", attrs...)
		default:
			logger.LogAttrs(ctx, slog.LevelInfo, "request", attrs...)
		}
	}
}
