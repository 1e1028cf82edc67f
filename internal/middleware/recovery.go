package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/agencyhub/internal/pkg"
)

// Recovery returns a gin middleware that recovers from panics, logs the error
// with stack trace using slog, and answers with the standard JSON envelope:
//
//	{"success": false, "message": "internal server error", "data": null}
//
// If the handler already started writing a response, the connection is left
// as is and only the log entry is produced.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", err),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, pkg.Response{
					Success: false,
					Message: "internal server error",
				})
			}
		}()
		c.Next()
	}
}
