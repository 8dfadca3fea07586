package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestLogger tags every request with an id (reusing a well-formed
// incoming X-Request-ID) and logs one line when it completes.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(reqID); err != nil {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Header(RequestIDHeader, reqID)

		c.Next()

		attrs := []any{
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		if user, ok := CurrentUser(c); ok {
			attrs = append(attrs, "user", user)
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.ErrorContext(c.Request.Context(), "request", attrs...)
		case status >= 400:
			log.WarnContext(c.Request.Context(), "request", attrs...)
		default:
			log.InfoContext(c.Request.Context(), "request", attrs...)
		}
	}
}

// RequestID returns the id assigned by RequestLogger.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
