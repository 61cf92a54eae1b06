package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gc02/usuario-server/internal/logger"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Logging assigns a request id and logs every request.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs route, duration and status for each request.
func (l *Logging) Handle(c *gin.Context) {
	start := time.Now()

	requestID := c.GetHeader(RequestIDHeader)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Set("request_id", requestID)
	c.Header(RequestIDHeader, requestID)

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = c.Request.URL.Path
	}
	status := c.Writer.Status()

	args := []any{
		"request_id", requestID,
		"method", c.Request.Method,
		"route", route,
		"status", status,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	switch {
	case status >= 500:
		l.logger.Error("HTTP request failed", append(args, "errors", c.Errors.String())...)
	case status >= 400:
		l.logger.Warn("HTTP request rejected", args...)
	default:
		l.logger.Info("HTTP request completed", args...)
	}
}
