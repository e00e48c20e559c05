package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RequestLogger writes one line per request: 5xx at error, 4xx at warn
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		req := c.Request
		path, query := req.URL.Path, req.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		level, msg := zapcore.InfoLevel, "request"
		switch {
		case status >= 500:
			level, msg = zapcore.ErrorLevel, "request failed"
		case status >= 400:
			level, msg = zapcore.WarnLevel, "client error"
		}

		ce := logger.Check(level, msg)
		if ce == nil {
			return
		}
		fields := make([]zap.Field, 0, 9)
		fields = append(fields,
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("bytes", c.Writer.Size()),
		)
		if id := GetRequestID(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if query != "" {
			fields = append(fields, zap.String("query", query))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		ce.Write(fields...)
	}
}
