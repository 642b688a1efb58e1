package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "request_id"

// requestLogger assigns a request id (reusing the client's when present)
// and logs one structured line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = s.newID()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			s.logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			s.logger.Warn("request", fields...)
		default:
			s.logger.Info("request", fields...)
		}
	}
}
