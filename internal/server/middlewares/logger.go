package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// HeaderRequestID 请求追踪头
const HeaderRequestID = "X-Request-ID"

// Logger 访问日志，并把 trace_id 注入 request context
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		traceID := c.GetHeader(HeaderRequestID)
		if traceID == "" {
			traceID = uuid.New().String()
		}
		ctx := logger.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderRequestID, traceID)

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		if status >= 500 {
			log.Errorf(ctx, "[HTTP] %s %s %d %v", c.Request.Method, c.FullPath(), status, latency)
			return
		}
		log.Infof(ctx, "[HTTP] %s %s %d %v", c.Request.Method, c.FullPath(), status, latency)
	}
}
