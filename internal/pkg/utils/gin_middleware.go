package utils

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ZapLoggerMiddleware logs every HTTP request through zap instead of gin's
// default writer.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("HTTP")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("Request handled",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("clientIP", c.ClientIP()),
		)
	}
}
