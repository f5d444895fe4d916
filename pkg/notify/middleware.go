package notify

import (
	"time"

	"gopatterns/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with its status and timing
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		log.Info("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
