package notify

import (
	"net/http"

	"gopatterns/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GinHandler exposes a service over HTTP. The service arrives fully
// wired; the handler is just another injection point.
func GinHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var notice Notice
		if err := c.ShouldBindJSON(&notice); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notice"})
			return
		}

		if err := svc.Notify(notice); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "notice delivered"})
	}
}

// SetupRouter builds a gin engine with the notify route mounted
func SetupRouter(svc *Service, log *logger.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	router.POST("/notify", GinHandler(svc))

	return router
}
