package routers

import (
	"github.com/gin-gonic/gin"

	"github.com/bcenhabil/barangaylink-system/internal/server/handlers/triage"
	"github.com/bcenhabil/barangaylink-system/internal/server/middlewares"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// SetupRoutes 配置所有路由，使用 Route Group 分类
func SetupRoutes(triageHandler *triage.TriageHandler, log logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))
	r.Use(middlewares.ErrorHandler())

	api := r.Group("/api")
	{
		api.POST("/prioritize", triageHandler.Prioritize)
		api.POST("/prioritize-batch", triageHandler.PrioritizeBatch)
		api.POST("/predict-resources", triageHandler.PredictResources)
		api.GET("/model-info", triageHandler.ModelInfo)
		api.GET("/health", triageHandler.Health)
	}

	return r
}
