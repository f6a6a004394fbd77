// internal/api/router.go
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/gravityreader/gravityreader/internal/utils"
)

// SetupRouter 配置HTTP路由
func SetupRouter(handler *Handler, logger *utils.Logger) *gin.Engine {
	if logger == nil {
		logger = utils.GetLogger()
	}

	r := gin.New()
	r.Use(gin.RecoveryWithWriter(logger.Writer()))
	r.Use(RequestIDMiddleware())
	r.Use(AccessLogMiddleware(logger))

	// 启用CORS
	r.Use(corsMiddleware())

	r.GET("/", handler.Root)

	api := r.Group("/api")
	{
		api.POST("/analyze", handler.Analyze)
		api.POST("/summarize", handler.Summarize)
	}

	return r
}
