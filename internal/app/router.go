package app

import (
	"edupath_backend/internal/util"
	"edupath_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 错误动词返回 405 而不是 404
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(ctx *gin.Context) {
		util.MethodNotAllowed(ctx)
	})
	router.NoRoute(func(ctx *gin.Context) {
		util.NotFound(ctx)
	})

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 学习路径读取
		api.GET("/learning-paths/institutes/:institute/batches/:batch/users/:userId", c.learningPath.List)
		api.GET("/learning-paths/:id/users/:userId", c.learningPath.Detail)

		// 进度
		api.PATCH("/learning-paths/progress/users/:userId/lectures/:lectureId", c.progress.ToggleLecture)
		api.POST("/learning-paths/:id/users/:userId/enroll", c.progress.Enroll)

		// 内容管理
		api.POST("/learning-paths", c.catalog.CreatePath)
		api.POST("/learning-paths/:id/modules", c.catalog.AddModule)
		api.PUT("/modules/:moduleId", c.catalog.UpdateModule)
		api.POST("/modules/:moduleId/lectures", c.catalog.AddLectures)
		api.PUT("/lectures/:lectureId", c.catalog.UpdateLecture)

		// 供应商
		api.GET("/vendor/learning-paths", c.vendor.ListAll)
		api.POST("/vendor/institutes/:institute/learning-paths/:pathId/batches/:batch", c.vendor.Assign)
		api.DELETE("/vendor/institutes/:institute/learning-paths/:pathId/batches/:batch", c.vendor.Unassign)

		// 证书
		api.GET("/certificates/institutes/:institute/batches/:batch/users/:userId", c.certificate.List)

		// 媒体
		api.POST("/media/upload", c.media.Upload)
	}
}
