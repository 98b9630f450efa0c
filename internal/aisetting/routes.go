package aisetting

import "github.com/gin-gonic/gin"

// RegisterRoutes 挂在 admin 分组下
func RegisterRoutes(admin *gin.RouterGroup, h *Handler) {
	settings := admin.Group("/ai-settings")
	{
		settings.GET("", h.Get)
		settings.PUT("", h.Update)
		settings.POST("/init", h.Init)
		settings.POST("/test", h.Test)
	}
}
