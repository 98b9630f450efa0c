package category

import (
	"terminal-terrace/ai-magazine/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 公开读取与登录后读取
func RegisterRoutes(api, public *gin.RouterGroup, h *Handler) {
	public.GET("/categories", h.Tree)

	categories := api.Group("/categories")
	categories.Use(middleware.JWTAuth())
	{
		categories.GET("", h.List)
		categories.GET("/tree", h.Tree)
		categories.GET("/:id", h.Get)
	}
}

// RegisterAdminRoutes 管理员写操作
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	categories := admin.Group("/categories")
	{
		categories.GET("", h.List)
		categories.POST("", h.Create)
		categories.GET("/:id", h.Get)
		categories.PUT("/:id", h.Update)
		categories.DELETE("/:id", h.Delete)
	}
}
