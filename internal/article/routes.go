package article

import (
	"terminal-terrace/ai-magazine/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 登录用户可用的文章路由
func RegisterRoutes(api *gin.RouterGroup, h *Handler) {
	articles := api.Group("/articles")
	articles.Use(middleware.JWTAuth())
	{
		articles.GET("", h.List)
		articles.POST("", h.Create)
		articles.POST("/import", h.Import)
		articles.GET("/:id", h.Get)
		articles.PUT("/:id", h.Update)
		articles.DELETE("/:id", h.Delete)
		articles.PUT("/:id/ai-content", h.SetAIContent)
	}
}

// RegisterAdminRoutes 挂在 admin 分组下（已要求管理员）
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	articles := admin.Group("/articles")
	{
		articles.GET("", h.List)
		articles.POST("", h.Create)
		articles.POST("/import", h.Import)
		articles.POST("/scrape", h.Scrape)
		articles.GET("/:id", h.Get)
		articles.PUT("/:id", h.Update)
		articles.DELETE("/:id", h.AdminDelete)
		articles.POST("/:id/restore", h.Restore)
		articles.POST("/:id/rewrite", h.Rewrite)
		articles.PUT("/:id/ai-content", h.SetAIContent)
	}
}
