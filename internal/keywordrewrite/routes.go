package keywordrewrite

import "github.com/gin-gonic/gin"

// RegisterRoutes 挂在 staff 分组下
func RegisterRoutes(staff *gin.RouterGroup, h *Handler) {
	jobs := staff.Group("/keyword-rewrites")
	{
		jobs.GET("", h.List)
		jobs.POST("", h.Create)
		jobs.GET("/:id", h.Get)
		jobs.POST("/:id/retry", h.Retry)
		jobs.DELETE("/:id", h.Delete)
	}
}
