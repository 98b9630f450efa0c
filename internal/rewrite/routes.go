package rewrite

import "github.com/gin-gonic/gin"

// RegisterRoutes 挂在 staff 分组下（管理员或编辑）
func RegisterRoutes(staff *gin.RouterGroup, h *Handler) {
	rewrites := staff.Group("/rewritten-articles")
	{
		rewrites.GET("", h.List)
		rewrites.GET("/:id", h.Get)
		rewrites.PUT("/:id", h.Edit)
		rewrites.POST("/:id/approve", h.Approve)
		rewrites.POST("/:id/reject", h.Reject)
	}
}
