package user

import "github.com/gin-gonic/gin"

// RegisterRoutes 挂在 admin 分组下
func RegisterRoutes(admin *gin.RouterGroup, h *Handler) {
	users := admin.Group("/users")
	{
		users.GET("", h.List)
		users.POST("", h.Create)
		users.GET("/:id", h.Get)
		users.PUT("/:id", h.Update)
		users.DELETE("/:id", h.Delete)
	}
}
