package approved

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes 无需登录
func RegisterPublicRoutes(r *gin.Engine, public *gin.RouterGroup, h *Handler) {
	r.GET("/feed.xml", h.Feed)

	articles := public.Group("/articles")
	{
		articles.GET("", h.PublicList)
		articles.GET("/:slug", h.PublicGet)
	}
}

// RegisterRoutes 挂在 staff 分组下
func RegisterRoutes(staff *gin.RouterGroup, h *Handler) {
	approved := staff.Group("/approved-articles")
	{
		approved.GET("", h.List)
		approved.GET("/:id", h.Get)
		approved.PUT("/:id", h.Update)
		approved.PATCH("/:id/status", h.SetStatus)
		approved.DELETE("/:id", h.Delete)
	}
}
