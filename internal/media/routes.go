package media

import (
	"terminal-terrace/ai-magazine/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api *gin.RouterGroup, h *Handler) {
	media := api.Group("/media")
	media.Use(middleware.JWTAuth())
	{
		media.GET("", h.List)
		media.POST("", h.Upload)
		media.DELETE("/:id", h.Delete)
	}
}
