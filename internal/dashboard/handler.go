package dashboard

import (
	"terminal-terrace/ai-magazine/internal/dto"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Stats 后台概览
// @Summary 后台概览统计
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=Stats}
// @Router /admin/dashboard [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, stats)
}

func RegisterRoutes(admin *gin.RouterGroup, h *Handler) {
	admin.GET("/dashboard", h.Stats)
}
