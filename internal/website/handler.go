package website

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

// Get 网站配置
// @Summary 网站配置
// @Tags Public
// @Produce json
// @Success 200 {object} response.Response
// @Router /public/website-config [get]
func (h *Handler) Get(c *gin.Context) {
	cfg, err := h.service.Get(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, cfg)
}

// Update 更新网站配置
// @Summary 更新网站配置
// @Tags Website
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRequest true "配置"
// @Success 200 {object} response.Response
// @Router /admin/website-config [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	cfg, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, cfg)
}

func RegisterRoutes(public, admin *gin.RouterGroup, h *Handler) {
	public.GET("/website-config", h.Get)
	admin.GET("/website-config", h.Get)
	admin.PUT("/website-config", h.Update)
}
