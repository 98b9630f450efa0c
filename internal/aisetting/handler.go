package aisetting

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

// Get 查看 AI 设置
// @Summary 查看 AI 设置
// @Tags AI 设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=SettingView}
// @Router /admin/ai-settings [get]
func (h *Handler) Get(c *gin.Context) {
	setting, err := h.service.Current(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, NewSettingView(setting))
}

// Update 更新 AI 设置
// @Summary 更新 AI 设置
// @Tags AI 设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateRequest true "AI 设置"
// @Success 200 {object} response.Response{data=SettingView}
// @Failure 422 {object} response.Response
// @Router /admin/ai-settings [put]
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	setting, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, NewSettingView(setting))
}

// Init 初始化默认设置
// @Summary 初始化默认 AI 设置
// @Tags AI 设置
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=SettingView}
// @Router /admin/ai-settings/init [post]
func (h *Handler) Init(c *gin.Context) {
	setting, created, err := h.service.Init(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	if !created {
		dto.WarningResponse(c, "Cấu hình AI đã tồn tại", NewSettingView(setting))
		return
	}
	dto.CreatedResponse(c, NewSettingView(setting))
}

// Test 测试当前设置
// @Summary 测试 AI 连接
// @Tags AI 设置
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TestRequest false "测试提示词"
// @Success 200 {object} response.Response{data=aigateway.Result}
// @Router /admin/ai-settings/test [post]
func (h *Handler) Test(c *gin.Context) {
	var req TestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.ValidationErrorResponse(c, err)
			return
		}
	}

	result, err := h.service.Test(c.Request.Context(), req.Prompt)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	if !result.Success {
		dto.WarningResponse(c, "Kết nối AI thất bại", result)
		return
	}
	dto.SuccessResponse(c, result)
}
