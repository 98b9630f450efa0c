package keywordrewrite

import (
	"terminal-terrace/ai-magazine/internal/dto"
	"terminal-terrace/ai-magazine/internal/middleware"
	model "terminal-terrace/ai-magazine/internal/model/keywordrewrite"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create 新建关键词改写
// @Summary 新建关键词改写任务（同步执行）
// @Tags KeywordRewrite
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "关键词与原文"
// @Success 201 {object} response.Response
// @Router /admin/keyword-rewrites [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	job, err := h.service.Create(c.Request.Context(), middleware.CurrentUser(c).UserID, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	respondJob(c, job, true)
}

// List 任务列表
// @Summary 关键词改写任务列表
// @Tags KeywordRewrite
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态"
// @Param keyword query string false "关键词"
// @Success 200 {object} response.Response
// @Router /admin/keyword-rewrites [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	page, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// Get 任务详情
// @Summary 关键词改写任务详情
// @Tags KeywordRewrite
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Success 200 {object} response.Response
// @Router /admin/keyword-rewrites/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	job, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, job)
}

// Retry 重试失败任务
// @Summary 重试失败的任务
// @Tags KeywordRewrite
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Success 200 {object} response.Response
// @Router /admin/keyword-rewrites/{id}/retry [post]
func (h *Handler) Retry(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	job, err := h.service.Retry(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	respondJob(c, job, false)
}

// Delete 删除任务
// @Summary 删除任务
// @Tags KeywordRewrite
// @Produce json
// @Security BearerAuth
// @Param id path int true "任务ID"
// @Success 200 {object} response.Response
// @Router /admin/keyword-rewrites/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.MessageResponse(c, "Đã xóa tác vụ")
}

// respondJob 失败任务以 warning 返回
func respondJob(c *gin.Context, job *model.KeywordRewrite, created bool) {
	if job.Status == model.StatusFailed {
		dto.WarningResponse(c, "Viết lại theo từ khóa thất bại", job)
		return
	}
	if created {
		dto.CreatedResponse(c, job)
		return
	}
	dto.SuccessResponse(c, job)
}
