package rewrite

import (
	"terminal-terrace/ai-magazine/internal/dto"
	"terminal-terrace/ai-magazine/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List 改写稿列表
// @Summary 改写稿列表
// @Tags Rewrite
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending|approved|rejected"
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(15)
// @Success 200 {object} response.Response
// @Router /admin/rewritten-articles [get]
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

// Get 改写稿详情
// @Summary 改写稿详情（含编辑记录）
// @Tags Rewrite
// @Produce json
// @Security BearerAuth
// @Param id path int true "改写稿ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/rewritten-articles/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	rw, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, rw)
}

// Edit 编辑改写稿
// @Summary 编辑改写稿内容
// @Tags Rewrite
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "改写稿ID"
// @Param request body EditRequest true "新内容"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/rewritten-articles/{id} [put]
func (h *Handler) Edit(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	rw, err := h.service.Edit(c.Request.Context(), id, middleware.CurrentUser(c).UserID, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, rw)
}

// Approve 审核通过
// @Summary 审核通过，生成待发布文章
// @Tags Rewrite
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "改写稿ID"
// @Param request body ApproveRequest false "可选标题、摘要与备注"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/rewritten-articles/{id}/approve [post]
func (h *Handler) Approve(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	var req ApproveRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.ValidationErrorResponse(c, err)
			return
		}
	}
	approved, err := h.service.Approve(c.Request.Context(), id, middleware.CurrentUser(c).UserID, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.CreatedResponse(c, approved)
}

// Reject 拒绝
// @Summary 拒绝改写稿
// @Tags Rewrite
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "改写稿ID"
// @Param request body RejectRequest false "备注"
// @Success 200 {object} response.Response
// @Router /admin/rewritten-articles/{id}/reject [post]
func (h *Handler) Reject(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	var req RejectRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			dto.ValidationErrorResponse(c, err)
			return
		}
	}
	rw, err := h.service.Reject(c.Request.Context(), id, middleware.CurrentUser(c).UserID, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, rw)
}
