package category

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

// List 全部分类（平铺）
// @Summary 分类列表
// @Tags Category
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories [get]
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, items)
}

// Tree 分类树
// @Summary 分类树
// @Tags Category
// @Produce json
// @Success 200 {object} response.Response
// @Router /categories/tree [get]
func (h *Handler) Tree(c *gin.Context) {
	items, err := h.service.Tree(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, items)
}

// Get 分类详情
// @Summary 分类详情
// @Tags Category
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} response.Response
// @Router /categories/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, item)
}

// Create 创建分类
// @Summary 创建分类
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "分类"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/categories [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.CreatedResponse(c, item)
}

// Update 更新分类
// @Summary 更新分类
// @Tags Category
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Param request body UpdateRequest true "字段"
// @Success 200 {object} response.Response
// @Router /admin/categories/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, item)
}

// Delete 删除分类
// @Summary 删除分类
// @Tags Category
// @Produce json
// @Security BearerAuth
// @Param id path int true "分类ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /admin/categories/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.MessageResponse(c, "Đã xóa danh mục")
}
