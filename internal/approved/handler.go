package approved

import (
	"net/http"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/dto"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List 发布稿列表（管理端）
// @Summary 已审核文章列表
// @Tags Approved
// @Produce json
// @Security BearerAuth
// @Param status query string false "published|unpublished"
// @Param category_id query int false "分类ID"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /admin/approved-articles [get]
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

// Get 详情（管理端）
// @Summary 已审核文章详情
// @Tags Approved
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Router /admin/approved-articles/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, a)
}

// Update 更新
// @Summary 更新已审核文章
// @Tags Approved
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body UpdateRequest true "字段"
// @Success 200 {object} response.Response
// @Router /admin/approved-articles/{id} [put]
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
	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, a)
}

// SetStatus 发布/下线
// @Summary 修改发布状态
// @Tags Approved
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param request body StatusRequest true "状态"
// @Success 200 {object} response.Response
// @Router /admin/approved-articles/{id}/status [patch]
func (h *Handler) SetStatus(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	a, err := h.service.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, a)
}

// Delete 删除
// @Summary 删除已审核文章
// @Tags Approved
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Router /admin/approved-articles/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.MessageResponse(c, "Đã xóa bài viết")
}

// PublicList 公开文章列表
// @Summary 公开文章列表
// @Tags Public
// @Produce json
// @Param category_id query int false "分类ID"
// @Param search query string false "关键字"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /public/articles [get]
func (h *Handler) PublicList(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	page, err := h.service.PublicList(c.Request.Context(), q)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// PublicGet 公开文章详情
// @Summary 公开文章详情
// @Tags Public
// @Produce json
// @Param slug path string true "slug"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /public/articles/{slug} [get]
func (h *Handler) PublicGet(c *gin.Context) {
	a, err := h.service.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, a)
}

// Feed RSS
// @Summary RSS 2.0
// @Tags Public
// @Produce xml
// @Success 200 {string} string
// @Router /feed.xml [get]
func (h *Handler) Feed(c *gin.Context) {
	rss, err := h.service.Feed(c.Request.Context(), config.Conf.Feed)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
