package article

import (
	"fmt"

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

// List 文章列表
// @Summary 文章列表（分页）
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(15)
// @Param category_id query int false "分类ID"
// @Param search query string false "标题关键字"
// @Param source_name query string false "来源"
// @Param trashed query string false "with|only（仅管理员）"
// @Success 200 {object} response.Response{data=dto.Page[articleModel.Article]}
// @Router /articles [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	user := middleware.CurrentUser(c)
	page, err := h.service.List(c.Request.Context(), q, user != nil && user.IsAdmin())
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// Get 文章详情
// @Summary 文章详情（含改写稿）
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=articleModel.Article}
// @Failure 404 {object} response.Response
// @Router /articles/{id} [get]
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

// Create 手动创建文章
// @Summary 创建文章
// @Tags Article
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRequest true "文章"
// @Success 201 {object} response.Response{data=articleModel.Article}
// @Failure 422 {object} response.Response
// @Router /articles [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	a, err := h.service.Create(c.Request.Context(), req, middleware.CurrentUser(c).UserID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.CreatedResponse(c, a)
}

// Update 更新文章
// @Summary 更新文章
// @Tags Article
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Param request body UpdateRequest true "需要更新的字段"
// @Success 200 {object} response.Response{data=articleModel.Article}
// @Failure 422 {object} response.Response
// @Router /articles/{id} [put]
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

// Delete 删除文章（软删除）
// @Summary 删除文章
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response
// @Router /articles/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.MessageResponse(c, "Đã chuyển bài viết vào thùng rác")
}

// AdminDelete 管理员删除，force=true 时物理删除
// @Summary 删除文章（管理员）
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Param force query bool false "物理删除"
// @Success 200 {object} response.Response
// @Router /admin/articles/{id} [delete]
func (h *Handler) AdminDelete(c *gin.Context) {
	if c.Query("force") != "true" {
		h.Delete(c)
		return
	}
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.ForceDelete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.MessageResponse(c, "Đã xóa vĩnh viễn bài viết")
}

// Restore 恢复软删除的文章
// @Summary 恢复文章
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=articleModel.Article}
// @Router /admin/articles/{id}/restore [post]
func (h *Handler) Restore(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	a, err := h.service.Restore(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, a)
}

// Import 批量导入
// @Summary 批量导入爬虫文章
// @Description 已存在的 slug 或来源链接（含已删除）会被跳过
// @Tags Article
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ImportRequest true "文章列表"
// @Success 200 {object} response.Response{data=ImportResult}
// @Failure 500 {object} response.Response
// @Router /articles/import [post]
func (h *Handler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.service.Import(c.Request.Context(), req.Articles, middleware.CurrentUser(c).UserID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	respondImport(c, result)
}

// SetAIContent 写入 AI 内容
// @Summary 写入 AI 改写内容
// @Tags Article
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Param request body AIContentRequest true "AI 内容"
// @Success 200 {object} response.Response{data=articleModel.RewrittenArticle}
// @Router /articles/{id}/ai-content [put]
func (h *Handler) SetAIContent(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	var req AIContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	rw, err := h.service.SetAIContent(c.Request.Context(), id, req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, rw)
}

// Rewrite 调用 AI 改写
// @Summary 使用当前 AI 设置改写文章
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=articleModel.RewrittenArticle}
// @Failure 502 {object} response.Response
// @Router /admin/articles/{id}/rewrite [post]
func (h *Handler) Rewrite(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	rw, err := h.service.Rewrite(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, rw)
}

// Scrape 抓取链接并导入
// @Summary 抓取单个链接
// @Tags Article
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScrapeRequest true "链接"
// @Success 200 {object} response.Response{data=ImportResult}
// @Failure 502 {object} response.Response
// @Router /admin/articles/scrape [post]
func (h *Handler) Scrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, err := h.service.Scrape(c.Request.Context(), req, middleware.CurrentUser(c).UserID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	respondImport(c, result)
}

func respondImport(c *gin.Context, result *ImportResult) {
	if len(result.Errors) > 0 {
		dto.WarningResponse(c, fmt.Sprintf("Đã nhập %d bài viết, %d bài lỗi", len(result.Imported), len(result.Errors)), result)
		return
	}
	dto.SuccessResponse(c, result)
}
