package media

import (
	"net/http"

	"terminal-terrace/ai-magazine/internal/dto"
	"terminal-terrace/ai-magazine/internal/middleware"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload 上传文件
// @Summary 上传媒体文件
// @Description 相同内容重复上传时返回已有记录（status=warning）
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "文件"
// @Param category formData string false "分类"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /media [post]
func (h *Handler) Upload(c *gin.Context) {
	// multipart 头部额外留 1MB
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.service.opts.MaxBytes+(1<<20))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		dto.ErrorResponse(c, response.ValidationError("Vui lòng chọn tệp hợp lệ", map[string][]string{"file": {"Vui lòng chọn tệp hợp lệ"}}))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	defer src.Close()

	m, duplicate, err := h.service.Upload(c.Request.Context(), middleware.CurrentUser(c).UserID, fileHeader.Filename, c.PostForm("category"), src)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	if duplicate {
		dto.WarningResponse(c, "Tệp đã tồn tại", m)
		return
	}
	dto.CreatedResponse(c, m)
}

// List 媒体列表
// @Summary 媒体列表
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param category query string false "分类"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /media [get]
func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	page, err := h.service.List(c.Request.Context(), middleware.CurrentUser(c), q)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, page)
}

// Delete 删除媒体
// @Summary 删除媒体文件
// @Tags Media
// @Produce json
// @Security BearerAuth
// @Param id path int true "媒体ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /media/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := dto.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.MessageResponse(c, "Đã xóa tệp")
}
