package storagelink

import (
	"net/http"

	"terminal-terrace/ai-magazine/internal/dto"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	guardian *Guardian
}

func NewHandler(g *Guardian) *Handler {
	return &Handler{guardian: g}
}

type CheckResult struct {
	Healthy  bool `json:"healthy"`
	Relinked bool `json:"relinked"`
}

// Check 手动检查存储链接
// @Summary 检查并修复存储链接
// @Tags Storage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=CheckResult}
// @Failure 500 {object} response.Response
// @Router /admin/storage-link/check [post]
func (h *Handler) Check(c *gin.Context) {
	relinked, err := h.guardian.Ensure()
	if err != nil {
		dto.HandleError(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("Không thể khôi phục liên kết lưu trữ"),
			response.WithError(err),
		))
		return
	}
	if relinked {
		c.JSON(http.StatusOK, response.CustomResponse(
			response.WithMessage("Đã tạo lại liên kết lưu trữ"),
			response.WithData(CheckResult{Healthy: true, Relinked: true}),
		))
		return
	}
	dto.SuccessResponse(c, CheckResult{Healthy: true})
}

func RegisterRoutes(admin *gin.RouterGroup, h *Handler) {
	admin.POST("/storage-link/check", h.Check)
}
