package auth

import (
	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/dto"
	"terminal-terrace/ai-magazine/internal/middleware"
	"terminal-terrace/ai-magazine/packages/authsdk"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	secure := config.Conf != nil && config.Conf.Server.Mode == gin.ReleaseMode
	c.SetCookie(authsdk.AccessTokenCookie, token, maxAge, "/", "", secure, true)
}

// Login 登录
// @Summary 登录
// @Description 成功后同时返回 token 并写入 access_token Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "邮箱与密码"
// @Success 200 {object} response.Response{data=TokenResponse}
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	h.setTokenCookie(c, result.AccessToken, result.ExpiresIn)
	dto.SuccessResponse(c, result)
}

// Register 注册
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 201 {object} response.Response{data=TokenResponse}
// @Failure 422 {object} response.Response
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}
	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	h.setTokenCookie(c, result.AccessToken, result.ExpiresIn)
	dto.CreatedResponse(c, result)
}

// Logout 退出登录
// @Summary 退出登录
// @Description 清除 access_token Cookie
// @Tags 认证
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	dto.MessageResponse(c, "Đăng xuất thành công")
}

// Me 当前用户
// @Summary 当前登录用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), middleware.CurrentUser(c).UserID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}
	dto.SuccessResponse(c, u)
}
