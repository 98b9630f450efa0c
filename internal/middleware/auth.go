package middleware

import (
	"errors"

	"terminal-terrace/ai-magazine/config"
	"terminal-terrace/ai-magazine/internal/dto"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextUserID   = "user_id"
	ContextUserName = "user_name"
	ContextEmail    = "email"
	ContextUserRole = "user_role"
)

// parseToken 从 cookie 或 Authorization header 中解析 token
func parseToken(c *gin.Context) (*authsdk.UserContext, error) {
	token, err := authsdk.ExtractToken(c.Request)
	if err != nil {
		return nil, err
	}
	return authsdk.ParseToken(token, config.Conf.JWT.Secret)
}

func setUser(c *gin.Context, u *authsdk.UserContext) {
	c.Set(ContextUserID, u.UserID)
	c.Set(ContextUserName, u.Name)
	c.Set(ContextEmail, u.Email)
	c.Set(ContextUserRole, u.Role)
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := parseToken(c)
		if err != nil {
			msg := "Phiên đăng nhập không hợp lệ"
			switch {
			case errors.Is(err, authsdk.ErrNoToken):
				msg = "Bạn chưa đăng nhập"
			case errors.Is(err, authsdk.ErrExpiredToken):
				msg = "Phiên đăng nhập đã hết hạn"
			}
			dto.AbortWithError(c, response.UnauthorizedError(msg))
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalJWTAuth 可选的 JWT 认证中间件（有 token 则解析，无 token 放行）
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := parseToken(c); err == nil && user != nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// CurrentUser 读取认证中间件写入的用户信息，未登录返回 nil
func CurrentUser(c *gin.Context) *authsdk.UserContext {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	return &authsdk.UserContext{
		UserID: id.(uint),
		Name:   c.GetString(ContextUserName),
		Email:  c.GetString(ContextEmail),
		Role:   c.GetString(ContextUserRole),
	}
}
