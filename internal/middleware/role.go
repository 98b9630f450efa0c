package middleware

import (
	"log/slog"

	"terminal-terrace/ai-magazine/internal/dto"
	"terminal-terrace/ai-magazine/packages/authsdk"
	"terminal-terrace/ai-magazine/packages/response"

	"github.com/gin-gonic/gin"
)

// ForbiddenMessage 角色不符时的提示
const ForbiddenMessage = "Bạn không có quyền thực hiện thao tác này"

// RequireRoles 角色校验，需放在 JWTAuth 之后
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			dto.AbortWithError(c, response.UnauthorizedError("Bạn chưa đăng nhập"))
			return
		}
		if !user.HasRole(roles...) {
			slog.Warn("角色不足", "user_id", user.UserID, "role", user.Role, "path", c.FullPath())
			dto.AbortWithError(c, response.ForbiddenError(ForbiddenMessage))
			return
		}
		c.Next()
	}
}

// AdminOnly 仅管理员
func AdminOnly() gin.HandlerFunc {
	return RequireRoles(authsdk.RoleAdmin)
}

// Staff 管理员或编辑
func Staff() gin.HandlerFunc {
	return RequireRoles(authsdk.RoleAdmin, authsdk.RoleEditor)
}
