package authsdk

import (
	"net/http"
	"strings"
)

// AccessTokenCookie 存放访问令牌的 cookie 名
const AccessTokenCookie = "access_token"

// ExtractToken 从 HTTP 请求中提取 JWT token
// 依次尝试：
// 1. access_token cookie
// 2. Authorization: Bearer <token>
// 3. x-access-token header
func ExtractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	if header := r.Header.Get("Authorization"); header != "" {
		if strings.HasPrefix(header, "Bearer ") {
			return strings.TrimPrefix(header, "Bearer "), nil
		}
		return "", ErrInvalidToken
	}

	if token := r.Header.Get("X-Access-Token"); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}

// GetUserFromRequest 从请求获取用户信息
// 如果没有 token 或解析失败，返回空的 UserContext（UserID=0）
func GetUserFromRequest(r *http.Request, secret string) *UserContext {
	token, err := ExtractToken(r)
	if err != nil {
		return &UserContext{}
	}

	user, err := ParseToken(token, secret)
	if err != nil {
		return &UserContext{}
	}
	return user
}
