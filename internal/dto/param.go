package dto

import (
	"strconv"

	res "terminal-terrace/ai-magazine/packages/response"

	"github.com/gin-gonic/gin"
)

// ParamID 解析路径中的 ID，失败时直接写 400 响应
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		ErrorResponse(c, res.NewBusinessError(
			res.WithErrorCode(res.ParseError),
			res.WithErrorMessage("ID không hợp lệ"),
		))
		return 0, false
	}
	return uint(id), true
}
