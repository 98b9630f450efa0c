package dto

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	res "terminal-terrace/ai-magazine/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, res.SuccessResponse(data))
}

// CreatedResponse 201
func CreatedResponse(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, res.SuccessResponse(data))
}

// MessageResponse 只有提示信息的成功响应
func MessageResponse(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, res.CustomResponse(res.WithMessage(msg)))
}

// WarningResponse 部分成功
func WarningResponse(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, res.WarningResponse(msg, data))
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(err.Code.HTTPStatus(), res.ErrorResponse(err))
}

// AbortWithError 中间件使用
func AbortWithError(c *gin.Context, err *res.BusinessError) {
	c.AbortWithStatusJSON(err.Code.HTTPStatus(), res.ErrorResponse(err))
}

// HandleError 将 service 返回的错误写入响应
func HandleError(c *gin.Context, err error) {
	ErrorResponse(c, res.AsBusinessError(err))
}

// ValidationErrorResponse 处理验证错误，返回字段级错误信息
func ValidationErrorResponse(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fields := make(map[string][]string, len(validationErrs))
		for _, fe := range validationErrs {
			name := getJSONFieldName(fe)
			fields[name] = append(fields[name], fieldMessage(name, fe))
		}

		first := getJSONFieldName(validationErrs[0])
		ErrorResponse(c, res.ValidationError(fields[first][0], fields))
		return
	}

	ErrorResponse(c, res.NewBusinessError(
		res.WithErrorCode(res.ParseError),
		res.WithErrorMessage("Dữ liệu gửi lên không hợp lệ"),
		res.WithError(err),
	))
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Trường '%s' là bắt buộc", field)
	case "max":
		return fmt.Sprintf("Trường '%s' không được vượt quá %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("Trường '%s' phải có ít nhất %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("Trường '%s' phải là email hợp lệ", field)
	case "url":
		return fmt.Sprintf("Trường '%s' phải là URL hợp lệ", field)
	case "oneof":
		return fmt.Sprintf("Trường '%s' phải là một trong: %s", field, fe.Param())
	case "dive", "gt":
		return fmt.Sprintf("Trường '%s' không hợp lệ", field)
	default:
		return fmt.Sprintf("Trường '%s' không hợp lệ: %s", field, fe.Tag())
	}
}

// getJSONFieldName 获取字段名
// validator 不携带结构体实例，这里只能返回字段名的 snake_case 版本
func getJSONFieldName(fe validator.FieldError) string {
	field := fe.StructNamespace()
	if strings.Contains(field, ".") {
		parts := strings.Split(field, ".")
		return toSnakeCase(parts[len(parts)-1])
	}
	return toSnakeCase(fe.Field())
}

// toSnakeCase 将 PascalCase 转换为 snake_case，连续大写视为一个词（SourceURL -> source_url）
func toSnakeCase(s string) string {
	runes := []rune(s)
	var result strings.Builder
	for i, r := range runes {
		isUpper := r >= 'A' && r <= 'Z'
		if i > 0 && isUpper {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z' || runes[i-1] >= '0' && runes[i-1] <= '9'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || (nextLower && runes[i-1] >= 'A' && runes[i-1] <= 'Z') {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
