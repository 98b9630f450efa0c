package response

import (
	"errors"
	"net/http"
)

type ResponseCode int

// 业务错误码
const (
	// 失败
	Fail ResponseCode = iota
	// 参数解析错误
	ParseError
	// 参数校验失败 / 数据冲突
	InvalidParameter
	Unauthorized
	Forbidden
	NotFound
	// 上游 AI 服务失败
	UpstreamError
)

// HTTPStatus 业务码对应的 HTTP 状态码
func (c ResponseCode) HTTPStatus() int {
	switch c {
	case ParseError:
		return http.StatusBadRequest
	case InvalidParameter:
		return http.StatusUnprocessableEntity
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case UpstreamError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Code   ResponseCode
	Msg    string
	Err    error
	Fields map[string][]string
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

// WithFields 字段级错误信息
func WithFields(fields map[string][]string) ErrorOption {
	return func(be *BusinessError) {
		be.Fields = fields
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// AsBusinessError 将任意错误转换为 BusinessError，非业务错误统一视为内部错误
func AsBusinessError(err error) *BusinessError {
	var be *BusinessError
	if errors.As(err, &be) {
		return be
	}
	return NewBusinessError(
		WithErrorCode(Fail),
		WithErrorMessage("Lỗi hệ thống"),
		WithError(err),
	)
}

func NotFoundError(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(NotFound), WithErrorMessage(msg))
}

func ForbiddenError(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(Forbidden), WithErrorMessage(msg))
}

func UnauthorizedError(msg string) *BusinessError {
	return NewBusinessError(WithErrorCode(Unauthorized), WithErrorMessage(msg))
}

// ValidationError 422，附带字段错误
func ValidationError(msg string, fields map[string][]string) *BusinessError {
	return NewBusinessError(
		WithErrorCode(InvalidParameter),
		WithErrorMessage(msg),
		WithFields(fields),
	)
}
