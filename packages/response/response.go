package response

// Status 响应状态
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusWarning Status = "warning"
)

// Response 统一响应结构
type Response struct {
	Status  Status              `json:"status"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Error   string              `json:"error,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type ResponseOptions func(*Response)

func WithStatus(status Status) ResponseOptions {
	return func(r *Response) {
		r.Status = status
	}
}

func WithMessage(message string) ResponseOptions {
	return func(r *Response) {
		r.Message = message
	}
}

func WithData(data any) ResponseOptions {
	return func(r *Response) {
		r.Data = data
	}
}

func CustomResponse(opts ...ResponseOptions) Response {
	response := Response{Status: StatusSuccess}
	for _, opt := range opts {
		opt(&response)
	}
	return response
}

func SuccessResponse(data any) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

// WarningResponse 部分成功（例如批量导入时部分条目失败）
func WarningResponse(msg string, data any) Response {
	return Response{
		Status:  StatusWarning,
		Message: msg,
		Data:    data,
	}
}

func ErrorResponse(be *BusinessError) Response {
	r := Response{
		Status:  StatusError,
		Message: be.Msg,
		Errors:  be.Fields,
	}
	if be.Err != nil {
		r.Error = be.Err.Error()
	}
	return r
}
