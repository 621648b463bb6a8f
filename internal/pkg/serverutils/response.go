package serverutils

// BaseResponse is the envelope for errors and for endpoints without a fixed record shape.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

func ValidationErrorResponse(err *ValidationError) BaseResponse[[]FieldError] {
	return BaseResponse[[]FieldError]{
		Success: false,
		Code:    400,
		Message: err.Error(),
		Data:    err.Fields,
	}
}
