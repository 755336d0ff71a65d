package serverutils

// BaseResponse is the success envelope every endpoint returns.
type BaseResponse[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{Message: message, Data: data}
}

// ErrorBody is the failure envelope.
type ErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{Code: code, Message: message}
}
