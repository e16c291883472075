package apperrors

import (
	"errors"
	"net/http"
)

// AppError 自定义错误类型
// Message 为 i18n 消息键，由全局错误中间件在出口处本地化
type AppError struct {
	Code    int
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode 创建通用业务错误
func WithCode(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// InvalidRequestError 封装参数校验错误
func InvalidRequestError(message string) *AppError {
	return WithCode(http.StatusBadRequest, message)
}

// InvalidRequestErrorDefault 默认参数校验错误
func InvalidRequestErrorDefault() *AppError {
	return WithCode(http.StatusBadRequest, "error.invalid_request")
}

// CodeInUseError 自定义短码已被占用
func CodeInUseError() *AppError {
	return WithCode(http.StatusConflict, "error.shortcode_in_use")
}

// CodeSpaceExhaustedError 在重试上限内未找到空闲短码
// 属于罕见的系统性故障，引擎本身不再继续重试
func CodeSpaceExhaustedError() *AppError {
	return WithCode(http.StatusInternalServerError, "error.code_space_exhausted")
}

// NotFoundError 短码不存在
func NotFoundError() *AppError {
	return WithCode(http.StatusNotFound, "error.url_not_found")
}

// ExpiredError 短码存在但已过期
func ExpiredError() *AppError {
	return WithCode(http.StatusGone, "error.url_expired")
}

// StoreError 封装底层存储错误，原样向调用方传播
func StoreError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "error.system",
		Cause:   cause,
	}
}

// SystemErrorDefault 默认系统内部错误
func SystemErrorDefault() *AppError {
	return WithCode(http.StatusInternalServerError, "error.system")
}

// IsCode 判断错误是否为指定 HTTP 状态码的 AppError
func IsCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
