// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrorType 定义错误类型
type ErrorType string

const (
	// ErrorTypeValidation 请求内容不合法（例如缺少文本），映射为 400
	ErrorTypeValidation ErrorType = "validation_error"
	// ErrorTypeProvider 调用或配置外部模型时的任何失败，映射为 500
	ErrorTypeProvider ErrorType = "provider_error"
	// ErrorTypeTimeout 调用外部模型超时，映射为 500
	ErrorTypeTimeout ErrorType = "timeout"
)

// AppError 应用程序错误结构
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string // 用户友好的错误代码
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	switch {
	case e.Message == "" && e.Err != nil:
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	default:
		return e.Message
	}
}

// Unwrap 实现错误链接
func (e *AppError) Unwrap() error {
	return e.Err
}

// Detail 返回暴露给调用方的错误描述：有原始错误时使用原始错误文本
func (e *AppError) Detail() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewAppError 创建新的 AppError
func NewAppError(errType ErrorType, message string, originalError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     originalError,
		Code:    generateErrorCode(errType),
	}
}

// NewValidationError 创建验证错误
func NewValidationError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeValidation, message, originalError)
}

// NewProviderError 创建外部模型调用错误
func NewProviderError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeProvider, message, originalError)
}

// NewTimeoutError 创建超时错误
func NewTimeoutError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeTimeout, message, originalError)
}

// IsValidationError 检查是否为验证错误
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsProviderError 检查是否为外部模型错误（包括超时）
func IsProviderError(err error) bool {
	return hasType(err, ErrorTypeProvider) || hasType(err, ErrorTypeTimeout)
}

// IsTimeoutError 检查是否为超时错误
func IsTimeoutError(err error) bool {
	return hasType(err, ErrorTypeTimeout)
}

// DetailOf 返回任意错误暴露给调用方的描述
func DetailOf(err error) string {
	if err == nil {
		return ""
	}
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Detail()
	}
	return err.Error()
}

func hasType(err error, errType ErrorType) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == errType
	}
	return false
}

// generateErrorCode 根据错误类型生成错误代码
func generateErrorCode(errType ErrorType) string {
	switch errType {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeProvider:
		return "LLM_PROVIDER_ERROR"
	case ErrorTypeTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN_ERROR"
	}
}
