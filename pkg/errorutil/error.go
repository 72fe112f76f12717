package errorutil

import (
	"errors"
	"fmt"
)

// 错误码
const (
	CodeInvalidArgument = 400
	CodeInternal        = 500
)

// Error 错误结构（包含可重试标记）
type Error struct {
	Code       int           `json:"code"`
	Message    string        `json:"message"`
	Retryable  bool          `json:"retryable"`
	DevDetails string        `json:"dev_details,omitempty"`
	Fields     []FieldDetail `json:"fields,omitempty"`
}

// FieldDetail 参数校验失败的字段详情
type FieldDetail struct {
	Path string `json:"path"`
	Info string `json:"info"`
}

// Error 实现 error 接口
func (e *Error) Error() string {
	return e.Message
}

// Retriable 创建可重试错误（网络错误、临时故障等）
func Retriable(message string) *Error {
	return &Error{
		Code:      CodeInternal,
		Message:   message,
		Retryable: true,
	}
}

// RetriableWithDetails 创建可重试错误（带详细信息）
func RetriableWithDetails(message string, details string) *Error {
	return &Error{
		Code:       CodeInternal,
		Message:    message,
		Retryable:  true,
		DevDetails: details,
	}
}

// NonRetriable 创建不可重试错误（业务规则错误等）
func NonRetriable(message string) *Error {
	return &Error{
		Code:      CodeInvalidArgument,
		Message:   message,
		Retryable: false,
	}
}

// InvalidArgument 创建参数错误（调用方错误，不可重试）
func InvalidArgument(message string, fields ...FieldDetail) *Error {
	return &Error{
		Code:      CodeInvalidArgument,
		Message:   message,
		Retryable: false,
		Fields:    fields,
	}
}

// IsInvalidArgument 判断是否为参数错误
func IsInvalidArgument(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == CodeInvalidArgument
	}
	return false
}

// IsRetryable 判断是否可重试
func IsRetryable(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Retryable
	}
	return false
}

// Wrap 包装错误（已是 Error 则原样返回）
func Wrap(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	// 默认为不可重试错误
	return &Error{
		Code:       CodeInternal,
		Message:    err.Error(),
		Retryable:  false,
		DevDetails: fmt.Sprintf("%+v", err),
	}
}
