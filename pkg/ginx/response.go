package ginx

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

// 响应状态
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response 统一响应结构
type Response struct {
	Status    string      `json:"status"`
	Count     *int        `json:"count,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp,omitempty"`
	Meta      *Meta       `json:"meta,omitempty"`
}

// Meta 错误元数据
type Meta struct {
	Code    int           `json:"code" example:"400"`
	Message string        `json:"message" example:"Validation failed"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Path string `json:"path" example:"affected_population"`
	Info string `json:"info" example:"affected_population is required"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: StatusSuccess,
		Data:   data,
	})
}

// SuccessList 列表响应，附带条数与时间戳
func SuccessList(c *gin.Context, data interface{}, count int, now time.Time) {
	c.JSON(http.StatusOK, Response{
		Status:    StatusSuccess,
		Count:     &count,
		Data:      data,
		Timestamp: now.UTC().Format(time.RFC3339),
	})
}

// Error 错误响应（400/500）
func Error(c *gin.Context, httpCode int, message string) {
	ErrorWithDetails(c, httpCode, message, nil)
}

// ErrorWithDetails 带详情的错误响应
func ErrorWithDetails(c *gin.Context, httpCode int, message string, details []ErrorDetail) {
	c.JSON(httpCode, Response{
		Status: StatusError,
		Meta: &Meta{
			Code:    httpCode,
			Message: message,
			Details: details,
		},
	})
}

// BadRequest 400 错误
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// FromError 按 errorutil.Error 的错误码输出
// 参数错误返回 400 并带字段详情，其余返回 500
func FromError(c *gin.Context, err error) {
	var e *errorutil.Error
	if !errors.As(err, &e) {
		InternalError(c, err.Error())
		return
	}

	if e.Code != errorutil.CodeInvalidArgument {
		InternalError(c, e.Message)
		return
	}

	details := make([]ErrorDetail, 0, len(e.Fields))
	for _, f := range e.Fields {
		details = append(details, ErrorDetail{Path: f.Path, Info: f.Info})
	}
	ErrorWithDetails(c, http.StatusBadRequest, e.Message, details)
}

// InternalError 500 错误
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
