package model

import (
	"strings"
	"time"
)

// TriageRequest 社区求助请求（评分输入）
// 构造后不再修改，按值传入评分引擎
type TriageRequest struct {
	Title       string     `json:"title" validate:"max=512"`
	Description string     `json:"description" validate:"max=10000"`
	Category    string     `json:"category" validate:"max=64"`
	Location    *string    `json:"location,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
}

// Text 评分使用的小写文本（title + " " + description）
func (r TriageRequest) Text() string {
	return strings.ToLower(r.Title + " " + r.Description)
}

// NormalizedCategory 去空格并转大写的分类
func (r TriageRequest) NormalizedCategory() string {
	return NormalizeCategory(r.Category)
}

// NormalizeCategory 分类统一格式
func NormalizeCategory(category string) string {
	return strings.ToUpper(strings.TrimSpace(category))
}

// BatchTriageRequest 批量评分请求
type BatchTriageRequest struct {
	Requests []TriageRequest `json:"requests" validate:"max=1000,dive"`
}
