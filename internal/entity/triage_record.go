package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TriageRecord 评分 / 预测审计记录
type TriageRecord struct {
	// 基础字段
	ID         uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	RequestID  string `gorm:"column:request_id;type:varchar(64);not null;uniqueIndex:uk_request_id"`
	ActionType string `gorm:"column:action_type;type:varchar(32);not null;index:idx_action_priority"`

	// 输入与结果
	Category string         `gorm:"column:category;type:varchar(64)"`
	Priority string         `gorm:"column:priority;type:varchar(16);index:idx_action_priority"`
	Score    float64        `gorm:"column:score"`
	Request  datatypes.JSON `gorm:"column:request;type:json;not null"`
	Result   datatypes.JSON `gorm:"column:result;type:json;not null"`

	ModelVersion string `gorm:"column:model_version;type:varchar(16)"`
	MLFallback   bool   `gorm:"column:ml_fallback;not null;default:false"`

	// 时间戳
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at"`
}

// TableName 指定表名
func (TriageRecord) TableName() string {
	return "triage_records"
}
