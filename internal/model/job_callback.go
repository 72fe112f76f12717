package model

// TriageCallback 处理结果回调消息（标准化）
// 用于 worker → 上游 callback consumer 的消息传递
type TriageCallback struct {
	RequestID   string      `json:"request_id"`       // 对应请求的 request_id（链路追踪）
	ID          string      `json:"id"`               // 业务 ID
	ActionType  string      `json:"action_type"`      // 动作类型
	Status      string      `json:"status"`           // 回调状态: SUCCESS / FAILED
	Result      interface{} `json:"result,omitempty"` // 评分/预测结果（成功时返回）
	Error       string      `json:"error,omitempty"`  // 错误信息（失败时返回）
	ProcessedAt int64       `json:"processed_at"`     // 处理时间戳（Unix timestamp）
}

// 回调状态常量
const (
	CallbackStatusSuccess = "SUCCESS"
	CallbackStatusFailed  = "FAILED"
)
