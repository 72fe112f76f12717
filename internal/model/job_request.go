package model

// 任务动作类型（路由键）
const (
	ActionTriagePrioritize      = "triage_prioritize"
	ActionTriagePrioritizeBatch = "triage_prioritize_batch"
	ActionResourceForecast      = "resource_forecast"
)

// TriageJob 评分任务消息（标准化）
// 用于 API/上游系统 → worker 的消息传递
type TriageJob struct {
	Payload TriageJobPayload `json:"payload"`
}

// TriageJobPayload Job 负载
type TriageJobPayload struct {
	Data TriageJobData `json:"data"`
}

// TriageJobData Job 数据层
type TriageJobData struct {
	// 元信息
	RequestID  string `json:"request_id"`  // 请求 ID（全链路追踪）
	OrgID      string `json:"org_id"`      // 组织 ID（barangay 编号）
	ActionType string `json:"action_type"` // 动作类型，见 Action* 常量
	ID         string `json:"id"`          // 业务 ID（求助单号 / 灾害事件号）

	// 业务数据：TriageRequest / BatchTriageRequest / ForecastRequest
	Data interface{} `json:"data"`
}
