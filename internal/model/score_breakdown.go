package model

import (
	"encoding/json"
	"strings"
)

// Tier 优先级档位
type Tier string

const (
	TierUrgent Tier = "URGENT"
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// ReasonDelimiter reasons 拼接分隔符
const ReasonDelimiter = " | "

// ScoreBreakdown 评分结果
// 构造后不再修改，所有权交给调用方
type ScoreBreakdown struct {
	Priority          Tier     `json:"priority"`
	Score             float64  `json:"score"`
	RuleScore         float64  `json:"rule_score"`
	MLScore           *float64 `json:"ml_score"`
	Reasons           []string `json:"-"`
	SuggestedCategory *string  `json:"suggested_category"`
	KeywordsFound     []string `json:"keywords_found"`

	// 以下为请求级附加信息
	MLFallback       bool   `json:"ml_fallback"`
	RequestID        string `json:"request_id,omitempty"`
	Timestamp        string `json:"timestamp,omitempty"`
	ModelVersion     string `json:"model_version,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms"`
}

// Reason 拼接后的可读说明
func (b ScoreBreakdown) Reason() string {
	return strings.Join(b.Reasons, ReasonDelimiter)
}

// MarshalJSON 输出 reason 字段（reasons 按顺序拼接）
func (b ScoreBreakdown) MarshalJSON() ([]byte, error) {
	type alias ScoreBreakdown
	keywords := b.KeywordsFound
	if keywords == nil {
		keywords = []string{}
	}
	return json.Marshal(&struct {
		alias
		Reason        string   `json:"reason"`
		KeywordsFound []string `json:"keywords_found"`
	}{
		alias:         alias(b),
		Reason:        b.Reason(),
		KeywordsFound: keywords,
	})
}

// UnmarshalJSON 将 reason 还原为 reasons
func (b *ScoreBreakdown) UnmarshalJSON(data []byte) error {
	type alias ScoreBreakdown
	aux := &struct {
		*alias
		Reason string `json:"reason"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	b.Reasons = nil
	if aux.Reason != "" {
		b.Reasons = strings.Split(aux.Reason, ReasonDelimiter)
	}
	return nil
}
