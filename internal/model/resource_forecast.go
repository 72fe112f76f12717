package model

import (
	"encoding/json"
	"sort"
)

// MaxAffectedPopulation 受灾人口上限，需与 validate tag 中的 lte 保持一致
// 上限保证按人口倍乘的资源数量不会溢出 int
const MaxAffectedPopulation = 100000000

// ForecastRequest 灾害资源预测请求
// AffectedPopulation 使用指针区分"未传"与 0
type ForecastRequest struct {
	DisasterType       string `json:"disaster_type" validate:"max=64"`
	AffectedPopulation *int   `json:"affected_population" validate:"required,gte=0,lte=100000000"`
	Location           string `json:"location,omitempty"`
}

// TimelinePhase 响应时间线中的一个阶段
type TimelinePhase struct {
	Time     string `json:"time"`
	Action   string `json:"action"`
	Priority string `json:"priority"`
}

// CostEstimate 费用估算
// 序列化时展开为 {resource: cost, ..., "total": x, "currency": "USD"}
type CostEstimate struct {
	Items    map[string]float64
	Total    float64
	Currency string
}

// MarshalJSON 展开为扁平结构
func (c CostEstimate) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(c.Items)+2)
	for resource, cost := range c.Items {
		flat[resource] = cost
	}
	flat["total"] = c.Total
	flat["currency"] = c.Currency
	return json.Marshal(flat)
}

// UnmarshalJSON 从扁平结构还原
func (c *CostEstimate) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	c.Items = make(map[string]float64, len(flat))
	for key, raw := range flat {
		switch key {
		case "total":
			if err := json.Unmarshal(raw, &c.Total); err != nil {
				return err
			}
		case "currency":
			if err := json.Unmarshal(raw, &c.Currency); err != nil {
				return err
			}
		default:
			var cost float64
			if err := json.Unmarshal(raw, &cost); err != nil {
				return err
			}
			c.Items[key] = cost
		}
	}
	return nil
}

// Resources 已定价资源名（排序后）
func (c CostEstimate) Resources() []string {
	names := make([]string, 0, len(c.Items))
	for name := range c.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResourceForecast 资源预测结果
type ResourceForecast struct {
	RequestID          string             `json:"request_id,omitempty"`
	DisasterType       string             `json:"disaster_type"`
	AffectedPopulation int                `json:"affected_population"`
	Location           string             `json:"location,omitempty"`
	Predictions        map[string]float64 `json:"predictions"`
	EstimatedCosts     CostEstimate       `json:"estimated_costs"`
	ResponseTimeline   []TimelinePhase    `json:"response_timeline"`
	Recommendations    []string           `json:"recommendations"`
	Timestamp          string             `json:"timestamp,omitempty"`
	Note               string             `json:"note,omitempty"`
}
