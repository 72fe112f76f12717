package forecast

import (
	"math"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// Currency 计价币种
const Currency = "USD"

// DefaultPrices 单价（USD），未列出的资源不计价
func DefaultPrices() map[string]float64 {
	return map[string]float64{
		"water_liters":    0.05,
		"food_rations":    2.50,
		"blankets":        15.00,
		"first_aid_kits":  25.00,
		"boats":           5000.00,
		"life_jackets":    50.00,
		"tents":           200.00,
		"masks":           0.50,
		"ambulance_units": 50000.00,
	}
}

// CostEstimator 费用估算
type CostEstimator struct {
	prices map[string]float64
}

// NewCostEstimator 创建费用估算器
func NewCostEstimator(prices map[string]float64) *CostEstimator {
	return &CostEstimator{prices: prices}
}

// Estimate 逐项计价，total 为各项（保留两位后）之和
func (e *CostEstimator) Estimate(predictions map[string]float64) model.CostEstimate {
	items := make(map[string]float64)
	total := 0.0
	for resource, quantity := range predictions {
		price := e.prices[resource]
		if price <= 0 {
			continue
		}
		cost := round2(quantity * price)
		items[resource] = cost
		total += cost
	}

	return model.CostEstimate{
		Items:    items,
		Total:    round2(total),
		Currency: Currency,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
