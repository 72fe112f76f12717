package priority

import (
	"math"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// 融合权重
const (
	RuleWeight = 0.7
	MLWeight   = 0.3
)

// 档位阈值
const (
	UrgentThreshold = 0.85
	HighThreshold   = 0.70
	MediumThreshold = 0.50
)

// Aggregate 融合规则分和模型分
// ml 为 nil 时按替代分计算；返回值保留 3 位小数，档位由保留后的分数决定
func Aggregate(rule float64, ml *float64) (float64, model.Tier) {
	mlScore := FallbackMLScore
	if ml != nil {
		mlScore = *ml
	}

	final := RuleWeight*rule + MLWeight*mlScore
	final = round3(math.Min(math.Max(final, 0), 1))
	return final, TierFor(final)
}

// TierFor 分数 → 档位
func TierFor(score float64) model.Tier {
	switch {
	case score >= UrgentThreshold:
		return model.TierUrgent
	case score >= HighThreshold:
		return model.TierHigh
	case score >= MediumThreshold:
		return model.TierMedium
	default:
		return model.TierLow
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
