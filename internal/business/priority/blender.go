package priority

import (
	"errors"
	"sort"

	"go.uber.org/atomic"

	"github.com/bcenhabil/barangaylink-system/internal/business/classifier"
	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// FallbackMLScore 分类器不可用时的替代分
const FallbackMLScore = 0.5

// ErrClassifierUnavailable 未加载分类器
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// DefaultAnchors 分类 → 锚点分
func DefaultAnchors() map[string]float64 {
	return map[string]float64{
		string(model.TierUrgent): 0.9,
		string(model.TierHigh):   0.7,
		string(model.TierMedium): 0.5,
		string(model.TierLow):    0.3,
	}
}

// MLResult 分类器评分结果
// Fallback 为 true 时 Score 是替代值而非模型输出
type MLResult struct {
	Score    float64
	Fallback bool
	Err      error
}

// ClassifierBlender 将分类概率折算为单一分数
type ClassifierBlender struct {
	predictor     classifier.Predictor
	anchors       map[string]float64
	defaultAnchor float64

	predictions *atomic.Int64
	fallbacks   *atomic.Int64
}

// NewClassifierBlender 创建 blender，predictor 为 nil 表示整个进程周期都走替代分
func NewClassifierBlender(predictor classifier.Predictor, anchors map[string]float64) *ClassifierBlender {
	if anchors == nil {
		anchors = DefaultAnchors()
	}
	return &ClassifierBlender{
		predictor:     predictor,
		anchors:       anchors,
		defaultAnchor: FallbackMLScore,
		predictions:   atomic.NewInt64(0),
		fallbacks:     atomic.NewInt64(0),
	}
}

// Available 分类器是否已加载
func (b *ClassifierBlender) Available() bool {
	return b.predictor != nil
}

// Predict 计算加权锚点分
func (b *ClassifierBlender) Predict(text string) MLResult {
	b.predictions.Inc()

	if b.predictor == nil {
		b.fallbacks.Inc()
		return MLResult{Score: FallbackMLScore, Fallback: true, Err: ErrClassifierUnavailable}
	}

	proba, err := b.predictor.PredictProba(text)
	if err != nil {
		b.fallbacks.Inc()
		return MLResult{Score: FallbackMLScore, Fallback: true, Err: err}
	}

	// 按分类名排序累加，保证结果与 map 遍历顺序无关
	classes := make([]string, 0, len(proba))
	for class := range proba {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	score := 0.0
	for _, class := range classes {
		anchor, ok := b.anchors[class]
		if !ok {
			anchor = b.defaultAnchor
		}
		score += proba[class] * anchor
	}
	return MLResult{Score: score}
}

// Stats 返回累计预测次数与替代次数
func (b *ClassifierBlender) Stats() (predictions, fallbacks int64) {
	return b.predictions.Load(), b.fallbacks.Load()
}
