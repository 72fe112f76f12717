package forecast

import (
	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// Note 预测说明
const Note = "Predictions based on historical disaster response data and best practices"

// Forecaster 资源预测
// 画像与价目表在构造时确定，只读
type Forecaster struct {
	profiles map[string]DisasterProfile
	costs    *CostEstimator
}

// NewForecaster 创建资源预测器
func NewForecaster(profiles map[string]DisasterProfile, prices map[string]float64) *Forecaster {
	if profiles == nil {
		profiles = DefaultProfiles()
	}
	if prices == nil {
		prices = DefaultPrices()
	}
	return &Forecaster{
		profiles: profiles,
		costs:    NewCostEstimator(prices),
	}
}

// Profile 查找灾害画像，未知类型返回不做调整的空画像
func (f *Forecaster) Profile(disasterType string) DisasterProfile {
	disasterType = model.NormalizeCategory(disasterType)
	if p, ok := f.profiles[disasterType]; ok {
		return p
	}
	return DisasterProfile{DisasterType: disasterType}
}

// Predict 计算资源需求量
// 基础资源 = round2(人均量 × 倍数 × 人口)，再合并灾害特有资源
func (f *Forecaster) Predict(disasterType string, population int) map[string]float64 {
	profile := f.Profile(disasterType)

	predictions := make(map[string]float64, len(baseRates)+len(profile.Additional))
	for _, base := range baseRates {
		predictions[base.Resource] = round2(base.Rate * profile.Multiplier(base.Resource) * float64(population))
	}
	for _, item := range profile.Additional {
		predictions[item.Resource] = float64(item.Formula(population))
	}
	return predictions
}

// Forecast 生成完整的资源预测
func (f *Forecaster) Forecast(disasterType string, population int, location string) *model.ResourceForecast {
	disasterType = model.NormalizeCategory(disasterType)
	predictions := f.Predict(disasterType, population)

	return &model.ResourceForecast{
		DisasterType:       disasterType,
		AffectedPopulation: population,
		Location:           location,
		Predictions:        predictions,
		EstimatedCosts:     f.costs.Estimate(predictions),
		ResponseTimeline:   Timeline(disasterType, population),
		Recommendations:    Recommendations(disasterType, population),
		Note:               Note,
	}
}
