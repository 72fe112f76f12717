package triage

import (
	"context"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// breakdownResulter 单条评分结果
type breakdownResulter struct {
	dstData interface{}
}

// Set 设置业务结果数据
func (r *breakdownResulter) Set(ctx context.Context, data interface{}) error {
	r.dstData = data.(*model.ScoreBreakdown)
	return nil
}

// Get 获取格式化后的输出
func (r *breakdownResulter) Get(ctx context.Context) interface{} {
	return r.dstData
}

// BatchOutput 批量评分输出
type BatchOutput struct {
	Count int                     `json:"count"`
	Data  []*model.ScoreBreakdown `json:"data"`
}

// batchResulter 批量评分结果
type batchResulter struct {
	dstData *BatchOutput
}

// Set 设置业务结果数据
func (r *batchResulter) Set(ctx context.Context, data interface{}) error {
	results := data.([]*model.ScoreBreakdown)
	if results == nil {
		results = []*model.ScoreBreakdown{}
	}
	r.dstData = &BatchOutput{
		Count: len(results),
		Data:  results,
	}
	return nil
}

// Get 获取格式化后的输出
func (r *batchResulter) Get(ctx context.Context) interface{} {
	return r.dstData
}

// forecastResulter 资源预测结果
type forecastResulter struct {
	dstData interface{}
}

// Set 设置业务结果数据
func (r *forecastResulter) Set(ctx context.Context, data interface{}) error {
	r.dstData = data.(*model.ResourceForecast)
	return nil
}

// Get 获取格式化后的输出
func (r *forecastResulter) Get(ctx context.Context) interface{} {
	return r.dstData
}
