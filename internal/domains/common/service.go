package common

import (
	"context"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// TriageService Handler 依赖的业务服务
type TriageService interface {
	Prioritize(ctx context.Context, req model.TriageRequest) (*model.ScoreBreakdown, error)
	PrioritizeBatch(ctx context.Context, reqs []model.TriageRequest) ([]*model.ScoreBreakdown, error)
	ForecastResources(ctx context.Context, req model.ForecastRequest) (*model.ResourceForecast, error)
}

// CallbackPublisher 回调消息发布
// ttl=0 表示永不过期, delay=0 表示立即可用
type CallbackPublisher interface {
	Publish(queue string, data []byte, ttl, delay uint32) error
}
