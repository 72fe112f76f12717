package triage

import (
	"context"
	"time"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// Service HTTP 层依赖的评分服务
type Service interface {
	Prioritize(ctx context.Context, req model.TriageRequest) (*model.ScoreBreakdown, error)
	PrioritizeBatch(ctx context.Context, reqs []model.TriageRequest) ([]*model.ScoreBreakdown, error)
	ForecastResources(ctx context.Context, req model.ForecastRequest) (*model.ResourceForecast, error)
	ModelInfo() model.ModelInfo
	Health() model.HealthStatus
}

// TriageHandler 评分与资源预测 HTTP 处理器
type TriageHandler struct {
	service Service
	now     func() time.Time
}

// NewTriageHandler 创建处理器实例
func NewTriageHandler(service Service) *TriageHandler {
	return &TriageHandler{
		service: service,
		now:     time.Now,
	}
}
