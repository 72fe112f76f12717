package business

import (
	"context"
	"fmt"
	"time"

	"github.com/bcenhabil/barangaylink-system/internal/business/forecast"
	"github.com/bcenhabil/barangaylink-system/internal/business/priority"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/idgen"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// 服务元信息
const (
	ServiceName          = "ai-prioritization"
	ServiceVersion       = "1.0.0"
	DefaultModelVersion  = "1.1.0"
	ModelType            = "Hybrid (Rule-based + ML)"
	ModelAccuracy        = "85% (estimated)"
	ClassifierLoaded     = "loaded"
	ClassifierFallback   = "fallback"
	HealthStatusHealthy  = "healthy"
	defaultBatchParallel = priority.DefaultBatchConcurrency
)

var modelFeatures = []string{
	"Keyword-based scoring",
	"Category weighting",
	"ML classification",
	"Contextual analysis",
}

// RecordSink 结果落库（可选）
type RecordSink interface {
	SaveBreakdown(ctx context.Context, req model.TriageRequest, breakdown *model.ScoreBreakdown) error
	SaveForecast(ctx context.Context, requestID string, req model.ForecastRequest, forecast *model.ResourceForecast) error
}

// Notifier 结果通知（可选）
type Notifier interface {
	NotifyTriage(ctx context.Context, breakdown *model.ScoreBreakdown) error
	NotifyForecast(ctx context.Context, requestID string, forecast *model.ResourceForecast) error
}

// TriageService 评分 / 预测服务
// 职责：参数校验 → 引擎计算 → 补充请求级信息 → 落库与通知（失败只记日志）
type TriageService struct {
	engine     *priority.Engine
	batch      *priority.BatchCoordinator
	forecaster *forecast.Forecaster
	validator  *Validator
	ids        *idgen.Generator
	log        logger.Logger

	modelVersion string
	lastTrained  string
	startedAt    time.Time
	now          func() time.Time

	sink     RecordSink
	notifier Notifier
}

// ServiceOption 服务选项
type ServiceOption func(*TriageService)

// WithRecordSink 设置落库实现
func WithRecordSink(sink RecordSink) ServiceOption {
	return func(s *TriageService) {
		s.sink = sink
	}
}

// WithNotifier 设置通知实现
func WithNotifier(notifier Notifier) ServiceOption {
	return func(s *TriageService) {
		s.notifier = notifier
	}
}

// WithModelVersion 设置模型版本
func WithModelVersion(version string) ServiceOption {
	return func(s *TriageService) {
		if version != "" {
			s.modelVersion = version
		}
	}
}

// WithLastTrained 设置模型训练时间
func WithLastTrained(trainedAt string) ServiceOption {
	return func(s *TriageService) {
		s.lastTrained = trainedAt
	}
}

// WithBatchConcurrency 设置批量评分并发度
func WithBatchConcurrency(n int) ServiceOption {
	return func(s *TriageService) {
		s.batch = priority.NewBatchCoordinator(s.engine, n)
	}
}

// WithIDGenerator 设置 request_id 生成器
func WithIDGenerator(ids *idgen.Generator) ServiceOption {
	return func(s *TriageService) {
		s.ids = ids
	}
}

// WithClock 设置时钟（测试用）
func WithClock(now func() time.Time) ServiceOption {
	return func(s *TriageService) {
		s.now = now
	}
}

// NewTriageService 创建服务实例
func NewTriageService(
	engine *priority.Engine,
	forecaster *forecast.Forecaster,
	log logger.Logger,
	opts ...ServiceOption,
) *TriageService {
	s := &TriageService{
		engine:       engine,
		batch:        priority.NewBatchCoordinator(engine, defaultBatchParallel),
		forecaster:   forecaster,
		validator:    NewValidator(),
		ids:          idgen.NewGenerator(0),
		log:          log,
		modelVersion: DefaultModelVersion,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s
}

// Prioritize 单条评分
func (s *TriageService) Prioritize(ctx context.Context, req model.TriageRequest) (*model.ScoreBreakdown, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	start := s.now()
	breakdown := s.engine.Prioritize(req)
	s.decorate(breakdown, start)

	s.log.Infof(ctx, "prioritized request %s: %s (score: %.3f, fallback: %v)",
		breakdown.RequestID, breakdown.Priority, breakdown.Score, breakdown.MLFallback)

	s.record(ctx, req, breakdown)
	return breakdown, nil
}

// PrioritizeBatch 批量评分，结果按分数降序（同分保持输入顺序）
func (s *TriageService) PrioritizeBatch(ctx context.Context, reqs []model.TriageRequest) ([]*model.ScoreBreakdown, error) {
	if err := s.validator.Struct(model.BatchTriageRequest{Requests: reqs}); err != nil {
		return nil, err
	}

	start := s.now()
	results, err := s.batch.Score(ctx, reqs)
	if err != nil {
		return nil, fmt.Errorf("batch prioritize failed: %w", err)
	}
	// 排序前按输入顺序落库与告警，保证请求与结果一一对应
	for i, r := range results {
		s.decorate(r, start)
		s.record(ctx, reqs[i], r)
	}
	priority.SortByScore(results)

	s.log.Infof(ctx, "batch prioritized %d requests", len(results))
	return results, nil
}

// ForecastResources 资源预测
func (s *TriageService) ForecastResources(ctx context.Context, req model.ForecastRequest) (*model.ResourceForecast, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	result := s.forecaster.Forecast(req.DisasterType, *req.AffectedPopulation, req.Location)
	result.RequestID = s.ids.NextRequestID()
	result.Timestamp = s.now().UTC().Format(time.RFC3339)

	s.log.Infof(ctx, "resource forecast complete for %s affecting %d people (total cost: %.2f %s)",
		result.DisasterType, result.AffectedPopulation, result.EstimatedCosts.Total, result.EstimatedCosts.Currency)

	requestID := result.RequestID
	if s.sink != nil {
		if err := s.sink.SaveForecast(ctx, requestID, req, result); err != nil {
			s.log.Warnf(ctx, "failed to save forecast %s: %v", requestID, err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyForecast(ctx, requestID, result); err != nil {
			s.log.Warnf(ctx, "failed to notify forecast %s: %v", requestID, err)
		}
	}
	return result, nil
}

// ModelInfo 模型信息
func (s *TriageService) ModelInfo() model.ModelInfo {
	status := ClassifierFallback
	if s.engine.Blender().Available() {
		status = ClassifierLoaded
	}

	features := make([]string, len(modelFeatures))
	copy(features, modelFeatures)

	return model.ModelInfo{
		Type:             ModelType,
		Version:          s.modelVersion,
		ClassifierStatus: status,
		LastTrained:      s.lastTrained,
		Accuracy:         ModelAccuracy,
		Features:         features,
		TaxonomyVersion:  s.engine.Taxonomy().Version,
	}
}

// Health 健康检查
func (s *TriageService) Health() model.HealthStatus {
	now := s.now()
	return model.HealthStatus{
		Status:      HealthStatusHealthy,
		Service:     ServiceName,
		Version:     ServiceVersion,
		ModelLoaded: s.engine.Blender().Available(),
		Uptime:      FormatUptime(now.Sub(s.startedAt)),
		Timestamp:   now.UTC().Format(time.RFC3339),
	}
}

// FormatUptime 格式化为 "N days, H:MM:SS"
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	total %= 86400
	return fmt.Sprintf("%d days, %d:%02d:%02d", days, total/3600, (total%3600)/60, total%60)
}

// decorate 补充请求级信息
func (s *TriageService) decorate(b *model.ScoreBreakdown, start time.Time) {
	now := s.now()
	b.RequestID = s.ids.NextRequestID()
	b.Timestamp = now.UTC().Format(time.RFC3339)
	b.ModelVersion = s.modelVersion
	b.ProcessingTimeMs = now.Sub(start).Milliseconds()
}

// record 落库与告警，失败不影响评分结果
func (s *TriageService) record(ctx context.Context, req model.TriageRequest, b *model.ScoreBreakdown) {
	if s.sink != nil {
		if err := s.sink.SaveBreakdown(ctx, req, b); err != nil {
			s.log.Warnf(ctx, "failed to save breakdown %s: %v", b.RequestID, err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyTriage(ctx, b); err != nil {
			s.log.Warnf(ctx, "failed to notify breakdown %s: %v", b.RequestID, err)
		}
	}
}
