package business

import (
	"context"
	"fmt"

	"github.com/bcenhabil/barangaylink-system/internal/business/classifier"
	"github.com/bcenhabil/barangaylink-system/internal/business/forecast"
	"github.com/bcenhabil/barangaylink-system/internal/business/priority"
	"github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// NewTriageServiceFromConfig 按配置组装服务
// 词表加载失败直接返回错误；分类器加载失败进入 fallback，进程周期内不再重试
func NewTriageServiceFromConfig(
	ctx context.Context,
	cfg *config.Config,
	log logger.Logger,
	opts ...ServiceOption,
) (*TriageService, *taxonomy.Store, error) {
	store, err := taxonomy.NewStore(cfg.Engine.TaxonomyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	log.Infof(ctx, "taxonomy loaded: version=%s tags=%d", store.Load().Version, len(store.Load().Entries))

	var (
		predictor   classifier.Predictor
		lastTrained string
	)
	if cfg.Engine.ClassifierPath != "" {
		nb, err := classifier.Load(cfg.Engine.ClassifierPath)
		if err != nil {
			log.Warnf(ctx, "classifier unavailable, using fallback score: %v", err)
		} else {
			predictor = nb
			lastTrained = nb.TrainedAt()
			log.Infof(ctx, "classifier loaded: %s (classes=%v)", cfg.Engine.ClassifierPath, nb.Classes())
		}
	}

	engine := priority.NewEngine(store, priority.NewClassifierBlender(predictor, nil))

	base := []ServiceOption{
		WithModelVersion(cfg.App.ModelVersion),
		WithLastTrained(lastTrained),
		WithBatchConcurrency(cfg.Engine.BatchConcurrency),
	}
	svc := NewTriageService(engine, forecast.NewForecaster(nil, nil), log, append(base, opts...)...)
	return svc, store, nil
}
