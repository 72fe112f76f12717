package app

import (
	"context"
	"fmt"

	"github.com/bcenhabil/barangaylink-system/internal/business"
	"github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/infra/mysql"
	"github.com/bcenhabil/barangaylink-system/pkg/infra/redis"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// App 进程内共享的评分组件
type App struct {
	Service  *business.TriageService
	Taxonomy *taxonomy.Store
}

// InitializeApp 按配置组装服务
// mysql.dsn 非空时启用审计落库，redis.addr 非空时启用告警通知
func InitializeApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, func(), error) {
	var (
		opts     []business.ServiceOption
		cleanups []func()
	)
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	if cfg.MySQL.DSN != "" {
		dao, err := mysql.NewTriageRecordDAO(cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init mysql: %w", err)
		}
		cleanups = append(cleanups, func() { _ = dao.Close() })
		if err := dao.AutoMigrate(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to migrate triage_records: %w", err)
		}
		opts = append(opts, business.WithRecordSink(dao))
		log.Infof(ctx, "MySQL audit sink enabled")
	}

	if cfg.Redis.Addr != "" {
		pubsub, err := redis.NewPubSub(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Channel)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to init redis: %w", err)
		}
		cleanups = append(cleanups, func() { _ = pubsub.Close() })
		opts = append(opts, business.WithNotifier(pubsub))
		log.Infof(ctx, "Redis notifier enabled, channel: %s", cfg.Redis.Channel)
	}

	service, store, err := business.NewTriageServiceFromConfig(ctx, cfg, log, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return &App{Service: service, Taxonomy: store}, cleanup, nil
}

// ReloadTaxonomy 重新加载关键词表，失败时保留当前版本
func (a *App) ReloadTaxonomy(ctx context.Context, log logger.Logger) {
	next, err := a.Taxonomy.Reload()
	if err != nil {
		log.Errorf(ctx, "taxonomy reload failed, keeping current version: %v", err)
		return
	}
	log.Infof(ctx, "taxonomy reloaded: version=%s tags=%d", next.Version, len(next.Entries))
}
