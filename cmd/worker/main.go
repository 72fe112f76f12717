package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bcenhabil/barangaylink-system/internal/app"
	"github.com/bcenhabil/barangaylink-system/internal/worker"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/lmstfy"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

var (
	configPath    = flag.String("config", "./config/worker.yaml", "配置文件路径")
	statsInterval = flag.Duration("stats-interval", time.Minute, "计数输出间隔，0 关闭")
)

func main() {
	flag.Parse()

	if err := run(*configPath, *statsInterval); err != nil {
		log.Fatalf("worker exited with error: %v", err)
	}
}

func run(path string, interval time.Duration) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer zapLogger.Sync()

	ctx := context.Background()
	zapLogger.Infof(ctx, "[Worker] %s starting, env=%s workers=%d", cfg.App.Name, cfg.App.Env, len(cfg.Workers))

	// 评分服务，按配置启用落库与通知
	application, cleanup, err := app.InitializeApp(ctx, cfg, zapLogger)
	if err != nil {
		return err
	}
	defer cleanup()

	queue, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token,
		lmstfy.WithPublishTries(cfg.Lmstfy.PublishTries))
	if err != nil {
		return err
	}

	mgr, err := worker.NewManagerInstance(cfg, queue, application.Service, zapLogger)
	if err != nil {
		return err
	}

	startErr := make(chan error, 1)
	go func() {
		startErr <- mgr.Start()
	}()

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				application.ReloadTaxonomy(ctx, zapLogger)
				continue
			}
			zapLogger.Infof(ctx, "[Worker] received %v, shutting down", sig)
			mgr.Shutdown()
			logStats(ctx, zapLogger, mgr)
			return nil
		case err := <-startErr:
			if err != nil {
				mgr.Shutdown()
				return err
			}
			return nil
		case <-tick:
			logStats(ctx, zapLogger, mgr)
		}
	}
}

func logStats(ctx context.Context, log logger.Logger, mgr worker.Manager) {
	for name, s := range mgr.Stats() {
		log.Infof(ctx, "[Worker] %s consumed=%d succeeded=%d released=%d buried=%d dropped=%d consume_errors=%d ack_errors=%d",
			name, s.Consumed, s.Succeeded, s.Released, s.Buried, s.Dropped, s.ConsumeErrors, s.AckErrors)
	}
}
