package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/bcenhabil/barangaylink-system/internal/domains"
	"github.com/bcenhabil/barangaylink-system/internal/domains/common"
	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// Manager 管理多个 Worker 的生命周期
type Manager interface {
	Start() error
	Shutdown()
	Stats() map[string]framework.StatsSnapshot
}

// QueueClient 队列客户端：拉取、确认、发布回调
type QueueClient interface {
	framework.MessageSource
	common.CallbackPublisher
}

// ManagerInstance Manager 实例
type ManagerInstance struct {
	ctx        context.Context
	cfg        *config.Config
	queue      QueueClient
	service    common.TriageService
	mu         sync.Mutex
	workers    []Worker
	closing    *atomic.Bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
	logger     logger.Logger
}

// NewManagerInstance 创建 Manager
func NewManagerInstance(
	cfg *config.Config,
	queue QueueClient,
	service common.TriageService,
	log logger.Logger,
) (Manager, error) {
	ctx := context.Background()

	if len(cfg.Workers) == 0 {
		return nil, fmt.Errorf("at least one worker is required")
	}
	for _, w := range cfg.Workers {
		if w.CallbackQueue == "" {
			return nil, fmt.Errorf("worker %s: callback_queue is required", w.Name)
		}
	}

	log.Infof(ctx, "[Manager] Initialized with %d worker configs", len(cfg.Workers))

	return &ManagerInstance{
		ctx:        ctx,
		cfg:        cfg,
		queue:      queue,
		service:    service,
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		workers:    make([]Worker, 0, len(cfg.Workers)),
		logger:     log,
	}, nil
}

// Start 加载并启动所有 Worker，阻塞至 Shutdown 完成
func (m *ManagerInstance) Start() error {
	m.logger.Infof(m.ctx, "[Manager] Starting...")

	m.mu.Lock()
	if m.closing.Load() {
		m.mu.Unlock()
		return nil
	}
	if err := m.loadWorkers(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to load workers: %w", err)
	}

	// 每个 Worker 在独立 goroutine 中运行
	for _, worker := range m.workers {
		w := worker
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			w.Start()
		}()
		m.logger.Infof(m.ctx, "[Manager] Worker started: %s", w.GetName())
	}
	m.mu.Unlock()

	<-m.shutdownCh
	return nil
}

// Shutdown 优雅退出，可重复调用
func (m *ManagerInstance) Shutdown() {
	if !m.closing.CAS(false, true) {
		return
	}
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	m.mu.Lock()
	workers := append([]Worker(nil), m.workers...)
	m.mu.Unlock()

	// Worker 之间互不依赖，逐个停止
	for _, worker := range workers {
		m.logger.Infof(m.ctx, "[Manager] Shutting down worker: %s", worker.GetName())
		worker.Shutdown()
	}
	m.wg.Wait()

	close(m.shutdownCh)
	m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
}

// loadWorkers 按配置创建 Worker，调用方持有 mu
func (m *ManagerInstance) loadWorkers() error {
	for _, workerCfg := range m.cfg.Workers {
		subCfg := &framework.SubscriberConfig{
			QueueName:    workerCfg.QueueName,
			Concurrency:  workerCfg.Subscriber.Threads,
			Rate:         workerCfg.Subscriber.Rate,
			Timeout:      workerCfg.Subscriber.Timeout,
			TTR:          workerCfg.Subscriber.TTR,
			ErrorBackoff: workerCfg.Subscriber.ErrorBackoff,
		}

		procCfg := &framework.ProcessorConfig{
			Concurrency: workerCfg.Processor.Threads,
			BufferSize:  workerCfg.Processor.BufferSize,
			Timeout:     workerCfg.Processor.Timeout,
		}

		// 获取 GetProcess 函数（每个 Worker 使用自己的回调队列）
		getProcess := domains.GetProcess(m.logger, m.service, m.queue, workerCfg.CallbackQueue)

		worker, err := NewWorkerInstance(
			m.ctx,
			workerCfg.Name,
			subCfg,
			procCfg,
			m.queue, // MessageSource
			getProcess,
			m.logger,
		)
		if err != nil {
			return fmt.Errorf("failed to create worker %s: %w", workerCfg.Name, err)
		}

		m.workers = append(m.workers, worker)
	}

	return nil
}

// Stats 各 Worker 当前计数（按名称）
func (m *ManagerInstance) Stats() map[string]framework.StatsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]framework.StatsSnapshot, len(m.workers))
	for _, w := range m.workers {
		out[w.GetName()] = w.Stats()
	}
	return out
}
