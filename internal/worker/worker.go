package worker

import (
	"context"
	"fmt"

	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/pkg/lmstfyx"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// Worker 单个队列的拉取 + 处理单元
type Worker interface {
	Start()
	Shutdown()
	GetName() string
	Stats() framework.StatsSnapshot
}

// WorkerInstance Worker 实例
type WorkerInstance struct {
	ctx        context.Context
	name       string
	subscriber *framework.Subscriber
	processor  *framework.Processor
	stats      *framework.Stats
	inputChan  chan *framework.Message
	shutdownCh chan struct{}
	logger     logger.Logger
}

// NewWorkerInstance 创建 Worker 实例
// Subscriber 与 Processor 共用同一组计数器
func NewWorkerInstance(
	ctx context.Context,
	name string,
	subscriberCfg *framework.SubscriberConfig,
	processorCfg *framework.ProcessorConfig,
	source framework.MessageSource,
	proc lmstfyx.Proc,
	log logger.Logger,
) (Worker, error) {
	if subscriberCfg.QueueName == "" {
		return nil, fmt.Errorf("worker %s: queue name is required", name)
	}

	stats := framework.NewStats()
	return &WorkerInstance{
		ctx:        ctx,
		name:       name,
		subscriber: framework.NewSubscriber(subscriberCfg, source, log, stats),
		processor:  framework.NewProcessor(processorCfg, proc, source, log, stats),
		stats:      stats,
		inputChan:  make(chan *framework.Message, processorCfg.BufferSize),
		shutdownCh: make(chan struct{}),
		logger:     log,
	}, nil
}

// Start 先启动 Processor 再启动 Subscriber，阻塞至 Shutdown
func (w *WorkerInstance) Start() {
	w.logger.Infof(w.ctx, "[Worker] %s started", w.name)

	if err := w.processor.Start(w.ctx, w.inputChan); err != nil {
		w.logger.Errorf(w.ctx, "[Worker] %s processor start failed: %v", w.name, err)
	}
	if err := w.subscriber.Start(w.ctx, w.inputChan); err != nil {
		w.logger.Errorf(w.ctx, "[Worker] %s subscriber start failed: %v", w.name, err)
	}

	<-w.shutdownCh
}

// Shutdown 优雅退出：停止拉取 → 等待拉取协程 → Drain → 等待处理协程
func (w *WorkerInstance) Shutdown() {
	w.subscriber.Stop()
	w.subscriber.Wait()

	w.processor.SignalShutdown()
	w.processor.Wait()

	close(w.shutdownCh)

	s := w.stats.Snapshot()
	w.logger.Infof(w.ctx, "[Worker] %s stopped: consumed=%d succeeded=%d released=%d buried=%d dropped=%d consume_errors=%d ack_errors=%d",
		w.name, s.Consumed, s.Succeeded, s.Released, s.Buried, s.Dropped, s.ConsumeErrors, s.AckErrors)
}

// GetName 获取 Worker 名称
func (w *WorkerInstance) GetName() string {
	return w.name
}

// Stats 当前计数
func (w *WorkerInstance) Stats() framework.StatsSnapshot {
	return w.stats.Snapshot()
}
