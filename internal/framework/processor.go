package framework

import (
	"context"
	"sync"
	"time"

	"github.com/bcenhabil/barangaylink-system/pkg/lmstfyx"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// Processor 从 inputChan 取任务，调用业务处理函数并按结果 ACK
type Processor struct {
	cfg    *ProcessorConfig
	proc   lmstfyx.Proc
	acker  Acker
	logger Logger
	stats  *Stats

	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewProcessor 创建处理器，stats 为 nil 时内部新建
func NewProcessor(cfg *ProcessorConfig, proc lmstfyx.Proc, acker Acker, log Logger, stats *Stats) *Processor {
	cfg.applyDefaults()
	if stats == nil {
		stats = NewStats()
	}
	return &Processor{
		cfg:        cfg,
		proc:       proc,
		acker:      acker,
		logger:     log,
		stats:      stats,
		shutdownCh: make(chan struct{}),
	}
}

// Start 启动 Concurrency 个处理协程
func (p *Processor) Start(ctx context.Context, inputChan <-chan *Message) error {
	p.logger.Infof(ctx, "[Processor] workers=%d timeout=%v", p.cfg.Concurrency, p.cfg.Timeout)

	for i := 0; i < p.cfg.Concurrency; i++ {
		p.wg.Add(1)
		go p.loop(logger.WithWorkerID(ctx, i), inputChan)
	}
	return nil
}

// SignalShutdown 进入 Drain 模式：处理完 inputChan 中剩余任务后退出
func (p *Processor) SignalShutdown() {
	close(p.shutdownCh)
}

// Wait 等待所有处理协程退出
func (p *Processor) Wait() {
	p.wg.Wait()
	p.logger.Infof(context.Background(), "[Processor] stopped")
}

// Stats 运行计数
func (p *Processor) Stats() *Stats {
	return p.stats
}

func (p *Processor) loop(ctx context.Context, inputChan <-chan *Message) {
	defer p.wg.Done()

	for {
		select {
		case msg := <-inputChan:
			p.process(ctx, msg)

		case <-p.shutdownCh:
			drained := 0
			for {
				select {
				case msg := <-inputChan:
					p.process(ctx, msg)
					drained++
				default:
					p.logger.Infof(ctx, "[Processor] drained %d jobs", drained)
					return
				}
			}
		}
	}
}

// process 处理单个任务
// Success / Bury 都 ACK（Bury 时失败回调已发出）；Release 不 ACK，等 TTR 到期重投
func (p *Processor) process(ctx context.Context, msg *Message) {
	if msg == nil {
		return
	}

	start := time.Now()
	procCtx, cancel := context.WithTimeout(logger.WithMessageID(ctx, msg.ID), p.cfg.Timeout)
	defer cancel()

	resp := p.proc(procCtx, msg.Job())
	if resp == nil {
		resp = lmstfyx.Release(nil)
	}

	switch resp.Action {
	case lmstfyx.JobRespStatusSuccess:
		p.stats.Succeeded.Inc()
	case lmstfyx.JobRespStatusBury:
		p.stats.Buried.Inc()
	default:
		p.stats.Released.Inc()
		p.logger.Warnf(procCtx, "[Processor] job %s released for retry", msg.ID)
	}

	if resp.Action.Acked() {
		if err := p.acker.Ack(msg.Queue, msg.ID); err != nil {
			p.stats.AckErrors.Inc()
			p.logger.Errorf(procCtx, "[Processor] ack %s failed: %v", msg.ID, err)
		}
	}

	p.logger.Infof(procCtx, "[Processor] job %s done: action=%s duration=%v", msg.ID, resp.Action, time.Since(start))
}
