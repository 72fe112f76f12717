package framework

import (
	"context"
	"sync"
	"time"

	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// Subscriber 从消息源拉取任务并投递到 inputChan
// 拉取协程之间互不影响，单个协程出错只退避不退出
type Subscriber struct {
	cfg    *SubscriberConfig
	source MessageSource
	logger Logger
	stats  *Stats

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSubscriber 创建订阅者，stats 为 nil 时内部新建
func NewSubscriber(cfg *SubscriberConfig, source MessageSource, log Logger, stats *Stats) *Subscriber {
	cfg.applyDefaults()
	if stats == nil {
		stats = NewStats()
	}
	return &Subscriber{
		cfg:    cfg,
		source: source,
		logger: log,
		stats:  stats,
	}
}

// Start 启动 Concurrency 个拉取协程
func (s *Subscriber) Start(parentCtx context.Context, inputChan chan<- *Message) error {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancel = cancel

	s.logger.Infof(ctx, "[Subscriber] queue=%s workers=%d timeout=%v ttr=%v",
		s.cfg.QueueName, s.cfg.Concurrency, s.cfg.Timeout, s.cfg.TTR)

	for i := 0; i < s.cfg.Concurrency; i++ {
		s.wg.Add(1)
		go s.loop(logger.WithWorkerID(ctx, i), inputChan)
	}
	return nil
}

// Stop 停止拉取新消息
func (s *Subscriber) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Wait 等待所有拉取协程退出
func (s *Subscriber) Wait() {
	s.wg.Wait()
	s.logger.Infof(context.Background(), "[Subscriber] queue=%s stopped", s.cfg.QueueName)
}

// Stats 运行计数
func (s *Subscriber) Stats() *Stats {
	return s.stats
}

func (s *Subscriber) loop(ctx context.Context, inputChan chan<- *Message) {
	defer s.wg.Done()

	for {
		msg, err := s.source.Consume(s.cfg.QueueName, s.cfg.Timeout, s.cfg.TTR)
		switch {
		case err != nil:
			// 网络抖动不退出，退避后重试
			s.stats.ConsumeErrors.Inc()
			s.logger.Warnf(ctx, "[Subscriber] consume %s failed: %v", s.cfg.QueueName, err)
			if !s.sleep(ctx, s.cfg.ErrorBackoff) {
				return
			}
			continue

		case msg == nil:
			// 拉取超时
			if ctx.Err() != nil {
				return
			}
			continue
		}

		s.stats.Consumed.Inc()
		select {
		case inputChan <- msg:
			s.logger.Debugf(ctx, "[Subscriber] dispatched job %s", msg.ID)
		case <-ctx.Done():
			// 未 ACK，TTR 到期后由 lmstfy 重新投递
			s.stats.Dropped.Inc()
			s.logger.Warnf(ctx, "[Subscriber] shutdown, job %s left for redelivery", msg.ID)
			return
		}

		if !s.sleep(ctx, s.cfg.Rate) {
			return
		}
	}
}

// sleep 等待 d，ctx 结束时返回 false
func (s *Subscriber) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
