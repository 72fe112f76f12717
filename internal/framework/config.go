package framework

import "time"

// 默认值（配置缺省时使用）
const (
	DefaultConsumeTimeout = 3 * time.Second
	DefaultTTR            = 30 * time.Second
	DefaultErrorBackoff   = time.Second
	DefaultProcessTimeout = 10 * time.Second
)

// SubscriberConfig Subscriber 配置
type SubscriberConfig struct {
	QueueName    string        // 队列名称
	Concurrency  int           // 并发拉取数
	Timeout      time.Duration // 拉取超时
	TTR          time.Duration // Time-To-Run，应大于 ProcessorConfig.Timeout
	Rate         time.Duration // 速率限制（拉取间隔）
	ErrorBackoff time.Duration // 错误退避时间
}

func (c *SubscriberConfig) applyDefaults() {
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultConsumeTimeout
	}
	if c.TTR <= 0 {
		c.TTR = DefaultTTR
	}
	if c.ErrorBackoff <= 0 {
		c.ErrorBackoff = DefaultErrorBackoff
	}
}

// ProcessorConfig Processor 配置
type ProcessorConfig struct {
	Concurrency int           // 并发处理数
	BufferSize  int           // inputChan 缓冲区大小
	Timeout     time.Duration // 单个消息处理超时（评分与回调发布共用）
}

func (c *ProcessorConfig) applyDefaults() {
	if c.Concurrency <= 0 {
		c.Concurrency = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultProcessTimeout
	}
}
