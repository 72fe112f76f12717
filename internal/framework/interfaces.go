package framework

import (
	"context"
	"time"

	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// Acker 消息确认
type Acker interface {
	Ack(queue string, jobID string) error
}

// MessageSource 消息源接口（适配不同 MQ）
// Consume 阻塞至拉到消息或超时；超时返回 (nil, nil)
type MessageSource interface {
	Acker
	Consume(queue string, timeout time.Duration, ttr time.Duration) (*Message, error)
}

// Logger 框架使用的日志接口
type Logger = logger.Logger

// ProcessorFunc 处理阶段函数
type ProcessorFunc func(ctx context.Context) error

// BusinessHandler 业务处理器，返回序列化后的 Response
type BusinessHandler interface {
	Handle(ctx context.Context) ([]byte, error)
}

// Resulter 把业务结果整理成回调中的 result
type Resulter interface {
	Set(ctx context.Context, data interface{}) error
	Get(ctx context.Context) interface{}
}
