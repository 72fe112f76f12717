package lmstfy

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"

	"github.com/bcenhabil/barangaylink-system/internal/framework"
)

// DefaultPublishTries 回调消息默认投递次数
const DefaultPublishTries uint16 = 3

// ErrEmptyQueue 未指定队列名
var ErrEmptyQueue = errors.New("lmstfy queue name is empty")

// Option 客户端选项
type Option func(*Client)

// WithPublishTries 设置发布消息的最大投递次数
func WithPublishTries(tries uint16) Option {
	return func(c *Client) {
		if tries > 0 {
			c.tries = tries
		}
	}
}

// Client 对 lmstfy 客户端的薄封装
// 同时满足 framework.MessageSource 与 common.CallbackPublisher
type Client struct {
	cli       *client.LmstfyClient
	namespace string
	tries     uint16
}

// NewClient 创建客户端，host 与 namespace 必填
func NewClient(host string, port int, namespace string, token string, opts ...Option) (*Client, error) {
	if host == "" {
		return nil, fmt.Errorf("lmstfy host is required")
	}
	if namespace == "" {
		return nil, fmt.Errorf("lmstfy namespace is required")
	}

	c := &Client{
		cli:       client.NewLmstfyClient(host, port, namespace, token),
		namespace: namespace,
		tries:     DefaultPublishTries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Namespace 当前命名空间
func (c *Client) Namespace() string {
	return c.namespace
}

// Consume 阻塞拉取一条消息，timeout 内无消息时返回 nil, nil
func (c *Client) Consume(queue string, timeout time.Duration, ttr time.Duration) (*framework.Message, error) {
	if queue == "" {
		return nil, ErrEmptyQueue
	}

	job, err := c.cli.Consume(queue, seconds(ttr), seconds(timeout))
	if err != nil {
		return nil, fmt.Errorf("lmstfy consume %s/%s: %w", c.namespace, queue, err)
	}
	if job == nil {
		return nil, nil
	}
	return &framework.Message{ID: job.ID, Queue: job.Queue, Data: job.Data}, nil
}

// Ack 删除已处理的消息
func (c *Client) Ack(queue string, jobID string) error {
	if err := c.cli.Ack(queue, jobID); err != nil {
		return fmt.Errorf("lmstfy ack %s/%s job=%s: %w", c.namespace, queue, jobID, err)
	}
	return nil
}

// Publish 发布原始消息
// ttl=0 表示永不过期，delay=0 表示立即可见
func (c *Client) Publish(queue string, data []byte, ttl, delay uint32) error {
	_, err := c.publish(queue, data, ttl, delay)
	return err
}

// PublishJSON 序列化后发布，返回 lmstfy 分配的 job id
func (c *Client) PublishJSON(queue string, v interface{}, delay uint32) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal job failed: %w", err)
	}
	return c.publish(queue, data, 0, delay)
}

func (c *Client) publish(queue string, data []byte, ttl, delay uint32) (string, error) {
	if queue == "" {
		return "", ErrEmptyQueue
	}
	jobID, err := c.cli.Publish(queue, data, ttl, c.tries, delay)
	if err != nil {
		return "", fmt.Errorf("lmstfy publish %s/%s: %w", c.namespace, queue, err)
	}
	return jobID, nil
}

// seconds 向上取整到秒，lmstfy 接口只接受整秒
func seconds(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32((d + time.Second - 1) / time.Second)
}
