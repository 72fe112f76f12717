package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// PubSub Redis 发布/订阅客户端
type PubSub struct {
	client  *redis.Client
	channel string
}

// NewPubSub 创建 PubSub 实例
func NewPubSub(addr, password string, db int, channel string) (*PubSub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return connect(context.Background(), client, channel)
}

// connect 测试连接，失败时关闭 client
func connect(ctx context.Context, client *redis.Client, channel string) (*PubSub, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewPubSubWithClient(client, channel), nil
}

// NewPubSubWithClient 使用已有客户端创建
func NewPubSubWithClient(client *redis.Client, channel string) *PubSub {
	return &PubSub{
		client:  client,
		channel: channel,
	}
}

// 通知类型
const (
	NotificationTriageAlert      = "TRIAGE_ALERT"
	NotificationForecastComplete = "FORECAST_COMPLETE"
)

// Notification 推送给值班端的通知消息
type Notification struct {
	Type      string  `json:"type"`
	RequestID string  `json:"request_id"`
	Priority  string  `json:"priority,omitempty"`
	Score     float64 `json:"score,omitempty"`
	Reason    string  `json:"reason,omitempty"`

	DisasterType       string  `json:"disaster_type,omitempty"`
	AffectedPopulation int     `json:"affected_population,omitempty"`
	TotalCost          float64 `json:"total_cost,omitempty"`

	Timestamp int64 `json:"timestamp"`
}

// ShouldAlert 是否需要推送评分告警（仅 URGENT / HIGH）
func ShouldAlert(breakdown *model.ScoreBreakdown) bool {
	return breakdown.Priority == model.TierUrgent || breakdown.Priority == model.TierHigh
}

// NotifyTriage 推送高优先级求助告警，低优先级直接跳过
func (p *PubSub) NotifyTriage(ctx context.Context, breakdown *model.ScoreBreakdown) error {
	if !ShouldAlert(breakdown) {
		return nil
	}
	return p.publish(ctx, &Notification{
		Type:      NotificationTriageAlert,
		RequestID: breakdown.RequestID,
		Priority:  string(breakdown.Priority),
		Score:     breakdown.Score,
		Reason:    breakdown.Reason(),
		Timestamp: time.Now().Unix(),
	})
}

// NotifyForecast 推送资源预测完成通知
func (p *PubSub) NotifyForecast(ctx context.Context, requestID string, forecast *model.ResourceForecast) error {
	return p.publish(ctx, &Notification{
		Type:               NotificationForecastComplete,
		RequestID:          requestID,
		DisasterType:       forecast.DisasterType,
		AffectedPopulation: forecast.AffectedPopulation,
		TotalCost:          forecast.EstimatedCosts.Total,
		Timestamp:          time.Now().Unix(),
	})
}

func (p *PubSub) publish(ctx context.Context, notification *Notification) error {
	// 序列化通知消息
	msgJSON, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// 发布到 Redis 频道
	if err := p.client.Publish(ctx, p.channel, msgJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

// Subscribe 订阅通知频道（用于测试和值班端）
func (p *PubSub) Subscribe(ctx context.Context) *redis.PubSub {
	return p.client.Subscribe(ctx, p.channel)
}

// Close 关闭 Redis 连接
func (p *PubSub) Close() error {
	return p.client.Close()
}
