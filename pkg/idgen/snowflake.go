package idgen

import (
	"strconv"
	"sync"
	"time"
)

// Generator 简化的雪花ID生成器
// ID格式: 秒级时间偏移 + 节点号(2位) + 序列号(3位)
type Generator struct {
	mu       sync.Mutex
	epoch    int64 // 起始时间戳 (2024-01-01 00:00:00 UTC)
	nodeID   int64 // 节点号 (0-99)
	sequence int64 // 序列号 (0-999)
	lastTime int64 // 上次生成ID的时间戳
	now      func() time.Time
}

const (
	maxNodeID   = 99
	maxSequence = 999

	// RequestPrefix 评分请求编号前缀
	RequestPrefix = "REQ-"
)

// NewGenerator 创建ID生成器，nodeID 超出范围时回退为 0
func NewGenerator(nodeID int64) *Generator {
	if nodeID < 0 || nodeID > maxNodeID {
		nodeID = 0
	}

	return &Generator{
		epoch:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(),
		nodeID: nodeID,
		now:    time.Now,
	}
}

// NextID 生成下一个ID（同一秒内严格递增）
func (g *Generator) NextID() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now().Unix()

	if now <= g.lastTime {
		// 同一秒内（或时钟回拨），沿用上次时间戳递增序列号
		now = g.lastTime
		g.sequence++
		if g.sequence > maxSequence {
			// 序列号用尽，借用下一秒
			now++
			g.sequence = 0
		}
	} else {
		g.sequence = 0
	}

	g.lastTime = now

	return (now-g.epoch)*100000 + g.nodeID*1000 + g.sequence
}

// NextRequestID 生成评分请求编号，如 REQ-7086400001000
func (g *Generator) NextRequestID() string {
	return RequestPrefix + strconv.FormatInt(g.NextID(), 10)
}
