package framework

import "go.uber.org/atomic"

// Stats Worker 运行计数，所有字段并发安全
type Stats struct {
	Consumed      *atomic.Int64
	ConsumeErrors *atomic.Int64
	Dropped       *atomic.Int64
	Succeeded     *atomic.Int64
	Released      *atomic.Int64
	Buried        *atomic.Int64
	AckErrors     *atomic.Int64
}

// NewStats 创建计数器
func NewStats() *Stats {
	return &Stats{
		Consumed:      atomic.NewInt64(0),
		ConsumeErrors: atomic.NewInt64(0),
		Dropped:       atomic.NewInt64(0),
		Succeeded:     atomic.NewInt64(0),
		Released:      atomic.NewInt64(0),
		Buried:        atomic.NewInt64(0),
		AckErrors:     atomic.NewInt64(0),
	}
}

// StatsSnapshot 某一时刻的计数
type StatsSnapshot struct {
	Consumed      int64
	ConsumeErrors int64
	Dropped       int64
	Succeeded     int64
	Released      int64
	Buried        int64
	AckErrors     int64
}

// Snapshot 读取当前计数
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Consumed:      s.Consumed.Load(),
		ConsumeErrors: s.ConsumeErrors.Load(),
		Dropped:       s.Dropped.Load(),
		Succeeded:     s.Succeeded.Load(),
		Released:      s.Released.Load(),
		Buried:        s.Buried.Load(),
		AckErrors:     s.AckErrors.Load(),
	}
}
