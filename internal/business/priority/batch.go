package priority

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// DefaultBatchConcurrency 批量评分默认并发数
const DefaultBatchConcurrency = 8

// BatchCoordinator 批量评分：并行计算，按分数降序稳定排序
type BatchCoordinator struct {
	engine      *Engine
	concurrency int
}

// NewBatchCoordinator 创建批量评分器
func NewBatchCoordinator(engine *Engine, concurrency int) *BatchCoordinator {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	return &BatchCoordinator{engine: engine, concurrency: concurrency}
}

// Prioritize 批量评分，按分数降序返回
// 同分保持输入顺序；ctx 取消时返回 ctx.Err()
func (c *BatchCoordinator) Prioritize(ctx context.Context, reqs []model.TriageRequest) ([]*model.ScoreBreakdown, error) {
	results, err := c.Score(ctx, reqs)
	if err != nil {
		return nil, err
	}
	SortByScore(results)
	return results, nil
}

// Score 并行评分，results[i] 对应 reqs[i]
func (c *BatchCoordinator) Score(ctx context.Context, reqs []model.TriageRequest) ([]*model.ScoreBreakdown, error) {
	results := make([]*model.ScoreBreakdown, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i := range reqs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.engine.Prioritize(reqs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SortByScore 按分数降序稳定排序
func SortByScore(results []*model.ScoreBreakdown) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
