package framework

import (
	"context"
	"fmt"

	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

// 处理阶段名（按 PreProcess / Process / PostProcess 顺序）
var stageNames = []string{"pre_process", "process", "post_process"}

// PreProcessor 函数链处理器
type PreProcessor struct {
	processFuncs []ProcessorFunc
}

// NewPreProcessor 创建函数链处理器
func NewPreProcessor(processFuncs []ProcessorFunc) *PreProcessor {
	return &PreProcessor{
		processFuncs: processFuncs,
	}
}

// Run 执行函数链
// 任一函数返回 error 则立即停止；进入下一阶段前 ctx 已结束视为可重试
func (p *PreProcessor) Run(ctx context.Context) error {
	for i, processFunc := range p.processFuncs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s interrupted: %w",
				stageName(i), errorutil.RetriableWithDetails("processing interrupted", err.Error()))
		}
		if err := processFunc(ctx); err != nil {
			return fmt.Errorf("%s failed: %w", stageName(i), err)
		}
	}
	return nil
}

func stageName(i int) string {
	if i < len(stageNames) {
		return stageNames[i]
	}
	return fmt.Sprintf("stage[%d]", i)
}
