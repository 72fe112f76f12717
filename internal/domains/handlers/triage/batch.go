package triage

import (
	"context"
	"errors"

	"github.com/bcenhabil/barangaylink-system/internal/domains/common"
	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

// BatchHandler 批量评分处理器
type BatchHandler struct {
	framework.BaseHandler

	service common.TriageService
	payload model.BatchTriageRequest
	results []*model.ScoreBreakdown
}

// NewBatchHandler 创建批量评分处理器
func NewBatchHandler(
	ctx context.Context,
	baseHandler *framework.BaseHandler,
	service common.TriageService,
) (framework.BusinessHandler, error) {
	handler := &BatchHandler{
		BaseHandler: *baseHandler,
		service:     service,
	}
	handler.SetResulter(&batchResulter{})
	return handler, nil
}

// Handle 处理入口
func (h *BatchHandler) Handle(ctx context.Context) ([]byte, error) {
	preProcessor := framework.NewPreProcessor([]framework.ProcessorFunc{
		h.PreProcess,
		h.Process,
		h.PostProcess,
	})
	if err := preProcessor.Run(ctx); err != nil {
		return h.WrapErrorResponse(ctx, err)
	}
	return h.WrapResponse(ctx, h.GetOutput())
}

// PreProcess 解析业务数据
func (h *BatchHandler) PreProcess(ctx context.Context) error {
	if err := h.DecodePayload(&h.payload); err != nil {
		return errorutil.InvalidArgument(err.Error())
	}
	return nil
}

// Process 执行批量评分
// 超时或取消属于临时故障，标记为可重试
func (h *BatchHandler) Process(ctx context.Context) error {
	results, err := h.service.PrioritizeBatch(ctx, h.payload.Requests)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return errorutil.RetriableWithDetails("batch prioritize interrupted", err.Error())
		}
		return err
	}
	h.results = results
	return nil
}

// PostProcess 设置输出
func (h *BatchHandler) PostProcess(ctx context.Context) error {
	if err := h.GetResulter().Set(ctx, h.results); err != nil {
		return err
	}
	h.SetOutput(h.GetResulter().Get(ctx))
	return nil
}
