package triage

import (
	"context"

	"github.com/bcenhabil/barangaylink-system/internal/domains/common"
	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

// ForecastHandler 资源预测处理器
type ForecastHandler struct {
	framework.BaseHandler

	service common.TriageService
	payload model.ForecastRequest
	result  *model.ResourceForecast
}

// NewForecastHandler 创建资源预测处理器
func NewForecastHandler(
	ctx context.Context,
	baseHandler *framework.BaseHandler,
	service common.TriageService,
) (framework.BusinessHandler, error) {
	handler := &ForecastHandler{
		BaseHandler: *baseHandler,
		service:     service,
	}
	handler.SetResulter(&forecastResulter{})
	return handler, nil
}

// Handle 处理入口
func (h *ForecastHandler) Handle(ctx context.Context) ([]byte, error) {
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
func (h *ForecastHandler) PreProcess(ctx context.Context) error {
	if err := h.DecodePayload(&h.payload); err != nil {
		return errorutil.InvalidArgument(err.Error())
	}
	return nil
}

// Process 执行资源预测
func (h *ForecastHandler) Process(ctx context.Context) error {
	result, err := h.service.ForecastResources(ctx, h.payload)
	if err != nil {
		return err
	}
	h.result = result
	return nil
}

// PostProcess 设置输出
func (h *ForecastHandler) PostProcess(ctx context.Context) error {
	if err := h.GetResulter().Set(ctx, h.result); err != nil {
		return err
	}
	h.SetOutput(h.GetResulter().Get(ctx))
	return nil
}
