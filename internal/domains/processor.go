package domains

import (
	"context"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"github.com/bcenhabil/barangaylink-system/internal/domains/common"
	"github.com/bcenhabil/barangaylink-system/internal/domains/common/response"
	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
	"github.com/bcenhabil/barangaylink-system/pkg/lmstfyx"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// GetProcess 返回核心处理函数（注入到 Processor）
// 处理结果以 TriageCallback 的形式发布到 callbackQueue
func GetProcess(
	log logger.Logger,
	service common.TriageService,
	publisher common.CallbackPublisher,
	callbackQueue string,
) lmstfyx.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) *lmstfyx.JobResp {
		startTime := time.Now()

		// 1. 解析 Job（结构非法无法回调，直接丢弃）
		base := &framework.BaseHandler{}
		if err := base.ParseJob(ctx, lmstfyJob.Data); err != nil {
			log.Errorf(ctx, "[GetProcess] parseJob failed: %v", err)
			return lmstfyx.Bury(nil)
		}

		meta := base.GetMeta()
		// RequestID 为空则生成一个
		if meta.RequestID == "" {
			base.SetRequestID(uuid.New().String())
		}

		// 2. 注入 TraceID 到 Context
		ctx = logger.WithTraceID(ctx, meta.RequestID)
		ctx = logger.WithActionType(ctx, meta.ActionType)

		log.Infof(ctx, "[GetProcess] Processing job: action_type=%s, request_id=%s, id=%s",
			meta.ActionType, meta.RequestID, meta.ID)

		reporter := &callbackReporter{
			log:           log,
			publisher:     publisher,
			callbackQueue: callbackQueue,
		}

		// 3. 从 HandlerMap 获取 Handler
		handlerFunc, ok := HandlerMap[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] handler not found for action_type: %s", meta.ActionType)
			err := errorutil.NonRetriable(fmt.Sprintf("unsupported action_type: %s", meta.ActionType))
			return reporter.reportFailure(ctx, meta, err)
		}

		// 4. 调用 Handler（捕获 panic）
		resp := runHandler(ctx, log, handlerFunc, base, service, reporter)

		// 5. 记录处理时长
		log.Infof(ctx, "[GetProcess] Processing complete: action=%s, duration=%v", resp.Action, time.Since(startTime))
		return resp
	}
}

func runHandler(
	ctx context.Context,
	log logger.Logger,
	handlerFunc HandlerFactory,
	base *framework.BaseHandler,
	service common.TriageService,
	reporter *callbackReporter,
) (resp *lmstfyx.JobResp) {
	meta := base.GetMeta()

	defer func() {
		if r := recover(); r != nil {
			log.Errorf(ctx, "[GetProcess] handler panic: %v", r)
			resp = reporter.reportFailure(ctx, meta, errorutil.NonRetriable(fmt.Sprintf("handler panic: %v", r)))
		}
	}()

	handler, err := handlerFunc(ctx, base, service)
	if err != nil {
		log.Errorf(ctx, "[GetProcess] handler creation failed: %v", err)
		return reporter.reportFailure(ctx, meta, err)
	}

	data, err := handler.Handle(ctx)
	if err != nil {
		log.Errorf(ctx, "[GetProcess] handler failed: %v", err)
		return reporter.reportFailure(ctx, meta, err)
	}

	return reporter.doJobReport(ctx, meta, data)
}

// callbackReporter 将处理结果发布为回调并决定 ACK/Bury/Release
type callbackReporter struct {
	log           logger.Logger
	publisher     common.CallbackPublisher
	callbackQueue string
}

// doJobReport 生成 JobResp（根据 Response 判断 ACK/Bury/Release）
func (r *callbackReporter) doJobReport(ctx context.Context, meta *framework.JobMeta, data []byte) *lmstfyx.JobResp {
	handlerResp, err := framework.ParseResponse(data)
	if err != nil {
		r.log.Errorf(ctx, "[doJobReport] parse response failed: %v", err)
		return r.reportFailure(ctx, meta, err)
	}

	// 可重试错误：不回调，等待重新投递
	if handlerResp.Error != nil && handlerResp.Error.Retryable {
		r.log.Warnf(ctx, "[doJobReport] retryable error: %s", handlerResp.Error.Message)
		return lmstfyx.Release(data)
	}

	callback := response.NewCallback(meta, handlerResp, time.Now())
	if err := r.publish(ctx, callback); err != nil {
		return lmstfyx.Release(data)
	}

	if callback.Status == model.CallbackStatusSuccess {
		return lmstfyx.Success(data)
	}
	return lmstfyx.Bury(data)
}

// reportFailure 发送失败回调
func (r *callbackReporter) reportFailure(ctx context.Context, meta *framework.JobMeta, err error) *lmstfyx.JobResp {
	if errorutil.IsRetryable(err) {
		return lmstfyx.Release(nil)
	}

	callback := response.NewFailedCallback(meta, err, time.Now())
	if pubErr := r.publish(ctx, callback); pubErr != nil {
		return lmstfyx.Release(nil)
	}
	return lmstfyx.Bury(nil)
}

func (r *callbackReporter) publish(ctx context.Context, callback *model.TriageCallback) error {
	callbackJSON, err := response.Marshal(callback)
	if err != nil {
		r.log.Errorf(ctx, "[publish] marshal callback failed: %v", err)
		return err
	}

	if err := r.publisher.Publish(r.callbackQueue, callbackJSON, 0, 0); err != nil {
		r.log.Errorf(ctx, "[publish] publish callback failed: %v", err)
		return err
	}

	r.log.Infof(ctx, "[publish] callback sent: status=%s, queue=%s", callback.Status, r.callbackQueue)
	return nil
}
