package response

import (
	"encoding/json"
	"time"

	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

// NewCallback 根据 Handler 响应构造回调消息
func NewCallback(meta *framework.JobMeta, resp *framework.Response, processedAt time.Time) *model.TriageCallback {
	callback := &model.TriageCallback{
		RequestID:   meta.RequestID,
		ID:          meta.ID,
		ActionType:  meta.ActionType,
		ProcessedAt: processedAt.Unix(),
	}

	if resp.Processed && resp.Error == nil {
		callback.Status = model.CallbackStatusSuccess
		if len(resp.Result) > 0 {
			callback.Result = resp.Result
		}
		return callback
	}

	callback.Status = model.CallbackStatusFailed
	if resp.Error != nil {
		callback.Error = resp.Error.Message
	}
	return callback
}

// NewFailedCallback 构造失败回调（Handler 未执行）
func NewFailedCallback(meta *framework.JobMeta, err error, processedAt time.Time) *model.TriageCallback {
	return &model.TriageCallback{
		RequestID:   meta.RequestID,
		ID:          meta.ID,
		ActionType:  meta.ActionType,
		Status:      model.CallbackStatusFailed,
		Error:       errorutil.Wrap(err).Message,
		ProcessedAt: processedAt.Unix(),
	}
}

// Marshal 序列化回调消息
func Marshal(callback *model.TriageCallback) ([]byte, error) {
	return json.Marshal(callback)
}
