package framework

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

// ErrEmptyPayload 任务缺少业务数据
var ErrEmptyPayload = errors.New("job payload data is empty")

// BaseHandler 各业务 Handler 共用的解析与响应封装
// 不包含业务流程控制
type BaseHandler struct {
	meta     *JobMeta
	payload  json.RawMessage // payload.data.data 原始 JSON，按需解码
	output   interface{}
	resulter Resulter
}

// jobEnvelope lmstfy 消息外层结构 {"payload":{"data":{...}}}
type jobEnvelope struct {
	Payload *struct {
		Data *struct {
			JobMeta
			Data json.RawMessage `json:"data"`
		} `json:"data"`
	} `json:"payload"`
}

// JobMeta 任务元信息，随回调原样带回
type JobMeta struct {
	RequestID  string `json:"request_id"`
	ActionType string `json:"action_type"`
	OrgID      string `json:"org_id,omitempty"`
	ID         string `json:"id,omitempty"`
}

// Response Handler 输出
// Processed=false 时 Error 非空，由 Error.Retryable 决定是否重投
type Response struct {
	Error     *errorutil.Error `json:"error"`
	Result    json.RawMessage  `json:"result"`
	Processed bool             `json:"processed"`
	Meta      *JobMeta         `json:"meta,omitempty"`
}

// ParseResponse 反序列化 Handler 返回的 Response
func ParseResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	return &resp, nil
}

// ParseJob 解析任务外层结构，业务数据保留为原始 JSON
func (b *BaseHandler) ParseJob(ctx context.Context, rawData []byte) error {
	var job jobEnvelope
	if err := json.Unmarshal(rawData, &job); err != nil {
		return fmt.Errorf("unmarshal job failed: %w", err)
	}
	if job.Payload == nil || job.Payload.Data == nil {
		return fmt.Errorf("invalid job structure: payload.data is missing")
	}

	meta := job.Payload.Data.JobMeta
	b.meta = &meta
	b.payload = job.Payload.Data.Data
	return nil
}

// DecodePayload 将业务数据解码到 dst
func (b *BaseHandler) DecodePayload(dst interface{}) error {
	if len(b.payload) == 0 || string(b.payload) == "null" {
		return ErrEmptyPayload
	}
	if err := json.Unmarshal(b.payload, dst); err != nil {
		return fmt.Errorf("unmarshal payload failed: %w", err)
	}
	return nil
}

// WrapResponse 包装成功响应
func (b *BaseHandler) WrapResponse(ctx context.Context, output interface{}) ([]byte, error) {
	result, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("marshal output failed: %w", err)
	}

	return json.Marshal(&Response{
		Result:    result,
		Processed: true,
		Meta:      b.meta,
	})
}

// WrapErrorResponse 包装错误响应
func (b *BaseHandler) WrapErrorResponse(ctx context.Context, err error) ([]byte, error) {
	return json.Marshal(&Response{
		Error:     errorutil.Wrap(err),
		Processed: false,
		Meta:      b.meta,
	})
}

// GetMeta 获取 meta
func (b *BaseHandler) GetMeta() *JobMeta {
	return b.meta
}

// SetRequestID 补齐缺失的 request_id
func (b *BaseHandler) SetRequestID(requestID string) {
	if b.meta != nil {
		b.meta.RequestID = requestID
	}
}

// SetOutput 设置输出
func (b *BaseHandler) SetOutput(output interface{}) {
	b.output = output
}

// GetOutput 获取输出
func (b *BaseHandler) GetOutput() interface{} {
	return b.output
}

// SetResulter 设置结果处理器
func (b *BaseHandler) SetResulter(resulter Resulter) {
	b.resulter = resulter
}

// GetResulter 获取结果处理器
func (b *BaseHandler) GetResulter() Resulter {
	return b.resulter
}
