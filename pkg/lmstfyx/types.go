package lmstfyx

import (
	"context"

	"github.com/bitleak/lmstfy/client"
)

// Proc 单条任务的处理函数，由 domains.GetProcess 按回调队列构造
type Proc func(ctx context.Context, job *client.Job) *JobResp

// JobRespStatus 处理结果对应的队列动作
type JobRespStatus int

const (
	// JobRespStatusSuccess 处理完成，ACK
	JobRespStatusSuccess JobRespStatus = iota
	// JobRespStatusRelease 可重试，不 ACK，等待 TTR 到期后重新投递
	JobRespStatusRelease
	// JobRespStatusBury 不可重试，失败回调已发出，ACK 丢弃
	JobRespStatusBury
)

func (s JobRespStatus) String() string {
	switch s {
	case JobRespStatusSuccess:
		return "success"
	case JobRespStatusRelease:
		return "release"
	case JobRespStatusBury:
		return "bury"
	default:
		return "unknown"
	}
}

// Acked 该动作是否需要 ACK
func (s JobRespStatus) Acked() bool {
	return s == JobRespStatusSuccess || s == JobRespStatusBury
}

// JobResp 处理结果，Data 为回调内容（可为空）
type JobResp struct {
	Action JobRespStatus
	Data   []byte
}

// Success 处理完成
func Success(data []byte) *JobResp {
	return &JobResp{Action: JobRespStatusSuccess, Data: data}
}

// Release 留待重投
func Release(data []byte) *JobResp {
	return &JobResp{Action: JobRespStatusRelease, Data: data}
}

// Bury 放弃该任务
func Bury(data []byte) *JobResp {
	return &JobResp{Action: JobRespStatusBury, Data: data}
}
