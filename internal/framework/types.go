package framework

import "github.com/bitleak/lmstfy/client"

// Message 框架内部流转的消息
type Message struct {
	ID    string // lmstfy job id
	Queue string
	Data  []byte // 原始 TriageJob JSON
}

// Job 转为业务处理函数使用的 lmstfy Job
func (m *Message) Job() *client.Job {
	return &client.Job{
		ID:    m.ID,
		Queue: m.Queue,
		Data:  m.Data,
	}
}
