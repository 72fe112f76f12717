package worker

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/bcenhabil/barangaylink-system/internal/business"
	"github.com/bcenhabil/barangaylink-system/internal/business/forecast"
	"github.com/bcenhabil/barangaylink-system/internal/business/priority"
	"github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"
	"github.com/bcenhabil/barangaylink-system/internal/framework"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

// fakeQueue 内存队列：同时充当消息源与回调发布方
type fakeQueue struct {
	mu        sync.Mutex
	pending   map[string][]*framework.Message
	acked     []string
	published map[string][][]byte
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{
		pending:   make(map[string][]*framework.Message),
		published: make(map[string][][]byte),
	}
}

func (q *fakeQueue) push(queue string, msg *framework.Message) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending[queue] = append(q.pending[queue], msg)
}

func (q *fakeQueue) Consume(queue string, _ time.Duration, _ time.Duration) (*framework.Message, error) {
	q.mu.Lock()
	if len(q.pending[queue]) == 0 {
		q.mu.Unlock()
		time.Sleep(time.Millisecond)
		return nil, nil
	}
	defer q.mu.Unlock()
	msg := q.pending[queue][0]
	q.pending[queue] = q.pending[queue][1:]
	msg.Queue = queue
	return msg, nil
}

func (q *fakeQueue) Ack(_ string, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, jobID)
	return nil
}

func (q *fakeQueue) Publish(queue string, data []byte, _, _ uint32) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.published[queue] = append(q.published[queue], data)
	return nil
}

func (q *fakeQueue) snapshot(queue string) ([]string, [][]byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.acked...), append([][]byte(nil), q.published[queue]...)
}

func testConfig() *config.Config {
	sub := config.SubscriberConfig{Threads: 1, Rate: time.Millisecond, ErrorBackoff: time.Millisecond}
	proc := config.ProcessorConfig{Threads: 2, BufferSize: 4, Timeout: time.Second}
	return &config.Config{
		App: config.AppConfig{Name: "ai-prioritization"},
		Workers: []config.WorkerConfig{
			{Name: "triage", QueueName: "triage", CallbackQueue: "triage_callback", Subscriber: sub, Processor: proc},
			{Name: "forecast", QueueName: "forecast", CallbackQueue: "forecast_callback", Subscriber: sub, Processor: proc},
		},
	}
}

func testService() *business.TriageService {
	engine := priority.NewEngine(
		taxonomy.NewStaticStore(taxonomy.Default()),
		priority.NewClassifierBlender(nil, nil),
	)
	return business.NewTriageService(engine, forecast.NewForecaster(nil, nil), logger.NewNop())
}

func jobMessage(t *testing.T, id, actionType string, data interface{}) *framework.Message {
	t.Helper()
	raw, err := json.Marshal(model.TriageJob{
		Payload: model.TriageJobPayload{
			Data: model.TriageJobData{RequestID: "REQ-" + id, ActionType: actionType, ID: id, Data: data},
		},
	})
	require.NoError(t, err)
	return &framework.Message{ID: id, Data: raw}
}

func TestManager_ProcessesJobsAndShutsDown(t *testing.T) {
	defer goleak.VerifyNone(t)

	queue := newFakeQueue()
	queue.push("triage", jobMessage(t, "t1", model.ActionTriagePrioritize, model.TriageRequest{
		Title:    "Medical emergency",
		Category: "MEDICAL",
	}))
	population := 500
	queue.push("forecast", jobMessage(t, "f1", model.ActionResourceForecast, model.ForecastRequest{
		DisasterType:       "FIRE",
		AffectedPopulation: &population,
	}))

	mgr, err := NewManagerInstance(testConfig(), queue, testService(), logger.NewNop())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- mgr.Start() }()

	require.Eventually(t, func() bool {
		acked, _ := queue.snapshot("")
		return len(acked) == 2
	}, 2*time.Second, 5*time.Millisecond)

	mgr.Shutdown()
	require.NoError(t, <-done)
	mgr.Shutdown()

	stats := mgr.Stats()
	assert.Equal(t, int64(1), stats["triage"].Succeeded)
	assert.Equal(t, int64(1), stats["forecast"].Succeeded)

	_, triageCallbacks := queue.snapshot("triage_callback")
	require.Len(t, triageCallbacks, 1)
	var cb model.TriageCallback
	require.NoError(t, json.Unmarshal(triageCallbacks[0], &cb))
	assert.Equal(t, "REQ-t1", cb.RequestID)
	assert.Equal(t, model.CallbackStatusSuccess, cb.Status)

	_, forecastCallbacks := queue.snapshot("forecast_callback")
	assert.Len(t, forecastCallbacks, 1)
}

func TestNewManagerInstance_RequiresCallbackQueue(t *testing.T) {
	cfg := testConfig()
	cfg.Workers[1].CallbackQueue = ""

	_, err := NewManagerInstance(cfg, newFakeQueue(), testService(), logger.NewNop())
	assert.Error(t, err)

	_, err = NewManagerInstance(&config.Config{}, newFakeQueue(), testService(), logger.NewNop())
	assert.Error(t, err)
}
