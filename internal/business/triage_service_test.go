package business

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcenhabil/barangaylink-system/internal/business/forecast"
	"github.com/bcenhabil/barangaylink-system/internal/business/priority"
	"github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"
	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/config"
	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
	"github.com/bcenhabil/barangaylink-system/pkg/idgen"
	"github.com/bcenhabil/barangaylink-system/pkg/logger"
)

type fakeSink struct {
	mu        sync.Mutex
	breakdown []*model.ScoreBreakdown
	titles    []string
	forecasts []string
	err       error
}

func (f *fakeSink) SaveBreakdown(_ context.Context, req model.TriageRequest, b *model.ScoreBreakdown) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.breakdown = append(f.breakdown, b)
	f.titles = append(f.titles, req.Title)
	return f.err
}

func (f *fakeSink) SaveForecast(_ context.Context, requestID string, _ model.ForecastRequest, _ *model.ResourceForecast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forecasts = append(f.forecasts, requestID)
	return f.err
}

type fakeNotifier struct {
	triage   int
	forecast int
}

func (f *fakeNotifier) NotifyTriage(context.Context, *model.ScoreBreakdown) error {
	f.triage++
	return errors.New("redis down")
}

func (f *fakeNotifier) NotifyForecast(context.Context, string, *model.ResourceForecast) error {
	f.forecast++
	return nil
}

func newTestService(opts ...ServiceOption) *TriageService {
	engine := priority.NewEngine(
		taxonomy.NewStaticStore(taxonomy.Default()),
		priority.NewClassifierBlender(nil, nil),
	)
	return NewTriageService(engine, forecast.NewForecaster(nil, nil), logger.NewNop(), opts...)
}

func intPtr(v int) *int { return &v }

func TestPrioritize_AddsEnvelope(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	sink := &fakeSink{}
	notifier := &fakeNotifier{}
	svc := newTestService(
		WithClock(func() time.Time { return fixed }),
		WithIDGenerator(idgen.NewGenerator(3)),
		WithRecordSink(sink),
		WithNotifier(notifier),
	)

	got, err := svc.Prioritize(context.Background(), model.TriageRequest{Category: "UNKNOWN"})
	require.NoError(t, err)

	assert.Equal(t, 0.36, got.Score)
	assert.Equal(t, model.TierLow, got.Priority)
	assert.True(t, strings.HasPrefix(got.RequestID, idgen.RequestPrefix))
	assert.Equal(t, "2025-03-01T10:00:00Z", got.Timestamp)
	assert.Equal(t, DefaultModelVersion, got.ModelVersion)
	assert.Equal(t, int64(0), got.ProcessingTimeMs)

	// 通知失败不影响结果
	assert.Len(t, sink.breakdown, 1)
	assert.Equal(t, 1, notifier.triage)
}

func TestPrioritize_ValidationError(t *testing.T) {
	svc := newTestService()

	_, err := svc.Prioritize(context.Background(), model.TriageRequest{Title: strings.Repeat("x", 513)})
	require.Error(t, err)
	assert.True(t, errorutil.IsInvalidArgument(err))

	var e *errorutil.Error
	require.ErrorAs(t, err, &e)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "title", e.Fields[0].Path)
	assert.False(t, e.Retryable)
}

func TestPrioritizeBatch_SortedWithUniqueIDs(t *testing.T) {
	sink := &fakeSink{}
	notifier := &fakeNotifier{}
	svc := newTestService(WithBatchConcurrency(3), WithRecordSink(sink), WithNotifier(notifier))

	results, err := svc.PrioritizeBatch(context.Background(), []model.TriageRequest{
		{Title: "road", Category: "INFRASTRUCTURE"},
		{Title: "flood rescue", Category: "DISASTER"},
		{Category: "OTHER"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Contains(t, results[0].Reasons, "High-priority category: DISASTER")
	ids := map[string]struct{}{}
	for i, r := range results {
		ids[r.RequestID] = struct{}{}
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Score, r.Score)
		}
	}
	assert.Len(t, ids, 3)

	// 每条结果都落库并告警，且与原请求对应
	require.Len(t, sink.breakdown, 3)
	assert.Equal(t, []string{"road", "flood rescue", ""}, sink.titles)
	assert.Equal(t, results[0].RequestID, sink.breakdown[1].RequestID)
	assert.Equal(t, 3, notifier.triage)
}

func TestPrioritizeBatch_ValidatesItems(t *testing.T) {
	svc := newTestService()

	_, err := svc.PrioritizeBatch(context.Background(), []model.TriageRequest{
		{Title: "ok"},
		{Category: strings.Repeat("C", 65)},
	})
	require.Error(t, err)

	var e *errorutil.Error
	require.ErrorAs(t, err, &e)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "requests[1].category", e.Fields[0].Path)
}

func TestForecastResources(t *testing.T) {
	sink := &fakeSink{}
	notifier := &fakeNotifier{}
	svc := newTestService(WithRecordSink(sink), WithNotifier(notifier))

	got, err := svc.ForecastResources(context.Background(), model.ForecastRequest{
		DisasterType:       "FLOOD",
		AffectedPopulation: intPtr(1000),
		Location:           "Barangay 12",
	})
	require.NoError(t, err)
	assert.Equal(t, 6000.0, got.Predictions["water_liters"])
	assert.NotEmpty(t, got.Timestamp)
	require.Len(t, sink.forecasts, 1)
	assert.Equal(t, sink.forecasts[0], got.RequestID)
	assert.True(t, strings.HasPrefix(got.RequestID, idgen.RequestPrefix))
	assert.Equal(t, 1, notifier.forecast)
}

func TestForecastResources_InvalidPopulation(t *testing.T) {
	svc := newTestService()

	cases := map[string]*int{
		"missing":   nil,
		"negative":  intPtr(-5),
		"too large": intPtr(model.MaxAffectedPopulation + 1),
	}
	for name, population := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ForecastResources(context.Background(), model.ForecastRequest{
				DisasterType:       "FLOOD",
				AffectedPopulation: population,
			})
			require.Error(t, err)
			assert.True(t, errorutil.IsInvalidArgument(err))

			var e *errorutil.Error
			require.ErrorAs(t, err, &e)
			require.Len(t, e.Fields, 1)
			assert.Equal(t, "affected_population", e.Fields[0].Path)
		})
	}

	got, err := svc.ForecastResources(context.Background(), model.ForecastRequest{AffectedPopulation: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, got.AffectedPopulation)

	got, err = svc.ForecastResources(context.Background(), model.ForecastRequest{
		DisasterType:       "MEDICAL_EMERGENCY",
		AffectedPopulation: intPtr(model.MaxAffectedPopulation),
	})
	require.NoError(t, err)
	for resource, qty := range got.Predictions {
		assert.GreaterOrEqual(t, qty, 0.0, resource)
	}
	for _, resource := range got.EstimatedCosts.Resources() {
		assert.GreaterOrEqual(t, got.EstimatedCosts.Items[resource], 0.0, resource)
	}
}

func TestModelInfoAndHealth(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestService(
		WithClock(func() time.Time { return now }),
		WithModelVersion("2.0.0"),
	)
	now = now.Add(26*time.Hour + 3*time.Minute + 4*time.Second)

	info := svc.ModelInfo()
	assert.Equal(t, ModelType, info.Type)
	assert.Equal(t, "2.0.0", info.Version)
	assert.Equal(t, ClassifierFallback, info.ClassifierStatus)
	assert.Equal(t, taxonomy.DefaultVersion, info.TaxonomyVersion)
	assert.Len(t, info.Features, 4)

	health := svc.Health()
	assert.Equal(t, HealthStatusHealthy, health.Status)
	assert.Equal(t, ServiceName, health.Service)
	assert.Equal(t, ServiceVersion, health.Version)
	assert.False(t, health.ModelLoaded)
	assert.Equal(t, "1 days, 2:03:04", health.Uptime)
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0 days, 0:00:00", FormatUptime(0))
	assert.Equal(t, "0 days, 0:00:00", FormatUptime(-time.Second))
	assert.Equal(t, "2 days, 0:00:59", FormatUptime(48*time.Hour+59*time.Second))
}

func TestNewTriageServiceFromConfig(t *testing.T) {
	cfg := &config.Config{
		App:    config.AppConfig{ModelVersion: "1.1.0"},
		Engine: config.EngineConfig{ClassifierPath: filepath.Join("classifier", "testdata", "model.json"), BatchConcurrency: 2},
	}
	svc, store, err := NewTriageServiceFromConfig(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, store)

	info := svc.ModelInfo()
	assert.Equal(t, ClassifierLoaded, info.ClassifierStatus)
	assert.Equal(t, "2025-01-15T08:00:00Z", info.LastTrained)

	got, err := svc.Prioritize(context.Background(), model.TriageRequest{Title: "emergency", Category: "EMERGENCY"})
	require.NoError(t, err)
	assert.False(t, got.MLFallback)
	require.NotNil(t, got.MLScore)
}

func TestNewTriageServiceFromConfig_ShippedModel(t *testing.T) {
	cfg := &config.Config{
		Engine: config.EngineConfig{ClassifierPath: filepath.Join("..", "..", "models", "priority_model.json")},
	}
	svc, _, err := NewTriageServiceFromConfig(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ClassifierLoaded, svc.ModelInfo().ClassifierStatus)

	got, err := svc.Prioritize(context.Background(), model.TriageRequest{
		Title:    "emergency medical help needed heart attack",
		Category: "EMERGENCY",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TierUrgent, got.Priority)
	assert.False(t, got.MLFallback)
	require.NotNil(t, got.MLScore)
	assert.InDelta(t, 0.765, *got.MLScore, 0.002)
	assert.InDelta(t, 0.923, got.Score, 0.002)
}

func TestNewTriageServiceFromConfig_MissingClassifierFallsBack(t *testing.T) {
	cfg := &config.Config{Engine: config.EngineConfig{ClassifierPath: filepath.Join(t.TempDir(), "none.json")}}
	svc, _, err := NewTriageServiceFromConfig(context.Background(), cfg, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, ClassifierFallback, svc.ModelInfo().ClassifierStatus)
	assert.Equal(t, DefaultModelVersion, svc.ModelInfo().Version)

	cfg.Engine.TaxonomyPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, _, err = NewTriageServiceFromConfig(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}
