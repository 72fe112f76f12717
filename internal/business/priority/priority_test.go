package priority

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"
	"github.com/bcenhabil/barangaylink-system/internal/model"
)

type stubPredictor struct {
	proba map[string]float64
	err   error
}

func (s stubPredictor) PredictProba(string) (map[string]float64, error) {
	return s.proba, s.err
}

func newTestEngine(p *stubPredictor) *Engine {
	var blender *ClassifierBlender
	if p == nil {
		blender = NewClassifierBlender(nil, nil)
	} else {
		blender = NewClassifierBlender(*p, nil)
	}
	return NewEngine(taxonomy.NewStaticStore(taxonomy.Default()), blender)
}

func TestPrioritize_HeartAttackIsUrgent(t *testing.T) {
	engine := newTestEngine(&stubPredictor{proba: map[string]float64{"URGENT": 1.0}})

	got := engine.Prioritize(model.TriageRequest{
		Title:       "emergency medical help needed",
		Description: "heart attack",
		Category:    "EMERGENCY",
	})

	assert.Equal(t, model.TierUrgent, got.Priority)
	assert.Equal(t, 0.99, got.RuleScore)
	require.NotNil(t, got.MLScore)
	assert.Equal(t, 0.9, *got.MLScore)
	assert.Equal(t, 0.963, got.Score)
	assert.False(t, got.MLFallback)
	assert.Equal(t, []string{"emergency", "heart attack"}, got.KeywordsFound)
	assert.Equal(t, []string{
		"Extremely urgent situation detected",
		"Keywords detected: emergency, heart attack",
		"High-priority category: EMERGENCY",
	}, got.Reasons)
	assert.Nil(t, got.SuggestedCategory)
}

func TestPrioritize_HeartAttackWithoutClassifier(t *testing.T) {
	engine := newTestEngine(nil)

	got := engine.Prioritize(model.TriageRequest{
		Title:    "emergency medical help needed heart attack",
		Category: "EMERGENCY",
	})

	assert.Equal(t, 0.843, got.Score)
	assert.Equal(t, model.TierHigh, got.Priority)
	assert.Nil(t, got.MLScore)
	assert.True(t, got.MLFallback)
}

func TestPrioritize_EmptyTextUnknownCategory(t *testing.T) {
	engine := newTestEngine(nil)

	got := engine.Prioritize(model.TriageRequest{Category: "UNKNOWN"})

	assert.Equal(t, 0.3, got.RuleScore)
	assert.Equal(t, 0.36, got.Score)
	assert.Equal(t, model.TierLow, got.Priority)
	assert.Nil(t, got.MLScore)
	assert.Empty(t, got.KeywordsFound)
	assert.Nil(t, got.SuggestedCategory)
	assert.Equal(t, []string{"Standard priority situation"}, got.Reasons)
}

func TestPrioritize_ClassifierErrorFallsBack(t *testing.T) {
	engine := newTestEngine(&stubPredictor{err: errors.New("boom")})

	got := engine.Prioritize(model.TriageRequest{Title: "road repair", Category: "INFRASTRUCTURE"})
	assert.True(t, got.MLFallback)
	assert.Nil(t, got.MLScore)

	predictions, fallbacks := engine.Blender().Stats()
	assert.Equal(t, int64(1), predictions)
	assert.Equal(t, int64(1), fallbacks)
}

func TestPrioritize_VulnerableAndSuggestion(t *testing.T) {
	engine := newTestEngine(nil)

	got := engine.Prioritize(model.TriageRequest{
		Title:       "Sick child",
		Description: "fever since yesterday, need doctor",
		Category:    "other",
	})

	assert.Contains(t, got.Reasons, "Involves vulnerable individual(s)")
	require.NotNil(t, got.SuggestedCategory)
	assert.Equal(t, "MEDICAL", *got.SuggestedCategory)
	assert.Equal(t, []string{"sick", "fever", "doctor", "child"}, got.KeywordsFound)
}

func TestRuleScorer(t *testing.T) {
	scorer := NewRuleScorer(DefaultRuleConfig())
	tx := taxonomy.Default()

	cases := []struct {
		name     string
		text     string
		category string
		want     float64
	}{
		{name: "unknown category", text: " ", category: "UNKNOWN", want: 0.3},
		{name: "category is normalized", text: " ", category: " disaster ", want: 0.9},
		{name: "tag contribution capped", text: "water electricity road bridge drainage", category: "", want: 0.6},
		{name: "temporal bonuses", text: "help needed immediately tonight", category: "OTHER", want: 0.65},
		{name: "midnight also counts night", text: "fell at midnight", category: "OTHER", want: 0.65},
		{name: "clamped", text: "fire flood", category: "OTHER", want: 0.99},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, scorer.Score(tx, tc.text, tc.category), 1e-9)
		})
	}
}

func TestRuleScorer_TagOrderIndependent(t *testing.T) {
	scorer := NewRuleScorer(DefaultRuleConfig())
	tx := taxonomy.Default()
	reversed := &taxonomy.Taxonomy{Version: "reversed"}
	for i := len(tx.Entries) - 1; i >= 0; i-- {
		reversed.Entries = append(reversed.Entries, tx.Entries[i])
	}

	text := "water leak near the road"
	assert.InDelta(t, scorer.Score(tx, text, "FOOD"), scorer.Score(reversed, text, "FOOD"), 1e-12)
}

func TestAggregate(t *testing.T) {
	score, tier := Aggregate(0.3, nil)
	assert.Equal(t, 0.36, score)
	assert.Equal(t, model.TierLow, tier)

	ml := 0.9
	score, tier = Aggregate(0.99, &ml)
	assert.Equal(t, 0.963, score)
	assert.Equal(t, model.TierUrgent, tier)

	assert.Equal(t, model.TierUrgent, TierFor(0.85))
	assert.Equal(t, model.TierHigh, TierFor(0.849))
	assert.Equal(t, model.TierHigh, TierFor(0.7))
	assert.Equal(t, model.TierMedium, TierFor(0.5))
	assert.Equal(t, model.TierLow, TierFor(0.499))
}

func TestClassifierBlender(t *testing.T) {
	b := NewClassifierBlender(stubPredictor{proba: map[string]float64{"URGENT": 0.5, "LOW": 0.5}}, nil)
	res := b.Predict("x")
	assert.False(t, res.Fallback)
	assert.InDelta(t, 0.6, res.Score, 1e-9)

	b = NewClassifierBlender(stubPredictor{proba: map[string]float64{"UNSEEN": 1}}, nil)
	assert.InDelta(t, 0.5, b.Predict("x").Score, 1e-9)

	b = NewClassifierBlender(nil, nil)
	res = b.Predict("x")
	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Err, ErrClassifierUnavailable)
	assert.Equal(t, FallbackMLScore, res.Score)
	assert.False(t, b.Available())
}

func TestCategorySuggester(t *testing.T) {
	s := NewCategorySuggester(DefaultCandidates())

	got := s.Suggest("fire", "OTHER")
	require.NotNil(t, got)
	assert.Equal(t, "EMERGENCY", *got, "ties go to the earlier candidate")

	got = s.Suggest("flood typhoon", "OTHER")
	require.NotNil(t, got)
	assert.Equal(t, "DISASTER", *got)

	assert.Nil(t, s.Suggest("fire", "emergency"))
	assert.Nil(t, s.Suggest("nothing relevant", "OTHER"))
}

func TestExtractKeywords(t *testing.T) {
	tx := taxonomy.Default()

	assert.Equal(t, []string{"emergency", "urgent", "critical", "accident", "fire"},
		ExtractKeywords(tx, "emergency urgent critical accident fire flood"))
	assert.Equal(t, []string{"fire", "flood"}, ExtractKeywords(tx, "flood and fire"))
	assert.Empty(t, ExtractKeywords(tx, ""))
}

func TestExplain(t *testing.T) {
	reasons := Explain(model.TierMedium, []string{"a", "b", "c", "d"}, "medical", "pregnant mother")
	assert.Equal(t, []string{
		"Medium priority situation",
		"Keywords detected: a, b, c",
		"High-priority category: MEDICAL",
		"Involves vulnerable individual(s)",
	}, reasons)
}

func TestSortByScore_StableForTies(t *testing.T) {
	results := []*model.ScoreBreakdown{
		{Score: 0.9, RequestID: "item0"},
		{Score: 0.4, RequestID: "item1"},
		{Score: 0.9, RequestID: "item2"},
	}
	SortByScore(results)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.RequestID)
	}
	assert.Equal(t, []string{"item0", "item2", "item1"}, ids)
}

func TestBatchCoordinator_Prioritize(t *testing.T) {
	engine := newTestEngine(nil)
	coordinator := NewBatchCoordinator(engine, 2)

	results, err := coordinator.Prioritize(context.Background(), []model.TriageRequest{
		{Title: "flood", Category: "DISASTER"},
		{Title: "", Category: ""},
		{Title: "typhoon", Category: "DISASTER"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, []string{"flood"}, results[0].KeywordsFound)
	assert.Equal(t, []string{"typhoon"}, results[1].KeywordsFound)
	assert.Equal(t, 0.36, results[2].Score)
}

func TestBatchCoordinator_ManyItemsKeepInputOrderForTies(t *testing.T) {
	engine := newTestEngine(nil)
	coordinator := NewBatchCoordinator(engine, 0)

	reqs := make([]model.TriageRequest, 0, 50)
	for i := 0; i < 50; i++ {
		reqs = append(reqs, model.TriageRequest{Title: fmt.Sprintf("item %d", i), Category: "FOOD"})
	}
	results, err := coordinator.Prioritize(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, 50)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestBatchCoordinator_CanceledContext(t *testing.T) {
	coordinator := NewBatchCoordinator(newTestEngine(nil), 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := coordinator.Prioritize(ctx, []model.TriageRequest{{Title: "x"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchCoordinator_Empty(t *testing.T) {
	results, err := NewBatchCoordinator(newTestEngine(nil), 1).Prioritize(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
