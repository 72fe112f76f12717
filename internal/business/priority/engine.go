package priority

import (
	"github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"
	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// Engine 混合评分引擎
// 纯计算，不做 I/O；每次评分读取一次词表快照
type Engine struct {
	taxonomies *taxonomy.Store
	scorer     *RuleScorer
	blender    *ClassifierBlender
	suggester  *CategorySuggester
}

// Option 引擎选项
type Option func(*Engine)

// WithRuleConfig 替换规则参数
func WithRuleConfig(cfg RuleConfig) Option {
	return func(e *Engine) {
		e.scorer = NewRuleScorer(cfg)
	}
}

// WithCandidates 替换分类建议候选
func WithCandidates(candidates []CategoryCandidate) Option {
	return func(e *Engine) {
		e.suggester = NewCategorySuggester(candidates)
	}
}

// NewEngine 创建评分引擎
func NewEngine(taxonomies *taxonomy.Store, blender *ClassifierBlender, opts ...Option) *Engine {
	e := &Engine{
		taxonomies: taxonomies,
		scorer:     NewRuleScorer(DefaultRuleConfig()),
		blender:    blender,
		suggester:  NewCategorySuggester(DefaultCandidates()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Blender 返回分类器 blender
func (e *Engine) Blender() *ClassifierBlender {
	return e.blender
}

// Taxonomy 当前词表快照
func (e *Engine) Taxonomy() *taxonomy.Taxonomy {
	return e.taxonomies.Load()
}

// Prioritize 对单条请求评分
func (e *Engine) Prioritize(req model.TriageRequest) *model.ScoreBreakdown {
	tx := e.taxonomies.Load()
	text := req.Text()

	ruleScore := e.scorer.Score(tx, text, req.Category)
	ml := e.blender.Predict(text)

	var mlScore *float64
	if !ml.Fallback {
		rounded := round3(ml.Score)
		mlScore = &rounded
	}

	// 融合使用未取整的分数
	blended := ml.Score
	final, tier := Aggregate(ruleScore, &blended)

	keywords := ExtractKeywords(tx, text)
	return &model.ScoreBreakdown{
		Priority:          tier,
		Score:             final,
		RuleScore:         round3(ruleScore),
		MLScore:           mlScore,
		Reasons:           Explain(tier, keywords, req.Category, text),
		SuggestedCategory: e.suggester.Suggest(text, req.Category),
		KeywordsFound:     keywords,
		MLFallback:        ml.Fallback,
	}
}
