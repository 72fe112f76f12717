package priority

import (
	"math"
	"strings"

	"github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"
	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// 每个标签最多计入的命中次数
const maxTagMatches = 3

// TemporalBonus 时间紧迫性加分词
type TemporalBonus struct {
	Term  string
	Bonus float64
}

// RuleConfig 规则评分参数（启动时构造，只读）
type RuleConfig struct {
	CategoryBase map[string]float64
	DefaultBase  float64
	Temporal     []TemporalBonus
	MaxScore     float64
}

// DefaultRuleConfig 默认规则参数
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		CategoryBase: map[string]float64{
			"EMERGENCY":      0.8,
			"MEDICAL":        0.7,
			"FOOD":           0.6,
			"DISASTER":       0.9,
			"INFRASTRUCTURE": 0.5,
			"EDUCATION":      0.4,
			"LEGAL":          0.5,
			"FINANCIAL":      0.4,
			"OTHER":          0.3,
		},
		DefaultBase: 0.3,
		Temporal: []TemporalBonus{
			{Term: "midnight", Bonus: 0.2},
			{Term: "night", Bonus: 0.15},
			{Term: "late", Bonus: 0.1},
			{Term: "now", Bonus: 0.1},
			{Term: "immediate", Bonus: 0.2},
		},
		MaxScore: 0.99,
	}
}

// RuleScorer 基于分类、关键词和时间词的启发式评分
type RuleScorer struct {
	cfg RuleConfig
}

// NewRuleScorer 创建规则评分器
func NewRuleScorer(cfg RuleConfig) *RuleScorer {
	return &RuleScorer{cfg: cfg}
}

// Score 计算规则分，结果在 [0, MaxScore]
// text 须已转小写
func (s *RuleScorer) Score(tx *taxonomy.Taxonomy, text, category string) float64 {
	score := s.categoryBase(category)

	for _, entry := range tx.Entries {
		matches := len(entry.Matches(text))
		if matches > 0 {
			score += math.Min(entry.Weight*float64(matches), entry.Weight*maxTagMatches)
		}
	}

	for _, t := range s.cfg.Temporal {
		if strings.Contains(text, t.Term) {
			score += t.Bonus
		}
	}

	return math.Min(math.Max(score, 0), s.cfg.MaxScore)
}

func (s *RuleScorer) categoryBase(category string) float64 {
	if base, ok := s.cfg.CategoryBase[model.NormalizeCategory(category)]; ok {
		return base
	}
	return s.cfg.DefaultBase
}
