package priority

import (
	"strings"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// CategoryCandidate 候选分类及其关键词
type CategoryCandidate struct {
	Category string
	Keywords []string
}

// DefaultCandidates 候选分类，顺序即平票时的优先顺序
func DefaultCandidates() []CategoryCandidate {
	return []CategoryCandidate{
		{Category: "MEDICAL", Keywords: []string{"sick", "fever", "cough", "hospital", "doctor", "medicine",
			"pain", "injury", "vaccine", "clinic", "health"}},
		{Category: "FOOD", Keywords: []string{"hungry", "food", "meal", "eat", "starving", "rice",
			"canned", "groceries", "pantry", "feeding"}},
		{Category: "EMERGENCY", Keywords: []string{"emergency", "urgent", "accident", "fire", "flood",
			"earthquake", "bleeding", "unconscious", "trauma"}},
		{Category: "DISASTER", Keywords: []string{"flood", "typhoon", "earthquake", "fire", "landslide",
			"evacuation", "shelter", "relief", "rescue"}},
		{Category: "INFRASTRUCTURE", Keywords: []string{"water", "electricity", "road", "bridge", "drainage",
			"garbage", "sewage", "leak", "broken", "damage"}},
		{Category: "EDUCATION", Keywords: []string{"school", "student", "study", "book", "tuition",
			"teacher", "classroom", "scholarship"}},
	}
}

// CategorySuggester 根据文本建议更合适的分类
type CategorySuggester struct {
	candidates []CategoryCandidate
}

// NewCategorySuggester 创建分类建议器
func NewCategorySuggester(candidates []CategoryCandidate) *CategorySuggester {
	return &CategorySuggester{candidates: candidates}
}

// Suggest 命中最多的候选分类；无命中或与当前分类相同时返回 nil
// 平票取靠前的候选
func (s *CategorySuggester) Suggest(text, current string) *string {
	best := ""
	bestCount := 0
	for _, c := range s.candidates {
		count := 0
		for _, kw := range c.Keywords {
			if strings.Contains(text, kw) {
				count++
			}
		}
		if count > bestCount {
			best = c.Category
			bestCount = count
		}
	}

	if bestCount == 0 || best == model.NormalizeCategory(current) {
		return nil
	}
	return &best
}
