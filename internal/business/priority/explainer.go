package priority

import (
	"fmt"
	"strings"

	"github.com/bcenhabil/barangaylink-system/internal/model"
)

// 说明中最多列出的关键词数
const maxReasonKeywords = 3

var tierPhrases = map[model.Tier]string{
	model.TierUrgent: "Extremely urgent situation detected",
	model.TierHigh:   "High priority situation",
	model.TierMedium: "Medium priority situation",
	model.TierLow:    "Standard priority situation",
}

var highPriorityCategories = map[string]struct{}{
	"EMERGENCY": {},
	"MEDICAL":   {},
	"DISASTER":  {},
}

var vulnerableTerms = []string{"child", "baby", "elderly", "pregnant", "disabled"}

// Explain 生成有序的说明列表，至少包含档位描述
func Explain(tier model.Tier, keywords []string, category, text string) []string {
	reasons := []string{tierPhrases[tier]}

	if len(keywords) > 0 {
		shown := keywords
		if len(shown) > maxReasonKeywords {
			shown = shown[:maxReasonKeywords]
		}
		reasons = append(reasons, "Keywords detected: "+strings.Join(shown, ", "))
	}

	category = model.NormalizeCategory(category)
	if _, ok := highPriorityCategories[category]; ok {
		reasons = append(reasons, fmt.Sprintf("High-priority category: %s", category))
	}

	for _, term := range vulnerableTerms {
		if strings.Contains(text, term) {
			reasons = append(reasons, "Involves vulnerable individual(s)")
			break
		}
	}
	return reasons
}
