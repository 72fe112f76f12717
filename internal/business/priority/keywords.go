package priority

import "github.com/bcenhabil/barangaylink-system/internal/business/taxonomy"

// MaxKeywords keywords_found 上限
const MaxKeywords = 5

// ExtractKeywords 按标签顺序、词表顺序收集命中词，去重后截取前 MaxKeywords 个
func ExtractKeywords(tx *taxonomy.Taxonomy, text string) []string {
	found := make([]string, 0, MaxKeywords)
	seen := make(map[string]struct{})
	for _, entry := range tx.Entries {
		for _, term := range entry.Matches(text) {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			found = append(found, term)
			if len(found) == MaxKeywords {
				return found
			}
		}
	}
	return found
}
