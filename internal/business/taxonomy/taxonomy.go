package taxonomy

import (
	"fmt"
	"strings"
)

// DefaultVersion 内置词表版本
const DefaultVersion = "builtin-1"

// Entry 语义标签：触发词 + 权重
type Entry struct {
	Tag    string   `yaml:"tag"`
	Terms  []string `yaml:"terms"`
	Weight float64  `yaml:"weight"`
}

// Taxonomy 有序标签表
// 顺序决定关键词发现顺序，构造后只读
type Taxonomy struct {
	Version string  `yaml:"version"`
	Entries []Entry `yaml:"tags"`
}

// Default 内置词表
func Default() *Taxonomy {
	t := &Taxonomy{
		Version: DefaultVersion,
		Entries: []Entry{
			{
				Tag:    "urgent",
				Weight: 0.30,
				Terms: []string{"emergency", "urgent", "critical", "accident", "fire",
					"flood", "earthquake", "blood", "heart attack", "stroke",
					"dying", "danger", "cardiac", "unconscious",
					"bleeding", "severe", "trauma", "burn", "drowning"},
			},
			{
				Tag:    "medical",
				Weight: 0.20,
				Terms: []string{"sick", "fever", "cough", "hospital", "doctor",
					"medicine", "pregnant", "vaccine", "prescription",
					"clinic", "health", "ill", "pain", "injury"},
			},
			{
				Tag:    "food",
				Weight: 0.15,
				Terms: []string{"hungry", "starving", "food", "meal", "eat",
					"malnourished", "empty stomach", "rice", "canned",
					"groceries", "pantry", "soup kitchen", "feeding"},
			},
			{
				Tag:    "high_priority",
				Weight: 0.25,
				Terms: []string{"child", "baby", "elderly", "senior", "disabled",
					"pregnant", "infant", "orphan", "widow", "vulnerable"},
			},
			{
				Tag:    "disaster",
				Weight: 0.35,
				Terms: []string{"flood", "typhoon", "earthquake", "fire", "landslide",
					"evacuation", "shelter", "relief", "rescue", "missing"},
			},
			{
				Tag:    "infrastructure",
				Weight: 0.10,
				Terms: []string{"water", "electricity", "road", "bridge", "drainage",
					"garbage", "sewage", "leak", "broken", "damage"},
			},
		},
	}
	t.normalize()
	return t
}

// Validate 校验标签表
func (t *Taxonomy) Validate() error {
	if t == nil || len(t.Entries) == 0 {
		return fmt.Errorf("taxonomy has no tags")
	}

	seen := make(map[string]struct{}, len(t.Entries))
	for i, e := range t.Entries {
		tag := strings.TrimSpace(e.Tag)
		if tag == "" {
			return fmt.Errorf("tags[%d]: tag is required", i)
		}
		if e.Weight < 0 {
			return fmt.Errorf("tags[%d] %s: weight must be >= 0", i, tag)
		}
		if _, dup := seen[tag]; dup {
			return fmt.Errorf("tags[%d]: duplicate tag %s", i, tag)
		}
		seen[tag] = struct{}{}
	}
	return nil
}

// normalize 触发词转小写、去空、去重（保持首次出现顺序）
func (t *Taxonomy) normalize() {
	for i := range t.Entries {
		e := &t.Entries[i]
		e.Tag = strings.TrimSpace(e.Tag)

		seen := make(map[string]struct{}, len(e.Terms))
		terms := make([]string, 0, len(e.Terms))
		for _, term := range e.Terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			terms = append(terms, term)
		}
		e.Terms = terms
	}
}

// Matches 返回 text 中命中的触发词（按词表顺序）
// text 须已转小写
func (e Entry) Matches(text string) []string {
	var hits []string
	for _, term := range e.Terms {
		if strings.Contains(text, term) {
			hits = append(hits, term)
		}
	}
	return hits
}

// Lookup 按标签名查找
func (t *Taxonomy) Lookup(tag string) (Entry, bool) {
	for _, e := range t.Entries {
		if e.Tag == tag {
			return e, true
		}
	}
	return Entry{}, false
}
