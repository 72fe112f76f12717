package forecast

import "github.com/bcenhabil/barangaylink-system/internal/model"

// 人口超过该值时追加区域协调阶段 / 追加跨区调配建议
const (
	regionalCoordinationPopulation = 1000
	neighborSupportPopulation      = 500
)

func baseTimeline() []model.TimelinePhase {
	return []model.TimelinePhase{
		{Time: "0-15 minutes", Action: "Alert emergency services", Priority: "Critical"},
		{Time: "15-30 minutes", Action: "Activate response teams", Priority: "High"},
		{Time: "30-60 minutes", Action: "Deploy initial resources", Priority: "High"},
		{Time: "1-3 hours", Action: "Establish command center", Priority: "Medium"},
		{Time: "3-6 hours", Action: "Begin evacuation if needed", Priority: "High"},
		{Time: "6-12 hours", Action: "Distribute emergency supplies", Priority: "Medium"},
		{Time: "12-24 hours", Action: "Set up temporary shelters", Priority: "Medium"},
		{Time: "24-48 hours", Action: "Begin recovery operations", Priority: "Low"},
	}
}

type timelineInsert struct {
	index int
	phase model.TimelinePhase
}

var disasterPhases = map[string]timelineInsert{
	"FLOOD": {
		index: 2,
		phase: model.TimelinePhase{Time: "0-30 minutes", Action: "Deploy water rescue teams", Priority: "Critical"},
	},
	"EARTHQUAKE": {
		index: 1,
		phase: model.TimelinePhase{Time: "0-10 minutes", Action: "Search and rescue mobilization", Priority: "Critical"},
	},
}

// Timeline 生成响应时间线
func Timeline(disasterType string, population int) []model.TimelinePhase {
	phases := baseTimeline()

	if ins, ok := disasterPhases[disasterType]; ok {
		phases = append(phases[:ins.index], append([]model.TimelinePhase{ins.phase}, phases[ins.index:]...)...)
	}

	if population > regionalCoordinationPopulation {
		phases = append(phases, model.TimelinePhase{
			Time:     "48-72 hours",
			Action:   "Coordinate with regional authorities",
			Priority: "Medium",
		})
	}
	return phases
}

var baseRecommendations = []string{
	"Activate emergency communication channels",
	"Mobilize pre-registered volunteers",
	"Coordinate with local hospitals and clinics",
	"Establish distribution points for supplies",
	"Set up information hotline for affected residents",
}

var disasterRecommendations = map[string][]string{
	"FLOOD": {
		"Monitor water levels continuously",
		"Prepare evacuation routes",
		"Secure important documents and valuables",
	},
	"EARTHQUAKE": {
		"Check structural integrity of buildings",
		"Prepare for aftershocks",
		"Set up triage areas for medical emergencies",
	},
	"FIRE": {
		"Establish fire breaks if possible",
		"Coordinate with fire department",
		"Prepare for smoke inhalation cases",
	},
}

// Recommendations 生成响应建议
func Recommendations(disasterType string, population int) []string {
	recs := make([]string, 0, len(baseRecommendations)+4)
	recs = append(recs, baseRecommendations...)
	recs = append(recs, disasterRecommendations[disasterType]...)
	if population > neighborSupportPopulation {
		recs = append(recs, "Request additional resources from neighboring areas")
	}
	return recs
}
