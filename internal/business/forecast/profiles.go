package forecast

import "math"

// 基础资源：每人需求量
// 顺序固定，输出与计价按此顺序进行
var baseRates = []resourceRate{
	{Resource: "water_liters", Rate: 3},
	{Resource: "food_rations", Rate: 2},
	{Resource: "blankets", Rate: 1},
	{Resource: "first_aid_kits", Rate: 0.02},
	{Resource: "volunteers_needed", Rate: 0.01},
}

type resourceRate struct {
	Resource string
	Rate     float64
}

// AdditionalItem 灾害特有资源，数量由受灾人口计算（整数除法）
type AdditionalItem struct {
	Resource string
	Formula  func(population int) int
}

// DisasterProfile 灾害资源画像
type DisasterProfile struct {
	DisasterType string
	Multipliers  map[string]float64
	Additional   []AdditionalItem
}

// Multiplier 基础资源倍数，未配置为 1
func (p DisasterProfile) Multiplier(resource string) float64 {
	if m, ok := p.Multipliers[resource]; ok {
		return m
	}
	return 1.0
}

func per(divisor int) func(int) int {
	return func(p int) int { return p / divisor }
}

func atLeastOne(divisor int) func(int) int {
	return func(p int) int { return max(1, p/divisor) }
}

// times 溢出时饱和到 math.MaxInt
func times(factor int) func(int) int {
	return func(p int) int {
		if p <= 0 {
			return 0
		}
		if p > math.MaxInt/factor {
			return math.MaxInt
		}
		return p * factor
	}
}

// DefaultProfiles 内置灾害画像
func DefaultProfiles() map[string]DisasterProfile {
	return map[string]DisasterProfile{
		"FLOOD": {
			DisasterType: "FLOOD",
			Multipliers:  map[string]float64{"water_liters": 2.0, "first_aid_kits": 1.5},
			Additional: []AdditionalItem{
				{Resource: "boats", Formula: atLeastOne(500)},
				{Resource: "life_jackets", Formula: per(2)},
				{Resource: "rescue_teams", Formula: atLeastOne(1000)},
				{Resource: "sandbags", Formula: times(10)},
				{Resource: "pumps", Formula: atLeastOne(1000)},
			},
		},
		"EARTHQUAKE": {
			DisasterType: "EARTHQUAKE",
			Multipliers:  map[string]float64{"first_aid_kits": 3.0, "volunteers_needed": 2.0},
			Additional: []AdditionalItem{
				{Resource: "tents", Formula: per(5)},
				{Resource: "rescue_teams", Formula: atLeastOne(500)},
				{Resource: "heavy_equipment", Formula: atLeastOne(2000)},
				{Resource: "structural_engineers", Formula: atLeastOne(5000)},
				{Resource: "search_dogs", Formula: atLeastOne(5000)},
			},
		},
		"FIRE": {
			DisasterType: "FIRE",
			Multipliers:  map[string]float64{"blankets": 2.0, "food_rations": 1.5},
			Additional: []AdditionalItem{
				{Resource: "temporary_shelter", Formula: per(10)},
				{Resource: "clothing", Formula: times(1)},
				{Resource: "counseling_teams", Formula: atLeastOne(100)},
				{Resource: "fire_trucks", Formula: atLeastOne(2000)},
				{Resource: "breathing_apparatus", Formula: atLeastOne(500)},
			},
		},
		"TYPHOON": {
			DisasterType: "TYPHOON",
			Multipliers:  map[string]float64{"water_liters": 1.8, "food_rations": 2.5},
			Additional: []AdditionalItem{
				{Resource: "emergency_kits", Formula: times(1)},
				{Resource: "generators", Formula: atLeastOne(200)},
				{Resource: "tarps", Formula: per(2)},
				{Resource: "chainsaws", Formula: atLeastOne(1000)},
				{Resource: "communication_sets", Formula: atLeastOne(500)},
			},
		},
		"MEDICAL_EMERGENCY": {
			DisasterType: "MEDICAL_EMERGENCY",
			Multipliers:  map[string]float64{"first_aid_kits": 5.0, "volunteers_needed": 1.5},
			Additional: []AdditionalItem{
				{Resource: "masks", Formula: times(10)},
				{Resource: "sanitizer_liters", Formula: per(5)},
				{Resource: "ambulance_units", Formula: atLeastOne(1000)},
				{Resource: "icu_beds", Formula: atLeastOne(100)},
				{Resource: "ventilators", Formula: atLeastOne(500)},
			},
		},
	}
}
