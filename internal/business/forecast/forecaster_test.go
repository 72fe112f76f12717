package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast_Flood1000(t *testing.T) {
	f := NewForecaster(nil, nil)

	got := f.Forecast("FLOOD", 1000, "Riverside")

	assert.Equal(t, 6000.0, got.Predictions["water_liters"])
	assert.Equal(t, 2.0, got.Predictions["boats"])
	assert.Equal(t, 500.0, got.Predictions["life_jackets"])
	assert.Equal(t, 30.0, got.Predictions["first_aid_kits"])
	assert.Equal(t, 10000.0, got.Predictions["sandbags"])
	assert.Equal(t, 1.0, got.Predictions["pumps"])

	costs := got.EstimatedCosts
	assert.Equal(t, "USD", costs.Currency)
	assert.Equal(t, 300.0, costs.Items["water_liters"])
	assert.Equal(t, 10000.0, costs.Items["boats"])
	assert.Equal(t, 25000.0, costs.Items["life_jackets"])
	assert.NotContains(t, costs.Items, "sandbags")
	assert.Equal(t, 56050.0, costs.Total)

	require.Len(t, got.ResponseTimeline, 9)
	assert.Equal(t, "Deploy water rescue teams", got.ResponseTimeline[2].Action)
	assert.Equal(t, "Critical", got.ResponseTimeline[2].Priority)

	assert.Len(t, got.Recommendations, 9)
	assert.Equal(t, "Monitor water levels continuously", got.Recommendations[5])
	assert.Equal(t, "Request additional resources from neighboring areas", got.Recommendations[8])

	assert.Equal(t, "Riverside", got.Location)
	assert.Equal(t, Note, got.Note)
}

func TestForecast_UnknownDisasterUsesIdentityProfile(t *testing.T) {
	got := NewForecaster(nil, nil).Forecast("volcano", 10, "")

	assert.Equal(t, "VOLCANO", got.DisasterType)
	assert.Equal(t, map[string]float64{
		"water_liters":      30,
		"food_rations":      20,
		"blankets":          10,
		"first_aid_kits":    0.2,
		"volunteers_needed": 0.1,
	}, got.Predictions)
	assert.Len(t, got.ResponseTimeline, 8)
	assert.Len(t, got.Recommendations, 5)
}

func TestForecast_EarthquakeLargePopulation(t *testing.T) {
	got := NewForecaster(nil, nil).Forecast("earthquake", 12000, "")

	require.Len(t, got.ResponseTimeline, 10)
	assert.Equal(t, "Search and rescue mobilization", got.ResponseTimeline[1].Action)
	assert.Equal(t, "Coordinate with regional authorities", got.ResponseTimeline[9].Action)
	assert.Equal(t, 2400.0, got.Predictions["tents"])
	assert.Equal(t, 2.0, got.Predictions["structural_engineers"])
	assert.Equal(t, 720.0, got.Predictions["first_aid_kits"])
	assert.Equal(t, 240.0, got.Predictions["volunteers_needed"])
}

func TestPredict_BaseResourcesScaleLinearly(t *testing.T) {
	f := NewForecaster(nil, nil)
	for _, disaster := range []string{"FLOOD", "EARTHQUAKE", "FIRE", "TYPHOON", "MEDICAL_EMERGENCY", "OTHER"} {
		small := f.Predict(disaster, 400)
		large := f.Predict(disaster, 800)
		for _, base := range baseRates {
			assert.InDelta(t, 2*small[base.Resource], large[base.Resource], 0.011, "%s %s", disaster, base.Resource)
		}
	}
}

func TestPredict_ZeroPopulation(t *testing.T) {
	got := NewForecaster(nil, nil).Forecast("FLOOD", 0, "")

	assert.Equal(t, 0.0, got.Predictions["water_liters"])
	assert.Equal(t, 1.0, got.Predictions["boats"])
	assert.Equal(t, 0.0, got.Predictions["life_jackets"])
	assert.Equal(t, 5000.0, got.EstimatedCosts.Total)
	assert.Len(t, got.Recommendations, 8)
}

func TestCostEstimator_TotalIsSumOfItems(t *testing.T) {
	f := NewForecaster(nil, nil)
	for _, disaster := range []string{"FLOOD", "EARTHQUAKE", "FIRE", "TYPHOON", "MEDICAL_EMERGENCY"} {
		costs := f.Forecast(disaster, 3333, "").EstimatedCosts
		sum := 0.0
		for _, cost := range costs.Items {
			assert.GreaterOrEqual(t, cost, 0.0)
			sum += cost
		}
		assert.InDelta(t, sum, costs.Total, 0.005, disaster)
	}
}

func TestRecommendations(t *testing.T) {
	assert.Len(t, Recommendations("FIRE", 500), 8)
	assert.Len(t, Recommendations("TYPHOON", 501), 6)
}

func TestTimes_SaturatesOnOverflow(t *testing.T) {
	tenfold := times(10)
	assert.Equal(t, 10000, tenfold(1000))
	assert.Equal(t, 0, tenfold(0))
	assert.Equal(t, math.MaxInt, tenfold(math.MaxInt/2))

	got := NewForecaster(nil, nil).Forecast("MEDICAL_EMERGENCY", math.MaxInt/2, "")
	for resource, qty := range got.Predictions {
		assert.GreaterOrEqual(t, qty, 0.0, resource)
	}
	assert.GreaterOrEqual(t, got.EstimatedCosts.Total, 0.0)
}
