package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcenhabil/barangaylink-system/internal/model"
	"github.com/bcenhabil/barangaylink-system/pkg/errorutil"
)

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(model.TriageRequest{Title: "ok"}))

	err := v.Struct(model.ForecastRequest{})
	require.Error(t, err)

	var e *errorutil.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errorutil.CodeInvalidArgument, e.Code)
	assert.Equal(t, "Validation failed", e.Message)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "affected_population", e.Fields[0].Path)
	assert.Equal(t, "affected_population is required", e.Fields[0].Info)

	n := -1
	err = v.Struct(model.ForecastRequest{AffectedPopulation: &n})
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "affected_population must be greater than or equal to 0", e.Fields[0].Info)

	n = model.MaxAffectedPopulation + 1
	err = v.Struct(model.ForecastRequest{AffectedPopulation: &n})
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errorutil.CodeInvalidArgument, e.Code)
	assert.Equal(t, "affected_population must be less than or equal to 100000000", e.Fields[0].Info)

	n = model.MaxAffectedPopulation
	assert.NoError(t, v.Struct(model.ForecastRequest{AffectedPopulation: &n}))
}
