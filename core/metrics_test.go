package core

import (
	"testing"

	"github.com/huangsam/aiready/core/algo"
	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMetricsModelDefaults(t *testing.T) {
	resolved, err := ResolveConfig(nil)
	require.NoError(t, err)

	model := BuildMetricsModel(resolved)
	require.Len(t, model.Dimensions, len(schema.AllDimensions))
	assert.Equal(t, schema.GradeBands, model.GradeBands)
	assert.Equal(t, resolved.TargetScore, model.TargetScore)

	total := 0.0
	for i, d := range model.Dimensions {
		assert.Equal(t, schema.AllDimensions[i], d.Dimension)
		assert.NotEmpty(t, d.Label)
		assert.Equal(t, algo.PenaltyFactor(d.Dimension), d.PenaltyFactor)
		total += d.Weight
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestBuildMetricsModelOverrides(t *testing.T) {
	target := 90
	resolved, err := ResolveConfig(&schema.AssessmentConfig{
		TargetScore:      &target,
		AcceptableScores: map[schema.Dimension]int{schema.NamingClarity: 95},
	})
	require.NoError(t, err)

	model := BuildMetricsModel(resolved)
	assert.Equal(t, 90, model.TargetScore)
	for _, d := range model.Dimensions {
		if d.Dimension == schema.NamingClarity {
			assert.Equal(t, 95, d.Acceptable)
		}
	}
}
