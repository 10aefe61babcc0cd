package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score int
		want  Grade
	}{
		{100, GradeA},
		{90, GradeA},
		{89, GradeB},
		{75, GradeB},
		{74, GradeC},
		{60, GradeC},
		{59, GradeD},
		{40, GradeD},
		{39, GradeF},
		{0, GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GradeFor(tt.score), "score %d", tt.score)
	}
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		raw  float64
		want int
	}{
		{-12.3, 0},
		{0.49, 0},
		{0.5, 1},
		{72.5, 73},
		{99.6, 100},
		{140, 100},
		{math.NaN(), 0},
		{math.Inf(1), 100},
		{math.Inf(-1), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampScore(tt.raw), "raw %v", tt.raw)
	}
}

func TestGetDefaultWeightsSumToOne(t *testing.T) {
	weights := GetDefaultWeights()
	assert.Len(t, weights, len(AllDimensions))
	assert.InDelta(t, 1.0, weights.Sum(), WeightSumTolerance)
}

func TestDefaultTablesCoverAllDimensions(t *testing.T) {
	acceptable := GetDefaultAcceptableScores()
	effort := GetDefaultEffortModel()
	for _, d := range AllDimensions {
		assert.Contains(t, acceptable, d)
		assert.Contains(t, effort, d)
		assert.Contains(t, DimensionLabels, d)
	}
}

func TestGradeRankOrdering(t *testing.T) {
	assert.Less(t, GradeRank(GradeA), GradeRank(GradeB))
	assert.Less(t, GradeRank(GradeB), GradeRank(GradeC))
	assert.Less(t, GradeRank(GradeC), GradeRank(GradeD))
	assert.Less(t, GradeRank(GradeD), GradeRank(GradeF))
	assert.Equal(t, GradeRank(GradeF), GradeRank(Grade("Z")))
}

func TestDimensionIndex(t *testing.T) {
	assert.Equal(t, 0, DimensionIndex(StructuralQuality))
	assert.Equal(t, 8, DimensionIndex(GitHubReadiness))
	assert.Equal(t, len(AllDimensions), DimensionIndex(Dimension("unknown")))
}

func TestToolingChecksOrderStable(t *testing.T) {
	checks := ToolingConfig{HasLinter: true, HasBuildScript: true}.Checks()
	assert.Len(t, checks, 8)
	assert.Equal(t, "linter", checks[0].Name)
	assert.True(t, checks[0].Present)
	assert.False(t, checks[1].Present)
	assert.True(t, checks[7].Present)

	gh := GitHubReadinessConfig{}.Checks()
	assert.Len(t, gh, 9)
	for _, c := range gh {
		assert.False(t, c.Present)
	}
}
