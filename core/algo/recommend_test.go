package algo

import (
	"testing"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perfectBreakdown returns a breakdown with every dimension at 100.
func perfectBreakdown() schema.FullScoreBreakdown {
	b := schema.FullScoreBreakdown{}
	for _, d := range schema.AllDimensions {
		b[d] = 100
	}
	return b
}

func recommendationInput(breakdown schema.FullScoreBreakdown, results map[schema.Dimension]schema.DimensionScoreResult) RecommendationInput {
	if results == nil {
		results = map[schema.Dimension]schema.DimensionScoreResult{}
	}
	return RecommendationInput{
		Results:     results,
		Breakdown:   breakdown,
		Weights:     schema.GetDefaultWeights(),
		Acceptable:  schema.GetDefaultAcceptableScores(),
		Thresholds:  schema.DefaultThresholds(),
		EffortModel: schema.GetDefaultEffortModel(),
	}
}

func TestPriorityFor(t *testing.T) {
	assert.Equal(t, schema.PriorityCritical, PriorityFor(0))
	assert.Equal(t, schema.PriorityCritical, PriorityFor(39))
	assert.Equal(t, schema.PriorityHigh, PriorityFor(40))
	assert.Equal(t, schema.PriorityHigh, PriorityFor(59))
	assert.Equal(t, schema.PriorityMedium, PriorityFor(60))
}

func TestGenerateRecommendationsNoneWhenAcceptable(t *testing.T) {
	recs := GenerateRecommendations(recommendationInput(perfectBreakdown(), nil))
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestGenerateRecommendationsRankedByImpact(t *testing.T) {
	breakdown := perfectBreakdown()
	breakdown[schema.ComplexityManagement] = 40
	breakdown[schema.ToolingSupport] = 50
	breakdown[schema.ArchitecturalClarity] = 30
	results := map[schema.Dimension]schema.DimensionScoreResult{
		schema.ComplexityManagement: {Score: 40, Violations: 3, Metrics: map[string]float64{"highComplexity": 3}},
		schema.ToolingSupport:       {Score: 50, Violations: 4, Samples: []string{"linter", "formatter", "lockfile", "build script"}},
		schema.ArchitecturalClarity: {Score: 30, Violations: 2, Metrics: map[string]float64{"affectedFiles": 2, "architectureFindings": 3}},
	}

	recs := GenerateRecommendations(recommendationInput(breakdown, results))

	require.Len(t, recs, 3)
	assert.Equal(t, schema.ComplexityManagement, recs[0].Dimension)
	assert.InDelta(t, 4.5, recs[0].Impact, 1e-9)
	assert.Equal(t, schema.PriorityHigh, recs[0].Priority)
	assert.Equal(t, 3, recs[0].AffectedCount)
	assert.InDelta(t, 8.0, recs[0].EffortHours, 1e-9)

	assert.Equal(t, schema.ArchitecturalClarity, recs[1].Dimension)
	assert.InDelta(t, 4.0, recs[1].Impact, 1e-9)
	assert.Equal(t, schema.PriorityCritical, recs[1].Priority)

	assert.Equal(t, schema.ToolingSupport, recs[2].Dimension)
	assert.InDelta(t, 0.9, recs[2].Impact, 1e-9)
	assert.Contains(t, recs[2].Description, "linter, formatter, lockfile, build script")

	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Impact, recs[i].Impact)
	}
}

func TestGenerateRecommendationsSplitsImpact(t *testing.T) {
	breakdown := perfectBreakdown()
	breakdown[schema.ComplexityManagement] = 40
	results := map[schema.Dimension]schema.DimensionScoreResult{
		schema.ComplexityManagement: {Score: 40, Metrics: map[string]float64{"highComplexity": 3, "deepNesting": 1}},
	}

	recs := GenerateRecommendations(recommendationInput(breakdown, results))

	require.Len(t, recs, 2)
	assert.Equal(t, "complexityManagement-1", recs[0].ID)
	assert.InDelta(t, 3.375, recs[0].Impact, 1e-9)
	assert.Equal(t, "complexityManagement-2", recs[1].ID)
	assert.InDelta(t, 1.125, recs[1].Impact, 1e-9)
}

func TestGenerateRecommendationsTieBreaksByDimensionOrder(t *testing.T) {
	breakdown := perfectBreakdown()
	breakdown[schema.TypeAnnotations] = 50
	breakdown[schema.DocumentationCoverage] = 50
	results := map[schema.Dimension]schema.DimensionScoreResult{
		schema.TypeAnnotations:       {Score: 50, NoData: true},
		schema.DocumentationCoverage: {Score: 50, NoData: true},
	}

	recs := GenerateRecommendations(recommendationInput(breakdown, results))

	require.Len(t, recs, 2)
	assert.Equal(t, schema.DocumentationCoverage, recs[0].Dimension)
	assert.Equal(t, schema.TypeAnnotations, recs[1].Dimension)
	assert.Equal(t, recs[0].Impact, recs[1].Impact)
	assert.Contains(t, recs[0].Title, "Measure")
}

func TestGenerateRecommendationsImpactSumMatchesGap(t *testing.T) {
	fns := functions(10)
	for i := range 3 {
		fns[i].CyclomaticComplexity = 20
		fns[i].NestingDepth = 8
	}
	fns[5].Name = "tmp"
	in := newInput(schema.RepositoryAnalysis{Complexity: schema.ComplexityReport{Functions: fns}})
	in.Tooling = &schema.ToolingConfig{HasLinter: true}
	breakdown, results := ScoreDimensions(in)

	recIn := recommendationInput(breakdown, results)
	recs := GenerateRecommendations(recIn)

	expected := 0.0
	for _, d := range schema.AllDimensions {
		if gap := recIn.Acceptable[d] - breakdown[d]; gap > 0 {
			expected += recIn.Weights[d] * float64(gap)
		}
	}
	total := 0.0
	for _, r := range recs {
		total += r.Impact
		assert.Greater(t, r.Impact, 0.0)
	}
	assert.InDelta(t, expected, total, 1e-9)
}
