package algo

import (
	"math"

	"github.com/huangsam/aiready/schema"
)

// WeightedScore is the unrounded weighted sum of the breakdown.
// Missing dimensions contribute zero.
func WeightedScore(breakdown schema.FullScoreBreakdown, weights schema.DimensionWeights) float64 {
	total := 0.0
	for _, d := range schema.AllDimensions {
		total += weights[d] * float64(breakdown[d])
	}
	return total
}

// OverallScore returns the weighted sum of the breakdown rounded to [0,100].
// Weights are expected to sum to 1; the result is clamped either way.
func OverallScore(breakdown schema.FullScoreBreakdown, weights schema.DimensionWeights) int {
	return schema.ClampScore(WeightedScore(breakdown, weights))
}

// Contribution returns the points a dimension adds to the overall score.
func Contribution(breakdown schema.FullScoreBreakdown, weights schema.DimensionWeights, d schema.Dimension) float64 {
	return math.Round(weights[d]*float64(breakdown[d])*100) / 100
}
