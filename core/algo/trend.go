package algo

import (
	"fmt"
	"sort"

	"github.com/huangsam/aiready/schema"
)

// ClassifyTrend maps an overall score change to a direction.
// Changes within the band, inclusive, are stable.
func ClassifyTrend(change int) schema.TrendDirection {
	switch {
	case change > schema.TrendBand:
		return schema.TrendImproving
	case change < -schema.TrendBand:
		return schema.TrendDeclining
	default:
		return schema.TrendStable
	}
}

// CompareAssessments compares the current assessment against a previous one of the
// same repository. Improvements and regressions list the dimensions that moved beyond
// the trend band, largest change first.
func CompareAssessments(current, previous *schema.AIReadinessAssessment) schema.TrendResult {
	change := current.OverallScore - previous.OverallScore
	result := schema.TrendResult{
		PreviousScore:      previous.OverallScore,
		CurrentScore:       current.OverallScore,
		ScoreChange:        change,
		GradeChange:        fmt.Sprintf("%s → %s", previous.Grade, current.Grade),
		Direction:          ClassifyTrend(change),
		DimensionChanges:   make(map[schema.Dimension]int, len(schema.AllDimensions)),
		Improvements:       []string{},
		Regressions:        []string{},
		PreviousAssessedAt: previous.AssessedAt,
	}
	var moved []schema.Dimension
	for _, d := range schema.AllDimensions {
		delta := current.Breakdown[d] - previous.Breakdown[d]
		result.DimensionChanges[d] = delta
		if ClassifyTrend(delta) != schema.TrendStable {
			moved = append(moved, d)
		}
	}
	sort.SliceStable(moved, func(i, j int) bool {
		return abs(result.DimensionChanges[moved[i]]) > abs(result.DimensionChanges[moved[j]])
	})
	for _, d := range moved {
		delta := result.DimensionChanges[d]
		entry := fmt.Sprintf("%s: %+d points", d, delta)
		if delta > 0 {
			result.Improvements = append(result.Improvements, entry)
		} else {
			result.Regressions = append(result.Regressions, entry)
		}
	}
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
