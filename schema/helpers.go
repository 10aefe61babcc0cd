package schema

import "math"

// ClampScore rounds a raw score to the nearest integer and bounds it to [0,100].
// NaN is treated as 0.
func ClampScore(raw float64) int {
	if math.IsNaN(raw) {
		return 0
	}
	rounded := math.Round(raw)
	switch {
	case rounded < 0:
		return 0
	case rounded > 100:
		return 100
	default:
		return int(rounded)
	}
}

// GradeFor maps an overall score to its grade using GradeBands.
func GradeFor(score int) Grade {
	for _, band := range GradeBands {
		if score >= band.MinScore {
			return band.Grade
		}
	}
	return GradeF
}

// GradeDescription returns a short explanation of a grade.
func GradeDescription(g Grade) string {
	switch g {
	case GradeA:
		return "Excellent - agents can work in this repository with little guidance"
	case GradeB:
		return "Good - minor gaps slow agents down"
	case GradeC:
		return "Fair - agents need supervision in several areas"
	case GradeD:
		return "Poor - structural issues routinely mislead agents"
	default:
		return "Failing - agents are unlikely to make safe changes"
	}
}

// GradeRank orders grades from best (0) to worst (4). Unknown grades rank last.
func GradeRank(g Grade) int {
	switch g {
	case GradeA:
		return 0
	case GradeB:
		return 1
	case GradeC:
		return 2
	case GradeD:
		return 3
	default:
		return 4
	}
}

// DimensionLabel returns the human-readable name of a dimension.
func DimensionLabel(d Dimension) string {
	if label, ok := DimensionLabels[d]; ok {
		return label
	}
	return string(d)
}

// DimensionIndex returns the enumeration position of a dimension, or len(AllDimensions) if unknown.
func DimensionIndex(d Dimension) int {
	for i, dim := range AllDimensions {
		if dim == d {
			return i
		}
	}
	return len(AllDimensions)
}
