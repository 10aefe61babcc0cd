package core

import (
	"github.com/huangsam/aiready/core/algo"
	"github.com/huangsam/aiready/schema"
)

// ReportTitle is the heading of every generated report.
const ReportTitle = "AI Readiness Assessment"

// GenerateReport builds the renderer-agnostic view of an assessment.
func GenerateReport(a *schema.AIReadinessAssessment) schema.AssessmentReport {
	if a == nil {
		a = &schema.AIReadinessAssessment{}
	}

	report := schema.AssessmentReport{
		Title:          ReportTitle,
		AssessmentID:   a.ID,
		RepositoryPath: a.RepositoryPath,
		GeneratedAt:    a.AssessedAt,
		Summary: schema.ReportSummary{
			OverallScore:        a.OverallScore,
			Grade:               a.Grade,
			GradeDescription:    schema.GradeDescription(a.Grade),
			TargetScore:         a.TargetScore,
			RecommendationCount: len(a.Recommendations),
			EstimatedHours:      a.EffortEstimate.TotalEffortHours,
			TargetReachable:     a.EffortEstimate.TargetReachable,
			AssessmentDuration:  a.AssessmentDuration,
		},
		Dimensions:        make([]schema.ReportDimension, 0, len(schema.AllDimensions)),
		Recommendations:   a.Recommendations,
		Effort:            a.EffortEstimate,
		Details:           a.Details,
		TestPresence:      a.TestPresence,
		DetectionWarnings: a.DetectionWarnings,
		Trends:            a.Trends,
	}
	if report.Recommendations == nil {
		report.Recommendations = []schema.Recommendation{}
	}

	acceptable := a.AcceptableScores
	if len(acceptable) == 0 {
		acceptable = schema.GetDefaultAcceptableScores()
	}
	for _, d := range schema.AllDimensions {
		res := a.DimensionScores[d]
		row := schema.ReportDimension{
			Dimension:    d,
			Label:        schema.DimensionLabel(d),
			Score:        a.Breakdown[d],
			Weight:       a.Weights[d],
			Contribution: algo.Contribution(a.Breakdown, a.Weights, d),
			Acceptable:   acceptable[d],
			Evidence:     res.Samples,
		}
		switch {
		case res.NoData:
			row.Status = schema.StatusNoData
		case row.Score >= row.Acceptable:
			row.Status = schema.StatusPassing
		default:
			row.Status = schema.StatusBelow
		}
		report.Dimensions = append(report.Dimensions, row)
	}

	if a.Tooling != nil {
		report.ToolingChecks = a.Tooling.Checks()
	}
	if a.GitHubReadiness != nil {
		report.GitHubChecks = a.GitHubReadiness.Checks()
	}
	return report
}
