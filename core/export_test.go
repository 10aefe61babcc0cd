package core

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAssessment(t *testing.T) *schema.AIReadinessAssessment {
	t.Helper()
	analysis := scenarioAnalysis(3, true)
	analysis.AntiPatterns = []schema.AntiPattern{
		{FilePath: "internal/parser/parser.go", Category: "god-object", Description: "parser does everything", Line: 1},
	}
	a, err := newTestAssessor(nil).AssessFromAnalysis(analysis, fullTooling(), &schema.GitHubReadinessConfig{HasReadme: true}, nil)
	require.NoError(t, err)
	return a
}

func TestExportAssessmentJSONRoundTrip(t *testing.T) {
	a := sampleAssessment(t)

	out, err := ExportAssessment(a, ExportOptions{Format: schema.JSONOut})
	require.NoError(t, err)

	decoded, err := ImportAssessment([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, a.OverallScore, decoded.OverallScore)
	assert.Equal(t, a.Grade, decoded.Grade)
	require.Len(t, decoded.Breakdown, len(schema.AllDimensions))
	for _, d := range schema.AllDimensions {
		assert.Equal(t, a.Breakdown[d], decoded.Breakdown[d], d)
	}
	assert.Equal(t, a.Recommendations, decoded.Recommendations)
	assert.Equal(t, a.EffortEstimate, decoded.EffortEstimate)
	assert.Equal(t, a.Weights, decoded.Weights)
	assert.True(t, a.AssessedAt.Equal(decoded.AssessedAt))
}

func TestExportAssessmentCSV(t *testing.T) {
	a := sampleAssessment(t)

	out, err := ExportAssessment(a, ExportOptions{Format: schema.CSVOut})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records)
	assert.Equal(t, []string{"record_type", "name", "score", "weight", "value"}, records[0])

	counts := map[string]int{}
	for _, rec := range records[1:] {
		require.Len(t, rec, 5)
		counts[rec[0]]++
		if rec[0] == "overall" {
			assert.Equal(t, string(a.Grade), rec[4])
		}
	}
	assert.Equal(t, len(schema.AllDimensions), counts["dimension"])
	assert.Equal(t, len(a.Recommendations), counts["recommendation"])
	assert.Equal(t, 1, counts["overall"])
	assert.Equal(t, 4, counts["detail"])
	assert.NotContains(t, out, "parser does everything", "detail lists are summarized, not listed")
}

func TestExportAssessmentMarkdown(t *testing.T) {
	a := sampleAssessment(t)

	out, err := ExportAssessment(a, ExportOptions{Format: schema.MarkdownOut})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# "+ReportTitle))
	assert.Contains(t, out, "| Complexity Management | 40 |")
	assert.Contains(t, out, "## Recommendations")
	assert.Contains(t, out, "Large file `internal/parser/parser.go`: 800 lines, 1 issue(s)")
}

func TestExportAssessmentHTMLEscapes(t *testing.T) {
	a := sampleAssessment(t)
	a.RepositoryPath = "<script>alert(1)</script>"

	out, err := ExportAssessment(a, ExportOptions{Format: schema.HTMLOut})
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>"+ReportTitle+"</h1>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<script>")
}

func TestExportAssessmentUnsupportedFormat(t *testing.T) {
	a := sampleAssessment(t)
	for _, format := range []schema.OutputMode{schema.TextOut, "xml", ""} {
		out, err := ExportAssessment(a, ExportOptions{Format: format})
		assert.ErrorIs(t, err, ErrUnsupportedFormat, format)
		assert.Empty(t, out)
	}
}

func TestExportAssessmentFormatIsCaseInsensitive(t *testing.T) {
	out, err := ExportAssessment(sampleAssessment(t), ExportOptions{Format: "JSON"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"))
}

func TestGenerateReport(t *testing.T) {
	a := sampleAssessment(t)
	report := GenerateReport(a)

	assert.Equal(t, ReportTitle, report.Title)
	assert.Equal(t, a.OverallScore, report.Summary.OverallScore)
	assert.Equal(t, schema.GradeDescription(a.Grade), report.Summary.GradeDescription)
	assert.Equal(t, len(a.Recommendations), report.Summary.RecommendationCount)
	require.Len(t, report.Dimensions, len(schema.AllDimensions))
	assert.Len(t, report.ToolingChecks, 8)
	assert.Len(t, report.GitHubChecks, 9)

	for i, d := range report.Dimensions {
		assert.Equal(t, schema.AllDimensions[i], d.Dimension)
	}
	complexity := report.Dimensions[schema.DimensionIndex(schema.ComplexityManagement)]
	assert.Equal(t, schema.StatusBelow, complexity.Status)
	assert.Equal(t, "Complexity Management", complexity.Label)
	assert.InDelta(t, 0.15*40, complexity.Contribution, 1e-9)

	tooling := report.Dimensions[schema.DimensionIndex(schema.ToolingSupport)]
	assert.Equal(t, schema.StatusPassing, tooling.Status)

	docs := report.Dimensions[schema.DimensionIndex(schema.DocumentationCoverage)]
	assert.Equal(t, schema.StatusNoData, docs.Status)
}

func TestGenerateReportNil(t *testing.T) {
	report := GenerateReport(nil)
	assert.Len(t, report.Dimensions, len(schema.AllDimensions))
	assert.NotNil(t, report.Recommendations)
}
