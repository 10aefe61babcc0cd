package core

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
)

// ErrUnsupportedFormat is returned when an export format has no serializer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// csvHeader is the header row of the CSV export.
var csvHeader = []string{"record_type", "name", "score", "weight", "value"}

// ExportOptions selects how an assessment is serialized.
type ExportOptions struct {
	Format schema.OutputMode
}

// ExportAssessment serializes an assessment to json, csv, markdown or html.
// Nothing is returned for an unsupported format.
func ExportAssessment(a *schema.AIReadinessAssessment, opts ExportOptions) (string, error) {
	format := schema.OutputMode(strings.ToLower(string(opts.Format)))
	if _, ok := schema.ValidExportFormats[format]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, opts.Format)
	}
	if a == nil {
		return "", errors.New("cannot export a nil assessment")
	}

	switch format {
	case schema.JSONOut:
		return exportJSON(a)
	case schema.CSVOut:
		return exportCSV(a)
	case schema.MarkdownOut:
		return exportMarkdown(GenerateReport(a)), nil
	default:
		return exportHTML(GenerateReport(a))
	}
}

// ImportAssessment decodes an assessment produced by the JSON export.
func ImportAssessment(data []byte) (*schema.AIReadinessAssessment, error) {
	var a schema.AIReadinessAssessment
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %w", err)
	}
	return &a, nil
}

func exportJSON(a *schema.AIReadinessAssessment) (string, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// exportJSONList encodes several assessments as one JSON array.
func exportJSONList(list []*schema.AIReadinessAssessment) (string, error) {
	if list == nil {
		list = []*schema.AIReadinessAssessment{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return string(data) + "\n", nil
}

// exportCSV flattens the assessment into record_type,name,score,weight,value rows.
// Recommendation rows carry the dimension score in score and the impact in weight.
// Detail lists are summarized as counts.
func exportCSV(a *schema.AIReadinessAssessment) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	itoa := strconv.Itoa
	ftoa := func(f float64) string { return strconv.FormatFloat(f, 'f', 4, 64) }

	rows := [][]string{
		csvHeader,
		{"metadata", "id", "", "", a.ID},
		{"metadata", "repository", "", "", a.RepositoryPath},
		{"metadata", "assessed_at", "", "", a.AssessedAt.Format(contract.DateTimeFormat)},
		{"metadata", "duration_ms", "", "", strconv.FormatInt(a.AssessmentDuration.Milliseconds(), 10)},
		{"metadata", "target_score", itoa(a.TargetScore), "", ""},
		{"overall", "overall", itoa(a.OverallScore), ftoa(a.Weights.Sum()), string(a.Grade)},
	}
	for _, d := range schema.AllDimensions {
		status := schema.StatusPassing
		if res := a.DimensionScores[d]; res.NoData {
			status = schema.StatusNoData
		} else if acceptable, ok := a.AcceptableScores[d]; ok && a.Breakdown[d] < acceptable {
			status = schema.StatusBelow
		}
		rows = append(rows, []string{"dimension", string(d), itoa(a.Breakdown[d]), ftoa(a.Weights[d]), status})
	}
	for _, r := range a.Recommendations {
		rows = append(rows, []string{"recommendation", r.ID, itoa(a.Breakdown[r.Dimension]), ftoa(r.Impact), r.Title})
	}
	rows = append(rows,
		[]string{"effort", "total_hours", "", "", ftoa(a.EffortEstimate.TotalEffortHours)},
		[]string{"effort", "projected_score", itoa(a.EffortEstimate.ProjectedScore), "", strconv.FormatBool(a.EffortEstimate.TargetReachable)},
		[]string{"detail", "large_files", "", "", itoa(a.Details.TotalLargeFiles)},
		[]string{"detail", "complex_functions", "", "", itoa(a.Details.TotalComplexFunctions)},
		[]string{"detail", "functions_needing_attention", "", "", itoa(a.Details.TotalFunctionsNeedingAttention)},
		[]string{"detail", "anti_patterns", "", "", itoa(a.SourceAnalysis.AntiPatternCount)},
	)

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.String(), nil
}

func exportMarkdown(r schema.AssessmentReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Title)
	fmt.Fprintf(&sb, "- **Repository:** %s\n", r.RepositoryPath)
	fmt.Fprintf(&sb, "- **Assessment:** %s\n", r.AssessmentID)
	fmt.Fprintf(&sb, "- **Assessed at:** %s\n", r.GeneratedAt.Format(contract.DateTimeFormat))
	fmt.Fprintf(&sb, "- **Overall score:** %d/100\n", r.Summary.OverallScore)
	fmt.Fprintf(&sb, "- **Grade:** %s (%s)\n", r.Summary.Grade, r.Summary.GradeDescription)
	fmt.Fprintf(&sb, "- **Target score:** %d\n\n", r.Summary.TargetScore)

	sb.WriteString("## Dimensions\n\n")
	sb.WriteString("| Dimension | Score | Weight | Contribution | Status |\n")
	sb.WriteString("|---|---:|---:|---:|---|\n")
	for _, d := range r.Dimensions {
		fmt.Fprintf(&sb, "| %s | %d | %.2f | %.2f | %s |\n", d.Label, d.Score, d.Weight, d.Contribution, d.Status)
	}
	sb.WriteString("\n")

	sb.WriteString("## Recommendations\n\n")
	if len(r.Recommendations) == 0 {
		sb.WriteString("No recommendations. Every dimension meets its acceptable score.\n\n")
	}
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&sb, "%d. **%s** (%s, %s)\n", i+1, rec.Title, rec.Priority, schema.DimensionLabel(rec.Dimension))
		fmt.Fprintf(&sb, "   - %s\n", rec.Description)
		fmt.Fprintf(&sb, "   - Action: %s\n", rec.Action)
		fmt.Fprintf(&sb, "   - Impact: +%.2f points, effort: %.2fh\n", rec.Impact, rec.EffortHours)
	}
	if len(r.Recommendations) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("## Effort\n\n")
	fmt.Fprintf(&sb, "Reaching %d from %d takes an estimated %.2f hours across %d recommendation(s) (%s).\n",
		r.Effort.TargetScore, r.Effort.CurrentScore, r.Effort.TotalEffortHours, len(r.Effort.Selected), r.Effort.Strategy)
	if !r.Effort.TargetReachable {
		fmt.Fprintf(&sb, "The target is not reachable with the current recommendations; the ceiling is %d.\n", r.Effort.MaxAchievableScore)
	}
	sb.WriteString("\n")

	if len(r.Details.LargeFiles) > 0 || len(r.Details.ComplexFunctions) > 0 {
		sb.WriteString("## Details\n\n")
		for _, f := range r.Details.LargeFiles {
			fmt.Fprintf(&sb, "- Large file `%s`: %d lines, %d issue(s)\n", f.Path, f.LinesOfCode, f.IssueCount)
		}
		for _, fn := range r.Details.ComplexFunctions {
			fmt.Fprintf(&sb, "- Complex function `%s` in `%s`: cyclomatic %d\n", fn.Name, fn.FilePath, fn.CyclomaticComplexity)
		}
		sb.WriteString("\n")
	}

	if r.Trends != nil {
		sb.WriteString("## Trend\n\n")
		fmt.Fprintf(&sb, "Score change %+d (%s), grade %s.\n", r.Trends.ScoreChange, r.Trends.Direction, r.Trends.GradeChange)
		for _, s := range r.Trends.Improvements {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
		for _, s := range r.Trends.Regressions {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
		sb.WriteString("\n")
	}

	for _, w := range r.DetectionWarnings {
		fmt.Fprintf(&sb, "> Warning: %s\n", w)
	}
	return sb.String()
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"label":  schema.DimensionLabel,
	"hours":  func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
	"weight": func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) },
	"when":   func(t time.Time) string { return t.Format(contract.DateTimeFormat) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Repository: <code>{{.RepositoryPath}}</code> assessed at {{when .GeneratedAt}}</p>
<p class="score">Overall score: <strong>{{.Summary.OverallScore}}</strong>/100, grade <strong>{{.Summary.Grade}}</strong> ({{.Summary.GradeDescription}})</p>
<h2>Dimensions</h2>
<table>
<tr><th>Dimension</th><th>Score</th><th>Weight</th><th>Status</th></tr>
{{range .Dimensions}}<tr><td>{{.Label}}</td><td>{{.Score}}</td><td>{{weight .Weight}}</td><td>{{.Status}}</td></tr>
{{end}}</table>
<h2>Recommendations</h2>
{{if .Recommendations}}<ol>
{{range .Recommendations}}<li><strong>{{.Title}}</strong> ({{.Priority}}, {{label .Dimension}}): {{.Description}} {{.Action}}</li>
{{end}}</ol>{{else}}<p>No recommendations.</p>{{end}}
<h2>Effort</h2>
<p>{{hours .Effort.TotalEffortHours}} hours to reach {{.Effort.TargetScore}} (projected {{.Effort.ProjectedScore}}, ceiling {{.Effort.MaxAchievableScore}}).</p>
{{with .Trends}}<h2>Trend</h2>
<p>{{.GradeChange}}, {{.Direction}}</p>
{{end}}</body>
</html>
`))

func exportHTML(r schema.AssessmentReport) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}
