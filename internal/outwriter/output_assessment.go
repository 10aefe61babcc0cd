package outwriter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAssessmentReport writes the human-readable rendering of a report.
func WriteAssessmentReport(w io.Writer, report schema.AssessmentReport, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	p := &printer{w: w}

	p.println(renderBanner(report.Title, report.RepositoryPath, cfg))
	p.println("")
	writeSummary(p, report, cfg)
	if p.err != nil {
		return p.err
	}

	p.println(heading(cfg, "📊", "Dimensions"))
	if err := writeDimensionTable(w, report.Dimensions, cfg, fmtFloat); err != nil {
		return err
	}

	p.println("")
	p.println(heading(cfg, "🛠️ ", "Recommendations"))
	if len(report.Recommendations) == 0 {
		p.println("All dimensions meet their acceptable scores.")
	} else if err := writeRecommendationTable(w, report.Recommendations, cfg, fmtFloat); err != nil {
		return err
	}

	p.println("")
	writeEffort(p, report.Effort, fmtFloat)
	p.println("")
	writeChecks(p, "Tooling", report.ToolingChecks, cfg)
	writeChecks(p, "GitHub readiness", report.GitHubChecks, cfg)
	writeTestPresence(p, report.TestPresence, fmtFloat)
	if p.err != nil {
		return p.err
	}

	if cfg.Detail {
		if err := writeDetails(w, report.Details, cfg); err != nil {
			return err
		}
	}
	if report.Trends != nil {
		p.println("")
		writeTrendSummary(p, *report.Trends, cfg)
	}
	if len(report.DetectionWarnings) > 0 {
		p.println("")
		p.println(heading(cfg, "⚠️ ", "Warnings"))
		for _, warning := range report.DetectionWarnings {
			p.printf("  - %s\n", warning)
		}
	}
	p.println("")
	p.printf("Assessment %s completed in %v.\n", report.AssessmentID, report.Summary.AssessmentDuration)
	return p.err
}

// writeSummary writes the headline score block.
func writeSummary(p *printer, report schema.AssessmentReport, cfg *contract.Config) {
	s := report.Summary
	grade := string(s.Grade)
	label := contract.GetPlainLabel(s.OverallScore)
	if cfg.UseColors {
		grade = contract.GetColorGrade(s.Grade)
		label = contract.GetColorLabel(s.OverallScore)
	}
	p.printf("Overall score: %d/100  Grade: %s (%s)\n", s.OverallScore, grade, label)
	if s.GradeDescription != "" {
		p.printf("  %s\n", s.GradeDescription)
	}
	p.printf("Target score:  %d  Recommendations: %d\n", s.TargetScore, s.RecommendationCount)
	p.println("")
}

// writeDimensionTable writes one row per dimension in enumeration order.
func writeDimensionTable(w io.Writer, dims []schema.ReportDimension, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Dimension", "Score", "Weight", "Contrib", "Acceptable", "Status"}
	if cfg.Detail {
		headers = append(headers, "Evidence")
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	red, green, yellow := colorizers(cfg)
	var data [][]string
	for _, d := range dims {
		status := d.Status
		switch d.Status {
		case schema.StatusPassing:
			status = green(status)
		case schema.StatusBelow:
			status = red(status)
		default:
			status = yellow(status)
		}
		row := []string{
			d.Label,
			strconv.Itoa(d.Score),
			fmtFloat(d.Weight),
			fmtFloat(d.Contribution),
			strconv.Itoa(d.Acceptable),
			status,
		}
		if cfg.Detail {
			evidence := ""
			if len(d.Evidence) > 0 {
				evidence = contract.TruncatePath(d.Evidence[0], GetMaxTablePathWidth(cfg))
			}
			row = append(row, evidence)
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeRecommendationTable writes the ranked recommendations.
func writeRecommendationTable(w io.Writer, recs []schema.Recommendation, cfg *contract.Config, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Rank", "Priority", "Dimension", "Title", "Impact", "Hours"}
	if cfg.Detail {
		headers = append(headers, "Affected", "Action")
	}
	table.Header(headers)
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignLeft
	})

	width := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, r := range recs {
		priority := string(r.Priority)
		if cfg.UseColors {
			priority = contract.GetColorPriority(r.Priority)
		}
		row := []string{
			strconv.Itoa(i + 1),
			priority,
			schema.DimensionLabel(r.Dimension),
			truncateText(r.Title, width),
			fmtFloat(r.Impact),
			fmtFloat(r.EffortHours),
		}
		if cfg.Detail {
			row = append(row, strconv.Itoa(r.AffectedCount), truncateText(r.Action, width))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeEffort writes the effort plan that closes the gap to the target.
func writeEffort(p *printer, e schema.EffortEstimate, fmtFloat func(float64) string) {
	if e.Gap <= 0 {
		p.printf("Effort: target %d already met (score %d).\n", e.TargetScore, e.CurrentScore)
		return
	}
	p.printf("Effort (%s): %d recommendation(s), %s hours to close a gap of %d points.\n",
		e.Strategy, len(e.Selected), fmtFloat(e.TotalEffortHours), e.Gap)
	if e.TargetReachable {
		p.printf("  Projected score %d reaches the target %d.\n", e.ProjectedScore, e.TargetScore)
	} else {
		p.printf("  Target %d is not reachable; applying everything projects %d.\n", e.TargetScore, e.MaxAchievableScore)
	}
}

// writeChecks writes a compact presence check list on one line.
func writeChecks(p *printer, title string, checks []schema.Check, cfg *contract.Config) {
	if len(checks) == 0 {
		p.printf("%s: no data\n", title)
		return
	}
	parts := make([]string, 0, len(checks))
	present := 0
	for _, c := range checks {
		if c.Present {
			present++
		}
		parts = append(parts, checkMark(c.Present, cfg)+" "+c.Name)
	}
	p.printf("%s (%d/%d): %s\n", title, present, len(checks), strings.Join(parts, ", "))
}

// writeTestPresence writes the test file counts and coverage when known.
func writeTestPresence(p *printer, t schema.TestPresenceInfo, fmtFloat func(float64) string) {
	line := fmt.Sprintf("Tests: %d test file(s) for %d source file(s)", t.TestFileCount, t.SourceFileCount)
	if len(t.Frameworks) > 0 {
		line += ", frameworks: " + strings.Join(t.Frameworks, ", ")
	}
	if t.CoveragePercent != nil {
		line += ", coverage " + fmtFloat(*t.CoveragePercent) + "%"
	}
	p.println(line)
}

// writeDetails writes the drill-down tables.
func writeDetails(w io.Writer, d schema.AssessmentDetails, cfg *contract.Config) error {
	p := &printer{w: w}
	width := GetMaxTablePathWidth(cfg)

	if len(d.LargeFiles) > 0 {
		p.println("")
		p.printf("%s (showing %d of %d)\n", heading(cfg, "📄", "Large files"), len(d.LargeFiles), d.TotalLargeFiles)
		if p.err != nil {
			return p.err
		}
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Path", "LOC", "Issues"})
		var data [][]string
		for _, f := range d.LargeFiles {
			data = append(data, []string{
				contract.TruncatePath(f.Path, width),
				strconv.Itoa(f.LinesOfCode),
				strconv.Itoa(f.IssueCount),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(d.ComplexFunctions) > 0 {
		p.println("")
		p.printf("%s (showing %d of %d)\n", heading(cfg, "🧩", "Complex functions"), len(d.ComplexFunctions), d.TotalComplexFunctions)
		if err := writeFunctionTable(w, d.ComplexFunctions, width); err != nil {
			return err
		}
	}

	if len(d.FunctionsNeedingAttention) > 0 {
		p.println("")
		p.printf("%s (showing %d of %d)\n", heading(cfg, "🔎", "Functions needing attention"), len(d.FunctionsNeedingAttention), d.TotalFunctionsNeedingAttention)
		if err := writeFunctionTable(w, d.FunctionsNeedingAttention, width); err != nil {
			return err
		}
	}

	if len(d.AntiPatternsByCategory) > 0 {
		p.println("")
		p.println(heading(cfg, "🚩", "Anti-patterns"))
		for _, category := range slices.Sorted(maps.Keys(d.AntiPatternsByCategory)) {
			p.printf("  %s: %d\n", category, len(d.AntiPatternsByCategory[category]))
		}
	}
	return p.err
}

// writeFunctionTable writes a list of functions with their metrics and issues.
func writeFunctionTable(w io.Writer, fns []schema.FunctionDetail, width int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Function", "Location", "CC", "Nesting", "Params", "Issues"})
	var data [][]string
	for _, fn := range fns {
		data = append(data, []string{
			fn.Name,
			contract.TruncatePath(fmt.Sprintf("%s:%d", fn.FilePath, fn.StartLine), width),
			strconv.Itoa(fn.CyclomaticComplexity),
			strconv.Itoa(fn.NestingDepth),
			strconv.Itoa(fn.ParameterCount),
			strings.Join(fn.Issues, ", "),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// truncateText shortens free text to maxWidth runes with a trailing ellipsis.
func truncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}
