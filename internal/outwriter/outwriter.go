// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	"github.com/olekukonko/tablewriter"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// BatchRow is one line of a multi-repository summary.
type BatchRow struct {
	Source     string
	Assessment *schema.AIReadinessAssessment
	Err        error
}

// WriteReport prints the text rendering of an assessment report.
func (ow *OutWriter) WriteReport(report schema.AssessmentReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteAssessmentReport(w, report, cfg)
	}, "Wrote report")
}

// WriteExport prints an already serialized assessment.
func (ow *OutWriter) WriteExport(content string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeString(w, content)
	}, successMessage(string(cfg.Output)))
}

// WriteComparison prints a trend between two assessments.
func (ow *OutWriter) WriteComparison(trend schema.TrendResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteComparisonResults(w, trend, cfg)
	}, successMessage(string(cfg.Output)))
}

// WriteCheck prints the CI gate results.
func (ow *OutWriter) WriteCheck(results []schema.CheckResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteCheckResults(w, results, cfg)
	}, successMessage(string(cfg.Output)))
}

// WriteMetrics prints the active scoring model.
func (ow *OutWriter) WriteMetrics(model *schema.MetricsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteMetricsDefinitions(w, model, cfg)
	}, successMessage(string(cfg.Output)))
}

// WriteHistory prints stored assessment records.
func (ow *OutWriter) WriteHistory(records []schema.AssessmentRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHistoryRecords(w, records, cfg)
	}, successMessage(string(cfg.Output)))
}

// WriteBatchSummary prints one line per assessed repository.
func (ow *OutWriter) WriteBatchSummary(rows []BatchRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBatchSummaryTable(w, rows, cfg)
	}, "Wrote summary")
}

// WriteBatch prints every report followed by the summary table into one destination.
func (ow *OutWriter) WriteBatch(reports []schema.AssessmentReport, rows []BatchRow, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		for _, report := range reports {
			if err := WriteAssessmentReport(w, report, cfg); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		return WriteBatchSummaryTable(w, rows, cfg)
	}, "Wrote reports")
}

// WriteBatchSummaryTable writes the multi-repository summary table.
func WriteBatchSummaryTable(w io.Writer, rows []BatchRow, cfg *contract.Config) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Source", "Repository", "Score", "Grade", "Recs", "Hours", "Error"})

	fmtFloat, _ := createFormatters(cfg.Precision)
	width := GetMaxTablePathWidth(cfg)
	failed := 0
	var data [][]string
	for _, r := range rows {
		if r.Err != nil || r.Assessment == nil {
			failed++
			msg := "no assessment"
			if r.Err != nil {
				msg = r.Err.Error()
			}
			data = append(data, []string{contract.TruncatePath(r.Source, width), "", "", "", "", "", truncateText(msg, width)})
			continue
		}
		a := r.Assessment
		grade := string(a.Grade)
		if cfg.UseColors {
			grade = contract.GetColorGrade(a.Grade)
		}
		data = append(data, []string{
			contract.TruncatePath(r.Source, width),
			contract.TruncatePath(a.RepositoryPath, width),
			strconv.Itoa(a.OverallScore),
			grade,
			strconv.Itoa(len(a.Recommendations)),
			fmtFloat(a.EffortEstimate.TotalEffortHours),
			"",
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Assessed %d of %d analyses with %d workers.\n", len(rows)-failed, len(rows), cfg.Workers)
	return err
}
