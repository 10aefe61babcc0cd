package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/aiready/core/algo"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs a trend, dispatching based on the output format configured.
func WriteComparisonResults(w io.Writer, trend schema.TrendResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, trend); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVWithHeader(w, []string{"dimension", "change"}, func(cw *csv.Writer) error {
			return writeCSVResultsForComparison(cw, trend)
		}); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeComparisonTable(w, trend, cfg)
	}
	return nil
}

// writeCSVResultsForComparison writes the overall change followed by one row per dimension.
func writeCSVResultsForComparison(w *csv.Writer, trend schema.TrendResult) error {
	if err := w.Write([]string{"overall", strconv.Itoa(trend.ScoreChange)}); err != nil {
		return err
	}
	for _, d := range schema.AllDimensions {
		if err := w.Write([]string{string(d), strconv.Itoa(trend.DimensionChanges[d])}); err != nil {
			return err
		}
	}
	return nil
}

// writeComparisonTable writes the trend headline and the per-dimension deltas.
func writeComparisonTable(w io.Writer, trend schema.TrendResult, cfg *contract.Config) error {
	p := &printer{w: w}
	writeTrendSummary(p, trend, cfg)
	p.println("")
	if p.err != nil {
		return p.err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dimension", "Delta", "Trend"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, d := range schema.AllDimensions {
		delta := trend.DimensionChanges[d]
		data = append(data, []string{
			schema.DimensionLabel(d),
			formatDelta(delta, cfg),
			string(algo.ClassifyTrend(delta)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, line := range trend.Improvements {
		p.printf("  + %s\n", line)
	}
	for _, line := range trend.Regressions {
		p.printf("  - %s\n", line)
	}
	return p.err
}

// writeTrendSummary writes the one-line trend headline.
func writeTrendSummary(p *printer, trend schema.TrendResult, cfg *contract.Config) {
	emoji := "➡️ "
	switch trend.Direction {
	case schema.TrendImproving:
		emoji = "📈"
	case schema.TrendDeclining:
		emoji = "📉"
	}
	p.printf("%s: %s (%d → %d, %s, grade %s)\n",
		heading(cfg, emoji, "Trend"),
		trend.Direction,
		trend.PreviousScore,
		trend.CurrentScore,
		formatDelta(trend.ScoreChange, cfg),
		trend.GradeChange)
	if !trend.PreviousAssessedAt.IsZero() {
		p.printf("  Previous assessment: %s\n", trend.PreviousAssessedAt.Format(contract.DateTimeFormat))
	}
}

// formatDelta renders a signed change with an arrow, green when it improves.
func formatDelta(delta int, cfg *contract.Config) string {
	red, green, yellow := colorizers(cfg)
	switch {
	case delta > 0:
		return green(fmt.Sprintf("%+d ▲", delta))
	case delta < 0:
		return red(fmt.Sprintf("%d ▼", delta))
	default:
		return yellow("0")
	}
}
