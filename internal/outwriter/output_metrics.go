package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMetricsDefinitions writes the active scoring model, dispatching on the output format.
// This is a static display that does not require an analysis.
func WriteMetricsDefinitions(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSONMetrics(w, model)
	case schema.CSVOut:
		return writeCSVMetrics(w, model, cfg)
	default:
		return writeMetricsText(w, model, cfg)
	}
}

// writeMetricsText displays the scoring model in human-readable text format.
func writeMetricsText(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(max(cfg.Precision, 2))
	p := &printer{w: w}

	p.println(renderBanner(model.Title, model.Description, cfg))
	p.println("")
	p.printf("Formula: %s\n", model.Formula)
	p.printf("Target score: %d  Neutral score (no data): %d\n\n", model.TargetScore, model.NeutralScore)
	if p.err != nil {
		return p.err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Dimension", "Weight", "Penalty", "Acceptable", "Base Hours", "Hours/Item"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, d := range model.Dimensions {
		data = append(data, []string{
			d.Label,
			fmtFloat(d.Weight),
			fmt.Sprintf("%gx", d.PenaltyFactor),
			strconv.Itoa(d.Acceptable),
			fmtFloat(d.BaseHours),
			fmtFloat(d.PerItemHours),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	th := model.Thresholds
	p.println("")
	p.println(heading(cfg, "📏", "Thresholds"))
	p.printf("  Large file:          > %d lines\n", th.LargeFile)
	p.printf("  High complexity:     > %d cyclomatic\n", th.HighComplexity)
	p.printf("  Deep nesting:        > %d levels\n", th.DeepNesting)
	p.printf("  Long parameter list: > %d parameters\n", th.LongParameterList)
	p.printf("  Large function:      > %d lines\n", th.LargeFunction)

	p.println("")
	p.println(heading(cfg, "🎓", "Grades"))
	bands := make([]string, 0, len(model.GradeBands)+1)
	for _, b := range model.GradeBands {
		bands = append(bands, fmt.Sprintf("%s >= %d", b.Grade, b.MinScore))
	}
	bands = append(bands, fmt.Sprintf("%s otherwise", schema.GradeF))
	p.printf("  %s\n", strings.Join(bands, ", "))
	return p.err
}
