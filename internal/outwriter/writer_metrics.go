package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
)

// writeJSONMetrics writes the scoring model in JSON format.
func writeJSONMetrics(w io.Writer, model *schema.MetricsRenderModel) error {
	return writeJSON(w, model)
}

// writeCSVMetrics writes one row per dimension of the scoring model.
func writeCSVMetrics(w io.Writer, model *schema.MetricsRenderModel, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(max(cfg.Precision, 2))
	header := []string{"dimension", "label", "weight", "penalty_factor", "acceptable", "base_hours", "per_item_hours"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, d := range model.Dimensions {
			record := []string{
				string(d.Dimension),
				d.Label,
				fmtFloat(d.Weight),
				strconv.FormatFloat(d.PenaltyFactor, 'g', -1, 64),
				strconv.Itoa(d.Acceptable),
				fmtFloat(d.BaseHours),
				fmtFloat(d.PerItemHours),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
