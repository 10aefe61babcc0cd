package core

import (
	"github.com/huangsam/aiready/core/algo"
	"github.com/huangsam/aiready/schema"
)

// scoringFormula is the per-dimension density formula shared by the source dimensions.
const scoringFormula = "dimension = 100 * (1 - min(1, penalty * violations / opportunities)); overall = round(sum(weight * dimension))"

// BuildMetricsModel describes the scoring model selected by a resolved configuration.
func BuildMetricsModel(resolved *ResolvedConfig) *schema.MetricsRenderModel {
	model := &schema.MetricsRenderModel{
		Title:        "AI Readiness Scoring Model",
		Description:  "Nine weighted dimensions combine into a 0-100 score and a letter grade",
		Formula:      scoringFormula,
		Thresholds:   resolved.Thresholds,
		TargetScore:  resolved.TargetScore,
		NeutralScore: resolved.NeutralScore,
		GradeBands:   schema.GradeBands,
	}
	for _, d := range schema.AllDimensions {
		effort := resolved.EffortModel[d]
		model.Dimensions = append(model.Dimensions, schema.MetricsDimension{
			Dimension:     d,
			Label:         schema.DimensionLabel(d),
			Weight:        resolved.Weights[d],
			Acceptable:    resolved.AcceptableScores[d],
			PenaltyFactor: algo.PenaltyFactor(d),
			BaseHours:     effort.BaseHours,
			PerItemHours:  effort.PerItemHours,
		})
	}
	return model
}
