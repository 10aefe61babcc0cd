package algo

import (
	"math"
	"sort"

	"github.com/huangsam/aiready/schema"
)

// GreedyStrategy names the only effort selection strategy.
const GreedyStrategy = "greedy-by-impact"

// EstimateEffort selects recommendations by impact descending until their cumulative
// impact closes the gap between current and target. When the target cannot be reached
// every recommendation is selected and TargetReachable is false.
//
// The greedy walk minimizes the number of items, not hours, so it is not an optimal
// cost solution.
func EstimateEffort(current int, recs []schema.Recommendation, target int) schema.EffortEstimate {
	ranked := make([]schema.Recommendation, len(recs))
	copy(ranked, recs)
	RankRecommendations(ranked)

	totalImpact := 0.0
	for _, r := range ranked {
		totalImpact += r.Impact
	}

	est := schema.EffortEstimate{
		Strategy:           GreedyStrategy,
		CurrentScore:       current,
		TargetScore:        target,
		Gap:                max(0, target-current),
		Selected:           []schema.EffortItem{},
		ProjectedScore:     current,
		MaxAchievableScore: schema.ClampScore(float64(current) + totalImpact),
		TargetReachable:    true,
	}
	if current >= target {
		return est
	}

	gap := float64(est.Gap)
	cumulative, hours := 0.0, 0.0
	for _, r := range ranked {
		if cumulative >= gap-impactTolerance {
			break
		}
		cumulative += r.Impact
		hours += r.EffortHours
		est.Selected = append(est.Selected, schema.EffortItem{
			RecommendationID: r.ID,
			Dimension:        r.Dimension,
			Impact:           r.Impact,
			EffortHours:      r.EffortHours,
			CumulativeImpact: cumulative,
		})
	}

	est.CumulativeImpact = cumulative
	est.TotalEffortHours = roundHours(hours)
	est.ProjectedScore = schema.ClampScore(float64(current) + cumulative)
	est.TargetReachable = cumulative >= gap-impactTolerance
	return est
}

// EffortByDimension sums the estimated hours of the selected items per dimension,
// ordered by hours descending.
func EffortByDimension(est schema.EffortEstimate) []schema.EffortItem {
	byDim := map[schema.Dimension]*schema.EffortItem{}
	for _, item := range est.Selected {
		agg, ok := byDim[item.Dimension]
		if !ok {
			agg = &schema.EffortItem{Dimension: item.Dimension}
			byDim[item.Dimension] = agg
		}
		agg.Impact += item.Impact
		agg.EffortHours += item.EffortHours
	}
	out := make([]schema.EffortItem, 0, len(byDim))
	for _, d := range schema.AllDimensions {
		if agg, ok := byDim[d]; ok {
			agg.EffortHours = roundHours(agg.EffortHours)
			out = append(out, *agg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if math.Abs(out[i].EffortHours-out[j].EffortHours) > impactTolerance {
			return out[i].EffortHours > out[j].EffortHours
		}
		return false
	})
	return out
}
