package algo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/huangsam/aiready/schema"
)

// Priority cutoffs on the dimension score.
const (
	criticalBelow = 40
	highBelow     = 60
)

// impactTolerance treats impacts closer than this as equal when ranking.
const impactTolerance = 1e-9

// RecommendationInput is everything the recommendation generator reads.
type RecommendationInput struct {
	Results     map[schema.Dimension]schema.DimensionScoreResult
	Breakdown   schema.FullScoreBreakdown
	Weights     schema.DimensionWeights
	Acceptable  map[schema.Dimension]int
	Thresholds  schema.AssessmentThresholds
	EffortModel map[schema.Dimension]schema.EffortWeight
}

// finding is one concrete problem behind a low dimension score.
type finding struct {
	title       string
	description string
	action      string
	affected    int
}

// PriorityFor maps a dimension score to a recommendation priority.
func PriorityFor(score int) schema.Priority {
	switch {
	case score < criticalBelow:
		return schema.PriorityCritical
	case score < highBelow:
		return schema.PriorityHigh
	default:
		return schema.PriorityMedium
	}
}

// GenerateRecommendations emits recommendations for every dimension scoring below its
// acceptable cutoff, ranked by impact descending. Impact is the weighted gap to the
// cutoff; a dimension with several findings splits its impact by affected count.
// Ties keep dimension enumeration order and then emission order.
func GenerateRecommendations(in RecommendationInput) []schema.Recommendation {
	recs := []schema.Recommendation{}
	for _, d := range schema.AllDimensions {
		score := in.Breakdown[d]
		acceptable, ok := in.Acceptable[d]
		if !ok || score >= acceptable {
			continue
		}
		impact := in.Weights[d] * float64(acceptable-score)
		if impact <= 0 {
			continue
		}

		findings := findingsFor(d, in.Results[d], in.Thresholds, acceptable)
		shares := splitImpact(impact, findings)
		model := in.EffortModel[d]
		for i, f := range findings {
			recs = append(recs, schema.Recommendation{
				ID:            fmt.Sprintf("%s-%d", d, i+1),
				Dimension:     d,
				Priority:      PriorityFor(score),
				Title:         f.title,
				Description:   f.description,
				Action:        f.action,
				AffectedCount: f.affected,
				Impact:        shares[i],
				EffortHours:   roundHours(model.BaseHours + model.PerItemHours*float64(f.affected)),
			})
		}
	}
	RankRecommendations(recs)
	return recs
}

// RankRecommendations sorts recommendations by impact descending, then by
// dimension enumeration order. The sort is stable so emission order breaks the rest.
func RankRecommendations(recs []schema.Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if math.Abs(recs[i].Impact-recs[j].Impact) > impactTolerance {
			return recs[i].Impact > recs[j].Impact
		}
		return schema.DimensionIndex(recs[i].Dimension) < schema.DimensionIndex(recs[j].Dimension)
	})
}

// splitImpact distributes impact over findings proportionally to their affected counts.
func splitImpact(impact float64, findings []finding) []float64 {
	shares := make([]float64, len(findings))
	total := 0
	for _, f := range findings {
		total += f.affected
	}
	for i, f := range findings {
		if total == 0 {
			shares[i] = impact / float64(len(findings))
		} else {
			shares[i] = impact * float64(f.affected) / float64(total)
		}
	}
	return shares
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

func metric(res schema.DimensionScoreResult, key string) int {
	return int(math.Round(res.Metrics[key]))
}

// findingsFor turns the evidence of a dimension into one or more findings.
// It always returns at least one finding.
func findingsFor(d schema.Dimension, res schema.DimensionScoreResult, th schema.AssessmentThresholds, acceptable int) []finding {
	var out []finding
	add := func(count int, title, description, action string) {
		if count > 0 {
			out = append(out, finding{title: title, description: description, action: action, affected: count})
		}
	}

	if res.NoData {
		return []finding{{
			title:       fmt.Sprintf("Measure %s", strings.ToLower(schema.DimensionLabel(d))),
			description: fmt.Sprintf("No data was available to score %s, so it was assigned a neutral score.", schema.DimensionLabel(d)),
			action:      noDataAction(d),
		}}
	}

	switch d {
	case schema.StructuralQuality:
		add(metric(res, "largeFiles"),
			fmt.Sprintf("Split %d oversized files", metric(res, "largeFiles")),
			fmt.Sprintf("%d files exceed %d lines, which makes them hard for agents to load and reason about.", metric(res, "largeFiles"), th.LargeFile),
			"Split large files into focused modules with a single responsibility.")
	case schema.ComplexityManagement:
		add(metric(res, "highComplexity"),
			fmt.Sprintf("Reduce complexity of %d functions", metric(res, "highComplexity")),
			fmt.Sprintf("%d functions exceed cyclomatic complexity %d.", metric(res, "highComplexity"), th.HighComplexity),
			"Extract branches into helper functions and replace conditionals with early returns.")
		add(metric(res, "deepNesting"),
			fmt.Sprintf("Flatten %d deeply nested functions", metric(res, "deepNesting")),
			fmt.Sprintf("%d functions nest deeper than %d levels.", metric(res, "deepNesting"), th.DeepNesting),
			"Use guard clauses and extract inner loops to reduce nesting.")
	case schema.DocumentationCoverage:
		add(metric(res, "undocumentedFunctions"),
			fmt.Sprintf("Document %d functions", metric(res, "undocumentedFunctions")),
			fmt.Sprintf("%d functions have no documentation comment.", metric(res, "undocumentedFunctions")),
			"Add doc comments that state purpose, inputs and failure modes.")
		add(metric(res, "documentationFindings"),
			fmt.Sprintf("Resolve %d documentation findings", metric(res, "documentationFindings")),
			fmt.Sprintf("The analyzer reported %d documentation problems.", metric(res, "documentationFindings")),
			"Fill in missing module and API documentation.")
	case schema.TestCoverage:
		if cov, ok := res.Metrics["coveragePercent"]; ok {
			add(max(1, res.Violations),
				"Raise test coverage",
				fmt.Sprintf("Test coverage is %.1f%%, below the acceptable level of %d%%.", cov, acceptable),
				"Add tests for untested code paths, starting with the most changed modules.")
		} else if untested := metric(res, "untestedFiles"); untested > 0 {
			add(untested,
				fmt.Sprintf("Add tests for %d source files", untested),
				fmt.Sprintf("%d source files have no matching test file.", untested),
				"Create a test file next to each source file covering its public behavior.")
		} else {
			add(max(1, res.Violations),
				"Add tests",
				fmt.Sprintf("Only %d test files were found for %d source files.", metric(res, "testFiles"), metric(res, "sourceFiles")),
				"Add unit tests so agents can verify their changes.")
		}
	case schema.TypeAnnotations:
		add(metric(res, "untypedFunctions"),
			fmt.Sprintf("Annotate %d functions with types", metric(res, "untypedFunctions")),
			fmt.Sprintf("%d functions lack type annotations.", metric(res, "untypedFunctions")),
			"Add parameter and return type annotations.")
		add(metric(res, "dynamicallyTypedFiles"),
			fmt.Sprintf("Add type information to %d files", metric(res, "dynamicallyTypedFiles")),
			fmt.Sprintf("%d source files are written in a dynamically typed language.", metric(res, "dynamicallyTypedFiles")),
			"Adopt gradual typing and enable a type checker in CI.")
		add(metric(res, "typingFindings"),
			fmt.Sprintf("Resolve %d type safety findings", metric(res, "typingFindings")),
			fmt.Sprintf("The analyzer reported %d type safety problems.", metric(res, "typingFindings")),
			"Replace untyped escapes with precise types.")
	case schema.NamingClarity:
		add(metric(res, "unclearNames"),
			fmt.Sprintf("Rename %d unclear functions", metric(res, "unclearNames")),
			fmt.Sprintf("%d functions have generic, numbered or very short names.", metric(res, "unclearNames")),
			"Rename functions to describe what they do.")
		add(metric(res, "namingFindings"),
			fmt.Sprintf("Resolve %d naming findings", metric(res, "namingFindings")),
			fmt.Sprintf("The analyzer reported %d naming problems.", metric(res, "namingFindings")),
			"Apply consistent naming conventions.")
	case schema.ArchitecturalClarity:
		add(metric(res, "affectedFiles"),
			fmt.Sprintf("Untangle %d files with architectural findings", metric(res, "affectedFiles")),
			fmt.Sprintf("%d architectural findings affect %d files.", metric(res, "architectureFindings"), metric(res, "affectedFiles")),
			"Break dependency cycles and split god objects along clear module boundaries.")
	case schema.ToolingSupport:
		add(len(res.Samples),
			fmt.Sprintf("Add %d missing tools", len(res.Samples)),
			fmt.Sprintf("Missing tooling: %s.", strings.Join(res.Samples, ", ")),
			"Configure the missing tools and commit their configuration.")
	case schema.GitHubReadiness:
		add(len(res.Samples),
			fmt.Sprintf("Add %d missing repository files", len(res.Samples)),
			fmt.Sprintf("Missing collaboration setup: %s.", strings.Join(res.Samples, ", ")),
			"Add the missing repository files and workflows.")
	}

	if len(out) == 0 {
		out = append(out, finding{
			title:       fmt.Sprintf("Improve %s", strings.ToLower(schema.DimensionLabel(d))),
			description: fmt.Sprintf("%s scores %d, below the acceptable level of %d.", schema.DimensionLabel(d), res.Score, acceptable),
			action:      "Review the evidence for this dimension and address the largest offenders first.",
			affected:    res.Violations,
		})
	}
	return out
}

func noDataAction(d schema.Dimension) string {
	switch d {
	case schema.ToolingSupport:
		return "Run tooling detection against the repository."
	case schema.GitHubReadiness:
		return "Run repository detection against the repository."
	case schema.DocumentationCoverage:
		return "Configure the analyzer to report documentation flags per function."
	case schema.TypeAnnotations:
		return "Configure the analyzer to report type annotation flags per function."
	default:
		return "Provide analysis data for this dimension."
	}
}
