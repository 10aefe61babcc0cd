package algo

import (
	"sort"
	"strings"

	"github.com/huangsam/aiready/schema"
)

// Issue labels attached to functions in the detail lists.
const (
	IssueHighComplexity    = "high complexity"
	IssueDeepNesting       = "deep nesting"
	IssueLongParameterList = "long parameter list"
	IssueLargeFunction     = "large function"
)

// uncategorized groups anti-patterns reported without a category.
const uncategorized = "uncategorized"

// DefaultDetailLimits returns the bounds applied to the detail lists.
func DefaultDetailLimits() schema.DetailLimits {
	return schema.DetailLimits{
		LargeFiles:                schema.MaxLargeFiles,
		ComplexFunctions:          schema.MaxComplexFunctions,
		FunctionsNeedingAttention: schema.MaxFunctionsNeedingAttention,
	}
}

// BuildDetails builds the drill-down lists of an assessment: large files, the most
// complex functions, functions with more than one issue, and anti-patterns by category.
func BuildDetails(a schema.RepositoryAnalysis, th schema.AssessmentThresholds) schema.AssessmentDetails {
	limits := DefaultDetailLimits()
	details := schema.AssessmentDetails{
		LargeFiles:                []schema.LargeFileDetail{},
		ComplexFunctions:          []schema.FunctionDetail{},
		FunctionsNeedingAttention: []schema.FunctionDetail{},
		AntiPatternsByCategory:    map[string][]schema.AntiPattern{},
		Limits:                    limits,
	}

	issuesByFile := map[string]int{}
	for _, ap := range a.AntiPatterns {
		issuesByFile[normalizePath(ap.FilePath)]++
		category := strings.ToLower(strings.TrimSpace(ap.Category))
		if category == "" {
			category = uncategorized
		}
		details.AntiPatternsByCategory[category] = append(details.AntiPatternsByCategory[category], ap)
	}
	for category, list := range details.AntiPatternsByCategory {
		sort.SliceStable(list, func(i, j int) bool {
			if list[i].FilePath != list[j].FilePath {
				return list[i].FilePath < list[j].FilePath
			}
			if list[i].Line != list[j].Line {
				return list[i].Line < list[j].Line
			}
			return list[i].Description < list[j].Description
		})
		details.AntiPatternsByCategory[category] = list
	}

	for _, f := range CollectFiles(a) {
		if f.LinesOfCode > th.LargeFile {
			details.LargeFiles = append(details.LargeFiles, schema.LargeFileDetail{
				Path:        f.Path,
				LinesOfCode: f.LinesOfCode,
				IssueCount:  issuesByFile[f.Path],
			})
		}
	}
	sort.SliceStable(details.LargeFiles, func(i, j int) bool {
		if details.LargeFiles[i].LinesOfCode != details.LargeFiles[j].LinesOfCode {
			return details.LargeFiles[i].LinesOfCode > details.LargeFiles[j].LinesOfCode
		}
		return details.LargeFiles[i].Path < details.LargeFiles[j].Path
	})
	details.TotalLargeFiles = len(details.LargeFiles)
	details.LargeFiles = truncate(details.LargeFiles, limits.LargeFiles)

	var complexFns, attention []schema.FunctionDetail
	for _, raw := range a.Complexity.Functions {
		fn := sanitizeFunction(raw)
		detail := functionDetail(fn, th)
		if fn.CyclomaticComplexity > th.HighComplexity {
			complexFns = append(complexFns, detail)
		}
		if len(detail.Issues) > 0 {
			attention = append(attention, detail)
		}
	}
	sort.SliceStable(complexFns, func(i, j int) bool {
		a, b := complexFns[i], complexFns[j]
		if a.CyclomaticComplexity != b.CyclomaticComplexity {
			return a.CyclomaticComplexity > b.CyclomaticComplexity
		}
		if a.CognitiveComplexity != b.CognitiveComplexity {
			return a.CognitiveComplexity > b.CognitiveComplexity
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		return a.Name < b.Name
	})
	sort.SliceStable(attention, func(i, j int) bool {
		if len(attention[i].Issues) != len(attention[j].Issues) {
			return len(attention[i].Issues) > len(attention[j].Issues)
		}
		return attention[i].CyclomaticComplexity > attention[j].CyclomaticComplexity
	})

	details.TotalComplexFunctions = len(complexFns)
	details.TotalFunctionsNeedingAttention = len(attention)
	if complexFns != nil {
		details.ComplexFunctions = truncate(complexFns, limits.ComplexFunctions)
	}
	if attention != nil {
		details.FunctionsNeedingAttention = truncate(attention, limits.FunctionsNeedingAttention)
	}
	return details
}

// functionDetail converts a function into its detail view with issue labels.
func functionDetail(fn schema.FunctionComplexity, th schema.AssessmentThresholds) schema.FunctionDetail {
	issues := []string{}
	if fn.CyclomaticComplexity > th.HighComplexity {
		issues = append(issues, IssueHighComplexity)
	}
	if fn.NestingDepth > th.DeepNesting {
		issues = append(issues, IssueDeepNesting)
	}
	if fn.ParameterCount > th.LongParameterList {
		issues = append(issues, IssueLongParameterList)
	}
	length := functionLength(fn)
	if length > th.LargeFunction {
		issues = append(issues, IssueLargeFunction)
	}
	return schema.FunctionDetail{
		Name:                 fn.Name,
		FilePath:             fn.FilePath,
		StartLine:            fn.StartLine,
		LinesOfCode:          length,
		CyclomaticComplexity: fn.CyclomaticComplexity,
		CognitiveComplexity:  fn.CognitiveComplexity,
		NestingDepth:         fn.NestingDepth,
		ParameterCount:       fn.ParameterCount,
		Issues:               issues,
	}
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
