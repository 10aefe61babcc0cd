package algo

import (
	"fmt"
	"sort"

	"github.com/huangsam/aiready/schema"
)

// Penalty multipliers applied to violation density. A multiplier of 2 means a
// dimension reaches zero once half of its opportunities violate.
const (
	strictPenalty  = 2.0
	lenientPenalty = 1.0
)

// PenaltyFactor returns the density multiplier applied to a dimension.
func PenaltyFactor(d schema.Dimension) float64 {
	switch d {
	case schema.StructuralQuality, schema.ComplexityManagement, schema.NamingClarity, schema.ArchitecturalClarity:
		return strictPenalty
	default:
		return lenientPenalty
	}
}

// repositoryLevel is the evidence key for findings without a file path.
const repositoryLevel = "(repository)"

// ScoringInput is everything the dimension scorer reads.
type ScoringInput struct {
	Analysis     schema.RepositoryAnalysis
	Tooling      *schema.ToolingConfig
	GitHub       *schema.GitHubReadinessConfig
	Tests        schema.TestPresenceInfo
	Thresholds   schema.AssessmentThresholds
	NeutralScore int
}

// scoringContext holds the derived views of the analysis shared by all scorers.
type scoringContext struct {
	in        ScoringInput
	functions []schema.FunctionComplexity
	files     []schema.SourceFile
	sources   []schema.SourceFile
	testFiles []schema.SourceFile
}

// ScoreDimensions scores every dimension. The breakdown always holds all dimensions.
func ScoreDimensions(in ScoringInput) (schema.FullScoreBreakdown, map[schema.Dimension]schema.DimensionScoreResult) {
	ctx := newScoringContext(in)

	scorers := map[schema.Dimension]func(*scoringContext) schema.DimensionScoreResult{
		schema.StructuralQuality:     scoreStructural,
		schema.ComplexityManagement:  scoreComplexity,
		schema.DocumentationCoverage: scoreDocumentation,
		schema.TestCoverage:          scoreTests,
		schema.TypeAnnotations:       scoreTypes,
		schema.NamingClarity:         scoreNaming,
		schema.ArchitecturalClarity:  scoreArchitecture,
		schema.ToolingSupport:        scoreTooling,
		schema.GitHubReadiness:       scoreGitHub,
	}

	breakdown := make(schema.FullScoreBreakdown, len(schema.AllDimensions))
	results := make(map[schema.Dimension]schema.DimensionScoreResult, len(schema.AllDimensions))
	for _, d := range schema.AllDimensions {
		res := scorers[d](ctx)
		res.Dimension = d
		breakdown[d] = res.Score
		results[d] = res
	}
	return breakdown, results
}

func newScoringContext(in ScoringInput) *scoringContext {
	ctx := &scoringContext{in: in}
	for _, fn := range in.Analysis.Complexity.Functions {
		ctx.functions = append(ctx.functions, sanitizeFunction(fn))
	}
	ctx.files = CollectFiles(in.Analysis)
	for _, f := range ctx.files {
		if !IsCodeFile(f.Path) {
			continue
		}
		if IsTestFile(f.Path) {
			ctx.testFiles = append(ctx.testFiles, f)
		} else {
			ctx.sources = append(ctx.sources, f)
		}
	}
	return ctx
}

// sanitizeFunction clamps negative metrics to zero.
func sanitizeFunction(fn schema.FunctionComplexity) schema.FunctionComplexity {
	fn.FilePath = normalizePath(fn.FilePath)
	fn.LinesOfCode = max(0, fn.LinesOfCode)
	fn.CyclomaticComplexity = max(0, fn.CyclomaticComplexity)
	fn.CognitiveComplexity = max(0, fn.CognitiveComplexity)
	fn.NestingDepth = max(0, fn.NestingDepth)
	fn.ParameterCount = max(0, fn.ParameterCount)
	return fn
}

// functionLength returns the reported lines of code, falling back to the line span.
func functionLength(fn schema.FunctionComplexity) int {
	if fn.LinesOfCode > 0 {
		return fn.LinesOfCode
	}
	if fn.EndLine >= fn.StartLine && fn.StartLine > 0 {
		return fn.EndLine - fn.StartLine + 1
	}
	return 0
}

// CollectFiles returns the files of the analysis sorted by path. Explicit file
// entries win; otherwise files are derived from function locations and the
// length of a file is the larger of its last function line and summed function lengths.
func CollectFiles(a schema.RepositoryAnalysis) []schema.SourceFile {
	byPath := map[string]int{}
	if len(a.Files) > 0 {
		for _, f := range a.Files {
			p := normalizePath(f.Path)
			if p == "" {
				continue
			}
			byPath[p] = max(byPath[p], max(0, f.LinesOfCode))
		}
	} else {
		sums := map[string]int{}
		for _, fn := range a.Complexity.Functions {
			p := normalizePath(fn.FilePath)
			if p == "" {
				continue
			}
			byPath[p] = max(byPath[p], max(0, fn.EndLine))
			sums[p] += functionLength(sanitizeFunction(fn))
		}
		for p, sum := range sums {
			byPath[p] = max(byPath[p], sum)
		}
		for _, ap := range a.AntiPatterns {
			p := normalizePath(ap.FilePath)
			if _, ok := byPath[p]; !ok && p != "" {
				byPath[p] = 0
			}
		}
	}

	files := make([]schema.SourceFile, 0, len(byPath))
	for _, p := range sortedKeys(byPath) {
		files = append(files, schema.SourceFile{Path: p, LinesOfCode: byPath[p]})
	}
	return files
}

// densityScore converts violations over opportunities into a score.
// Zero opportunities is a perfect score.
func densityScore(d schema.Dimension, opportunities, violations int, penalty float64) schema.DimensionScoreResult {
	res := schema.DimensionScoreResult{Dimension: d, Opportunities: opportunities, Violations: violations}
	if opportunities <= 0 {
		res.Score = 100
		return res
	}
	density := float64(violations) / float64(opportunities)
	density = min(1, max(0, density))
	res.Density = density
	res.Score = schema.ClampScore(100 * (1 - min(1, penalty*density)))
	return res
}

// neutralResult is the result for a dimension without data to score.
func (c *scoringContext) neutralResult(d schema.Dimension) schema.DimensionScoreResult {
	return schema.DimensionScoreResult{Dimension: d, Score: schema.ClampScore(float64(c.in.NeutralScore)), NoData: true}
}

// antiPatternsIn returns the anti-patterns whose category belongs to the set.
func (c *scoringContext) antiPatternsIn(set map[string]struct{}) []schema.AntiPattern {
	var out []schema.AntiPattern
	for _, ap := range c.in.Analysis.AntiPatterns {
		if inCategory(ap.Category, set) {
			out = append(out, ap)
		}
	}
	return out
}

func antiPatternSample(ap schema.AntiPattern) string {
	p := normalizePath(ap.FilePath)
	if p == "" {
		p = repositoryLevel
	}
	if ap.Line > 0 {
		return fmt.Sprintf("%s:%d %s", p, ap.Line, ap.Description)
	}
	return fmt.Sprintf("%s %s", p, ap.Description)
}

func functionSample(fn schema.FunctionComplexity) string {
	if fn.StartLine > 0 {
		return fmt.Sprintf("%s (%s:%d)", fn.Name, fn.FilePath, fn.StartLine)
	}
	return fmt.Sprintf("%s (%s)", fn.Name, fn.FilePath)
}

func scoreStructural(c *scoringContext) schema.DimensionScoreResult {
	limit := c.in.Thresholds.LargeFile
	var large []schema.SourceFile
	total := 0
	for _, f := range c.files {
		total += f.LinesOfCode
		if f.LinesOfCode > limit {
			large = append(large, f)
		}
	}
	sort.SliceStable(large, func(i, j int) bool { return large[i].LinesOfCode > large[j].LinesOfCode })

	res := densityScore(schema.StructuralQuality, len(c.files), len(large), strictPenalty)
	res.Metrics = map[string]float64{"files": float64(len(c.files)), "largeFiles": float64(len(large)), "totalLinesOfCode": float64(total)}
	if len(c.files) > 0 {
		res.Metrics["averageFileLines"] = float64(total) / float64(len(c.files))
	}
	var samples []string
	for _, f := range large {
		samples = append(samples, fmt.Sprintf("%s (%d lines)", f.Path, f.LinesOfCode))
	}
	res.Samples = limitSamples(samples)
	return res
}

func scoreComplexity(c *scoringContext) schema.DimensionScoreResult {
	th := c.in.Thresholds
	var offenders []schema.FunctionComplexity
	highCyclomatic, deepNesting, maxCyclomatic, sumCyclomatic := 0, 0, 0, 0
	for _, fn := range c.functions {
		sumCyclomatic += fn.CyclomaticComplexity
		maxCyclomatic = max(maxCyclomatic, fn.CyclomaticComplexity)
		high := fn.CyclomaticComplexity > th.HighComplexity
		deep := fn.NestingDepth > th.DeepNesting
		if high {
			highCyclomatic++
		}
		if deep {
			deepNesting++
		}
		if high || deep {
			offenders = append(offenders, fn)
		}
	}
	sort.SliceStable(offenders, func(i, j int) bool {
		return offenders[i].CyclomaticComplexity > offenders[j].CyclomaticComplexity
	})

	res := densityScore(schema.ComplexityManagement, len(c.functions), len(offenders), strictPenalty)
	res.Metrics = map[string]float64{
		"functions":           float64(len(c.functions)),
		"highComplexity":      float64(highCyclomatic),
		"deepNesting":         float64(deepNesting),
		"maxCyclomatic":       float64(maxCyclomatic),
		"averageCyclomatic":   0,
		"complexityThreshold": float64(th.HighComplexity),
	}
	if len(c.functions) > 0 {
		res.Metrics["averageCyclomatic"] = float64(sumCyclomatic) / float64(len(c.functions))
	}
	var samples []string
	for _, fn := range offenders {
		samples = append(samples, fmt.Sprintf("%s cyclomatic=%d nesting=%d", functionSample(fn), fn.CyclomaticComplexity, fn.NestingDepth))
	}
	res.Samples = limitSamples(samples)
	return res
}

func scoreDocumentation(c *scoringContext) schema.DimensionScoreResult {
	findings := c.antiPatternsIn(documentationCategories)
	flagged, undocumented := 0, 0
	var samples []string
	for _, fn := range c.functions {
		if fn.Documented == nil {
			continue
		}
		flagged++
		if !*fn.Documented {
			undocumented++
			samples = append(samples, functionSample(fn))
		}
	}

	if flagged == 0 && len(findings) == 0 {
		if len(c.functions) == 0 {
			return densityScore(schema.DocumentationCoverage, 0, 0, lenientPenalty)
		}
		return c.neutralResult(schema.DocumentationCoverage)
	}

	opportunities := flagged
	if opportunities == 0 {
		opportunities = max(len(c.functions), len(c.files))
	}
	for _, ap := range findings {
		samples = append(samples, antiPatternSample(ap))
	}
	res := densityScore(schema.DocumentationCoverage, opportunities, undocumented+len(findings), lenientPenalty)
	res.Metrics = map[string]float64{
		"documentedFunctions":   float64(flagged - undocumented),
		"undocumentedFunctions": float64(undocumented),
		"documentationFindings": float64(len(findings)),
	}
	res.Samples = limitSamples(samples)
	return res
}

func scoreTests(c *scoringContext) schema.DimensionScoreResult {
	info := c.in.Tests
	if info.CoveragePercent != nil {
		coverage := min(100, max(0, *info.CoveragePercent))
		res := schema.DimensionScoreResult{
			Dimension:     schema.TestCoverage,
			Score:         schema.ClampScore(coverage),
			Opportunities: 100,
			Violations:    schema.ClampScore(100 - coverage),
			Density:       (100 - coverage) / 100,
			Metrics:       map[string]float64{"coveragePercent": coverage},
		}
		return res
	}

	// Analyzers often skip test files, so fall back to the detected counts.
	if len(c.testFiles) == 0 && info.TestFileCount > 0 {
		sources := max(info.SourceFileCount, len(c.sources))
		res := densityScore(schema.TestCoverage, sources, max(0, sources-info.TestFileCount), lenientPenalty)
		res.Metrics = map[string]float64{"sourceFiles": float64(sources), "testFiles": float64(info.TestFileCount)}
		return res
	}

	if len(c.sources) == 0 && info.SourceFileCount > 0 {
		res := densityScore(schema.TestCoverage, info.SourceFileCount, max(0, info.SourceFileCount-info.TestFileCount), lenientPenalty)
		res.Metrics = map[string]float64{"sourceFiles": float64(info.SourceFileCount), "testFiles": float64(info.TestFileCount)}
		return res
	}

	tested := map[string]struct{}{}
	for _, f := range c.testFiles {
		tested[testedStem(f.Path)] = struct{}{}
	}
	var untested []string
	for _, f := range c.sources {
		if _, ok := tested[fileStem(f.Path)]; !ok {
			untested = append(untested, f.Path)
		}
	}
	res := densityScore(schema.TestCoverage, len(c.sources), len(untested), lenientPenalty)
	res.Metrics = map[string]float64{
		"sourceFiles":   float64(len(c.sources)),
		"testFiles":     float64(len(c.testFiles)),
		"untestedFiles": float64(len(untested)),
	}
	res.Samples = limitSamples(untested)
	return res
}

func scoreTypes(c *scoringContext) schema.DimensionScoreResult {
	findings := c.antiPatternsIn(typingCategories)
	var samples []string
	flagged, untyped := 0, 0
	for _, fn := range c.functions {
		if fn.Typed == nil {
			continue
		}
		flagged++
		if !*fn.Typed {
			untyped++
			samples = append(samples, functionSample(fn))
		}
	}

	opportunities, violations := flagged, untyped
	metrics := map[string]float64{"untypedFunctions": float64(untyped)}
	if flagged == 0 {
		dynamic := 0
		known := 0
		for _, f := range c.sources {
			typed, ok := isStaticallyTyped(f.Path)
			if !ok {
				continue
			}
			known++
			if !typed {
				dynamic++
				samples = append(samples, f.Path)
			}
		}
		opportunities, violations = known, dynamic
		metrics = map[string]float64{"dynamicallyTypedFiles": float64(dynamic), "staticallyTypedFiles": float64(known - dynamic)}
	}

	if opportunities == 0 && len(findings) == 0 {
		if len(c.functions) == 0 && len(c.files) == 0 {
			return densityScore(schema.TypeAnnotations, 0, 0, lenientPenalty)
		}
		return c.neutralResult(schema.TypeAnnotations)
	}
	if opportunities == 0 {
		opportunities = max(len(c.functions), len(c.files))
	}
	for _, ap := range findings {
		samples = append(samples, antiPatternSample(ap))
	}
	metrics["typingFindings"] = float64(len(findings))
	res := densityScore(schema.TypeAnnotations, opportunities, violations+len(findings), lenientPenalty)
	res.Metrics = metrics
	res.Samples = limitSamples(samples)
	return res
}

func scoreNaming(c *scoringContext) schema.DimensionScoreResult {
	findings := c.antiPatternsIn(namingCategories)
	named, unclear := 0, 0
	var samples []string
	for _, fn := range c.functions {
		if isAnonymous(fn.Name) {
			continue
		}
		named++
		if isUnclearName(fn.Name) {
			unclear++
			samples = append(samples, functionSample(fn))
		}
	}
	for _, ap := range findings {
		samples = append(samples, antiPatternSample(ap))
	}
	opportunities := named
	if opportunities == 0 && len(findings) > 0 {
		opportunities = max(len(c.files), len(findings))
	}
	res := densityScore(schema.NamingClarity, opportunities, unclear+len(findings), strictPenalty)
	res.Metrics = map[string]float64{
		"namedFunctions": float64(named),
		"unclearNames":   float64(unclear),
		"namingFindings": float64(len(findings)),
	}
	res.Samples = limitSamples(samples)
	return res
}

func scoreArchitecture(c *scoringContext) schema.DimensionScoreResult {
	findings := c.antiPatternsIn(architectureCategories)
	affected := map[string]struct{}{}
	var samples []string
	for _, ap := range findings {
		p := normalizePath(ap.FilePath)
		if p == "" {
			p = repositoryLevel
		}
		affected[p] = struct{}{}
		samples = append(samples, antiPatternSample(ap))
	}
	opportunities := len(c.files)
	if opportunities < len(affected) {
		opportunities = len(affected)
	}
	res := densityScore(schema.ArchitecturalClarity, opportunities, len(affected), strictPenalty)
	res.Metrics = map[string]float64{
		"affectedFiles":        float64(len(affected)),
		"architectureFindings": float64(len(findings)),
	}
	res.Samples = limitSamples(samples)
	return res
}

// scoreChecks scores a presence checklist: every missing check is a violation.
func scoreChecks(d schema.Dimension, checks []schema.Check) schema.DimensionScoreResult {
	var missing []string
	for _, ch := range checks {
		if !ch.Present {
			missing = append(missing, ch.Name)
		}
	}
	res := densityScore(d, len(checks), len(missing), lenientPenalty)
	res.Metrics = map[string]float64{"checks": float64(len(checks)), "missing": float64(len(missing))}
	res.Samples = missing
	return res
}

func scoreTooling(c *scoringContext) schema.DimensionScoreResult {
	if c.in.Tooling == nil {
		return c.neutralResult(schema.ToolingSupport)
	}
	return scoreChecks(schema.ToolingSupport, c.in.Tooling.Checks())
}

func scoreGitHub(c *scoringContext) schema.DimensionScoreResult {
	if c.in.GitHub == nil {
		return c.neutralResult(schema.GitHubReadiness)
	}
	return scoreChecks(schema.GitHubReadiness, c.in.GitHub.Checks())
}
