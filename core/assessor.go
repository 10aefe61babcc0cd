package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/aiready/core/algo"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
)

// errNoDetector is recorded as a detection warning when the assessor has no detector.
var errNoDetector = errors.New("no detector configured")

// Assessor runs assessments. It holds no mutable state and is safe for concurrent use.
type Assessor struct {
	detector         contract.Detector
	now              func() time.Time
	newID            func() string
	detectionTimeout time.Duration
}

// AssessorOption configures an Assessor.
type AssessorOption func(*Assessor)

// WithClock sets the clock used for AssessedAt and AssessmentDuration.
func WithClock(now func() time.Time) AssessorOption {
	return func(a *Assessor) { a.now = now }
}

// WithIDFunc sets the generator of assessment IDs.
func WithIDFunc(newID func() string) AssessorOption {
	return func(a *Assessor) { a.newID = newID }
}

// WithDetectionTimeout bounds each detection probe. Zero disables the bound.
func WithDetectionTimeout(d time.Duration) AssessorOption {
	return func(a *Assessor) { a.detectionTimeout = d }
}

// NewAssessor creates an Assessor that detects tooling, GitHub readiness and tests with detector.
// A nil detector is allowed; AssessRepository then records a warning for every probe.
func NewAssessor(detector contract.Detector, opts ...AssessorOption) *Assessor {
	a := &Assessor{
		detector:         detector,
		now:              time.Now,
		newID:            uuid.NewString,
		detectionTimeout: contract.DefaultDetectionTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssessRepository detects the repository setup at analysis.RepositoryPath and assesses it.
// Detection failures never fail the run: the probe falls back to a snapshot with nothing
// detected and a warning is recorded. Only an invalid cfg returns an error, before any work.
func (a *Assessor) AssessRepository(ctx context.Context, analysis schema.RepositoryAnalysis, cfg *schema.AssessmentConfig, listener ProgressListener) (*schema.AIReadinessAssessment, error) {
	resolved, err := ResolveConfig(cfg)
	if err != nil {
		return nil, err
	}

	start := a.now()
	progress := newProgressReporter(listener)
	progress.report(schema.PhaseInitializing, "resolving configuration", 0)

	repo := analysis.RepositoryPath
	var warnings []string

	progress.report(schema.PhaseAnalyzingTooling, "detecting developer tooling", 10)
	tooling, warning := runProbe(ctx, a.detectionTimeout, "tooling", func(ctx context.Context) (schema.ToolingConfig, error) {
		if a.detector == nil {
			return schema.ToolingConfig{}, errNoDetector
		}
		return a.detector.DetectTooling(ctx, repo)
	})
	warnings = appendWarning(warnings, warning)

	progress.report(schema.PhaseAnalyzingGitHub, "detecting GitHub readiness", 20)
	github, warning := runProbe(ctx, a.detectionTimeout, "GitHub readiness", func(ctx context.Context) (schema.GitHubReadinessConfig, error) {
		if a.detector == nil {
			return schema.GitHubReadinessConfig{}, errNoDetector
		}
		return a.detector.DetectGitHubReadiness(ctx, repo)
	})
	warnings = appendWarning(warnings, warning)

	progress.report(schema.PhaseAnalyzingTests, "detecting tests", 30)
	detected, warning := runProbe(ctx, a.detectionTimeout, "test", func(ctx context.Context) (schema.TestPresenceInfo, error) {
		if a.detector == nil {
			return schema.TestPresenceInfo{}, errNoDetector
		}
		return a.detector.DetectTests(ctx, repo)
	})
	warnings = appendWarning(warnings, warning)
	tests := MergeTestPresence(DeriveTestPresence(analysis), detected)

	assessment := a.assemble(analysis, resolved, &tooling, &github, tests, progress, start)
	assessment.DetectionWarnings = warnings

	if resolved.PreviousAssessment != nil {
		trend := algo.CompareAssessments(assessment, resolved.PreviousAssessment)
		assessment.Trends = &trend
	}
	return assessment, nil
}

// AssessFromAnalysis assesses a repository with detection results supplied by the caller.
// A nil snapshot means the dimension has no data and receives the neutral score.
func (a *Assessor) AssessFromAnalysis(analysis schema.RepositoryAnalysis, tooling *schema.ToolingConfig, github *schema.GitHubReadinessConfig, cfg *schema.AssessmentConfig) (*schema.AIReadinessAssessment, error) {
	resolved, err := ResolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	assessment := a.assemble(analysis, resolved, tooling, github, DeriveTestPresence(analysis), nil, a.now())
	if resolved.PreviousAssessment != nil {
		trend := algo.CompareAssessments(assessment, resolved.PreviousAssessment)
		assessment.Trends = &trend
	}
	return assessment, nil
}

// assemble runs the scoring phases and builds the aggregate.
func (a *Assessor) assemble(
	analysis schema.RepositoryAnalysis,
	cfg *ResolvedConfig,
	tooling *schema.ToolingConfig,
	github *schema.GitHubReadinessConfig,
	tests schema.TestPresenceInfo,
	progress *progressReporter,
	start time.Time,
) *schema.AIReadinessAssessment {
	progress.report(schema.PhaseScoringDimensions, "scoring dimensions", 40)
	breakdown, results := algo.ScoreDimensions(algo.ScoringInput{
		Analysis:     analysis,
		Tooling:      tooling,
		GitHub:       github,
		Tests:        tests,
		Thresholds:   cfg.Thresholds,
		NeutralScore: cfg.NeutralScore,
	})

	progress.report(schema.PhaseScoringOverall, "computing overall score", 60)
	overall := algo.OverallScore(breakdown, cfg.Weights)

	progress.report(schema.PhaseRecommendations, "ranking recommendations", 70)
	recs := algo.GenerateRecommendations(algo.RecommendationInput{
		Results:     results,
		Breakdown:   breakdown,
		Weights:     cfg.Weights,
		Acceptable:  cfg.AcceptableScores,
		Thresholds:  cfg.Thresholds,
		EffortModel: cfg.EffortModel,
	})

	progress.report(schema.PhaseRecommendations, "estimating effort", 80)
	effort := algo.EstimateEffort(overall, recs, cfg.TargetScore)

	progress.report(schema.PhaseReportDetails, "building details", 90)
	details := algo.BuildDetails(analysis, cfg.Thresholds)

	assessment := &schema.AIReadinessAssessment{
		ID:               a.newID(),
		RepositoryPath:   analysis.RepositoryPath,
		OverallScore:     overall,
		Grade:            schema.GradeFor(overall),
		Breakdown:        breakdown,
		DimensionScores:  results,
		Weights:          cfg.Weights.Clone(),
		Thresholds:       cfg.Thresholds,
		AcceptableScores: cfg.AcceptableScores,
		TargetScore:      cfg.TargetScore,
		Recommendations:  recs,
		EffortEstimate:   effort,
		Details:          details,
		Tooling:          tooling,
		GitHubReadiness:  github,
		TestPresence:     tests,
		SourceAnalysis:   SummarizeAnalysis(analysis),
		AssessedAt:       start.UTC(),
	}
	assessment.AssessmentDuration = a.now().Sub(start)

	progress.report(schema.PhaseComplete, "assessment complete", 100)
	return assessment
}

// runProbe runs one detection probe with a timeout. Errors, panics and timeouts return the
// zero snapshot together with a warning.
func runProbe[T any](ctx context.Context, timeout time.Duration, name string, probe func(context.Context) (T, error)) (T, string) {
	var zero T
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("panic: %v", r)}
			}
		}()
		value, err := probe(ctx)
		done <- outcome{value: value, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return zero, fmt.Sprintf("%s detection failed: %v", name, out.err)
		}
		return out.value, ""
	case <-ctx.Done():
		return zero, fmt.Sprintf("%s detection failed: %v", name, ctx.Err())
	}
}

func appendWarning(warnings []string, warning string) []string {
	if warning == "" {
		return warnings
	}
	return append(warnings, warning)
}

// DeriveTestPresence counts the test and source files named in the analysis.
func DeriveTestPresence(analysis schema.RepositoryAnalysis) schema.TestPresenceInfo {
	var info schema.TestPresenceInfo
	for _, f := range algo.CollectFiles(analysis) {
		if !algo.IsCodeFile(f.Path) {
			continue
		}
		if algo.IsTestFile(f.Path) {
			info.TestFileCount++
		} else {
			info.SourceFileCount++
		}
	}
	info.HasTests = info.TestFileCount > 0
	return info
}

// MergeTestPresence combines the counts derived from the analysis with the detected ones.
// Counts take the larger value; frameworks and coverage come from detection.
func MergeTestPresence(derived, detected schema.TestPresenceInfo) schema.TestPresenceInfo {
	merged := schema.TestPresenceInfo{
		TestFileCount:   max(derived.TestFileCount, detected.TestFileCount),
		SourceFileCount: max(derived.SourceFileCount, detected.SourceFileCount),
		Frameworks:      detected.Frameworks,
		CoveragePercent: detected.CoveragePercent,
	}
	merged.HasTests = merged.TestFileCount > 0 || detected.HasTests
	return merged
}

// SummarizeAnalysis builds the reference to the source analysis kept on an assessment.
func SummarizeAnalysis(analysis schema.RepositoryAnalysis) schema.AnalysisSummary {
	files := algo.CollectFiles(analysis)
	summary := schema.AnalysisSummary{
		RepositoryPath:   analysis.RepositoryPath,
		Fingerprint:      Fingerprint(analysis),
		FunctionCount:    len(analysis.Complexity.Functions),
		FileCount:        len(files),
		AntiPatternCount: len(analysis.AntiPatterns),
	}
	for _, f := range files {
		summary.TotalLinesOfCode += max(0, f.LinesOfCode)
	}
	total := 0
	for _, fn := range analysis.Complexity.Functions {
		cc := max(0, fn.CyclomaticComplexity)
		summary.MaxCyclomatic = max(summary.MaxCyclomatic, cc)
		total += cc
	}
	if n := len(analysis.Complexity.Functions); n > 0 {
		summary.AverageCyclomatic = math.Round(float64(total)/float64(n)*100) / 100
	}
	return summary
}

// Fingerprint returns a stable SHA-256 digest of the analysis.
func Fingerprint(analysis schema.RepositoryAnalysis) string {
	data, err := json.Marshal(analysis)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GetDimensionScore returns the scored result of one dimension of an assessment.
func GetDimensionScore(a *schema.AIReadinessAssessment, d schema.Dimension) (schema.DimensionScoreResult, bool) {
	if a == nil {
		return schema.DimensionScoreResult{}, false
	}
	res, ok := a.DimensionScores[d]
	return res, ok
}

// CompareAssessments compares the current assessment against a previous one.
// A nil assessment compares as an empty one.
func CompareAssessments(current, previous *schema.AIReadinessAssessment) schema.TrendResult {
	if current == nil {
		current = &schema.AIReadinessAssessment{}
	}
	if previous == nil {
		previous = &schema.AIReadinessAssessment{}
	}
	return algo.CompareAssessments(current, previous)
}
