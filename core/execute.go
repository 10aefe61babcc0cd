// Package core has the assessment engine and the executors behind each command.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/internal/detect"
	"github.com/huangsam/aiready/internal/ingest"
	"github.com/huangsam/aiready/internal/outwriter"
	"github.com/huangsam/aiready/schema"
	"github.com/sirupsen/logrus"
)

// ErrPolicyViolation is returned by ExecuteCheck when a repository fails the gate.
var ErrPolicyViolation = errors.New("policy check failed")

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// ExecuteAssess assesses every analysis file and prints the results in the configured format.
// It serves as the main entry point for the 'assess' command.
func ExecuteAssess(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	ctx = withRunID(ctx, uuid.NewString())
	results, err := runAssessments(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	if len(results) == 1 {
		a := results[0].Assessment
		if cfg.Output == schema.TextOut {
			return ow.WriteReport(GenerateReport(a), cfg)
		}
		content, err := ExportAssessment(a, ExportOptions{Format: cfg.Output})
		if err != nil {
			return err
		}
		return ow.WriteExport(content, cfg)
	}
	return writeBatchResults(ow, results, cfg)
}

// ExecuteCompare compares two exported JSON assessments, the current one first.
func ExecuteCompare(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	if len(cfg.AnalysisFiles) != 2 {
		return fmt.Errorf("compare needs exactly two assessment files, got %d", len(cfg.AnalysisFiles))
	}
	current, err := LoadAssessment(cfg.AnalysisFiles[0])
	if err != nil {
		return err
	}
	previous, err := LoadAssessment(cfg.AnalysisFiles[1])
	if err != nil {
		return err
	}
	trend := CompareAssessments(current, previous)
	return outwriter.NewOutWriter().WriteComparison(trend, cfg)
}

// ExecuteCheck assesses every analysis file and enforces the minimum score and grade.
// It returns ErrPolicyViolation when any repository fails, after printing all results.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	ctx = withSuppressProgress(withRunID(ctx, uuid.NewString()))
	results, err := runAssessments(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	checks := make([]schema.CheckResult, 0, len(results))
	failed := 0
	for _, r := range results {
		var check schema.CheckResult
		if r.Err != nil {
			check = schema.CheckResult{
				RepositoryPath: r.Analysis.RepositoryPath,
				MinScore:       cfg.MinScore,
				MinGrade:       cfg.MinGrade,
				Failures:       []string{r.Err.Error()},
			}
		} else {
			check = EvaluateCheck(r.Assessment, cfg.MinScore, cfg.MinGrade)
		}
		if !check.Passed {
			failed++
		}
		checks = append(checks, check)
	}

	if err := outwriter.NewOutWriter().WriteCheck(checks, cfg); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d repositories", ErrPolicyViolation, failed, len(checks))
	}
	return nil
}

// EvaluateCheck applies the CI gate to one assessment. An empty minGrade disables the grade rule.
func EvaluateCheck(a *schema.AIReadinessAssessment, minScore int, minGrade schema.Grade) schema.CheckResult {
	result := schema.CheckResult{
		RepositoryPath: a.RepositoryPath,
		OverallScore:   a.OverallScore,
		Grade:          a.Grade,
		MinScore:       minScore,
		MinGrade:       minGrade,
		Failures:       []string{},
		Warnings:       a.DetectionWarnings,
	}
	if a.OverallScore < minScore {
		result.Failures = append(result.Failures, fmt.Sprintf("overall score %d is below the minimum of %d", a.OverallScore, minScore))
	}
	if minGrade != "" && schema.GradeRank(a.Grade) > schema.GradeRank(minGrade) {
		result.Failures = append(result.Failures, fmt.Sprintf("grade %s is worse than the minimum grade %s", a.Grade, minGrade))
	}
	result.Passed = len(result.Failures) == 0
	return result
}

// ExecuteMetrics displays the active scoring model.
// This is a static display that does not require an analysis.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	resolved, err := ResolveConfig(cfg.AssessmentConfig())
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteMetrics(BuildMetricsModel(resolved), cfg)
}

// ExecuteHistoryList prints the newest stored assessments. An empty RepoPath lists every repository.
func ExecuteHistoryList(_ context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	store := historyStore(mgr)
	if store == nil {
		return errors.New("history store is not initialized")
	}
	records, err := store.ListAssessments(cfg.RepoPath, cfg.HistoryLimit)
	if err != nil {
		return fmt.Errorf("failed to list assessments: %w", err)
	}
	return outwriter.NewOutWriter().WriteHistory(records, cfg)
}

// runAssessments loads the analysis files, assesses them and records the results.
// Failed entries are kept in the results unless every entry failed.
func runAssessments(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) ([]BatchResult, error) {
	log := contract.Logger.WithField("files", len(cfg.AnalysisFiles))
	if id, ok := getRunID(ctx); ok {
		log = log.WithField("run", id)
	}

	analyses, err := ingest.LoadFiles(cfg.AnalysisFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}
	if len(analyses) == 0 {
		return nil, errors.New("no analysis files given")
	}
	if cfg.RepoPath != "" {
		for i := range analyses {
			analyses[i].RepositoryPath = cfg.RepoPath
		}
	}

	detector, err := NewDetector(cfg)
	if err != nil {
		return nil, err
	}
	assessor := NewAssessor(detector, WithDetectionTimeout(cfg.DetectionTimeout))
	store := historyStore(mgr)
	assessCfg := cfg.AssessmentConfig()

	start := time.Now()
	var results []BatchResult
	if len(analyses) == 1 {
		analysis := analyses[0]
		if cfg.Trend && store != nil {
			assessCfg.PreviousAssessment = latestAssessment(store, analysis.RepositoryPath, log)
		}
		var listener ProgressListener
		if cfg.Progress && !shouldSuppressProgress(ctx) {
			listener = outwriter.NewProgressBar("Assessing " + analysis.RepositoryPath)
		}
		a, err := assessor.AssessRepository(ctx, analysis, assessCfg, listener)
		if err != nil {
			return nil, err
		}
		results = []BatchResult{{Analysis: analysis, Assessment: a}}
	} else {
		results, err = assessor.AssessBatch(ctx, analyses, assessCfg, cfg.Workers)
		if err != nil {
			return nil, err
		}
		if cfg.Trend && store != nil {
			for i, r := range results {
				if r.Err != nil {
					continue
				}
				if previous := latestAssessment(store, r.Analysis.RepositoryPath, log); previous != nil {
					trend := CompareAssessments(r.Assessment, previous)
					withTrend := *r.Assessment
					withTrend.Trends = &trend
					results[i].Assessment = &withTrend
				}
			}
		}
	}
	log.WithField("elapsed", time.Since(start)).Debug("assessments finished")

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.WithError(r.Err).Warn("assessment failed")
			continue
		}
		for _, w := range r.Assessment.DetectionWarnings {
			log.WithField("repo", r.Analysis.RepositoryPath).Debug(w)
		}
		if cfg.Save && store != nil {
			id, err := store.SaveAssessment(r.Assessment)
			if err != nil {
				log.WithError(err).Warn("failed to save assessment to history")
				continue
			}
			log.WithFields(logrus.Fields{"record": id, "repo": r.Assessment.RepositoryPath}).Debug("saved assessment")
		}
	}
	if failed == len(results) {
		return nil, fmt.Errorf("all %d assessments failed: %w", failed, results[0].Err)
	}
	return results, nil
}

// NewDetector builds the filesystem detector, with a GitHub probe when a repository is configured.
func NewDetector(cfg *contract.Config) (*detect.FileSystemDetector, error) {
	var opts []detect.Option
	if cfg.GitHubRepo != "" {
		probe, err := detect.NewGitHubProbe(cfg.GitHubToken, cfg.GitHubRepo, detect.DefaultGitHubRateLimit)
		if err != nil {
			return nil, err
		}
		opts = append(opts, detect.WithBranchProtection(probe))
	}
	return detect.NewFileSystemDetector(opts...), nil
}

// latestAssessment returns the previous assessment of a repository, logging lookup failures.
func latestAssessment(store contract.HistoryStore, repoPath string, log *logrus.Entry) *schema.AIReadinessAssessment {
	previous, err := store.LatestAssessment(repoPath)
	if err != nil {
		log.WithError(err).Warn("failed to load previous assessment")
		return nil
	}
	return previous
}

// historyStore returns the history store of mgr, or nil when persistence is not set up.
func historyStore(mgr contract.StoreManager) contract.HistoryStore {
	if mgr == nil {
		return nil
	}
	return mgr.GetHistoryStore()
}

// writeBatchResults prints several assessments. Text shows each report and a summary table,
// JSON writes an array and the other formats concatenate the per-repository exports.
func writeBatchResults(ow *outwriter.OutWriter, results []BatchResult, cfg *contract.Config) error {
	rows := make([]outwriter.BatchRow, 0, len(results))
	var assessments []*schema.AIReadinessAssessment
	for i, r := range results {
		rows = append(rows, outwriter.BatchRow{Source: sourceName(cfg, i), Assessment: r.Assessment, Err: r.Err})
		if r.Err == nil {
			assessments = append(assessments, r.Assessment)
		}
	}

	switch cfg.Output {
	case schema.TextOut:
		reports := make([]schema.AssessmentReport, 0, len(assessments))
		for _, a := range assessments {
			reports = append(reports, GenerateReport(a))
		}
		return ow.WriteBatch(reports, rows, cfg)
	case schema.JSONOut:
		content, err := exportJSONList(assessments)
		if err != nil {
			return err
		}
		return ow.WriteExport(content, cfg)
	default:
		parts := make([]string, 0, len(assessments))
		for _, a := range assessments {
			content, err := ExportAssessment(a, ExportOptions{Format: cfg.Output})
			if err != nil {
				return err
			}
			parts = append(parts, strings.TrimRight(content, "\n"))
		}
		return ow.WriteExport(strings.Join(parts, "\n\n"), cfg)
	}
}

// sourceName returns the analysis file behind the i-th result.
func sourceName(cfg *contract.Config, i int) string {
	if i < len(cfg.AnalysisFiles) {
		return cfg.AnalysisFiles[i]
	}
	return fmt.Sprintf("#%d", i+1)
}

// LoadAssessment reads an assessment written by the JSON export.
func LoadAssessment(path string) (*schema.AIReadinessAssessment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := ImportAssessment(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}
