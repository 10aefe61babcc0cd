package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/internal/iocache"
	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// writeAnalysis stores an analysis as JSON and returns its path.
func writeAnalysis(t *testing.T, dir, name string, analysis schema.RepositoryAnalysis) string {
	t.Helper()
	data, err := json.Marshal(analysis)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newExecConfig(t *testing.T, output schema.OutputMode, files ...string) *contract.Config {
	t.Helper()
	return &contract.Config{
		AnalysisFiles:    files,
		Workers:          2,
		Precision:        1,
		Output:           output,
		OutputFile:       filepath.Join(t.TempDir(), "out."+string(output)),
		TargetScore:      80,
		NeutralScore:     50,
		Thresholds:       schema.DefaultThresholds(),
		MinScore:         contract.DefaultMinScore,
		DetectionTimeout: time.Second,
		HistoryBackend:   schema.NoneBackend,
		HistoryLimit:     contract.DefaultHistoryLimit,
	}
}

func readOutput(t *testing.T, cfg *contract.Config) []byte {
	t.Helper()
	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	return data
}

func repoAnalysis(t *testing.T, complexCount int) schema.RepositoryAnalysis {
	analysis := scenarioAnalysis(complexCount, false)
	analysis.RepositoryPath = t.TempDir()
	return analysis
}

func TestExecuteAssessJSON(t *testing.T) {
	dir := t.TempDir()
	analysis := repoAnalysis(t, 2)
	cfg := newExecConfig(t, schema.JSONOut, writeAnalysis(t, dir, "analysis.json", analysis))

	require.NoError(t, ExecuteAssess(context.Background(), cfg, nil))

	a, err := ImportAssessment(readOutput(t, cfg))
	require.NoError(t, err)
	assert.Equal(t, analysis.RepositoryPath, a.RepositoryPath)
	assert.Equal(t, schema.GradeFor(a.OverallScore), a.Grade)
	assert.Len(t, a.Breakdown, len(schema.AllDimensions))
}

func TestExecuteAssessRepoOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := newExecConfig(t, schema.JSONOut, writeAnalysis(t, dir, "analysis.json", repoAnalysis(t, 0)))
	cfg.RepoPath = t.TempDir()

	require.NoError(t, ExecuteAssess(context.Background(), cfg, nil))

	a, err := ImportAssessment(readOutput(t, cfg))
	require.NoError(t, err)
	assert.Equal(t, cfg.RepoPath, a.RepositoryPath)
}

func TestExecuteAssessBatchJSON(t *testing.T) {
	dir := t.TempDir()
	first := repoAnalysis(t, 0)
	second := repoAnalysis(t, 8)
	cfg := newExecConfig(t, schema.JSONOut,
		writeAnalysis(t, dir, "first.json", first),
		writeAnalysis(t, dir, "second.json", second))

	require.NoError(t, ExecuteAssess(context.Background(), cfg, nil))

	var list []schema.AIReadinessAssessment
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &list))
	require.Len(t, list, 2)
	assert.Equal(t, first.RepositoryPath, list[0].RepositoryPath)
	assert.Equal(t, second.RepositoryPath, list[1].RepositoryPath)
	assert.GreaterOrEqual(t, list[0].OverallScore, list[1].OverallScore)
}

func TestExecuteAssessBatchText(t *testing.T) {
	dir := t.TempDir()
	cfg := newExecConfig(t, schema.TextOut,
		writeAnalysis(t, dir, "first.json", repoAnalysis(t, 0)),
		writeAnalysis(t, dir, "second.json", repoAnalysis(t, 3)))

	require.NoError(t, ExecuteAssess(context.Background(), cfg, nil))
	assert.Contains(t, string(readOutput(t, cfg)), "Assessed 2 of 2 analyses")
}

func TestExecuteAssessMissingFile(t *testing.T) {
	cfg := newExecConfig(t, schema.JSONOut, filepath.Join(t.TempDir(), "missing.json"))
	err := ExecuteAssess(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "failed to load analysis")
}

func TestExecuteAssessSavesAndTrends(t *testing.T) {
	dir := t.TempDir()
	analysis := repoAnalysis(t, 0)
	cfg := newExecConfig(t, schema.JSONOut, writeAnalysis(t, dir, "analysis.json", analysis))
	cfg.Save = true
	cfg.Trend = true

	previous := &schema.AIReadinessAssessment{
		RepositoryPath: analysis.RepositoryPath,
		OverallScore:   10,
		Grade:          schema.GradeF,
		Breakdown:      schema.FullScoreBreakdown{},
		AssessedAt:     fixedTime.Add(-time.Hour),
	}
	store := &iocache.MockHistoryStore{}
	store.On("LatestAssessment", analysis.RepositoryPath).Return(previous, nil)
	store.On("SaveAssessment", mock.AnythingOfType("*schema.AIReadinessAssessment")).Return(int64(7), nil)
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteAssess(context.Background(), cfg, mgr))

	a, err := ImportAssessment(readOutput(t, cfg))
	require.NoError(t, err)
	require.NotNil(t, a.Trends)
	assert.Equal(t, 10, a.Trends.PreviousScore)
	assert.Equal(t, schema.TrendImproving, a.Trends.Direction)
	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestExecuteAssessSaveFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	cfg := newExecConfig(t, schema.JSONOut, writeAnalysis(t, dir, "analysis.json", repoAnalysis(t, 0)))
	cfg.Save = true

	store := &iocache.MockHistoryStore{}
	store.On("SaveAssessment", mock.Anything).Return(int64(0), assert.AnError)
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)

	require.NoError(t, ExecuteAssess(context.Background(), cfg, mgr))
	store.AssertExpectations(t)
}

func TestExecuteCheck(t *testing.T) {
	dir := t.TempDir()
	path := writeAnalysis(t, dir, "analysis.json", repoAnalysis(t, 0))

	t.Run("pass", func(t *testing.T) {
		cfg := newExecConfig(t, schema.JSONOut, path)
		cfg.MinScore = 0
		require.NoError(t, ExecuteCheck(context.Background(), cfg, nil))

		var results []schema.CheckResult
		require.NoError(t, json.Unmarshal(readOutput(t, cfg), &results))
		require.Len(t, results, 1)
		assert.True(t, results[0].Passed)
		assert.Empty(t, results[0].Failures)
	})

	t.Run("fail", func(t *testing.T) {
		cfg := newExecConfig(t, schema.JSONOut, path)
		cfg.MinScore = 101
		err := ExecuteCheck(context.Background(), cfg, nil)
		require.ErrorIs(t, err, ErrPolicyViolation)
		assert.Contains(t, err.Error(), "1 of 1 repositories")

		var results []schema.CheckResult
		require.NoError(t, json.Unmarshal(readOutput(t, cfg), &results))
		require.Len(t, results, 1)
		assert.False(t, results[0].Passed)
		assert.Contains(t, results[0].Failures[0], "below the minimum of 101")
	})
}

func TestEvaluateCheck(t *testing.T) {
	a := &schema.AIReadinessAssessment{
		RepositoryPath:    "/repo",
		OverallScore:      72,
		Grade:             schema.GradeC,
		DetectionWarnings: []string{"tooling detection failed"},
	}

	tests := []struct {
		name     string
		minScore int
		minGrade schema.Grade
		passed   bool
		failures int
	}{
		{"passes both", 70, schema.GradeC, true, 0},
		{"no grade rule", 72, "", true, 0},
		{"score too low", 73, "", false, 1},
		{"grade too low", 0, schema.GradeB, false, 1},
		{"both fail", 90, schema.GradeA, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateCheck(a, tt.minScore, tt.minGrade)
			assert.Equal(t, tt.passed, result.Passed)
			assert.Len(t, result.Failures, tt.failures)
			assert.Equal(t, a.DetectionWarnings, result.Warnings)
		})
	}
}

func TestExecuteCompare(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, score int, at time.Time) string {
		content, err := ExportAssessment(&schema.AIReadinessAssessment{
			RepositoryPath: "/repo",
			OverallScore:   score,
			Grade:          schema.GradeFor(score),
			Breakdown:      schema.FullScoreBreakdown{schema.TestCoverage: score},
			AssessedAt:     at,
		}, ExportOptions{Format: schema.JSONOut})
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	current := write("current.json", 82, fixedTime)
	previous := write("previous.json", 70, fixedTime.Add(-24*time.Hour))

	cfg := newExecConfig(t, schema.JSONOut, current, previous)
	require.NoError(t, ExecuteCompare(context.Background(), cfg, nil))

	var trend schema.TrendResult
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &trend))
	assert.Equal(t, 12, trend.ScoreChange)
	assert.Equal(t, schema.TrendImproving, trend.Direction)

	cfg.AnalysisFiles = []string{current}
	assert.ErrorContains(t, ExecuteCompare(context.Background(), cfg, nil), "exactly two")

	cfg.AnalysisFiles = []string{current, filepath.Join(dir, "missing.json")}
	assert.Error(t, ExecuteCompare(context.Background(), cfg, nil))
}

func TestExecuteMetrics(t *testing.T) {
	cfg := newExecConfig(t, schema.JSONOut)
	require.NoError(t, ExecuteMetrics(context.Background(), cfg, nil))

	var model schema.MetricsRenderModel
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &model))
	assert.Len(t, model.Dimensions, len(schema.AllDimensions))
	assert.Equal(t, 80, model.TargetScore)
}

func TestExecuteHistoryList(t *testing.T) {
	records := []schema.AssessmentRecord{
		{RecordID: 2, AssessmentID: "b", RepositoryPath: "/repo", AssessedAt: fixedTime, OverallScore: 81, Grade: "B"},
		{RecordID: 1, AssessmentID: "a", RepositoryPath: "/repo", AssessedAt: fixedTime.Add(-time.Hour), OverallScore: 70, Grade: "C"},
	}
	store := &iocache.MockHistoryStore{}
	store.On("ListAssessments", "/repo", 5).Return(records, nil)
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)

	cfg := newExecConfig(t, schema.JSONOut)
	cfg.RepoPath = "/repo"
	cfg.HistoryLimit = 5
	require.NoError(t, ExecuteHistoryList(context.Background(), cfg, mgr))

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(readOutput(t, cfg), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0]["assessmentId"])
	store.AssertExpectations(t)
}

func TestExecuteHistoryListErrors(t *testing.T) {
	cfg := newExecConfig(t, schema.JSONOut)
	assert.ErrorContains(t, ExecuteHistoryList(context.Background(), cfg, nil), "not initialized")

	store := &iocache.MockHistoryStore{}
	store.On("ListAssessments", "", cfg.HistoryLimit).Return(nil, assert.AnError)
	mgr := &iocache.MockStoreManager{}
	mgr.On("GetHistoryStore").Return(store)
	assert.ErrorIs(t, ExecuteHistoryList(context.Background(), cfg, mgr), assert.AnError)
}
