package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func sampleAssessment(id, repo string, score int, at time.Time) *schema.AIReadinessAssessment {
	return &schema.AIReadinessAssessment{
		ID:             id,
		RepositoryPath: repo,
		OverallScore:   score,
		Grade:          schema.GradeFor(score),
		Breakdown: schema.FullScoreBreakdown{
			schema.StructuralQuality: score,
			schema.TestCoverage:      50,
		},
		DimensionScores: map[schema.Dimension]schema.DimensionScoreResult{
			schema.StructuralQuality: {Dimension: schema.StructuralQuality, Score: score},
			schema.TestCoverage:      {Dimension: schema.TestCoverage, Score: 50, NoData: true},
		},
		Weights:            schema.DimensionWeights{schema.StructuralQuality: 0.15, schema.TestCoverage: 0.15},
		TargetScore:        80,
		Recommendations:    []schema.Recommendation{{Dimension: schema.TestCoverage}},
		AssessedAt:         at,
		AssessmentDuration: 1500 * time.Millisecond,
	}
}

func TestHistoryStoreSaveAndLatest(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first, err := store.SaveAssessment(sampleAssessment("a1", "/repo", 60, base))
	require.NoError(t, err)
	second, err := store.SaveAssessment(sampleAssessment("a2", "/repo", 75, base.Add(time.Hour)))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	latest, err := store.LatestAssessment("/repo")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "a2", latest.ID)
	assert.Equal(t, 75, latest.OverallScore)
	assert.True(t, latest.AssessedAt.Equal(base.Add(time.Hour)))
	assert.True(t, latest.DimensionScores[schema.TestCoverage].NoData)

	missing, err := store.LatestAssessment("/other")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestHistoryStoreSaveNil(t *testing.T) {
	store := newTestStore(t)
	_, err := store.SaveAssessment(nil)
	assert.Error(t, err)
}

func TestHistoryStoreListAssessments(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, repo := range []string{"/a", "/b", "/a", "/a"} {
		_, err := store.SaveAssessment(sampleAssessment("id", repo, 50+i, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	records, err := store.ListAssessments("/a", 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int32(53), records[0].OverallScore)
	assert.Equal(t, int32(52), records[1].OverallScore)
	assert.Empty(t, records[0].Payload)
	assert.Equal(t, int64(1500), records[0].DurationMs)
	assert.Equal(t, int32(1), records[0].Recommendations)

	all, err := store.ListAssessments("", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestHistoryStoreRecordsAndStatus(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := store.SaveAssessment(sampleAssessment("a1", "/a", 60, base))
	require.NoError(t, err)
	id, err := store.SaveAssessment(sampleAssessment("a2", "/b", 70, base.Add(time.Hour)))
	require.NoError(t, err)

	records, err := store.GetAllAssessmentRecords()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a1", records[0].AssessmentID)
	assert.Contains(t, records[0].Payload, `"repositoryPath":"/a"`)

	scores, err := store.GetAllDimensionScoreRecords()
	require.NoError(t, err)
	require.Len(t, scores, 4)
	assert.Equal(t, string(schema.StructuralQuality), scores[0].Dimension)
	assert.InDelta(t, 0.15, scores[0].Weight, 1e-9)
	assert.False(t, scores[0].NoData)
	assert.True(t, scores[1].NoData)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalAssessments)
	assert.Equal(t, 2, status.TotalRepositories)
	assert.Equal(t, id, status.LastRecordID)
	assert.True(t, status.OldestAssessedAt.Equal(base))
	assert.True(t, status.LastAssessedAt.Equal(base.Add(time.Hour)))
	assert.Equal(t, int64(2), status.TableSizes[assessmentsTable])
	assert.Equal(t, int64(4), status.TableSizes[dimensionScoresTable])
}

func TestHistoryStoreNoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.SaveAssessment(sampleAssessment("a1", "/a", 60, time.Now()))
	require.NoError(t, err)
	assert.Zero(t, id)

	latest, err := store.LatestAssessment("/a")
	require.NoError(t, err)
	assert.Nil(t, latest)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestNewHistoryStoreErrors(t *testing.T) {
	_, err := NewHistoryStore("oracle", "")
	assert.ErrorContains(t, err, "unsupported backend")

	_, err = NewHistoryStore(schema.MySQLBackend, "not a dsn")
	assert.ErrorContains(t, err, "invalid MySQL connection string")

	_, err = NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "missing", "history.db"))
	assert.Error(t, err)
}

func TestWithParseTime(t *testing.T) {
	dsn, err := withParseTime("user:pass@tcp(localhost:3306)/aiready")
	require.NoError(t, err)
	assert.Contains(t, dsn, "parseTime=true")
}
