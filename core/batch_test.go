package core

import (
	"context"
	"fmt"
	"testing"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessBatchKeepsOrder(t *testing.T) {
	assessor := newTestAssessor(&stubDetector{tooling: *fullTooling(), github: *fullGitHub()})

	var analyses []schema.RepositoryAnalysis
	for i := range 6 {
		a := scenarioAnalysis(i, i%2 == 0)
		a.RepositoryPath = fmt.Sprintf("/repos/r%d", i)
		analyses = append(analyses, a)
	}

	results, err := assessor.AssessBatch(context.Background(), analyses, nil, 3)
	require.NoError(t, err)
	require.Len(t, results, len(analyses))

	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, analyses[i].RepositoryPath, res.Assessment.RepositoryPath)

		single, err := assessor.AssessRepository(context.Background(), analyses[i], nil, nil)
		require.NoError(t, err)
		assert.Equal(t, single.OverallScore, res.Assessment.OverallScore)
	}
}

func TestAssessBatchRejectsConfig(t *testing.T) {
	target := -5
	_, err := newTestAssessor(nil).AssessBatch(context.Background(), []schema.RepositoryAnalysis{scenarioAnalysis(0, false)}, &schema.AssessmentConfig{TargetScore: &target}, 2)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestAssessBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAssessor(nil).AssessBatch(ctx, []schema.RepositoryAnalysis{scenarioAnalysis(0, false)}, nil, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
