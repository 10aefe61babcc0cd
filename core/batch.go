package core

import (
	"context"
	"fmt"

	"github.com/huangsam/aiready/schema"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one analysis in a batch.
type BatchResult struct {
	Analysis   schema.RepositoryAnalysis
	Assessment *schema.AIReadinessAssessment
	Err        error
}

// AssessBatch assesses several analyses with at most workers running at once.
// Results keep the input order. A failed assessment is reported in its result and does
// not stop the others; only a cancelled context aborts the batch.
func (a *Assessor) AssessBatch(ctx context.Context, analyses []schema.RepositoryAnalysis, cfg *schema.AssessmentConfig, workers int) ([]BatchResult, error) {
	if _, err := ResolveConfig(cfg); err != nil {
		return nil, err
	}

	results := make([]BatchResult, len(analyses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	for i, analysis := range analyses {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			assessment, err := a.AssessRepository(gctx, analysis, cfg, nil)
			if err != nil {
				err = fmt.Errorf("assessing %s: %w", analysis.RepositoryPath, err)
			}
			results[i] = BatchResult{Analysis: analysis, Assessment: assessment, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
