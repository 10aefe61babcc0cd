package core

import (
	"testing"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
)

func TestProgressReporterIsMonotonic(t *testing.T) {
	var got []int
	r := newProgressReporter(ProgressFunc(func(p schema.AssessmentProgress) { got = append(got, p.Percentage) }))

	r.report(schema.PhaseInitializing, "start", 0)
	r.report(schema.PhaseScoringDimensions, "scoring", 40)
	r.report(schema.PhaseAnalyzingTests, "late probe", 30)
	r.report(schema.PhaseComplete, "done", 100)

	assert.Equal(t, []int{0, 40, 40, 100}, got)
}

func TestProgressReporterRecoversPanics(t *testing.T) {
	calls := 0
	r := newProgressReporter(ProgressFunc(func(schema.AssessmentProgress) {
		calls++
		panic("boom")
	}))

	assert.NotPanics(t, func() {
		r.report(schema.PhaseInitializing, "start", 0)
		r.report(schema.PhaseComplete, "done", 100)
	})
	assert.Equal(t, 2, calls)
}

func TestProgressReporterNilListener(t *testing.T) {
	var r *progressReporter
	assert.NotPanics(t, func() { r.report(schema.PhaseComplete, "done", 100) })
	assert.NotPanics(t, func() { newProgressReporter(nil).report(schema.PhaseComplete, "done", 100) })
}
