package core

import "github.com/huangsam/aiready/schema"

// ProgressListener receives status events while an assessment runs.
// Events arrive in phase order and percentages never decrease.
type ProgressListener interface {
	OnProgress(p schema.AssessmentProgress)
}

// ProgressFunc adapts a plain function to ProgressListener.
type ProgressFunc func(p schema.AssessmentProgress)

// OnProgress calls f(p).
func (f ProgressFunc) OnProgress(p schema.AssessmentProgress) {
	f(p)
}

// progressReporter delivers events to a listener, one per assessment run.
// A panicking listener is ignored and never aborts the run.
type progressReporter struct {
	listener ProgressListener
	last     int
}

func newProgressReporter(listener ProgressListener) *progressReporter {
	return &progressReporter{listener: listener}
}

// report emits one event. Percentages below the previous event are raised to it.
func (r *progressReporter) report(phase schema.Phase, step string, pct int) {
	if r == nil || r.listener == nil {
		return
	}
	pct = max(pct, r.last)
	r.last = pct
	defer func() { _ = recover() }()
	r.listener.OnProgress(schema.AssessmentProgress{Phase: phase, Step: step, Percentage: pct})
}
