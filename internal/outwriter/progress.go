package outwriter

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/huangsam/aiready/schema"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar renders assessment progress events as a terminal progress bar.
// It satisfies the orchestrator's progress listener interface.
type ProgressBar struct {
	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewProgressBar creates a progress bar writing to stderr.
func NewProgressBar(description string) *ProgressBar {
	return newProgressBar(os.Stderr, description)
}

func newProgressBar(w io.Writer, description string) *ProgressBar {
	return &ProgressBar{
		bar: progressbar.NewOptions(100,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		),
	}
}

// OnProgress moves the bar to the event percentage and shows the current step.
func (p *ProgressBar) OnProgress(event schema.AssessmentProgress) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Describe(event.Step)
	_ = p.bar.Set(event.Percentage)
	if event.Phase == schema.PhaseComplete {
		_ = p.bar.Finish()
	}
}
