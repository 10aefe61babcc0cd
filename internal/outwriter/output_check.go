package outwriter

import (
	"io"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
)

// WriteCheckResults writes the CI gate verdict in a concise format.
func WriteCheckResults(w io.Writer, results []schema.CheckResult, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeJSON(w, results)
	}

	p := &printer{w: w}
	p.println("Policy Check Results:")
	p.printf("  %-12s %d\n", "Min score:", cfg.MinScore)
	minGrade := string(cfg.MinGrade)
	if minGrade == "" {
		minGrade = "none"
	}
	p.printf("  %-12s %s\n\n", "Min grade:", minGrade)

	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
			p.printf("%s %s: %d (%s)\n", heading(cfg, "✅", "PASS"), r.RepositoryPath, r.OverallScore, r.Grade)
		} else {
			p.printf("%s %s: %d (%s)\n", heading(cfg, "❌", "FAIL"), r.RepositoryPath, r.OverallScore, r.Grade)
		}
		for _, f := range r.Failures {
			p.printf("  - %s\n", f)
		}
		for _, warning := range r.Warnings {
			p.printf("  ! %s\n", warning)
		}
	}
	p.printf("\n%d of %d repositories passed\n", passed, len(results))
	return p.err
}
