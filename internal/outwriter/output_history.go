package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyEntry is the exported shape of one stored assessment, without its payload.
type historyEntry struct {
	RecordID        int64  `json:"recordId"`
	AssessmentID    string `json:"assessmentId"`
	RepositoryPath  string `json:"repositoryPath"`
	AssessedAt      string `json:"assessedAt"`
	OverallScore    int32  `json:"overallScore"`
	Grade           string `json:"grade"`
	TargetScore     int32  `json:"targetScore"`
	DurationMs      int64  `json:"durationMs"`
	Recommendations int32  `json:"recommendations"`
}

func toHistoryEntry(r schema.AssessmentRecord) historyEntry {
	return historyEntry{
		RecordID:        r.RecordID,
		AssessmentID:    r.AssessmentID,
		RepositoryPath:  r.RepositoryPath,
		AssessedAt:      r.AssessedAt.Format(contract.DateTimeFormat),
		OverallScore:    r.OverallScore,
		Grade:           r.Grade,
		TargetScore:     r.TargetScore,
		DurationMs:      r.DurationMs,
		Recommendations: r.Recommendations,
	}
}

// WriteHistoryRecords writes stored assessments, newest first, in the configured format.
func WriteHistoryRecords(w io.Writer, records []schema.AssessmentRecord, cfg *contract.Config) error {
	entries := make([]historyEntry, len(records))
	for i, r := range records {
		entries[i] = toHistoryEntry(r)
	}

	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, entries)
	case schema.CSVOut:
		header := []string{"record_id", "assessment_id", "repository", "assessed_at", "score", "grade", "target", "duration_ms", "recommendations"}
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, e := range entries {
				if err := cw.Write([]string{
					strconv.FormatInt(e.RecordID, 10),
					e.AssessmentID,
					e.RepositoryPath,
					e.AssessedAt,
					strconv.Itoa(int(e.OverallScore)),
					e.Grade,
					strconv.Itoa(int(e.TargetScore)),
					strconv.FormatInt(e.DurationMs, 10),
					strconv.Itoa(int(e.Recommendations)),
				}); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		return writeHistoryTable(w, entries, cfg)
	}
}

// writeHistoryTable writes the stored assessments as a table with score deltas between runs.
func writeHistoryTable(w io.Writer, entries []historyEntry, cfg *contract.Config) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No assessments recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"ID", "Assessed At", "Repository", "Score", "Grade", "Delta", "Recs"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	width := GetMaxTablePathWidth(cfg)
	var data [][]string
	for i, e := range entries {
		// Entries are newest first; the delta is against the next older run of the same repository.
		delta := ""
		for _, older := range entries[i+1:] {
			if older.RepositoryPath == e.RepositoryPath {
				delta = formatDelta(int(e.OverallScore-older.OverallScore), cfg)
				break
			}
		}
		grade := e.Grade
		if cfg.UseColors {
			grade = contract.GetColorGrade(schema.Grade(e.Grade))
		}
		data = append(data, []string{
			strconv.FormatInt(e.RecordID, 10),
			e.AssessedAt,
			contract.TruncatePath(e.RepositoryPath, width),
			strconv.Itoa(int(e.OverallScore)),
			grade,
			delta,
			strconv.Itoa(int(e.Recommendations)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d assessment(s). History backend: %s\n", len(entries), cfg.HistoryBackend)
	return err
}
