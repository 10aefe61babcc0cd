package iocache

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/huangsam/aiready/schema"
)

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Assessments: %d\n", status.TotalAssessments)
	if status.TotalAssessments > 0 {
		_, _ = fmt.Fprintf(w, "Repositories: %d\n", status.TotalRepositories)
		_, _ = fmt.Fprintf(w, "Last Record ID: %d\n", status.LastRecordID)
		_, _ = fmt.Fprintf(w, "Last Assessment: %s\n", status.LastAssessedAt.Format("2006-01-02 15:04:05"))
		_, _ = fmt.Fprintf(w, "Oldest Assessment: %s\n", status.OldestAssessedAt.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	for _, table := range slices.Sorted(maps.Keys(status.TableSizes)) {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
