package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/internal/parquet"
)

// ExecuteHistoryExport writes the stored history as two Parquet files next to outputFile.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalAssessments == 0 {
		return errors.New("no assessment history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting history from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total assessments: %d\n", status.TotalAssessments)
	_, _ = fmt.Fprintf(w, "Total dimension scores: %d\n", status.TableSizes[dimensionScoresTable])

	assessments, err := store.GetAllAssessmentRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve assessments: %w", err)
	}
	scores, err := store.GetAllDimensionScoreRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve dimension scores: %w", err)
	}

	assessmentsFile := outputFile + ".assessments.parquet"
	rows := parquet.ConvertAssessmentRecords(assessments)
	if err := parquet.WriteAssessmentsParquet(rows, assessmentsFile); err != nil {
		return fmt.Errorf("failed to write assessments: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d assessments to: %s\n", len(rows), assessmentsFile)

	scoresFile := outputFile + ".dimension_scores.parquet"
	scoreRows := parquet.ConvertDimensionScoreRecords(scores)
	if err := parquet.WriteDimensionScoresParquet(scoreRows, scoresFile); err != nil {
		return fmt.Errorf("failed to write dimension scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d dimension scores to: %s\n", len(scoreRows), scoresFile)

	_, _ = fmt.Fprintln(w, "\nExport complete! The Parquet files can be read with DuckDB, Pandas (via pyarrow) or Apache Spark.")
	return nil
}
