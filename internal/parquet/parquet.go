// Package parquet exports assessment history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/aiready/schema"
	"github.com/parquet-go/parquet-go"
)

// Assessment is one stored assessment without its JSON payload.
// This struct maps to the aiready_assessments database table.
type Assessment struct {
	// RecordID is the unique identifier of the stored row
	RecordID int64 `parquet:"record_id,snappy"`

	// AssessmentID is the identifier generated by the assessor
	AssessmentID string `parquet:"assessment_id,snappy,dict"`

	// RepositoryPath is the repository that was assessed
	RepositoryPath string `parquet:"repository_path,snappy,dict"`

	// AssessedAt is when the assessment completed (stored as TIMESTAMP with nanosecond precision)
	AssessedAt time.Time `parquet:"assessed_at,snappy"`

	OverallScore    int32  `parquet:"overall_score,snappy"`
	Grade           string `parquet:"grade,snappy,dict"`
	TargetScore     int32  `parquet:"target_score,snappy"`
	DurationMs      int64  `parquet:"duration_ms,snappy"`
	Recommendations int32  `parquet:"recommendations,snappy"`
}

// DimensionScore is the score of one dimension in a stored assessment.
// This struct maps to the aiready_dimension_scores database table.
type DimensionScore struct {
	// RecordID references the parent assessment row
	RecordID int64 `parquet:"record_id,snappy"`

	AssessedAt time.Time `parquet:"assessed_at,snappy"`
	Dimension  string    `parquet:"dimension,snappy,dict"`
	Score      int32     `parquet:"score,snappy"`
	Weight     float64   `parquet:"weight,snappy"`

	// NoData marks a dimension scored with the neutral score because its input was missing
	NoData bool `parquet:"no_data,snappy"`
}

// WriteAssessmentsParquet writes assessment rows to a Parquet file.
func WriteAssessmentsParquet(data []Assessment, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDimensionScoresParquet writes dimension score rows to a Parquet file.
func WriteDimensionScoresParquet(data []DimensionScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with the schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the row group and writes the footer.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertAssessmentRecords converts schema.AssessmentRecord to Assessment for Parquet export.
func ConvertAssessmentRecords(records []schema.AssessmentRecord) []Assessment {
	result := make([]Assessment, len(records))
	for i, record := range records {
		result[i] = Assessment{
			RecordID:        record.RecordID,
			AssessmentID:    record.AssessmentID,
			RepositoryPath:  record.RepositoryPath,
			AssessedAt:      record.AssessedAt,
			OverallScore:    record.OverallScore,
			Grade:           record.Grade,
			TargetScore:     record.TargetScore,
			DurationMs:      record.DurationMs,
			Recommendations: record.Recommendations,
		}
	}
	return result
}

// ConvertDimensionScoreRecords converts schema.DimensionScoreRecord to DimensionScore for Parquet export.
func ConvertDimensionScoreRecords(records []schema.DimensionScoreRecord) []DimensionScore {
	result := make([]DimensionScore, len(records))
	for i, record := range records {
		result[i] = DimensionScore{
			RecordID:   record.RecordID,
			AssessedAt: record.AssessedAt,
			Dimension:  record.Dimension,
			Score:      record.Score,
			Weight:     record.Weight,
			NoData:     record.NoData,
		}
	}
	return result
}
