package schema

import "time"

// AssessmentRecord represents a row from the aiready_assessments table.
type AssessmentRecord struct {
	RecordID        int64
	AssessmentID    string
	RepositoryPath  string
	AssessedAt      time.Time
	OverallScore    int32
	Grade           string
	TargetScore     int32
	DurationMs      int64
	Recommendations int32
	Payload         string // JSON encoded AIReadinessAssessment
}

// DimensionScoreRecord represents a row from the aiready_dimension_scores table.
type DimensionScoreRecord struct {
	RecordID   int64
	AssessedAt time.Time
	Dimension  string
	Score      int32
	Weight     float64
	NoData     bool
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend           string           `json:"backend"`
	Connected         bool             `json:"connected"`
	TotalAssessments  int              `json:"total_assessments"`
	TotalRepositories int              `json:"total_repositories"`
	LastRecordID      int64            `json:"last_record_id"`
	LastAssessedAt    time.Time        `json:"last_assessed_at"`
	OldestAssessedAt  time.Time        `json:"oldest_assessed_at"`
	TableSizes        map[string]int64 `json:"table_sizes"`
}

// CheckResult holds the result of a CI gate evaluation.
type CheckResult struct {
	Passed         bool     `json:"passed"`
	RepositoryPath string   `json:"repositoryPath"`
	OverallScore   int      `json:"overallScore"`
	Grade          Grade    `json:"grade"`
	MinScore       int      `json:"minScore"`
	MinGrade       Grade    `json:"minGrade"`
	Failures       []string `json:"failures"`
	Warnings       []string `json:"warnings,omitempty"`
}
