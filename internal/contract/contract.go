// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/aiready/schema"
)

// Detector defines the filesystem probes that feed the assessment.
// Each probe may fail; callers substitute a conservative snapshot on error.
type Detector interface {
	// DetectTooling reports the developer tooling configured in the repository.
	DetectTooling(ctx context.Context, repoPath string) (schema.ToolingConfig, error)

	// DetectGitHubReadiness reports the collaboration and CI setup of the repository.
	DetectGitHubReadiness(ctx context.Context, repoPath string) (schema.GitHubReadinessConfig, error)

	// DetectTests reports the test files found in the repository.
	DetectTests(ctx context.Context, repoPath string) (schema.TestPresenceInfo, error)
}

// StoreManager defines the interface for managing history stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for persisting assessments over time.
type HistoryStore interface {
	// SaveAssessment stores an assessment and its dimension scores, returning the record ID
	SaveAssessment(a *schema.AIReadinessAssessment) (int64, error)

	// LatestAssessment returns the most recent assessment of a repository, or nil if there is none
	LatestAssessment(repoPath string) (*schema.AIReadinessAssessment, error)

	// ListAssessments returns the newest records of a repository, newest first
	ListAssessments(repoPath string, limit int) ([]schema.AssessmentRecord, error)

	// GetAllAssessmentRecords returns every stored assessment row
	GetAllAssessmentRecords() ([]schema.AssessmentRecord, error)

	// GetAllDimensionScoreRecords returns every stored dimension score row
	GetAllDimensionScoreRecords() ([]schema.DimensionScoreRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}
