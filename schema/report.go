package schema

import "time"

// Dimension status labels used in reports.
const (
	StatusPassing = "passing"
	StatusBelow   = "below target"
	StatusNoData  = "no data"
)

// ReportSummary is the headline block of a report.
type ReportSummary struct {
	OverallScore        int           `json:"overallScore"`
	Grade               Grade         `json:"grade"`
	GradeDescription    string        `json:"gradeDescription"`
	TargetScore         int           `json:"targetScore"`
	RecommendationCount int           `json:"recommendationCount"`
	EstimatedHours      float64       `json:"estimatedHours"`
	TargetReachable     bool          `json:"targetReachable"`
	AssessmentDuration  time.Duration `json:"assessmentDuration"`
}

// ReportDimension is one row of the dimension table of a report.
type ReportDimension struct {
	Dimension    Dimension `json:"dimension"`
	Label        string    `json:"label"`
	Score        int       `json:"score"`
	Weight       float64   `json:"weight"`
	Contribution float64   `json:"contribution"`
	Acceptable   int       `json:"acceptable"`
	Status       string    `json:"status"`
	Evidence     []string  `json:"evidence,omitempty"`
}

// AssessmentReport is the renderer-agnostic view of an assessment.
type AssessmentReport struct {
	Title             string            `json:"title"`
	AssessmentID      string            `json:"assessmentId"`
	RepositoryPath    string            `json:"repositoryPath"`
	GeneratedAt       time.Time         `json:"generatedAt"`
	Summary           ReportSummary     `json:"summary"`
	Dimensions        []ReportDimension `json:"dimensions"`
	Recommendations   []Recommendation  `json:"recommendations"`
	Effort            EffortEstimate    `json:"effort"`
	Details           AssessmentDetails `json:"details"`
	ToolingChecks     []Check           `json:"toolingChecks"`
	GitHubChecks      []Check           `json:"githubChecks"`
	TestPresence      TestPresenceInfo  `json:"testPresence"`
	DetectionWarnings []string          `json:"detectionWarnings,omitempty"`
	Trends            *TrendResult      `json:"trends,omitempty"`
}
