package schema

import "time"

// FullScoreBreakdown maps every dimension to its score in [0,100].
type FullScoreBreakdown map[Dimension]int

// DimensionScoreResult is the score of one dimension with the evidence behind it.
type DimensionScoreResult struct {
	Dimension     Dimension          `json:"dimension"`
	Score         int                `json:"score"`
	Opportunities int                `json:"opportunities"`
	Violations    int                `json:"violations"`
	Density       float64            `json:"density"`
	NoData        bool               `json:"noData"`
	Metrics       map[string]float64 `json:"metrics,omitempty"`
	Samples       []string           `json:"samples,omitempty"`
}

// Recommendation is one actionable improvement suggestion.
type Recommendation struct {
	ID            string    `json:"id"`
	Dimension     Dimension `json:"dimension"`
	Priority      Priority  `json:"priority"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Action        string    `json:"action"`
	AffectedCount int       `json:"affectedCount"`
	Impact        float64   `json:"impact"`
	EffortHours   float64   `json:"effortHours"`
}

// EffortItem is one recommendation selected by the effort estimator.
type EffortItem struct {
	RecommendationID string    `json:"recommendationId"`
	Dimension        Dimension `json:"dimension"`
	Impact           float64   `json:"impact"`
	EffortHours      float64   `json:"effortHours"`
	CumulativeImpact float64   `json:"cumulativeImpact"`
}

// EffortEstimate is the cost to close the gap between the current and the target score.
type EffortEstimate struct {
	Strategy           string       `json:"strategy"`
	CurrentScore       int          `json:"currentScore"`
	TargetScore        int          `json:"targetScore"`
	Gap                int          `json:"gap"`
	TotalEffortHours   float64      `json:"totalEffortHours"`
	Selected           []EffortItem `json:"selected"`
	CumulativeImpact   float64      `json:"cumulativeImpact"`
	ProjectedScore     int          `json:"projectedScore"`
	MaxAchievableScore int          `json:"maxAchievableScore"`
	TargetReachable    bool         `json:"targetReachable"`
}

// LargeFileDetail describes a file that exceeds the large file threshold.
type LargeFileDetail struct {
	Path        string `json:"path"`
	LinesOfCode int    `json:"linesOfCode"`
	IssueCount  int    `json:"issueCount"`
}

// FunctionDetail describes a function surfaced for review.
type FunctionDetail struct {
	Name                 string   `json:"name"`
	FilePath             string   `json:"filePath"`
	StartLine            int      `json:"startLine"`
	LinesOfCode          int      `json:"linesOfCode"`
	CyclomaticComplexity int      `json:"cyclomaticComplexity"`
	CognitiveComplexity  int      `json:"cognitiveComplexity"`
	NestingDepth         int      `json:"nestingDepth"`
	ParameterCount       int      `json:"parameterCount"`
	Issues               []string `json:"issues"`
}

// DetailLimits records the bounds applied to the detail lists.
type DetailLimits struct {
	LargeFiles                int `json:"largeFiles"`
	ComplexFunctions          int `json:"complexFunctions"`
	FunctionsNeedingAttention int `json:"functionsNeedingAttention"`
}

// AssessmentDetails holds the drill-down evidence of an assessment.
// Each list is bounded by Limits; the Total fields count every matching item.
type AssessmentDetails struct {
	LargeFiles                     []LargeFileDetail        `json:"largeFiles"`
	ComplexFunctions               []FunctionDetail         `json:"complexFunctions"`
	FunctionsNeedingAttention      []FunctionDetail         `json:"functionsNeedingAttention"`
	AntiPatternsByCategory         map[string][]AntiPattern `json:"antiPatternsByCategory"`
	TotalLargeFiles                int                      `json:"totalLargeFiles"`
	TotalComplexFunctions          int                      `json:"totalComplexFunctions"`
	TotalFunctionsNeedingAttention int                      `json:"totalFunctionsNeedingAttention"`
	Limits                         DetailLimits             `json:"limits"`
}

// TrendResult is the comparison of two assessments of the same repository.
type TrendResult struct {
	PreviousScore      int               `json:"previousScore"`
	CurrentScore       int               `json:"currentScore"`
	ScoreChange        int               `json:"scoreChange"`
	GradeChange        string            `json:"gradeChange"`
	Direction          TrendDirection    `json:"direction"`
	DimensionChanges   map[Dimension]int `json:"dimensionChanges"`
	Improvements       []string          `json:"improvements"`
	Regressions        []string          `json:"regressions"`
	PreviousAssessedAt time.Time         `json:"previousAssessedAt"`
}

// AIReadinessAssessment is the aggregate result of one assessment run.
// It is never mutated after construction.
type AIReadinessAssessment struct {
	ID                 string                             `json:"id"`
	RepositoryPath     string                             `json:"repositoryPath"`
	OverallScore       int                                `json:"overallScore"`
	Grade              Grade                              `json:"grade"`
	Breakdown          FullScoreBreakdown                 `json:"breakdown"`
	DimensionScores    map[Dimension]DimensionScoreResult `json:"dimensionScores"`
	Weights            DimensionWeights                   `json:"weights"`
	Thresholds         AssessmentThresholds               `json:"thresholds"`
	AcceptableScores   map[Dimension]int                  `json:"acceptableScores"`
	TargetScore        int                                `json:"targetScore"`
	Recommendations    []Recommendation                   `json:"recommendations"`
	EffortEstimate     EffortEstimate                     `json:"effortEstimate"`
	Details            AssessmentDetails                  `json:"details"`
	Tooling            *ToolingConfig                     `json:"tooling"`
	GitHubReadiness    *GitHubReadinessConfig             `json:"githubReadiness"`
	TestPresence       TestPresenceInfo                   `json:"testPresence"`
	SourceAnalysis     AnalysisSummary                    `json:"sourceAnalysis"`
	AssessedAt         time.Time                          `json:"assessedAt"`
	AssessmentDuration time.Duration                      `json:"assessmentDuration"`
	DetectionWarnings  []string                           `json:"detectionWarnings,omitempty"`
	Trends             *TrendResult                       `json:"trends,omitempty"`
}

// AssessmentConfig holds the caller overrides for one assessment run.
// Nil or empty fields fall back to the defaults.
type AssessmentConfig struct {
	Thresholds         *AssessmentThresholds
	Weights            DimensionWeights
	TargetScore        *int
	PreviousAssessment *AIReadinessAssessment
	AcceptableScores   map[Dimension]int
	EffortModel        map[Dimension]EffortWeight
	NeutralScore       *int
}

// AssessmentProgress is a point-in-time status event emitted during an assessment.
type AssessmentProgress struct {
	Phase      Phase  `json:"phase"`
	Step       string `json:"step"`
	Percentage int    `json:"percentage"`
}
