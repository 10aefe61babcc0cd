package schema

// Custom string types for type safety.
type (
	// Dimension represents one of the fixed scoring axes.
	Dimension string

	// Grade represents the letter bucket derived from an overall score.
	Grade string

	// OutputMode represents the format of the output.
	OutputMode string

	// Phase represents a step of the assessment state machine.
	Phase string

	// TrendDirection represents the classification of a score change.
	TrendDirection string

	// Priority represents how urgent a recommendation is.
	Priority string

	// DatabaseBackend represents the database backend for history tracking.
	DatabaseBackend string
)

// All scoring dimensions, in enumeration order.
const (
	StructuralQuality     Dimension = "structuralQuality"
	ComplexityManagement  Dimension = "complexityManagement"
	DocumentationCoverage Dimension = "documentationCoverage"
	TestCoverage          Dimension = "testCoverage"
	TypeAnnotations       Dimension = "typeAnnotations"
	NamingClarity         Dimension = "namingClarity"
	ArchitecturalClarity  Dimension = "architecturalClarity"
	ToolingSupport        Dimension = "toolingSupport"
	GitHubReadiness       Dimension = "githubReadiness"
)

// AllDimensions lists every dimension in enumeration order.
// Tie-breaking throughout the engine follows this order.
var AllDimensions = []Dimension{
	StructuralQuality,
	ComplexityManagement,
	DocumentationCoverage,
	TestCoverage,
	TypeAnnotations,
	NamingClarity,
	ArchitecturalClarity,
	ToolingSupport,
	GitHubReadiness,
}

// DimensionLabels holds the human-readable name of each dimension.
var DimensionLabels = map[Dimension]string{
	StructuralQuality:     "Structural Quality",
	ComplexityManagement:  "Complexity Management",
	DocumentationCoverage: "Documentation Coverage",
	TestCoverage:          "Test Coverage",
	TypeAnnotations:       "Type Annotations",
	NamingClarity:         "Naming Clarity",
	ArchitecturalClarity:  "Architectural Clarity",
	ToolingSupport:        "Tooling Support",
	GitHubReadiness:       "GitHub Readiness",
}

// All grades supported.
const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// All output modes supported.
const (
	TextOut     OutputMode = "text" // default
	JSONOut     OutputMode = "json"
	CSVOut      OutputMode = "csv"
	MarkdownOut OutputMode = "markdown"
	HTMLOut     OutputMode = "html"
)

// All assessment phases, in the order they are entered.
const (
	PhaseInitializing      Phase = "initializing"
	PhaseAnalyzingTooling  Phase = "analyzing:tooling"
	PhaseAnalyzingGitHub   Phase = "analyzing:github"
	PhaseAnalyzingTests    Phase = "analyzing:tests"
	PhaseScoringDimensions Phase = "scoring:dimensions"
	PhaseScoringOverall    Phase = "scoring:overall"
	PhaseRecommendations   Phase = "generating-recommendations"
	PhaseReportDetails     Phase = "generating-report:details"
	PhaseComplete          Phase = "complete"
)

// All trend directions supported.
const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// All recommendation priorities supported.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:     {},
	JSONOut:     {},
	CSVOut:      {},
	MarkdownOut: {},
	HTMLOut:     {},
}

// ValidExportFormats lists the output modes that can be produced as a serialized string.
var ValidExportFormats = map[OutputMode]struct{}{
	JSONOut:     {},
	CSVOut:      {},
	MarkdownOut: {},
	HTMLOut:     {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidDimensions lists all valid dimensions.
var ValidDimensions = func() map[Dimension]struct{} {
	m := make(map[Dimension]struct{}, len(AllDimensions))
	for _, d := range AllDimensions {
		m[d] = struct{}{}
	}
	return m
}()
