package schema

// RepositoryAnalysis is the structural snapshot of a repository produced by an external analyzer.
type RepositoryAnalysis struct {
	RepositoryPath string           `json:"repositoryPath" yaml:"repositoryPath"`
	Complexity     ComplexityReport `json:"complexity" yaml:"complexity"`
	AntiPatterns   []AntiPattern    `json:"antiPatterns" yaml:"antiPatterns"`
	Files          []SourceFile     `json:"files,omitempty" yaml:"files,omitempty"`
}

// ComplexityReport holds per-function complexity metrics.
type ComplexityReport struct {
	Functions []FunctionComplexity `json:"functions" yaml:"functions"`
}

// FunctionComplexity holds the metrics of a single function.
// Documented and Typed are optional: nil means the analyzer did not report them.
type FunctionComplexity struct {
	Name                 string `json:"name" yaml:"name"`
	FilePath             string `json:"filePath" yaml:"filePath"`
	StartLine            int    `json:"startLine" yaml:"startLine"`
	EndLine              int    `json:"endLine" yaml:"endLine"`
	LinesOfCode          int    `json:"linesOfCode" yaml:"linesOfCode"`
	CyclomaticComplexity int    `json:"cyclomaticComplexity" yaml:"cyclomaticComplexity"`
	CognitiveComplexity  int    `json:"cognitiveComplexity" yaml:"cognitiveComplexity"`
	NestingDepth         int    `json:"nestingDepth" yaml:"nestingDepth"`
	ParameterCount       int    `json:"parameterCount" yaml:"parameterCount"`
	Documented           *bool  `json:"documented,omitempty" yaml:"documented,omitempty"`
	Typed                *bool  `json:"typed,omitempty" yaml:"typed,omitempty"`
}

// AntiPattern is a single finding reported by the analyzer.
type AntiPattern struct {
	FilePath    string `json:"filePath" yaml:"filePath"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Severity    string `json:"severity,omitempty" yaml:"severity,omitempty"`
	Line        int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// SourceFile describes one file of the repository.
type SourceFile struct {
	Path        string `json:"path" yaml:"path"`
	LinesOfCode int    `json:"linesOfCode" yaml:"linesOfCode"`
}

// AnalysisSummary is the reference to the source analysis kept on an assessment.
type AnalysisSummary struct {
	RepositoryPath    string  `json:"repositoryPath"`
	Fingerprint       string  `json:"fingerprint"`
	FunctionCount     int     `json:"functionCount"`
	FileCount         int     `json:"fileCount"`
	AntiPatternCount  int     `json:"antiPatternCount"`
	TotalLinesOfCode  int     `json:"totalLinesOfCode"`
	MaxCyclomatic     int     `json:"maxCyclomatic"`
	AverageCyclomatic float64 `json:"averageCyclomatic"`
}
