package schema

// Policy constants used by the assessment engine.
const (
	// WeightSumTolerance is the allowed deviation of a weight table from 1.0.
	WeightSumTolerance = 1e-6

	// TrendBand is the score change that separates stable from improving or declining.
	TrendBand = 5

	// DefaultTargetScore is the score the effort estimator aims for.
	DefaultTargetScore = 80

	// DefaultNeutralScore is assigned to dimensions that have no data to score.
	DefaultNeutralScore = 50

	// MaxLargeFiles bounds the large file list in details.
	MaxLargeFiles = 20

	// MaxComplexFunctions bounds the complex function list in details.
	MaxComplexFunctions = 20

	// MaxFunctionsNeedingAttention bounds the list of functions with at least one issue in details.
	MaxFunctionsNeedingAttention = 15

	// MaxEvidenceSamples bounds the offending items kept per dimension result.
	MaxEvidenceSamples = 5
)

// AssessmentThresholds holds the numeric cutoffs that classify a metric as violating.
type AssessmentThresholds struct {
	LargeFile         int `json:"largeFile" yaml:"largeFile" mapstructure:"large_file" validate:"gt=0"`
	HighComplexity    int `json:"highComplexity" yaml:"highComplexity" mapstructure:"high_complexity" validate:"gt=0"`
	DeepNesting       int `json:"deepNesting" yaml:"deepNesting" mapstructure:"deep_nesting" validate:"gt=0"`
	LongParameterList int `json:"longParameterList" yaml:"longParameterList" mapstructure:"long_parameter_list" validate:"gt=0"`
	LargeFunction     int `json:"largeFunction" yaml:"largeFunction" mapstructure:"large_function" validate:"gt=0"`
}

// DefaultThresholds returns the thresholds used when the caller supplies none.
func DefaultThresholds() AssessmentThresholds {
	return AssessmentThresholds{
		LargeFile:         500,
		HighComplexity:    15,
		DeepNesting:       4,
		LongParameterList: 5,
		LargeFunction:     50,
	}
}

// DimensionWeights maps each dimension to its relative importance.
type DimensionWeights map[Dimension]float64

// Sum returns the total of all weights.
func (w DimensionWeights) Sum() float64 {
	total := 0.0
	for _, d := range AllDimensions {
		total += w[d]
	}
	return total
}

// Clone returns a copy of the weights.
func (w DimensionWeights) Clone() DimensionWeights {
	clone := make(DimensionWeights, len(w))
	for k, v := range w {
		clone[k] = v
	}
	return clone
}

// GetDefaultWeights returns the default weight table. It sums to 1.0.
func GetDefaultWeights() DimensionWeights {
	return DimensionWeights{
		StructuralQuality:     0.15,
		ComplexityManagement:  0.15,
		DocumentationCoverage: 0.10,
		TestCoverage:          0.15,
		TypeAnnotations:       0.10,
		NamingClarity:         0.08,
		ArchitecturalClarity:  0.10,
		ToolingSupport:        0.09,
		GitHubReadiness:       0.08,
	}
}

// GetDefaultAcceptableScores returns the per-dimension cutoff under which recommendations are emitted.
func GetDefaultAcceptableScores() map[Dimension]int {
	return map[Dimension]int{
		StructuralQuality:     70,
		ComplexityManagement:  70,
		DocumentationCoverage: 70,
		TestCoverage:          70,
		TypeAnnotations:       70,
		NamingClarity:         70,
		ArchitecturalClarity:  70,
		ToolingSupport:        60,
		GitHubReadiness:       60,
	}
}

// EffortWeight describes the cost of acting on a recommendation for one dimension.
type EffortWeight struct {
	BaseHours    float64 `json:"baseHours" yaml:"baseHours" mapstructure:"base_hours"`
	PerItemHours float64 `json:"perItemHours" yaml:"perItemHours" mapstructure:"per_item_hours"`
}

// GetDefaultEffortModel returns the default effort weight per dimension.
func GetDefaultEffortModel() map[Dimension]EffortWeight {
	return map[Dimension]EffortWeight{
		StructuralQuality:     {BaseHours: 2, PerItemHours: 3},
		ComplexityManagement:  {BaseHours: 2, PerItemHours: 2},
		DocumentationCoverage: {BaseHours: 1, PerItemHours: 0.25},
		TestCoverage:          {BaseHours: 2, PerItemHours: 1.5},
		TypeAnnotations:       {BaseHours: 1, PerItemHours: 0.5},
		NamingClarity:         {BaseHours: 1, PerItemHours: 0.25},
		ArchitecturalClarity:  {BaseHours: 4, PerItemHours: 2},
		ToolingSupport:        {BaseHours: 0.5, PerItemHours: 0.5},
		GitHubReadiness:       {BaseHours: 0.5, PerItemHours: 0.25},
	}
}

// GradeBand maps a minimum overall score to a grade.
type GradeBand struct {
	MinScore int   `json:"minScore"`
	Grade    Grade `json:"grade"`
}

// GradeBands holds the non-overlapping grade bands from highest to lowest.
// Scores below the last band receive GradeF.
var GradeBands = []GradeBand{
	{MinScore: 90, Grade: GradeA},
	{MinScore: 75, Grade: GradeB},
	{MinScore: 60, Grade: GradeC},
	{MinScore: 40, Grade: GradeD},
}
