package schema

// MetricsDimension describes how one dimension is scored under the active configuration.
type MetricsDimension struct {
	Dimension     Dimension `json:"dimension"`
	Label         string    `json:"label"`
	Weight        float64   `json:"weight"`
	Acceptable    int       `json:"acceptable"`
	PenaltyFactor float64   `json:"penaltyFactor"`
	BaseHours     float64   `json:"baseHours"`
	PerItemHours  float64   `json:"perItemHours"`
}

// MetricsRenderModel is the complete model rendered by the metrics command.
type MetricsRenderModel struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Formula      string               `json:"formula"`
	Dimensions   []MetricsDimension   `json:"dimensions"`
	Thresholds   AssessmentThresholds `json:"thresholds"`
	TargetScore  int                  `json:"targetScore"`
	NeutralScore int                  `json:"neutralScore"`
	GradeBands   []GradeBand          `json:"gradeBands"`
}
