package contract

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/aiready/schema"
)

// Default values for configuration.
const (
	DefaultPrecision        = 1
	DefaultHistoryLimit     = 20
	MaxHistoryLimit         = 1000
	DefaultMinScore         = 60
	DefaultDetectionTimeout = 30 * time.Second
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// WeightsRawInput holds the custom dimension weights from the YAML config file.
// Use float64 pointers so that partial tables can be told apart from zero weights.
type WeightsRawInput struct {
	StructuralQuality     *float64 `mapstructure:"structural_quality"`
	ComplexityManagement  *float64 `mapstructure:"complexity_management"`
	DocumentationCoverage *float64 `mapstructure:"documentation_coverage"`
	TestCoverage          *float64 `mapstructure:"test_coverage"`
	TypeAnnotations       *float64 `mapstructure:"type_annotations"`
	NamingClarity         *float64 `mapstructure:"naming_clarity"`
	ArchitecturalClarity  *float64 `mapstructure:"architectural_clarity"`
	ToolingSupport        *float64 `mapstructure:"tooling_support"`
	GitHubReadiness       *float64 `mapstructure:"github_readiness"`
}

// ThresholdsRawInput holds the metric thresholds from the YAML config file.
type ThresholdsRawInput struct {
	LargeFile         *int `mapstructure:"large_file"`
	HighComplexity    *int `mapstructure:"high_complexity"`
	DeepNesting       *int `mapstructure:"deep_nesting"`
	LongParameterList *int `mapstructure:"long_parameter_list"`
	LargeFunction     *int `mapstructure:"large_function"`
}

// Config holds the runtime configuration of the command line tools.
// This struct is the "final, validated" config.
type Config struct {
	AnalysisFiles []string
	RepoPath      string // Overrides the repository path of the analysis
	Workers       int
	Precision     int
	Output        schema.OutputMode
	OutputFile    string
	Detail        bool
	Width         int // Terminal width override (0 = auto-detect)
	Verbose       bool
	Progress      bool

	Trend bool // Compare against the latest stored assessment
	Save  bool // Save assessments to the history store

	TargetScore  int
	NeutralScore int
	Thresholds   schema.AssessmentThresholds

	// CustomWeights holds the weights from the config file, possibly partial
	CustomWeights schema.DimensionWeights

	// AcceptableScores overrides the per-dimension recommendation cutoffs
	AcceptableScores map[schema.Dimension]int

	MinScore int
	MinGrade schema.Grade

	DetectionTimeout time.Duration
	GitHubToken      string // Please use env var as this is plaintext
	GitHubRepo       string // owner/name used for branch protection probing

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	HistoryLimit     int

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	AnalysisFiles []string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Output           string `mapstructure:"output"`
	Precision        int    `mapstructure:"precision"`
	Workers          int    `mapstructure:"workers"`
	Width            int    `mapstructure:"width"`
	Verbose          bool   `mapstructure:"verbose"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from assessCmd.Flags() ---
	Repo             string `mapstructure:"repo"`
	Detail           bool   `mapstructure:"detail"`
	Trend            bool   `mapstructure:"trend"`
	Save             bool   `mapstructure:"save"`
	Progress         bool   `mapstructure:"progress"`
	TargetScore      int    `mapstructure:"target-score"`
	NeutralScore     int    `mapstructure:"neutral-score"`
	DetectionTimeout string `mapstructure:"detection-timeout"`
	GitHubToken      string `mapstructure:"github-token"`
	GitHubRepo       string `mapstructure:"github-repo"`

	// --- Fields from checkCmd.Flags() ---
	MinScore int    `mapstructure:"min-score"`
	MinGrade string `mapstructure:"min-grade"`

	// --- Fields from historyCmd.PersistentFlags() ---
	Limit int `mapstructure:"limit"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- Metric thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`

	// --- Acceptable cutoffs from config file, keyed by dimension ---
	Acceptable map[string]int `mapstructure:"acceptable"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.AnalysisFiles = slices.Clone(c.AnalysisFiles)
	if c.CustomWeights != nil {
		clone.CustomWeights = c.CustomWeights.Clone()
	}
	if c.AcceptableScores != nil {
		clone.AcceptableScores = make(map[schema.Dimension]int, len(c.AcceptableScores))
		maps.Copy(clone.AcceptableScores, c.AcceptableScores)
	}
	return &clone
}

// AssessmentConfig builds the engine overrides from the validated config.
func (c *Config) AssessmentConfig() *schema.AssessmentConfig {
	thresholds := c.Thresholds
	target := c.TargetScore
	neutral := c.NeutralScore
	cfg := &schema.AssessmentConfig{
		Thresholds:   &thresholds,
		TargetScore:  &target,
		NeutralScore: &neutral,
	}
	if len(c.CustomWeights) > 0 {
		cfg.Weights = c.CustomWeights.Clone()
	}
	if len(c.AcceptableScores) > 0 {
		cfg.AcceptableScores = make(map[schema.Dimension]int, len(c.AcceptableScores))
		maps.Copy(cfg.AcceptableScores, c.AcceptableScores)
	}
	return cfg
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	if err := processAcceptableScores(cfg, input); err != nil {
		return err
	}
	if err := processCheckPolicy(cfg, input); err != nil {
		return err
	}
	return processAnalysisFiles(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.HistoryBackend))
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.HistoryBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.Trend = input.Trend
	cfg.Save = input.Save
	cfg.Progress = input.Progress
	cfg.GitHubToken = strings.TrimSpace(input.GitHubToken)
	cfg.GitHubRepo = strings.TrimSpace(input.GitHubRepo)

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, markdown, html", input.Output)
	}

	if input.TargetScore < 0 || input.TargetScore > 100 {
		return fmt.Errorf("target score must be between 0 and 100 (received %d)", input.TargetScore)
	}
	cfg.TargetScore = input.TargetScore

	if input.NeutralScore < 0 || input.NeutralScore > 100 {
		return fmt.Errorf("neutral score must be between 0 and 100 (received %d)", input.NeutralScore)
	}
	cfg.NeutralScore = input.NeutralScore

	cfg.DetectionTimeout = DefaultDetectionTimeout
	if input.DetectionTimeout != "" {
		timeout, err := time.ParseDuration(input.DetectionTimeout)
		if err != nil || timeout <= 0 {
			return fmt.Errorf("invalid --detection-timeout value '%s'. expected a positive duration like 30s", input.DetectionTimeout)
		}
		cfg.DetectionTimeout = timeout
	}

	if cfg.GitHubRepo != "" && strings.Count(cfg.GitHubRepo, "/") != 1 {
		return fmt.Errorf("github repo must be in owner/name form (received %s)", cfg.GitHubRepo)
	}

	cfg.HistoryLimit = DefaultHistoryLimit
	if input.Limit != 0 {
		if input.Limit < 0 || input.Limit > MaxHistoryLimit {
			return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxHistoryLimit, input.Limit)
		}
		cfg.HistoryLimit = input.Limit
	}
	return nil
}

// ProcessWeightsRawInput converts WeightsRawInput into a weights map holding only the
// provided dimensions. If validateSum is true, a complete table must sum to 1.0.
// A partial table is renormalised by the engine.
func ProcessWeightsRawInput(weights WeightsRawInput, validateSum bool) (schema.DimensionWeights, error) {
	raw := map[schema.Dimension]*float64{
		schema.StructuralQuality:     weights.StructuralQuality,
		schema.ComplexityManagement:  weights.ComplexityManagement,
		schema.DocumentationCoverage: weights.DocumentationCoverage,
		schema.TestCoverage:          weights.TestCoverage,
		schema.TypeAnnotations:       weights.TypeAnnotations,
		schema.NamingClarity:         weights.NamingClarity,
		schema.ArchitecturalClarity:  weights.ArchitecturalClarity,
		schema.ToolingSupport:        weights.ToolingSupport,
		schema.GitHubReadiness:       weights.GitHubReadiness,
	}

	result := make(schema.DimensionWeights)
	sum := 0.0
	for _, d := range schema.AllDimensions {
		w := raw[d]
		if w == nil {
			continue
		}
		if *w < 0 || *w > 1 {
			return nil, fmt.Errorf("custom weight for %s must be between 0.0 and 1.0, got %.3f", d, *w)
		}
		result[d] = *w
		sum += *w
	}

	if validateSum && len(result) > 0 {
		complete := len(result) == len(schema.AllDimensions)
		if complete && (sum < 1-schema.WeightSumTolerance || sum > 1+schema.WeightSumTolerance) {
			return nil, fmt.Errorf("custom weights must sum to 1.0, got %.3f", sum)
		}
	}
	return result, nil
}

// processCustomWeights converts the raw input into the final cfg.CustomWeights map.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, true)
	if err != nil {
		return err
	}
	cfg.CustomWeights = weights
	return nil
}

// processThresholds merges the config file thresholds over the defaults.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	th := schema.DefaultThresholds()
	overrides := []struct {
		name  string
		value *int
		dest  *int
	}{
		{"large_file", input.Thresholds.LargeFile, &th.LargeFile},
		{"high_complexity", input.Thresholds.HighComplexity, &th.HighComplexity},
		{"deep_nesting", input.Thresholds.DeepNesting, &th.DeepNesting},
		{"long_parameter_list", input.Thresholds.LongParameterList, &th.LongParameterList},
		{"large_function", input.Thresholds.LargeFunction, &th.LargeFunction},
	}
	for _, o := range overrides {
		if o.value == nil {
			continue
		}
		if *o.value <= 0 {
			return fmt.Errorf("threshold %s must be greater than 0 (received %d)", o.name, *o.value)
		}
		*o.dest = *o.value
	}
	cfg.Thresholds = th
	return nil
}

// processAcceptableScores validates the per-dimension cutoffs from the config file.
func processAcceptableScores(cfg *Config, input *ConfigRawInput) error {
	if len(input.Acceptable) == 0 {
		return nil
	}
	cfg.AcceptableScores = make(map[schema.Dimension]int, len(input.Acceptable))
	for key, value := range input.Acceptable {
		d, ok := ParseDimension(key)
		if !ok {
			return fmt.Errorf("unknown dimension '%s' in acceptable scores", key)
		}
		if value < 0 || value > 100 {
			return fmt.Errorf("acceptable score for %s must be between 0 and 100 (received %d)", d, value)
		}
		cfg.AcceptableScores[d] = value
	}
	return nil
}

// processCheckPolicy validates the CI gate settings.
func processCheckPolicy(cfg *Config, input *ConfigRawInput) error {
	if input.MinScore < 0 || input.MinScore > 100 {
		return fmt.Errorf("min score must be between 0 and 100 (received %d)", input.MinScore)
	}
	cfg.MinScore = input.MinScore

	if input.MinGrade == "" {
		return nil
	}
	grade := schema.Grade(strings.ToUpper(strings.TrimSpace(input.MinGrade)))
	switch grade {
	case schema.GradeA, schema.GradeB, schema.GradeC, schema.GradeD, schema.GradeF:
		cfg.MinGrade = grade
	default:
		return fmt.Errorf("invalid min grade '%s'. must be A, B, C, D, F", input.MinGrade)
	}
	return nil
}

// processAnalysisFiles resolves the positional analysis files and the repository override.
func processAnalysisFiles(cfg *Config, input *ConfigRawInput) error {
	cfg.AnalysisFiles = cfg.AnalysisFiles[:0]
	for _, f := range input.AnalysisFiles {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("analysis file does not exist: %s", f)
		}
		cfg.AnalysisFiles = append(cfg.AnalysisFiles, abs)
	}

	if input.Repo == "" {
		return nil
	}
	abs, err := filepath.Abs(input.Repo)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("repository path is not a directory: %s", input.Repo)
	}
	cfg.RepoPath = filepath.Clean(abs)
	return nil
}

// ParseDimension resolves a dimension from its canonical name or its snake_case form.
func ParseDimension(s string) (schema.Dimension, bool) {
	key := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(s), "_", ""), "-", ""))
	for _, d := range schema.AllDimensions {
		if strings.ToLower(string(d)) == key {
			return d, true
		}
	}
	return "", false
}
