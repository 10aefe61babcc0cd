package contract

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Output:       "text",
		Precision:    DefaultPrecision,
		Workers:      2,
		Emoji:        "no",
		Color:        "yes",
		TargetScore:  schema.DefaultTargetScore,
		NeutralScore: schema.DefaultNeutralScore,
		MinScore:     DefaultMinScore,
	}
}

func float(v float64) *float64 { return &v }

func integer(v int) *int { return &v }

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validRawInput()))

	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SQLiteBackend, cfg.HistoryBackend)
	assert.Equal(t, schema.DefaultThresholds(), cfg.Thresholds)
	assert.Equal(t, DefaultDetectionTimeout, cfg.DetectionTimeout)
	assert.Equal(t, DefaultHistoryLimit, cfg.HistoryLimit)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)
	assert.Empty(t, cfg.CustomWeights)
	assert.Empty(t, cfg.MinGrade)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *ConfigRawInput)
		errMsg string
	}{
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }, "workers must be greater than 0"},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 3 }, "precision must be 1 or 2"},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }, "invalid output format"},
		{"bad emoji", func(in *ConfigRawInput) { in.Emoji = "sometimes" }, "invalid --emoji value"},
		{"target out of range", func(in *ConfigRawInput) { in.TargetScore = 101 }, "target score must be between 0 and 100"},
		{"neutral out of range", func(in *ConfigRawInput) { in.NeutralScore = -1 }, "neutral score must be between 0 and 100"},
		{"bad timeout", func(in *ConfigRawInput) { in.DetectionTimeout = "soon" }, "invalid --detection-timeout value"},
		{"bad github repo", func(in *ConfigRawInput) { in.GitHubRepo = "just-a-name" }, "owner/name"},
		{"limit too large", func(in *ConfigRawInput) { in.Limit = MaxHistoryLimit + 1 }, "limit must be greater than 0"},
		{"bad backend", func(in *ConfigRawInput) { in.HistoryBackend = "redis" }, "invalid history backend"},
		{"mysql without dsn", func(in *ConfigRawInput) { in.HistoryBackend = "mysql" }, "history-db-connect is required"},
		{"bad threshold", func(in *ConfigRawInput) { in.Thresholds.LargeFile = integer(0) }, "threshold large_file must be greater than 0"},
		{"unknown acceptable", func(in *ConfigRawInput) { in.Acceptable = map[string]int{"speed": 50} }, "unknown dimension"},
		{"acceptable out of range", func(in *ConfigRawInput) { in.Acceptable = map[string]int{"naming_clarity": 150} }, "acceptable score"},
		{"bad min grade", func(in *ConfigRawInput) { in.MinGrade = "E" }, "invalid min grade"},
		{"min score out of range", func(in *ConfigRawInput) { in.MinScore = 120 }, "min score must be between 0 and 100"},
		{"missing analysis file", func(in *ConfigRawInput) { in.AnalysisFiles = []string{"/does/not/exist.json"} }, "analysis file does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRawInput()
			tt.mutate(in)
			err := ProcessAndValidate(&Config{}, in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestProcessAndValidateOverrides(t *testing.T) {
	dir := t.TempDir()
	analysis := filepath.Join(dir, "analysis.yaml")
	require.NoError(t, os.WriteFile(analysis, []byte("repositoryPath: .\n"), 0o644))

	in := validRawInput()
	in.AnalysisFiles = []string{analysis}
	in.Repo = dir
	in.Output = "JSON"
	in.DetectionTimeout = "5s"
	in.MinGrade = "b"
	in.Limit = 5
	in.HistoryBackend = "PostgreSQL"
	in.HistoryDBConnect = "host=localhost dbname=aiready"
	in.Thresholds.HighComplexity = integer(10)
	in.Weights.TestCoverage = float(0.3)
	in.Acceptable = map[string]int{"tooling_support": 80}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))

	assert.Equal(t, schema.JSONOut, cfg.Output)
	assert.Equal(t, []string{analysis}, cfg.AnalysisFiles)
	assert.Equal(t, filepath.Clean(dir), cfg.RepoPath)
	assert.Equal(t, 5*time.Second, cfg.DetectionTimeout)
	assert.Equal(t, schema.GradeB, cfg.MinGrade)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, schema.PostgreSQLBackend, cfg.HistoryBackend)
	assert.Equal(t, 10, cfg.Thresholds.HighComplexity)
	assert.Equal(t, 500, cfg.Thresholds.LargeFile)
	assert.Equal(t, schema.DimensionWeights{schema.TestCoverage: 0.3}, cfg.CustomWeights)
	assert.Equal(t, map[schema.Dimension]int{schema.ToolingSupport: 80}, cfg.AcceptableScores)

	engine := cfg.AssessmentConfig()
	require.NotNil(t, engine.TargetScore)
	assert.Equal(t, schema.DefaultTargetScore, *engine.TargetScore)
	assert.Equal(t, 10, engine.Thresholds.HighComplexity)
	assert.Equal(t, 0.3, engine.Weights[schema.TestCoverage])
	assert.Equal(t, 80, engine.AcceptableScores[schema.ToolingSupport])
}

func TestProcessWeightsRawInput(t *testing.T) {
	t.Run("complete table must sum to one", func(t *testing.T) {
		in := WeightsRawInput{
			StructuralQuality:     float(0.2),
			ComplexityManagement:  float(0.2),
			DocumentationCoverage: float(0.1),
			TestCoverage:          float(0.1),
			TypeAnnotations:       float(0.1),
			NamingClarity:         float(0.1),
			ArchitecturalClarity:  float(0.1),
			ToolingSupport:        float(0.1),
			GitHubReadiness:       float(0.1),
		}
		_, err := ProcessWeightsRawInput(in, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must sum to 1.0")

		weights, err := ProcessWeightsRawInput(in, false)
		require.NoError(t, err)
		assert.Len(t, weights, len(schema.AllDimensions))
	})

	t.Run("partial table above one is kept for renormalisation", func(t *testing.T) {
		weights, err := ProcessWeightsRawInput(WeightsRawInput{
			TestCoverage:  float(0.7),
			NamingClarity: float(0.4),
		}, true)
		require.NoError(t, err)
		assert.Equal(t, schema.DimensionWeights{schema.TestCoverage: 0.7, schema.NamingClarity: 0.4}, weights)
	})

	t.Run("weight out of range", func(t *testing.T) {
		_, err := ProcessWeightsRawInput(WeightsRawInput{NamingClarity: float(-0.1)}, true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "between 0.0 and 1.0")
	})

	t.Run("empty table", func(t *testing.T) {
		weights, err := ProcessWeightsRawInput(WeightsRawInput{}, true)
		require.NoError(t, err)
		assert.Empty(t, weights)
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/aiready", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/aiready", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=aiready", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDimension(t *testing.T) {
	tests := map[string]schema.Dimension{
		"naming_clarity":   schema.NamingClarity,
		"namingClarity":    schema.NamingClarity,
		"github-readiness": schema.GitHubReadiness,
		"TEST_COVERAGE":    schema.TestCoverage,
	}
	for input, want := range tests {
		got, ok := ParseDimension(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	_, ok := ParseDimension("speed")
	assert.False(t, ok)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		AnalysisFiles:    []string{"a.json"},
		CustomWeights:    schema.DimensionWeights{schema.TestCoverage: 0.5},
		AcceptableScores: map[schema.Dimension]int{schema.NamingClarity: 50},
	}
	clone := cfg.Clone()
	clone.AnalysisFiles[0] = "b.json"
	clone.CustomWeights[schema.TestCoverage] = 0.1
	clone.AcceptableScores[schema.NamingClarity] = 10

	assert.Equal(t, "a.json", cfg.AnalysisFiles[0])
	assert.Equal(t, 0.5, cfg.CustomWeights[schema.TestCoverage])
	assert.Equal(t, 50, cfg.AcceptableScores[schema.NamingClarity])
}
