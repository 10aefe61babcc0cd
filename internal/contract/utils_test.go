package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected string
	}{
		{name: "smallest value possible", input: 0, expected: FailingValue},
		{name: "just before poor", input: 39, expected: FailingValue},
		{name: "exactly poor", input: 40, expected: PoorValue},
		{name: "just before fair", input: 59, expected: PoorValue},
		{name: "exactly fair", input: 60, expected: FairValue},
		{name: "just before good", input: 74, expected: FairValue},
		{name: "exactly good", input: 75, expected: GoodValue},
		{name: "exactly excellent", input: 90, expected: ExcellentValue},
		{name: "perfect", input: 100, expected: ExcellentValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainLabel(tt.input))
		})
	}
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name  string
		score int
		label string
	}{
		{"failing", 30, FailingValue},
		{"poor", 50, PoorValue},
		{"fair", 70, FairValue},
		{"excellent", 95, ExcellentValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, GetColorLabel(tt.score), tt.label)
		})
	}
}

func TestGetColorGradeAndPriority(t *testing.T) {
	assert.Contains(t, GetColorGrade(schema.GradeB), "B")
	assert.Contains(t, GetColorPriority(schema.PriorityCritical), "critical")
	assert.Contains(t, GetColorPriority(schema.PriorityMedium), "medium")
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path selects stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("file path creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.json")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.FileExists(t, path)
	})
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		expected bool
	}{
		{"no excludes", "main.go", nil, false},
		{"directory prefix", "vendor/pkg/file.go", []string{"vendor/"}, true},
		{"nested directory", "web/node_modules/x/index.js", []string{"node_modules/"}, true},
		{"directory name without slash", "vendorized/file.go", []string{"vendor/"}, false},
		{"extension suffix", "bundle.min.js", []string{".min.js"}, true},
		{"glob on base name", "logs/app.log", []string{"*.log"}, true},
		{"glob miss", "logs/app.txt", []string{"*.log"}, false},
		{"substring", "src/generated_pb.go", []string{"generated"}, true},
		{"blank pattern", "main.go", []string{"  "}, false},
		{"default excludes", "a/.git/config", DefaultExcludes, true},
		{"double star spans directories", "pkg/gen/deep/api.pb.go", []string{"pkg/**/*.pb.go"}, true},
		{"double star needs the prefix", "cmd/gen/api.pb.go", []string{"pkg/**/*.pb.go"}, false},
		{"single star stays in one segment", "pkg/gen/deep/api.pb.go", []string{"pkg/*.pb.go"}, false},
		{"double star directory", "web/temp/cache/file.txt", []string{"**/temp/**"}, true},
		{"brace alternatives", "docs/site.html", []string{"*.{html,css}"}, true},
		{"bad pattern never matches", "a[b.go", []string{"a[b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".aiready_history.db"))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "short.go", TruncatePath("short.go", 20))
	assert.Equal(t, "...ng/file.go", TruncatePath("a/very/long/file.go", 13))
	assert.Equal(t, "abcdef", TruncatePath("abcdef", 3))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, v, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, v, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
