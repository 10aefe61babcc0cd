//go:build basic || database || integration

package integration

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/require"
)

var (
	// sharedAireadyPath holds the path to a shared aiready binary built once for all tests.
	sharedAireadyPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getAireadyBinary returns the path to the aiready binary, building it once if needed.
func getAireadyBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "aiready-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		aireadyPath := filepath.Join(tempDir, "aiready")
		buildCmd := exec.Command("go", "build", "-o", aireadyPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			panic(fmt.Sprintf("failed to build aiready: %v\n%s", err, out))
		}

		sharedAireadyPath = aireadyPath
	})

	return sharedAireadyPath
}

// runAireadyCommand runs the binary from the project root with extra environment variables.
func runAireadyCommand(t *testing.T, env []string, args ...string) ([]byte, error) {
	t.Helper()
	cmd := exec.Command(getAireadyBinary(), args...)
	cmd.Dir = "../" // Run from project root
	cmd.Env = append(os.Environ(), env...)
	output, err := cmd.Output()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return output, err
}

// writeAnalysisFixture writes a small analysis of the project root and returns its path.
func writeAnalysisFixture(t *testing.T) string {
	t.Helper()
	root, err := filepath.Abs("..")
	require.NoError(t, err)

	analysis := schema.RepositoryAnalysis{
		RepositoryPath: root,
		Files: []schema.SourceFile{
			{Path: "core/assessor.go", LinesOfCode: 320},
			{Path: "core/execute.go", LinesOfCode: 330},
			{Path: "internal/iocache/history_store.go", LinesOfCode: 480},
		},
		Complexity: schema.ComplexityReport{Functions: []schema.FunctionComplexity{
			{Name: "AssessRepository", FilePath: "core/assessor.go", StartLine: 66, EndLine: 117, LinesOfCode: 50, CyclomaticComplexity: 8, CognitiveComplexity: 9, NestingDepth: 2, ParameterCount: 4},
			{Name: "runAssessments", FilePath: "core/execute.go", StartLine: 152, EndLine: 239, LinesOfCode: 85, CyclomaticComplexity: 19, CognitiveComplexity: 24, NestingDepth: 5, ParameterCount: 3},
			{Name: "SaveAssessment", FilePath: "internal/iocache/history_store.go", StartLine: 237, EndLine: 296, LinesOfCode: 58, CyclomaticComplexity: 11, CognitiveComplexity: 12, NestingDepth: 3, ParameterCount: 1},
		}},
	}
	data, err := json.Marshal(analysis)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "analysis.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
