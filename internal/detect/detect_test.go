package detect

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/huangsam/aiready/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func detectorFor(tree fstest.MapFS, opts ...Option) *FileSystemDetector {
	opts = append([]Option{WithFS(func(string) (fs.FS, error) { return tree, nil })}, opts...)
	return NewFileSystemDetector(opts...)
}

type stubProbe struct {
	protected bool
	err       error
}

func (s stubProbe) BranchProtected(context.Context) (bool, error) { return s.protected, s.err }

func TestDetectTooling(t *testing.T) {
	tree := fstest.MapFS{
		"go.mod":                   file("module example.com/demo\n"),
		"go.sum":                   file(""),
		".golangci.yml":            file("linters: {}\n"),
		".editorconfig":            file("root = true\n"),
		"AGENTS.md":                file("# Agents\n"),
		"Makefile":                 file("test:\n\tgo test ./...\n"),
		"internal/server/http.go":  file("package server\n"),
		".cursor/rules/general.md": file("rules\n"),
	}

	cfg, err := detectorFor(tree).DetectTooling(context.Background(), "/repo")
	require.NoError(t, err)

	assert.Equal(t, schema.ToolingConfig{
		HasLinter:            true,
		HasFormatter:         true,
		HasTypeChecker:       true,
		HasEditorConfig:      true,
		HasPreCommitHooks:    false,
		HasAgentInstructions: true,
		HasLockfile:          true,
		HasBuildScript:       true,
	}, cfg)
}

func TestDetectToolingPyproject(t *testing.T) {
	tree := fstest.MapFS{
		"pyproject.toml": file("[project]\nname = \"demo\"\n\n[tool.ruff]\nline-length = 100\n\n[tool.mypy]\nstrict = true\n"),
	}

	cfg, err := detectorFor(tree).DetectTooling(context.Background(), "/repo")
	require.NoError(t, err)
	assert.True(t, cfg.HasLinter)
	assert.True(t, cfg.HasTypeChecker)
	assert.False(t, cfg.HasFormatter)
	assert.False(t, cfg.HasLockfile)
}

func TestDetectToolingEmptyRepository(t *testing.T) {
	cfg, err := detectorFor(fstest.MapFS{}).DetectTooling(context.Background(), "/repo")
	require.NoError(t, err)
	assert.Equal(t, schema.ToolingConfig{}, cfg)
}

func TestDetectToolingCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := detectorFor(fstest.MapFS{}).DetectTooling(ctx, "/repo")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectOpenError(t *testing.T) {
	d := NewFileSystemDetector(WithFS(func(string) (fs.FS, error) { return nil, errors.New("boom") }))
	_, err := d.DetectGitHubReadiness(context.Background(), "/repo")
	assert.EqualError(t, err, "boom")

	_, err = NewFileSystemDetector().DetectTests(context.Background(), "/definitely/not/here")
	assert.Error(t, err)
}

func TestDetectGitHubReadiness(t *testing.T) {
	tree := fstest.MapFS{
		".github/workflows/ci.yml":             file("on: push\n"),
		".github/PULL_REQUEST_TEMPLATE.md":     file("## Summary\n"),
		".github/ISSUE_TEMPLATE/bug_report.md": file("bug\n"),
		".github/CODEOWNERS":                   file("* @team\n"),
		".github/dependabot.yml":               file("version: 2\n"),
		"README.md":                            file("# Demo\n"),
		"LICENSE":                              file("MIT\n"),
	}

	cfg, err := detectorFor(tree, WithBranchProtection(stubProbe{protected: true})).DetectGitHubReadiness(context.Background(), "/repo")
	require.NoError(t, err)

	assert.Equal(t, schema.GitHubReadinessConfig{
		HasCIWorkflow:          true,
		HasPullRequestTemplate: true,
		HasIssueTemplates:      true,
		HasCodeowners:          true,
		HasContributingGuide:   false,
		HasReadme:              true,
		HasLicense:             true,
		HasDependencyUpdates:   true,
		HasBranchProtection:    true,
	}, cfg)
}

func TestDetectGitHubReadinessProbeFailure(t *testing.T) {
	tree := fstest.MapFS{"CONTRIBUTING.md": file("PRs welcome\n")}

	cfg, err := detectorFor(tree, WithBranchProtection(stubProbe{protected: true, err: errors.New("rate limited")})).DetectGitHubReadiness(context.Background(), "/repo")
	require.NoError(t, err)
	assert.True(t, cfg.HasContributingGuide)
	assert.False(t, cfg.HasBranchProtection)
}

func TestDetectTests(t *testing.T) {
	tree := fstest.MapFS{
		"go.mod":                          file("module demo\n"),
		"internal/parser/parser.go":       file("package parser\n"),
		"internal/parser/parser_test.go":  file("package parser\n"),
		"internal/parser/lexer.go":        file("package parser\n"),
		"web/src/app.ts":                  file("export {}\n"),
		"web/src/app.test.ts":             file("test()\n"),
		"web/jest.config.js":              file("module.exports = {}\n"),
		"web/node_modules/lib/index.js":   file("x\n"),
		"web/node_modules/lib/a.test.js":  file("x\n"),
		"vendor/example.com/dep/dep.go":   file("package dep\n"),
		"docs/guide.md":                   file("# Guide\n"),
		"coverage.out":                    file("mode: set\ndemo/a.go:1.1,2.2 3 1\ndemo/a.go:3.1,4.2 1 0\n"),
		"internal/parser/testdata/in.txt": file("data\n"),
	}

	info, err := detectorFor(tree).DetectTests(context.Background(), "/repo")
	require.NoError(t, err)

	assert.True(t, info.HasTests)
	assert.Equal(t, 2, info.TestFileCount)
	assert.Equal(t, 4, info.SourceFileCount, "jest.config.js counts as source")
	assert.Equal(t, []string{"go test", "jest"}, info.Frameworks)
	require.NotNil(t, info.CoveragePercent)
	assert.Equal(t, 75.0, *info.CoveragePercent)
}

func TestDetectTestsWithoutTests(t *testing.T) {
	info, err := detectorFor(fstest.MapFS{"main.py": file("print(1)\n")}).DetectTests(context.Background(), "/repo")
	require.NoError(t, err)
	assert.False(t, info.HasTests)
	assert.Equal(t, 1, info.SourceFileCount)
	assert.Nil(t, info.CoveragePercent)
	assert.Empty(t, info.Frameworks)
}

func TestParseGoCoverProfile(t *testing.T) {
	pct, ok := ParseGoCoverProfile([]byte("mode: count\na.go:1.1,2.2 2 0\na.go:1.1,2.2 2 5\nb.go:1.1,2.2 2 0\n"))
	require.True(t, ok)
	assert.Equal(t, 50.0, pct)

	_, ok = ParseGoCoverProfile([]byte("mode: set\n"))
	assert.False(t, ok)
}

func TestParseIstanbulSummary(t *testing.T) {
	pct, ok := ParseIstanbulSummary([]byte(`{"total":{"lines":{"total":200,"covered":165,"pct":82.5}}}`))
	require.True(t, ok)
	assert.Equal(t, 82.5, pct)

	_, ok = ParseIstanbulSummary([]byte(`{"total":{"lines":{"pct":"Unknown"}}}`))
	assert.False(t, ok)
}

func TestParseCoberturaLineRate(t *testing.T) {
	pct, ok := ParseCoberturaLineRate([]byte(`<?xml version="1.0" ?><coverage version="7.4" line-rate="0.9132" branch-rate="0"></coverage>`))
	require.True(t, ok)
	assert.Equal(t, 91.32, pct)

	pct, ok = ParseCoberturaLineRate([]byte("<?xml version='1.0'?>\n<!DOCTYPE coverage SYSTEM 'http://cobertura.sourceforge.net/xml/coverage-04.dtd'>\n<coverage\n  branch-rate='0'\n  line-rate='0.5'\n  version='1.9'>\n</coverage>"))
	require.True(t, ok)
	assert.Equal(t, 50.0, pct)

	tests := []string{
		`<report/>`,
		`<coverage version="7.4"></coverage>`,
		`<coverage line-rate="high"></coverage>`,
		`<report><coverage line-rate="0.9"/></report>`,
		`not xml`,
	}
	for _, in := range tests {
		_, ok = ParseCoberturaLineRate([]byte(in))
		assert.False(t, ok, in)
	}
}

func TestGitHubProbe(t *testing.T) {
	protected := true
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"widget","default_branch":"main"}`))
	})
	mux.HandleFunc("/repos/acme/widget/branches/main/protection", func(w http.ResponseWriter, _ *http.Request) {
		if !protected {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Branch not protected"}`))
			return
		}
		_, _ = w.Write([]byte(`{"required_status_checks":{"strict":true,"contexts":["ci"]}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	probe, err := NewGitHubProbe("", "acme/widget", 100)
	require.NoError(t, err)
	probe, err = probe.WithBaseURL(server.URL)
	require.NoError(t, err)

	got, err := probe.BranchProtected(context.Background())
	require.NoError(t, err)
	assert.True(t, got)

	protected = false
	got, err = probe.BranchProtected(context.Background())
	require.NoError(t, err)
	assert.False(t, got)
}

func TestNewGitHubProbeValidatesRepo(t *testing.T) {
	for _, repo := range []string{"", "acme", "/widget", "acme/", "acme/widget/extra"} {
		_, err := NewGitHubProbe("", repo, 1)
		assert.Error(t, err, repo)
	}
}
