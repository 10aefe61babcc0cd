// Package detect inspects a repository on disk for tooling, collaboration setup and tests.
package detect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
)

// ErrNotDirectory is returned when the repository path is not a readable directory.
var ErrNotDirectory = errors.New("repository path is not a directory")

// BranchProtectionProbe reports whether the default branch of the remote repository is protected.
type BranchProtectionProbe interface {
	BranchProtected(ctx context.Context) (bool, error)
}

// FileSystemDetector implements contract.Detector by matching well-known files with globs.
type FileSystemDetector struct {
	openFS   func(repoPath string) (fs.FS, error)
	branches BranchProtectionProbe
	excludes []string
}

var _ contract.Detector = (*FileSystemDetector)(nil)

// Option configures a FileSystemDetector.
type Option func(*FileSystemDetector)

// WithFS replaces how a repository path is opened. Tests use it to supply an in-memory tree.
func WithFS(open func(repoPath string) (fs.FS, error)) Option {
	return func(d *FileSystemDetector) { d.openFS = open }
}

// WithBranchProtection sets the remote probe used for the branch protection check.
func WithBranchProtection(p BranchProtectionProbe) Option {
	return func(d *FileSystemDetector) { d.branches = p }
}

// WithExcludes sets the paths skipped while counting tests.
func WithExcludes(excludes []string) Option {
	return func(d *FileSystemDetector) { d.excludes = excludes }
}

// NewFileSystemDetector creates a detector over the local filesystem.
func NewFileSystemDetector(opts ...Option) *FileSystemDetector {
	d := &FileSystemDetector{
		openFS:   openDir,
		excludes: contract.DefaultExcludes,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func openDir(repoPath string) (fs.FS, error) {
	info, err := os.Stat(repoPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, repoPath)
	}
	return os.DirFS(repoPath), nil
}

// DetectTooling reports the developer tooling configured in the repository.
func (d *FileSystemDetector) DetectTooling(ctx context.Context, repoPath string) (schema.ToolingConfig, error) {
	var cfg schema.ToolingConfig
	fsys, err := d.openFS(repoPath)
	if err != nil {
		return cfg, err
	}
	checks := []struct {
		dest     *bool
		patterns []string
	}{
		{&cfg.HasLinter, linterPatterns},
		{&cfg.HasFormatter, formatterPatterns},
		{&cfg.HasTypeChecker, typeCheckerPatterns},
		{&cfg.HasEditorConfig, editorConfigPatterns},
		{&cfg.HasPreCommitHooks, preCommitPatterns},
		{&cfg.HasAgentInstructions, agentInstructionPatterns},
		{&cfg.HasLockfile, lockfilePatterns},
		{&cfg.HasBuildScript, buildScriptPatterns},
	}
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return cfg, err
		}
		found, err := anyMatch(fsys, c.patterns)
		if err != nil {
			return cfg, err
		}
		*c.dest = found
	}

	// pyproject.toml can carry linter, formatter and type checker sections.
	if sections := pyprojectTools(fsys); len(sections) > 0 {
		cfg.HasLinter = cfg.HasLinter || sections["linter"]
		cfg.HasFormatter = cfg.HasFormatter || sections["formatter"]
		cfg.HasTypeChecker = cfg.HasTypeChecker || sections["typeChecker"]
	}
	return cfg, nil
}

// DetectGitHubReadiness reports the collaboration and CI setup of the repository.
// Branch protection needs the remote probe and stays false without one.
func (d *FileSystemDetector) DetectGitHubReadiness(ctx context.Context, repoPath string) (schema.GitHubReadinessConfig, error) {
	var cfg schema.GitHubReadinessConfig
	fsys, err := d.openFS(repoPath)
	if err != nil {
		return cfg, err
	}
	checks := []struct {
		dest     *bool
		patterns []string
	}{
		{&cfg.HasCIWorkflow, ciPatterns},
		{&cfg.HasPullRequestTemplate, pullRequestTemplatePatterns},
		{&cfg.HasIssueTemplates, issueTemplatePatterns},
		{&cfg.HasCodeowners, codeownersPatterns},
		{&cfg.HasContributingGuide, contributingPatterns},
		{&cfg.HasReadme, readmePatterns},
		{&cfg.HasLicense, licensePatterns},
		{&cfg.HasDependencyUpdates, dependencyUpdatePatterns},
	}
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return cfg, err
		}
		found, err := anyMatch(fsys, c.patterns)
		if err != nil {
			return cfg, err
		}
		*c.dest = found
	}

	if d.branches != nil {
		protected, err := d.branches.BranchProtected(ctx)
		if err != nil {
			contract.LogWarn("Branch protection probe failed", err)
		} else {
			cfg.HasBranchProtection = protected
		}
	}
	return cfg, nil
}

// anyMatch reports whether any pattern matches at least one path in fsys.
func anyMatch(fsys fs.FS, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return false, fmt.Errorf("error evaluating pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			return true, nil
		}
	}
	return false, nil
}
