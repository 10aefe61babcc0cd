package schema

// ToolingConfig is the snapshot of developer tooling detected in a repository.
// The zero value means nothing was detected.
type ToolingConfig struct {
	HasLinter            bool `json:"hasLinter" yaml:"hasLinter"`
	HasFormatter         bool `json:"hasFormatter" yaml:"hasFormatter"`
	HasTypeChecker       bool `json:"hasTypeChecker" yaml:"hasTypeChecker"`
	HasEditorConfig      bool `json:"hasEditorConfig" yaml:"hasEditorConfig"`
	HasPreCommitHooks    bool `json:"hasPreCommitHooks" yaml:"hasPreCommitHooks"`
	HasAgentInstructions bool `json:"hasAgentInstructions" yaml:"hasAgentInstructions"`
	HasLockfile          bool `json:"hasLockfile" yaml:"hasLockfile"`
	HasBuildScript       bool `json:"hasBuildScript" yaml:"hasBuildScript"`
}

// GitHubReadinessConfig is the snapshot of collaboration and CI setup detected in a repository.
// The zero value means nothing was detected.
type GitHubReadinessConfig struct {
	HasCIWorkflow          bool `json:"hasCiWorkflow" yaml:"hasCiWorkflow"`
	HasPullRequestTemplate bool `json:"hasPullRequestTemplate" yaml:"hasPullRequestTemplate"`
	HasIssueTemplates      bool `json:"hasIssueTemplates" yaml:"hasIssueTemplates"`
	HasCodeowners          bool `json:"hasCodeowners" yaml:"hasCodeowners"`
	HasContributingGuide   bool `json:"hasContributingGuide" yaml:"hasContributingGuide"`
	HasReadme              bool `json:"hasReadme" yaml:"hasReadme"`
	HasLicense             bool `json:"hasLicense" yaml:"hasLicense"`
	HasDependencyUpdates   bool `json:"hasDependencyUpdates" yaml:"hasDependencyUpdates"`
	HasBranchProtection    bool `json:"hasBranchProtection" yaml:"hasBranchProtection"`
}

// TestPresenceInfo describes the tests found in a repository.
// CoveragePercent is nil when no coverage report was found.
type TestPresenceInfo struct {
	HasTests        bool     `json:"hasTests" yaml:"hasTests"`
	TestFileCount   int      `json:"testFileCount" yaml:"testFileCount"`
	SourceFileCount int      `json:"sourceFileCount" yaml:"sourceFileCount"`
	Frameworks      []string `json:"frameworks,omitempty" yaml:"frameworks,omitempty"`
	CoveragePercent *float64 `json:"coveragePercent,omitempty" yaml:"coveragePercent,omitempty"`
}

// Check is a single named presence check.
type Check struct {
	Name    string `json:"name"`
	Present bool   `json:"present"`
}

// Checks returns the tooling checks in a stable order.
func (t ToolingConfig) Checks() []Check {
	return []Check{
		{Name: "linter", Present: t.HasLinter},
		{Name: "formatter", Present: t.HasFormatter},
		{Name: "type checker", Present: t.HasTypeChecker},
		{Name: "editorconfig", Present: t.HasEditorConfig},
		{Name: "pre-commit hooks", Present: t.HasPreCommitHooks},
		{Name: "agent instructions", Present: t.HasAgentInstructions},
		{Name: "lockfile", Present: t.HasLockfile},
		{Name: "build script", Present: t.HasBuildScript},
	}
}

// Checks returns the GitHub readiness checks in a stable order.
func (g GitHubReadinessConfig) Checks() []Check {
	return []Check{
		{Name: "CI workflow", Present: g.HasCIWorkflow},
		{Name: "pull request template", Present: g.HasPullRequestTemplate},
		{Name: "issue templates", Present: g.HasIssueTemplates},
		{Name: "CODEOWNERS", Present: g.HasCodeowners},
		{Name: "contributing guide", Present: g.HasContributingGuide},
		{Name: "README", Present: g.HasReadme},
		{Name: "license", Present: g.HasLicense},
		{Name: "dependency updates", Present: g.HasDependencyUpdates},
		{Name: "branch protection", Present: g.HasBranchProtection},
	}
}
