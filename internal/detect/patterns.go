package detect

import (
	"io/fs"
	"strings"
)

// Tooling patterns, relative to the repository root.
var (
	linterPatterns = []string{
		".golangci.{yml,yaml,toml,json}",
		".eslintrc",
		".eslintrc.{js,cjs,json,yml,yaml}",
		"eslint.config.{js,mjs,cjs,ts}",
		"ruff.toml",
		".ruff.toml",
		".pylintrc",
		".flake8",
		".rubocop.yml",
		"biome.{json,jsonc}",
		"clippy.toml",
		".stylelintrc*",
		".swiftlint.yml",
		"detekt.yml",
	}
	formatterPatterns = []string{
		".prettierrc*",
		"prettier.config.{js,mjs,cjs}",
		"rustfmt.toml",
		".rustfmt.toml",
		".clang-format",
		"biome.{json,jsonc}",
		"dprint.json",
		".scalafmt.conf",
		"go.mod",
	}
	typeCheckerPatterns = []string{
		"tsconfig.json",
		"tsconfig.*.json",
		"mypy.ini",
		".mypy.ini",
		"pyrightconfig.json",
		"go.mod",
		"Cargo.toml",
		"sorbet/config",
	}
	editorConfigPatterns = []string{
		".editorconfig",
	}
	preCommitPatterns = []string{
		".pre-commit-config.{yaml,yml}",
		".husky/*",
		"lefthook.{yml,yaml}",
		".lefthook.{yml,yaml}",
		".githooks/*",
	}
	agentInstructionPatterns = []string{
		"AGENTS.md",
		"CLAUDE.md",
		"GEMINI.md",
		".cursorrules",
		".cursor/rules/**",
		".windsurfrules",
		".github/copilot-instructions.md",
	}
	lockfilePatterns = []string{
		"go.sum",
		"package-lock.json",
		"yarn.lock",
		"pnpm-lock.yaml",
		"bun.lock*",
		"Cargo.lock",
		"poetry.lock",
		"uv.lock",
		"Pipfile.lock",
		"Gemfile.lock",
		"composer.lock",
	}
	buildScriptPatterns = []string{
		"{GNUmakefile,Makefile,makefile}",
		"{J,j}ustfile",
		"Taskfile.{yml,yaml}",
		"magefile.go",
		"build.gradle*",
		"pom.xml",
		"CMakeLists.txt",
	}
)

// GitHub readiness patterns, relative to the repository root.
var (
	ciPatterns = []string{
		".github/workflows/*.{yml,yaml}",
		".gitlab-ci.yml",
		".circleci/config.yml",
		"azure-pipelines.yml",
		"Jenkinsfile",
		".travis.yml",
		".buildkite/**",
	}
	pullRequestTemplatePatterns = []string{
		"{pull_request_template,PULL_REQUEST_TEMPLATE}.md",
		"{.github,docs}/{pull_request_template,PULL_REQUEST_TEMPLATE}.md",
		".github/PULL_REQUEST_TEMPLATE/*.md",
	}
	issueTemplatePatterns = []string{
		".github/ISSUE_TEMPLATE/*",
		".github/{issue_template,ISSUE_TEMPLATE}.md",
	}
	codeownersPatterns = []string{
		"CODEOWNERS",
		"{.github,docs}/CODEOWNERS",
	}
	contributingPatterns = []string{
		"{CONTRIBUTING,contributing,Contributing}*",
		"{.github,docs}/{CONTRIBUTING,contributing,Contributing}*",
	}
	readmePatterns = []string{
		"{README,readme,Readme}*",
	}
	licensePatterns = []string{
		"{LICENSE,LICENCE,COPYING,license,License}*",
	}
	dependencyUpdatePatterns = []string{
		".github/dependabot.{yml,yaml}",
		"renovate.json*",
		".github/renovate.json*",
		".renovaterc*",
	}
)

// pyprojectSections maps a pyproject.toml table prefix to the tool kind it configures.
var pyprojectSections = map[string]string{
	"[tool.ruff":    "linter",
	"[tool.pylint":  "linter",
	"[tool.flake8":  "linter",
	"[tool.black":   "formatter",
	"[tool.isort":   "formatter",
	"[tool.mypy":    "typeChecker",
	"[tool.pyright": "typeChecker",
}

// pyprojectTools returns the tool kinds configured in pyproject.toml, if present.
func pyprojectTools(fsys fs.FS) map[string]bool {
	data, err := fs.ReadFile(fsys, "pyproject.toml")
	if err != nil {
		return nil
	}
	found := map[string]bool{}
	for line := range strings.SplitSeq(string(data), "\n") {
		line = strings.TrimSpace(line)
		for prefix, kind := range pyprojectSections {
			if strings.HasPrefix(line, prefix) {
				found[kind] = true
			}
		}
	}
	return found
}
