package algo

import (
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/huangsam/aiready/schema"
)

// TestFilePatterns are the path globs that identify test files across ecosystems.
var TestFilePatterns = []string{
	"**_test.go",
	"**.test.{js,jsx,ts,tsx,mjs,cjs}",
	"**.spec.{js,jsx,ts,tsx,mjs,cjs}",
	"test_*.py",
	"**/test_*.py",
	"**_test.py",
	"**Test.{java,kt,scala}",
	"**Tests.{java,kt,cs}",
	"**_spec.rb",
	"tests/**",
	"**/tests/**",
	"test/**",
	"**/test/**",
	"**/__tests__/**",
	"spec/**",
	"**/spec/**",
}

var testFileGlobs = mustCompileGlobs(TestFilePatterns)

// languageTyping maps a source extension to whether the language is statically typed.
var languageTyping = map[string]bool{
	".go":    true,
	".rs":    true,
	".java":  true,
	".kt":    true,
	".scala": true,
	".cs":    true,
	".swift": true,
	".ts":    true,
	".tsx":   true,
	".c":     true,
	".h":     true,
	".cc":    true,
	".cpp":   true,
	".hpp":   true,
	".js":    false,
	".jsx":   false,
	".mjs":   false,
	".cjs":   false,
	".py":    false,
	".rb":    false,
	".php":   false,
	".lua":   false,
	".pl":    false,
	".sh":    false,
}

// Anti-pattern categories that feed specific dimensions.
var (
	documentationCategories = map[string]struct{}{"documentation": {}, "missing-docs": {}, "missing-documentation": {}, "undocumented": {}}
	typingCategories        = map[string]struct{}{"typing": {}, "type-safety": {}, "any-usage": {}, "missing-types": {}}
	namingCategories        = map[string]struct{}{"naming": {}, "unclear-naming": {}, "magic-names": {}}
	architectureCategories  = map[string]struct{}{"architecture": {}, "coupling": {}, "circular-dependency": {}, "god-object": {}, "layering": {}}
)

// genericNames are function names that say nothing about intent.
var genericNames = map[string]struct{}{
	"foo": {}, "bar": {}, "baz": {}, "tmp": {}, "temp": {}, "data": {}, "stuff": {}, "thing": {},
	"things": {}, "doit": {}, "dostuff": {}, "handle": {}, "process": {}, "helper": {}, "util": {},
	"utils": {}, "misc": {}, "test": {}, "func": {}, "fn": {}, "cb": {}, "callback": {}, "run2": {},
}

// shortNameAllowlist holds short names that are conventional and clear.
var shortNameAllowlist = map[string]struct{}{
	"id": {}, "ok": {}, "io": {}, "db": {}, "up": {}, "to": {}, "of": {}, "is": {}, "at": {}, "go": {},
	"gt": {}, "lt": {}, "eq": {}, "ne": {}, "or": {}, "and": {}, "not": {}, "add": {}, "get": {}, "set": {},
	"len": {}, "min": {}, "max": {}, "sum": {}, "abs": {}, "new": {}, "put": {}, "map": {}, "run": {},
}

var numberedName = regexp.MustCompile(`^[A-Za-z_]+[0-9]+$`)

// mustCompileGlobs compiles the given patterns with '/' as the separator.
func mustCompileGlobs(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		globs = append(globs, glob.MustCompile(p, '/'))
	}
	return globs
}

// normalizePath converts a path to forward slashes without a leading "./".
func normalizePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	return strings.TrimPrefix(p, "./")
}

// IsTestFile reports whether the path looks like a test file.
func IsTestFile(p string) bool {
	p = normalizePath(p)
	for _, g := range testFileGlobs {
		if g.Match(p) {
			return true
		}
	}
	return false
}

// IsCodeFile reports whether the path has a recognized source extension.
func IsCodeFile(p string) bool {
	_, ok := languageTyping[strings.ToLower(path.Ext(p))]
	return ok
}

// isStaticallyTyped reports whether the file's language is statically typed.
// The second return is false when the extension is unknown.
func isStaticallyTyped(p string) (typed, known bool) {
	typed, known = languageTyping[strings.ToLower(path.Ext(p))]
	return typed, known
}

// fileStem returns the lowercase base name without extension and test markers.
func fileStem(p string) string {
	base := strings.ToLower(path.Base(normalizePath(p)))
	if i := strings.Index(base, "."); i > 0 {
		base = base[:i]
	}
	return base
}

// testedStem returns the stem of the source file a test file covers.
func testedStem(p string) string {
	stem := fileStem(p)
	for _, suffix := range []string{"_test", "_spec", "tests", "test"} {
		if strings.HasSuffix(stem, suffix) && len(stem) > len(suffix) {
			return strings.TrimRight(strings.TrimSuffix(stem, suffix), "_-")
		}
	}
	if strings.HasPrefix(stem, "test_") {
		return strings.TrimPrefix(stem, "test_")
	}
	return stem
}

// shortName strips package, class and receiver qualifiers from a function name.
func shortName(name string) string {
	name = strings.TrimSpace(name)
	for _, sep := range []string{"::", "#", "."} {
		if i := strings.LastIndex(name, sep); i >= 0 {
			name = name[i+len(sep):]
		}
	}
	return name
}

// isAnonymous reports whether the analyzer could not name the function.
func isAnonymous(name string) bool {
	lower := strings.ToLower(name)
	return lower == "" || strings.Contains(lower, "anonymous") || strings.ContainsAny(lower, "<>()")
}

// isUnclearName reports whether a function name fails the naming heuristics:
// generic words, numbered variants, or very short names outside the allowlist.
func isUnclearName(name string) bool {
	n := strings.ToLower(shortName(name))
	if _, ok := genericNames[n]; ok {
		return true
	}
	if numberedName.MatchString(n) {
		return true
	}
	if len(n) < 3 {
		_, ok := shortNameAllowlist[n]
		return !ok
	}
	return false
}

// inCategory reports whether an anti-pattern category belongs to the given set.
func inCategory(category string, set map[string]struct{}) bool {
	_, ok := set[strings.ToLower(strings.TrimSpace(category))]
	return ok
}

// sortedKeys returns the keys of a string set in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// limitSamples bounds an evidence list to MaxEvidenceSamples.
func limitSamples(samples []string) []string {
	if len(samples) > schema.MaxEvidenceSamples {
		return samples[:schema.MaxEvidenceSamples]
	}
	return samples
}
