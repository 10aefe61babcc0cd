package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/huangsam/aiready/schema"
)

// Readiness label constants.
const (
	ExcellentValue = "Excellent" // Grade A
	GoodValue      = "Good"      // Grade B
	FairValue      = "Fair"      // Grade C
	PoorValue      = "Poor"      // Grade D
	FailingValue   = "Failing"   // Grade F
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)   // ExcellentColor represents a healthy signal.
	GoodColor      = color.New(color.FgGreen)               // GoodColor represents an acceptable signal, not bold.
	FairColor      = color.New(color.FgYellow)              // FairColor represents standard caution.
	PoorColor      = color.New(color.FgMagenta, color.Bold) // PoorColor represents strong, distinct warning.
	FailingColor   = color.New(color.FgRed, color.Bold)     // FailingColor represents standard danger.
)

// GetPlainLabel returns a plain text label for a readiness score. This is the
// core logic used for CSV, JSON, and table printing.
func GetPlainLabel(score int) string {
	switch schema.GradeFor(score) {
	case schema.GradeA:
		return ExcellentValue
	case schema.GradeB:
		return GoodValue
	case schema.GradeC:
		return FairValue
	case schema.GradeD:
		return PoorValue
	default:
		return FailingValue
	}
}

// gradeColor returns the console color of a grade.
func gradeColor(g schema.Grade) *color.Color {
	switch g {
	case schema.GradeA:
		return ExcellentColor
	case schema.GradeB:
		return GoodColor
	case schema.GradeC:
		return FairColor
	case schema.GradeD:
		return PoorColor
	default:
		return FailingColor
	}
}

// GetColorLabel returns a colored text label for console output (table).
func GetColorLabel(score int) string {
	return gradeColor(schema.GradeFor(score)).Sprint(GetPlainLabel(score))
}

// GetColorGrade returns the grade letter colored for console output.
func GetColorGrade(g schema.Grade) string {
	return gradeColor(g).Sprint(string(g))
}

// GetColorPriority returns the priority colored for console output.
func GetColorPriority(p schema.Priority) string {
	switch p {
	case schema.PriorityCritical:
		return FailingColor.Sprint(string(p))
	case schema.PriorityHigh:
		return PoorColor.Sprint(string(p))
	default:
		return FairColor.Sprint(string(p))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// DefaultExcludes are the directories skipped when walking a repository.
var DefaultExcludes = []string{
	".git/", "node_modules/", "vendor/", "third_party/",
	"dist/", "build/", "out/", "target/", "bin/",
	".venv/", "venv/", "__pycache__/", ".tox/",
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// Patterns with wildcard characters (*, ?, [ ], { }) are doublestar globs matched
// against the slash-separated path and its base name. Patterns ending with '/' match a
// directory anywhere in the path. Patterns starting with '.' are treated as
// suffix (extension) matches.
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		if strings.ContainsAny(ex, "*?[{") {
			if ok, err := doublestar.Match(ex, filepath.ToSlash(path)); err == nil && ok {
				return true
			}
			if ok, err := doublestar.Match(ex, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) || strings.Contains(path, "/"+ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	Logger.WithError(err).Fatal(msg)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger.WithError(err).Warn(msg)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for history storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".aiready_history.db"
	}
	return filepath.Join(homeDir, ".aiready_history.db")
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
