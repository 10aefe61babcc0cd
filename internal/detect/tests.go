package detect

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/huangsam/aiready/core/algo"
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
)

// frameworkMarkers maps a file that is only present with a test framework to its name.
var frameworkMarkers = map[string]string{
	"pytest.ini":           "pytest",
	"conftest.py":          "pytest",
	"jest.config.js":       "jest",
	"jest.config.ts":       "jest",
	"vitest.config.ts":     "vitest",
	"vitest.config.js":     "vitest",
	".mocharc.json":        "mocha",
	".mocharc.yml":         "mocha",
	".rspec":               "rspec",
	"phpunit.xml":          "phpunit",
	"phpunit.xml.dist":     "phpunit",
	"karma.conf.js":        "karma",
	"playwright.config.ts": "playwright",
}

// extensionFrameworks maps a test file extension to the runner used for that language.
var extensionFrameworks = map[string]string{
	".go": "go test",
	".rs": "cargo test",
}

// Coverage reports read in order; the first one found wins.
const (
	goCoverProfile  = "coverage.out"
	istanbulSummary = "coverage/coverage-summary.json"
	coberturaReport = "coverage.xml"
)

// DetectTests walks the repository, counting test and source files with the same
// classification the scorer uses, and reads a coverage report when one is present.
func (d *FileSystemDetector) DetectTests(ctx context.Context, repoPath string) (schema.TestPresenceInfo, error) {
	var info schema.TestPresenceInfo
	fsys, err := d.openFS(repoPath)
	if err != nil {
		return info, err
	}

	frameworks := map[string]struct{}{}
	err = fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if entry.IsDir() {
			if contract.ShouldIgnore(p+"/", d.excludes) {
				return fs.SkipDir
			}
			return nil
		}
		if contract.ShouldIgnore(p, d.excludes) {
			return nil
		}

		if name, ok := frameworkMarkers[path.Base(p)]; ok {
			frameworks[name] = struct{}{}
		}
		if !algo.IsCodeFile(p) {
			return nil
		}
		if algo.IsTestFile(p) {
			info.TestFileCount++
			if name, ok := extensionFrameworks[path.Ext(p)]; ok {
				frameworks[name] = struct{}{}
			}
		} else {
			info.SourceFileCount++
		}
		return nil
	})
	if err != nil {
		return info, err
	}

	info.HasTests = info.TestFileCount > 0
	for name := range frameworks {
		info.Frameworks = append(info.Frameworks, name)
	}
	sort.Strings(info.Frameworks)
	info.CoveragePercent = readCoverage(fsys)
	return info, nil
}

// readCoverage returns the line coverage percent from the first report found, or nil.
func readCoverage(fsys fs.FS) *float64 {
	if data, err := fs.ReadFile(fsys, goCoverProfile); err == nil {
		if pct, ok := ParseGoCoverProfile(data); ok {
			return &pct
		}
	}
	if data, err := fs.ReadFile(fsys, istanbulSummary); err == nil {
		if pct, ok := ParseIstanbulSummary(data); ok {
			return &pct
		}
	}
	if data, err := fs.ReadFile(fsys, coberturaReport); err == nil {
		if pct, ok := ParseCoberturaLineRate(data); ok {
			return &pct
		}
	}
	return nil
}

// ParseGoCoverProfile computes statement coverage from a `go test -coverprofile` file.
// Blocks listed more than once count as covered when any listing has a hit.
func ParseGoCoverProfile(data []byte) (float64, bool) {
	type block struct {
		statements int
		covered    bool
	}
	blocks := map[string]*block{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "mode:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		statements, err1 := strconv.Atoi(fields[1])
		count, err2 := strconv.Atoi(fields[2])
		if err1 != nil || err2 != nil {
			continue
		}
		b, ok := blocks[fields[0]]
		if !ok {
			b = &block{statements: statements}
			blocks[fields[0]] = b
		}
		b.covered = b.covered || count > 0
	}

	total, covered := 0, 0
	for _, b := range blocks {
		total += b.statements
		if b.covered {
			covered += b.statements
		}
	}
	if total == 0 {
		return 0, false
	}
	return roundPercent(float64(covered) / float64(total) * 100), true
}

// ParseIstanbulSummary reads total.lines.pct from an istanbul json-summary report.
func ParseIstanbulSummary(data []byte) (float64, bool) {
	var summary struct {
		Total struct {
			Lines struct {
				Pct json.Number `json:"pct"`
			} `json:"lines"`
		} `json:"total"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		return 0, false
	}
	pct, err := summary.Total.Lines.Pct.Float64()
	if err != nil {
		return 0, false
	}
	return roundPercent(pct), true
}

// ParseCoberturaLineRate reads the line-rate attribute of the root element of a Cobertura report.
func ParseCoberturaLineRate(data []byte) (float64, bool) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return 0, false
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local != "coverage" {
			return 0, false
		}
		for _, attr := range start.Attr {
			if attr.Name.Local != "line-rate" {
				continue
			}
			rate, err := strconv.ParseFloat(strings.TrimSpace(attr.Value), 64)
			if err != nil {
				return 0, false
			}
			return roundPercent(rate * 100), true
		}
		return 0, false
	}
}

func roundPercent(pct float64) float64 {
	pct = min(100, max(0, pct))
	return float64(int(pct*100+0.5)) / 100
}
