// Package ingest loads repository analyses produced by external analyzers.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/aiready/schema"
	"gopkg.in/yaml.v3"
)

// ErrEmptyAnalysis is returned when an analysis document has no content.
var ErrEmptyAnalysis = errors.New("analysis document is empty")

// Format is the encoding of an analysis document.
type Format string

// All analysis formats supported.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the file extension, then from the content.
func DetectFormat(path string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses an analysis document in the given format.
func Decode(data []byte, format Format) (schema.RepositoryAnalysis, error) {
	var analysis schema.RepositoryAnalysis
	if len(bytes.TrimSpace(data)) == 0 {
		return analysis, ErrEmptyAnalysis
	}

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &analysis); err != nil {
			return analysis, fmt.Errorf("invalid JSON analysis: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &analysis); err != nil {
			return analysis, fmt.Errorf("invalid YAML analysis: %w", err)
		}
	default:
		return analysis, fmt.Errorf("unknown analysis format %q", format)
	}
	return analysis, nil
}

// Read parses an analysis document from r, detecting the format from name and content.
func Read(r io.Reader, name string) (schema.RepositoryAnalysis, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return schema.RepositoryAnalysis{}, err
	}
	return Decode(data, DetectFormat(name, data))
}

// LoadFile reads an analysis file. When the analysis has no repository path, the
// directory holding the file is used.
func LoadFile(path string) (schema.RepositoryAnalysis, error) {
	f, err := os.Open(path)
	if err != nil {
		return schema.RepositoryAnalysis{}, err
	}
	defer func() { _ = f.Close() }()

	analysis, err := Read(f, path)
	if err != nil {
		return analysis, fmt.Errorf("%s: %w", path, err)
	}
	if analysis.RepositoryPath == "" {
		analysis.RepositoryPath = filepath.Dir(path)
	}
	if abs, err := filepath.Abs(analysis.RepositoryPath); err == nil && !filepath.IsAbs(analysis.RepositoryPath) {
		analysis.RepositoryPath = abs
	}
	return analysis, nil
}

// LoadFiles reads several analysis files in order, stopping at the first error.
func LoadFiles(paths []string) ([]schema.RepositoryAnalysis, error) {
	analyses := make([]schema.RepositoryAnalysis, 0, len(paths))
	for _, p := range paths {
		analysis, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}
