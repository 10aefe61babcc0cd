package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		precision int
		value     float64
		expected  string
	}{
		{precision: 0, value: 12.5, expected: "12"},
		{precision: 1, value: 12.25, expected: "12.2"},
		{precision: 2, value: 3.14159, expected: "3.14"},
		{precision: 2, value: -4.567, expected: "-4.57"},
	}
	for _, tt := range tests {
		fmtFloat, intFmt := createFormatters(tt.precision)
		assert.Equal(t, tt.expected, fmtFloat(tt.value))
		assert.Equal(t, "%d", intFmt)
	}
}

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"overallScore": 72}))
	assert.Equal(t, "{\n  \"overallScore\": 72\n}\n", buf.String())
}

func TestWriteJSONUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := writeJSON(&buf, map[string]any{"bad": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"dimension", "score"}, func(cw *csv.Writer) error {
		return cw.Write([]string{"namingClarity", "81"})
	})
	require.NoError(t, err)
	assert.Equal(t, "dimension,score\nnamingClarity,81\n", buf.String())
}

func TestWriteCSVWithHeaderRowError(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"dimension"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWriteString(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeString(&buf, "a,b"))
	require.NoError(t, writeString(&buf, "c,d\n"))
	assert.Equal(t, "a,b\nc,d\n", buf.String())
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessment.json")
	err := writeWithFile(path, func(w io.Writer) error {
		return writeJSON(w, map[string]string{"grade": "B"})
	}, successMessage("json"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "B", decoded["grade"])
}

func TestWriteWithFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Wrote report")
	assert.ErrorIs(t, err, assert.AnError)

	err = writeWithFile("/nonexistent/dir/out.txt", func(io.Writer) error { return nil }, "Wrote report")
	require.Error(t, err)
}

func TestSuccessMessage(t *testing.T) {
	assert.Equal(t, "Wrote CSV", successMessage("csv"))
	assert.Equal(t, "Wrote MARKDOWN", successMessage("markdown"))
}
