package iocache

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/aiready/schema"
)

// driverFor returns the database/sql driver name registered for a backend.
func driverFor(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return "mysql"
	case schema.PostgreSQLBackend:
		return "pgx"
	default:
		return "sqlite"
	}
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// placeholders returns n bind parameters in the style of the backend, starting at from.
func placeholders(backend schema.DatabaseBackend, from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		if backend == schema.PostgreSQLBackend {
			parts[i] = fmt.Sprintf("$%d", from+i)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// sqliteTimeFormat is a fixed width RFC3339 layout so that text timestamps sort chronologically.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeFormat)
	default:
		return t.UTC()
	}
}

// timeScanner scans a timestamp column stored as RFC3339 text by SQLite and natively elsewhere.
type timeScanner struct {
	backend schema.DatabaseBackend
	text    string
	value   time.Time
}

// dest returns the scan destination for the backend.
func (ts *timeScanner) dest() any {
	if ts.backend == schema.SQLiteBackend {
		return &ts.text
	}
	return &ts.value
}

// time returns the scanned timestamp in UTC.
func (ts *timeScanner) time() (time.Time, error) {
	if ts.backend != schema.SQLiteBackend {
		return ts.value.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, ts.text)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", ts.text, err)
	}
	return t.UTC(), nil
}
