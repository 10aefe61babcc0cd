package iocache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/aiready/internal/contract"
	"github.com/huangsam/aiready/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for assessment history.
const (
	assessmentsTable     = "aiready_assessments"
	dimensionScoresTable = "aiready_dimension_scores"
	repositoryIndex      = "idx_aiready_assessments_repo"
)

// assessmentColumns lists the summary columns shared by inserts and listings.
const assessmentColumns = "assessment_id, repository_path, assessed_at, overall_score, grade, target_score, duration_ms, recommendations"

// HistoryStoreImpl implements the HistoryStore interface on top of database/sql.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
	connStr string
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore opens the history store of the backend and creates its tables.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetHistoryDBFilePath()
		}
		db, err = sql.Open(driverFor(backend), dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		connStr, err = withParseTime(connStr)
		if err != nil {
			return nil, err
		}
		db, err = sql.Open(driverFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open(driverFor(backend), connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &HistoryStoreImpl{backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend, connStr: connStr}, nil
}

// withParseTime makes the MySQL driver scan DATETIME columns into time.Time.
func withParseTime(connStr string) (string, error) {
	cfg, err := mysql.ParseDSN(connStr)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL connection string: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// createHistoryTables creates the history tables when they do not exist.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{assessmentsTable, getCreateAssessmentsQuery(backend)},
		{dimensionScoresTable, getCreateDimensionScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	// MySQL declares the index inline and has no CREATE INDEX IF NOT EXISTS
	if backend != schema.MySQLBackend {
		query := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (repository_path)",
			repositoryIndex, quoteTableName(assessmentsTable, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to create index %s: %w", repositoryIndex, err)
		}
	}
	return nil
}

// getCreateAssessmentsQuery returns the CREATE TABLE query for aiready_assessments.
func getCreateAssessmentsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(assessmentsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				assessment_id VARCHAR(64) NOT NULL,
				repository_path VARCHAR(512) NOT NULL,
				assessed_at DATETIME(6) NOT NULL,
				overall_score INT NOT NULL,
				grade VARCHAR(2) NOT NULL,
				target_score INT NOT NULL,
				duration_ms BIGINT NOT NULL,
				recommendations INT NOT NULL,
				payload LONGTEXT NOT NULL,
				INDEX idx_aiready_assessments_repo (repository_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGSERIAL PRIMARY KEY,
				assessment_id TEXT NOT NULL,
				repository_path TEXT NOT NULL,
				assessed_at TIMESTAMPTZ NOT NULL,
				overall_score INT NOT NULL,
				grade TEXT NOT NULL,
				target_score INT NOT NULL,
				duration_ms BIGINT NOT NULL,
				recommendations INT NOT NULL,
				payload TEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER PRIMARY KEY AUTOINCREMENT,
				assessment_id TEXT NOT NULL,
				repository_path TEXT NOT NULL,
				assessed_at TEXT NOT NULL,
				overall_score INTEGER NOT NULL,
				grade TEXT NOT NULL,
				target_score INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL,
				recommendations INTEGER NOT NULL,
				payload TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// getCreateDimensionScoresQuery returns the CREATE TABLE query for aiready_dimension_scores.
func getCreateDimensionScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(dimensionScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT NOT NULL,
				assessed_at DATETIME(6) NOT NULL,
				dimension VARCHAR(64) NOT NULL,
				score INT NOT NULL,
				weight DOUBLE NOT NULL,
				no_data BOOLEAN NOT NULL,
				PRIMARY KEY (record_id, dimension)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id BIGINT NOT NULL,
				assessed_at TIMESTAMPTZ NOT NULL,
				dimension TEXT NOT NULL,
				score INT NOT NULL,
				weight DOUBLE PRECISION NOT NULL,
				no_data BOOLEAN NOT NULL,
				PRIMARY KEY (record_id, dimension)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_id INTEGER NOT NULL,
				assessed_at TEXT NOT NULL,
				dimension TEXT NOT NULL,
				score INTEGER NOT NULL,
				weight REAL NOT NULL,
				no_data BOOLEAN NOT NULL,
				PRIMARY KEY (record_id, dimension)
			);
		`, quotedTableName)
	}
}

// disabled reports whether the store drops every write and returns empty reads.
func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// SaveAssessment stores the assessment summary, its JSON payload and one row per dimension.
func (hs *HistoryStoreImpl) SaveAssessment(a *schema.AIReadinessAssessment) (int64, error) {
	// Skip for NoneBackend
	if hs.disabled() {
		return 0, nil
	}
	if a == nil {
		return 0, errors.New("cannot save a nil assessment")
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal assessment: %w", err)
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	assessedAt := formatTime(a.AssessedAt, hs.backend)
	args := []any{
		a.ID, a.RepositoryPath, assessedAt, a.OverallScore, string(a.Grade), a.TargetScore,
		a.AssessmentDuration.Milliseconds(), len(a.Recommendations), string(payload),
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s, payload) VALUES (%s)",
		quoteTableName(assessmentsTable, hs.backend), assessmentColumns, placeholders(hs.backend, 1, len(args)))

	var recordID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		err = tx.QueryRow(insert+" RETURNING record_id", args...).Scan(&recordID)
	default: // SQLite and MySQL
		var result sql.Result
		result, err = tx.Exec(insert, args...)
		if err == nil {
			recordID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert assessment: %w", err)
	}

	scoreInsert := fmt.Sprintf("INSERT INTO %s (record_id, assessed_at, dimension, score, weight, no_data) VALUES (%s)",
		quoteTableName(dimensionScoresTable, hs.backend), placeholders(hs.backend, 1, 6))
	for _, d := range schema.AllDimensions {
		score, ok := a.Breakdown[d]
		if !ok {
			continue
		}
		noData := a.DimensionScores[d].NoData
		if _, err := tx.Exec(scoreInsert, recordID, assessedAt, string(d), score, a.Weights[d], noData); err != nil {
			return 0, fmt.Errorf("failed to insert %s score: %w", d, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit assessment: %w", err)
	}
	return recordID, nil
}

// LatestAssessment returns the most recent assessment of a repository, or nil if there is none.
func (hs *HistoryStoreImpl) LatestAssessment(repoPath string) (*schema.AIReadinessAssessment, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT payload FROM %s WHERE repository_path = %s ORDER BY assessed_at DESC, record_id DESC LIMIT 1",
		quoteTableName(assessmentsTable, hs.backend), placeholders(hs.backend, 1, 1))

	var payload string
	if err := hs.db.QueryRow(query, repoPath).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest assessment: %w", err)
	}

	var a schema.AIReadinessAssessment
	if err := json.Unmarshal([]byte(payload), &a); err != nil {
		return nil, fmt.Errorf("failed to decode stored assessment: %w", err)
	}
	return &a, nil
}

// ListAssessments returns the newest records, newest first. An empty repoPath lists every repository.
// The payload is not loaded.
func (hs *HistoryStoreImpl) ListAssessments(repoPath string, limit int) ([]schema.AssessmentRecord, error) {
	if hs.disabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultHistoryLimit
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT record_id, %s FROM %s", assessmentColumns, quoteTableName(assessmentsTable, hs.backend))
	var args []any
	if repoPath != "" {
		fmt.Fprintf(&sb, " WHERE repository_path = %s", placeholders(hs.backend, 1, 1))
		args = append(args, repoPath)
	}
	fmt.Fprintf(&sb, " ORDER BY record_id DESC LIMIT %d", limit)

	return hs.queryAssessmentRecords(sb.String(), false, args...)
}

// GetAllAssessmentRecords retrieves every stored assessment row, oldest first, with payloads.
func (hs *HistoryStoreImpl) GetAllAssessmentRecords() ([]schema.AssessmentRecord, error) {
	if hs.disabled() {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT record_id, %s, payload FROM %s ORDER BY record_id",
		assessmentColumns, quoteTableName(assessmentsTable, hs.backend))
	return hs.queryAssessmentRecords(query, true)
}

// queryAssessmentRecords scans assessment rows selected as record_id, assessmentColumns[, payload].
func (hs *HistoryStoreImpl) queryAssessmentRecords(query string, withPayload bool, args ...any) ([]schema.AssessmentRecord, error) {
	rows, err := hs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assessments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AssessmentRecord
	for rows.Next() {
		var record schema.AssessmentRecord
		assessedAt := timeScanner{backend: hs.backend}
		dest := []any{
			&record.RecordID, &record.AssessmentID, &record.RepositoryPath, assessedAt.dest(),
			&record.OverallScore, &record.Grade, &record.TargetScore, &record.DurationMs, &record.Recommendations,
		}
		if withPayload {
			dest = append(dest, &record.Payload)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		if record.AssessedAt, err = assessedAt.time(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}
	return results, nil
}

// GetAllDimensionScoreRecords retrieves every stored dimension score row.
func (hs *HistoryStoreImpl) GetAllDimensionScoreRecords() ([]schema.DimensionScoreRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT record_id, assessed_at, dimension, score, weight, no_data FROM %s ORDER BY record_id, dimension",
		quoteTableName(dimensionScoresTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query dimension scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.DimensionScoreRecord
	for rows.Next() {
		var record schema.DimensionScoreRecord
		assessedAt := timeScanner{backend: hs.backend}
		if err := rows.Scan(&record.RecordID, assessedAt.dest(), &record.Dimension, &record.Score, &record.Weight, &record.NoData); err != nil {
			return nil, fmt.Errorf("failed to scan dimension score: %w", err)
		}
		if record.AssessedAt, err = assessedAt.time(); err != nil {
			return nil, err
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dimension scores: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.disabled() {
		return status, nil
	}

	quotedAssessments := quoteTableName(assessmentsTable, hs.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*), COUNT(DISTINCT repository_path) FROM %s", quotedAssessments)
	if err := hs.db.QueryRow(countQuery).Scan(&status.TotalAssessments, &status.TotalRepositories); err != nil {
		return status, fmt.Errorf("failed to get total assessments: %w", err)
	}

	if status.TotalAssessments > 0 {
		// Get last assessment info
		last := timeScanner{backend: hs.backend}
		lastQuery := fmt.Sprintf("SELECT record_id, assessed_at FROM %s ORDER BY record_id DESC LIMIT 1", quotedAssessments)
		if err := hs.db.QueryRow(lastQuery).Scan(&status.LastRecordID, last.dest()); err != nil {
			return status, fmt.Errorf("failed to get last assessment info: %w", err)
		}
		lastAt, err := last.time()
		if err != nil {
			return status, err
		}
		status.LastAssessedAt = lastAt

		// Get oldest assessment time
		oldest := timeScanner{backend: hs.backend}
		oldestQuery := fmt.Sprintf("SELECT assessed_at FROM %s ORDER BY record_id ASC LIMIT 1", quotedAssessments)
		if err := hs.db.QueryRow(oldestQuery).Scan(oldest.dest()); err != nil {
			return status, fmt.Errorf("failed to get oldest assessment time: %w", err)
		}
		oldestAt, err := oldest.time()
		if err != nil {
			return status, err
		}
		status.OldestAssessedAt = oldestAt
	}

	// Get table sizes
	for _, table := range []string{assessmentsTable, dimensionScoresTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}
