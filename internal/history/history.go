package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sigreer/lvmgod/internal/lvm"
)

// DefaultPath is the default history database location
const DefaultPath = "/var/lib/lvmgod/history.db"

// Store wraps the SQLite check-history database
type Store struct {
	conn *sql.DB
	path string
}

// Open opens or creates the history database at the given path
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better concurrency
	if _, err := conn.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{conn: conn, path: path}

	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.conn.Close()
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// migrate runs the database schema migrations
func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	var version int
	err = s.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return err
	}

	migrations := []string{
		migrationV1,
	}

	for i, migration := range migrations {
		v := i + 1
		if v <= version {
			continue
		}

		tx, err := s.conn.Begin()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(migration); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration v%d failed: %w", v, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v); err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Commit(); err != nil {
			return err
		}
	}

	return nil
}

// migrationV1 creates the initial schema
const migrationV1 = `
-- One row per completed health check
CREATE TABLE IF NOT EXISTS checks (
    id INTEGER PRIMARY KEY,
    report_id TEXT UNIQUE NOT NULL,
    timestamp TIMESTAMP NOT NULL,
    overall_status TEXT NOT NULL,
    pv_count INTEGER DEFAULT 0,
    vg_count INTEGER DEFAULT 0,
    lv_count INTEGER DEFAULT 0,
    pool_count INTEGER DEFAULT 0,
    issue_count INTEGER DEFAULT 0,
    warning_count INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_checks_time ON checks(timestamp);
CREATE INDEX IF NOT EXISTS idx_checks_status ON checks(overall_status);

-- Findings recorded for a check, issues before warnings
CREATE TABLE IF NOT EXISTS findings (
    id INTEGER PRIMARY KEY,
    check_id INTEGER NOT NULL REFERENCES checks(id),
    severity TEXT NOT NULL,
    message TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_findings_check ON findings(check_id);
`

// Check represents one recorded health check run
type Check struct {
	ID            int64     `json:"id"`
	ReportID      string    `json:"report_id"`
	Timestamp     time.Time `json:"timestamp"`
	OverallStatus string    `json:"overall_status"`
	PVCount       int       `json:"pv_count"`
	VGCount       int       `json:"vg_count"`
	LVCount       int       `json:"lv_count"`
	PoolCount     int       `json:"pool_count"`
	IssueCount    int       `json:"issue_count"`
	WarningCount  int       `json:"warning_count"`
}

// Finding represents one stored issue or warning
type Finding struct {
	ID       int64  `json:"id"`
	CheckID  int64  `json:"check_id"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Finding severities
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// Record stores one snapshot summary and its findings
func (s *Store) Record(snap *lvm.HealthSnapshot) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	result, err := tx.Exec(`
		INSERT INTO checks (report_id, timestamp, overall_status, pv_count, vg_count, lv_count, pool_count, issue_count, warning_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ReportID, snap.Timestamp, string(snap.OverallStatus()),
		len(snap.PhysicalVolumes), len(snap.VolumeGroups), len(snap.LogicalVolumes),
		len(snap.ThinPools), len(snap.Issues), len(snap.Warnings))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to record check: %w", err)
	}

	checkID, err := result.LastInsertId()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to read check id: %w", err)
	}

	for _, msg := range snap.Issues {
		if _, err := tx.Exec(`
			INSERT INTO findings (check_id, severity, message) VALUES (?, ?, ?)
		`, checkID, SeverityCritical, msg); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record finding: %w", err)
		}
	}
	for _, msg := range snap.Warnings {
		if _, err := tx.Exec(`
			INSERT INTO findings (check_id, severity, message) VALUES (?, ?, ?)
		`, checkID, SeverityWarning, msg); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record finding: %w", err)
		}
	}

	return tx.Commit()
}

// Recent returns the most recent checks, newest first
func (s *Store) Recent(limit int) ([]*Check, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.conn.Query(`
		SELECT id, report_id, timestamp, overall_status, pv_count, vg_count, lv_count, pool_count, issue_count, warning_count
		FROM checks
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	return scanChecks(rows)
}

// Findings returns the stored findings for one check in insertion order,
// which puts issues before warnings
func (s *Store) Findings(checkID int64) ([]*Finding, error) {
	rows, err := s.conn.Query(`
		SELECT id, check_id, severity, message
		FROM findings
		WHERE check_id = ?
		ORDER BY id
	`, checkID)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer rows.Close()

	var findings []*Finding
	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.ID, &f.CheckID, &f.Severity, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, &f)
	}

	return findings, rows.Err()
}

func scanChecks(rows *sql.Rows) ([]*Check, error) {
	var checks []*Check
	for rows.Next() {
		var c Check
		err := rows.Scan(
			&c.ID, &c.ReportID, &c.Timestamp, &c.OverallStatus,
			&c.PVCount, &c.VGCount, &c.LVCount, &c.PoolCount,
			&c.IssueCount, &c.WarningCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}

		checks = append(checks, &c)
	}

	return checks, rows.Err()
}
