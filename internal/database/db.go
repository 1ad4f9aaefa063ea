package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
	path string
}

// New creates a new database connection
func New(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Use WAL mode for better concurrency
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	return &DB{
		conn: conn,
		path: dbPath,
	}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Migrate creates the schema if it does not exist yet
func (db *DB) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS compliance_assessments (
		id TEXT PRIMARY KEY,
		fund_name TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		target_article TEXT NOT NULL,
		assessment_data TEXT NOT NULL DEFAULT '{}',
		validation_results TEXT NOT NULL DEFAULT '{}',
		compliance_score INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'needs_review',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_status
		ON compliance_assessments(status);
	CREATE INDEX IF NOT EXISTS idx_assessments_article
		ON compliance_assessments(target_article);

	CREATE TABLE IF NOT EXISTS risk_assessments (
		id TEXT PRIMARY KEY,
		assessment_id TEXT NOT NULL REFERENCES compliance_assessments(id),
		risk_score INTEGER NOT NULL,
		risk_level TEXT NOT NULL,
		risk_categories TEXT NOT NULL DEFAULT '{}',
		identified_risks TEXT NOT NULL DEFAULT '[]',
		mitigation_recommendations TEXT NOT NULL DEFAULT '[]',
		assessment_date TEXT NOT NULL,
		next_review_date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_risk_assessment_id
		ON risk_assessments(assessment_id);
	CREATE INDEX IF NOT EXISTS idx_risk_next_review
		ON risk_assessments(next_review_date);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Begin starts a new transaction
func (db *DB) Begin() (*sql.Tx, error) {
	return db.conn.Begin()
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
