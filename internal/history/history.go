// Package history archives benchmark reports in a local SQLite database so
// past runs can be listed and re-rendered. Archiving sits outside the
// measurement path: a failed save is a logged warning for the caller, never
// a failed benchmark.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/mosif16/swe-grep/internal/bench"
)

// Report kinds stored in the archive.
const (
	KindCompare = "compare"
	KindStartup = "startup"
)

// ErrNotFound reports a lookup for an id that was never archived.
var ErrNotFound = errors.New("report not found")

// Store interface defines the methods for the report archive
type Store interface {
	Close() error
	SaveCompare(report *bench.CompareReport) (int64, error)
	SaveStartup(report *bench.StartupReport) (int64, error)
	Recent(limit int) ([]Entry, error)
	Get(id int64) (*Entry, error)
}

// Entry is one archived report row. Report holds the full JSON artifact
// exactly as it was written to stdout or --output at the time.
type Entry struct {
	ID         int64           `json:"id"`
	Kind       string          `json:"kind"`
	Symbol     string          `json:"symbol"`
	Repository string          `json:"repository"`
	Runs       int             `json:"runs"`
	Report     json.RawMessage `json:"report"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		symbol TEXT NOT NULL,
		repository TEXT NOT NULL,
		runs INTEGER NOT NULL,
		report TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveCompare archives a comparative report and returns its row id.
func (s *SQLiteStore) SaveCompare(report *bench.CompareReport) (int64, error) {
	return s.save(KindCompare, report.Symbol, report.Repository, report.Runs, report)
}

// SaveStartup archives a startup report and returns its row id.
func (s *SQLiteStore) SaveStartup(report *bench.StartupReport) (int64, error) {
	return s.save(KindStartup, report.Symbol, report.Repository, report.Runs, report)
}

func (s *SQLiteStore) save(kind, symbol, repository string, runs int, report any) (int64, error) {
	blob, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to encode report: %w", err)
	}

	query := `INSERT INTO reports (kind, symbol, repository, runs, report, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := s.db.Exec(query, kind, symbol, repository, runs, string(blob), time.Now())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Recent retrieves the most recently archived reports, newest first.
func (s *SQLiteStore) Recent(limit int) ([]Entry, error) {
	query := `SELECT id, kind, symbol, repository, runs, report, created_at FROM reports ORDER BY id DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var e Entry
		var blob string
		if err := rows.Scan(&e.ID, &e.Kind, &e.Symbol, &e.Repository, &e.Runs, &blob, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Report = json.RawMessage(blob)
		results = append(results, e)
	}
	return results, rows.Err()
}

// Get retrieves one archived report by id.
func (s *SQLiteStore) Get(id int64) (*Entry, error) {
	query := `SELECT id, kind, symbol, repository, runs, report, created_at FROM reports WHERE id = ?`

	var e Entry
	var blob string
	err := s.db.QueryRow(query, id).Scan(&e.ID, &e.Kind, &e.Symbol, &e.Repository, &e.Runs, &blob, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	e.Report = json.RawMessage(blob)
	return &e, nil
}
