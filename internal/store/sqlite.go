package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/seantiz/directory/internal/model"

	_ "modernc.org/sqlite"
)

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    title      TEXT NOT NULL DEFAULT '',
    location   TEXT NOT NULL DEFAULT '',
    badges     TEXT NOT NULL DEFAULT '',
    object_key TEXT NOT NULL DEFAULT ''
)`

// Compile-time interface satisfaction check.
var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite. It backs local development and
// single-host deployments that have no DynamoDB table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the SQLite database at dbPath and creates the
// employees table if needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := db.Exec(createEmployeesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create employees table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put inserts or replaces an employee record.
func (s *SQLiteStore) Put(ctx context.Context, e *model.Employee) error {
	if e.ID == "" {
		return ErrMissingID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO employees (id, name, title, location, badges, object_key)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Title, e.Location, e.Badges, e.ObjectKey,
	)
	if err != nil {
		return translateSQLiteError(fmt.Errorf("put employee: %w", err))
	}
	return nil
}

// Scan returns every employee record.
func (s *SQLiteStore) Scan(ctx context.Context) ([]model.Employee, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, title, location, badges, object_key FROM employees`,
	)
	if err != nil {
		return nil, translateSQLiteError(fmt.Errorf("scan employees: %w", err))
	}
	defer rows.Close()

	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Title, &e.Location, &e.Badges, &e.ObjectKey); err != nil {
			return nil, fmt.Errorf("scan employee row: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, nil
}

// translateSQLiteError maps a dropped table onto ErrTableNotFound so both
// drivers report the condition the same way.
func translateSQLiteError(err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: %v", ErrTableNotFound, err)
	}
	return err
}
