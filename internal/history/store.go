// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of transliterations served or run
// from the CLI, so past conversions can be listed, searched and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/elot743/pkg/types"
)

const (
	defaultDBPath     = "data/history.db"
	defaultMaxResults = 20
)

// Store manages the history SQLite database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
}

// Open opens or creates the history database at cfg.DBPath, creating the
// parent directory and schema if needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			greek_text TEXT NOT NULL,
			latin_text TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_created_at ON conversions(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores c, filling in ID and CreatedAt when they are empty.
func (s *Store) Record(ctx context.Context, c *types.Conversion) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, greek_text, latin_text, source, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.GreekText, c.LatinText, string(c.Source),
		c.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion %s: %w", c.ID, err)
	}
	return nil
}

// QueryOptions filters history queries.
type QueryOptions struct {
	// Contains matches a substring of either the Greek or the Latin text.
	Contains string

	// Source restricts results to one caller type.
	Source types.ConversionSource

	// MaxResults caps the result count (0 = store default).
	MaxResults int
}

// Query returns conversions newest first.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.Conversion, error) {
	var (
		where []string
		args  []any
	)
	if opts.Contains != "" {
		pattern := "%" + escapeLike(opts.Contains) + "%"
		where = append(where, `(greek_text LIKE ? ESCAPE '\' OR latin_text LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if opts.Source != "" {
		where = append(where, `source = ?`)
		args = append(args, string(opts.Source))
	}

	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT id, greek_text, latin_text, source, created_at FROM conversions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY rowid DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var results []types.Conversion
	for rows.Next() {
		var (
			c         types.Conversion
			source    string
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.GreekText, &c.LatinText, &source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		c.Source = types.ConversionSource(source)
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			c.CreatedAt = ts
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// Count returns the number of recorded conversions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM conversions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting conversions: %w", err)
	}
	return n, nil
}

// Prune deletes all but the newest keep conversions and returns the number
// of rows removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must be non-negative, got %d", keep)
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM conversions WHERE rowid NOT IN (
			SELECT rowid FROM conversions ORDER BY rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning conversions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pruning conversions: %w", err)
	}
	return int(n), nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
