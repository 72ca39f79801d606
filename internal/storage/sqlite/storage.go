package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/clubroster/internal/dependencies/clock"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS club_document (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	body TEXT NOT NULL,
	saved_at TEXT NOT NULL
);`

// Storage keeps the document as a single row in an embedded SQLite database
type Storage struct {
	db    *sql.DB
	clock clock.Clock
}

// New opens (creating if needed) the database at path and ensures the schema
// exists. clk stamps each save.
func New(path string, clk clock.Clock) (*Storage, error) {
	if path == "" {
		return nil, errors.New("sqlite storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	s, err := NewWithDB(db, clk)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewWithDB wraps an open database handle (for testing) and ensures the schema exists
func NewWithDB(db *sql.DB, clk clock.Clock) (*Storage, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{db: db, clock: clk}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (*model.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM club_document WHERE id = 1`).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrDocumentNotFound
		}
		return nil, err
	}

	var doc model.Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return doc.Normalize(), nil
}

func (s *Storage) Save(ctx context.Context, doc *model.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO club_document (id, body, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, saved_at = excluded.saved_at`,
		string(data), s.clock.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// Close closes the database handle
func (s *Storage) Close() error {
	return s.db.Close()
}
