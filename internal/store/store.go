// Package store persists the dojo's append-only event log in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("store: not found")

// Store owns the database handle and hands out repositories.
type Store struct {
	db  *sql.DB
	seq *sequence
}

// Open creates a Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := loadSequence(db, entsql.Dialect(dialect.SQLite))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq, b: entsql.Dialect(dialect.SQLite)}
}

// sequence hands out the order shared by every event table, so an LLM
// request can be placed relative to the attempt that triggered it. Only the
// TUI process writes events; the UNIQUE column rejects a second writer.
type sequence struct {
	next atomic.Int64
}

// loadSequence resumes after the highest sequence already stored.
func loadSequence(db *sql.DB, b *entsql.DialectBuilder) (*sequence, error) {
	var top int64
	for _, table := range []string{llmTable, attemptTable} {
		query, args := b.Select(entsql.Max("sequence")).From(entsql.Table(table)).Query()
		var v sql.NullInt64
		if err := db.QueryRow(query, args...).Scan(&v); err != nil {
			return nil, fmt.Errorf("read %s sequence: %w", table, err)
		}
		top = max(top, v.Int64)
	}
	s := &sequence{}
	s.next.Store(top)
	return s, nil
}

func (s *sequence) Next() int64 {
	return s.next.Add(1)
}

// eventTable creates an event table with the columns every event shares.
func eventTable(b *entsql.DialectBuilder, name string, columns ...*entsql.ColumnBuilder) *entsql.TableBuilder {
	base := []*entsql.ColumnBuilder{
		b.Column("id").Type("INTEGER").Attr("PRIMARY KEY AUTOINCREMENT"),
		b.Column("sequence").Type("INTEGER").Attr("NOT NULL UNIQUE"),
		b.Column("timestamp").Type("INTEGER").Attr("NOT NULL"),
	}
	return b.CreateTable(name).IfNotExists().Columns(append(base, columns...)...)
}

func text(b *entsql.DialectBuilder, name string) *entsql.ColumnBuilder {
	return b.Column(name).Type("TEXT").Attr("NOT NULL DEFAULT ''")
}

func integer(b *entsql.DialectBuilder, name string) *entsql.ColumnBuilder {
	return b.Column(name).Type("INTEGER").Attr("NOT NULL DEFAULT 0")
}

func schema(b *entsql.DialectBuilder) []entsql.Querier {
	return []entsql.Querier{
		eventTable(b, llmTable,
			text(b, "provider"),
			text(b, "model"),
			text(b, "purpose"),
			integer(b, "input_tokens"),
			integer(b, "output_tokens"),
			integer(b, "latency_ms"),
			b.Column("success").Type("BOOLEAN").Attr("NOT NULL DEFAULT 0"),
			text(b, "error_message"),
			text(b, "request_body"),
			text(b, "response_body"),
		),
		eventTable(b, attemptTable,
			b.Column("session_id").Type("TEXT").Attr("NOT NULL"),
			b.Column("ruleset").Type("TEXT").Attr("NOT NULL"),
			b.Column("kata_id").Type("TEXT").Attr("NOT NULL"),
			text(b, "kata_name"),
			b.Column("outcome").Type("TEXT").Attr("NOT NULL"),
			integer(b, "steps_completed"),
			integer(b, "total_steps"),
			text(b, "expected"),
			text(b, "got"),
			integer(b, "duration_ms"),
		),
		b.CreateIndex(attemptTable + "_kata_id").IfNotExists().Table(attemptTable).Columns("kata_id"),
	}
}

func migrate(db *sql.DB) error {
	for _, q := range schema(entsql.Dialect(dialect.SQLite)) {
		stmt, args := q.Query()
		if _, err := db.Exec(stmt, args...); err != nil {
			return err
		}
	}
	return nil
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path:
// $XDG_DATA_HOME/dojo/dojo.db, falling back to ~/.local/share/dojo/dojo.db.
// The parent directory is created if missing.
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "dojo", "dojo.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
