// Package sqlite provides the SQLite-backed search index of a docset.
package sqlite

import (
	"context"
	"database/sql"

	"github.com/fwojciec/docset"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection, creating the file if it does not exist.
// The schema is not touched; see EntryService.ResetIndex.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return docset.Errorf(docset.ESTORAGE, "failed to open database %q: %v", db.path, err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return docset.Errorf(docset.ESTORAGE, "failed to connect to database %q: %v", db.path, err)
	}

	// Wait before failing on lock contention instead of returning
	// "database is locked" immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return docset.Errorf(docset.ESTORAGE, "failed to set busy timeout: %v", err)
	}

	// The index ships inside the docset as a single file, so the default
	// rollback journal is kept instead of WAL.

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Ensure Opener implements docset.IndexOpener at compile time.
var _ docset.IndexOpener = (*Opener)(nil)

// Opener opens on-disk search indexes.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// OpenIndex opens the database at path and returns it as an index store.
func (o *Opener) OpenIndex(path string) (docset.IndexStore, error) {
	db := NewDB(path)
	if err := db.Open(); err != nil {
		return nil, err
	}
	return &Index{EntryService: NewEntryService(db), db: db}, nil
}

// Index is an open search index. Closing it closes the database.
type Index struct {
	*EntryService
	db *DB
}

// Close closes the underlying database.
func (i *Index) Close() error {
	return i.db.Close()
}
