package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fwojciec/docset"
)

// Schema statements for the searchIndex table. The table, column and index
// names are read by docset viewers and must not change.
var resetStatements = []string{
	`DROP TABLE IF EXISTS searchIndex`,
	`DROP INDEX IF EXISTS anchor`,
	`CREATE TABLE searchIndex(id INTEGER PRIMARY KEY, name TEXT, type TEXT, path TEXT)`,
	`CREATE UNIQUE INDEX anchor ON searchIndex (name, type, path)`,
}

// insertEntryQuery writes a row only when neither its path nor its name is
// already indexed. Doing the check and the write in one statement keeps the
// operation atomic.
const insertEntryQuery = `
	INSERT OR IGNORE INTO searchIndex (name, type, path)
	SELECT ?, ?, ?
	WHERE NOT EXISTS (
		SELECT 1 FROM searchIndex WHERE path = ? OR name = ?
	)
`

// execer is satisfied by both *DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Compile-time interface verification.
var _ docset.EntryService = (*EntryService)(nil)

// EntryService implements docset.EntryService using SQLite.
type EntryService struct {
	db *DB
}

// NewEntryService creates a new EntryService.
func NewEntryService(db *DB) *EntryService {
	return &EntryService{db: db}
}

// ResetIndex drops any existing searchIndex table and creates an empty one.
func (s *EntryService) ResetIndex(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return docset.Errorf(docset.ESCHEMA, "failed to begin schema transaction: %v", err)
	}
	defer tx.Rollback()

	for _, stmt := range resetStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return docset.Errorf(docset.ESCHEMA, "failed to initialize index: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return docset.Errorf(docset.ESCHEMA, "failed to commit schema: %v", err)
	}
	return nil
}

// InsertEntry inserts a single entry outside of any batch.
func (s *EntryService) InsertEntry(ctx context.Context, e *docset.Entry) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, err
	}
	return insertEntry(ctx, s.db, e)
}

// InsertEntries inserts entries in order within one transaction. A failing
// entry is recorded in the report and the batch continues with the next one.
func (s *EntryService) InsertEntries(ctx context.Context, entries []*docset.Entry) (*docset.InsertReport, error) {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	report := &docset.InsertReport{}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := e.Validate(); err != nil {
			report.Failed = append(report.Failed, docset.EntryFailure{Entry: e, Err: err})
			continue
		}

		inserted, err := insertEntry(ctx, tx, e)
		switch {
		case err != nil:
			report.Failed = append(report.Failed, docset.EntryFailure{Entry: e, Err: err})
		case inserted:
			report.Inserted++
		default:
			report.Skipped++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit entries: %w", err)
	}
	return report, nil
}

func insertEntry(ctx context.Context, db execer, e *docset.Entry) (bool, error) {
	result, err := db.ExecContext(ctx, insertEntryQuery,
		e.Name, string(e.Type), e.Path, e.Path, e.Name)
	if err != nil {
		return false, fmt.Errorf("failed to insert entry %q: %w", e.Name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if id, err := result.LastInsertId(); err == nil {
		e.ID = id
	}
	return true, nil
}

// FindEntries retrieves entries matching the filter ordered by id.
func (s *EntryService) FindEntries(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error) {
	var query strings.Builder
	query.WriteString("SELECT id, name, type, path FROM searchIndex WHERE 1=1")
	var args []any

	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		args = append(args, string(*filter.Type))
	}
	if filter.Path != nil {
		query.WriteString(" AND path = ?")
		args = append(args, *filter.Path)
	}

	query.WriteString(" ORDER BY id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*docset.Entry, 0)
	for rows.Next() {
		var e docset.Entry
		var typ string
		if err := rows.Scan(&e.ID, &e.Name, &typ, &e.Path); err != nil {
			return nil, err
		}
		e.Type = docset.EntryType(typ)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
