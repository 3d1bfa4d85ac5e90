package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docset"
)

// Ensure LoggingIndexOpener implements docset.IndexOpener.
var _ docset.IndexOpener = (*LoggingIndexOpener)(nil)

// LoggingIndexOpener wraps an IndexOpener so the stores it opens are logged.
type LoggingIndexOpener struct {
	next   docset.IndexOpener
	logger *slog.Logger
}

// NewLoggingIndexOpener creates a new LoggingIndexOpener.
func NewLoggingIndexOpener(next docset.IndexOpener, logger *slog.Logger) *LoggingIndexOpener {
	return &LoggingIndexOpener{next: next, logger: logger}
}

// OpenIndex delegates to the wrapped opener and wraps the returned store.
func (o *LoggingIndexOpener) OpenIndex(path string) (store docset.IndexStore, err error) {
	defer func(begin time.Time) {
		o.logger.Info("open index",
			"path", path,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())

	store, err = o.next.OpenIndex(path)
	if err != nil {
		return nil, err
	}
	return NewLoggingIndexStore(store, path, o.logger), nil
}

// Ensure LoggingIndexStore implements docset.IndexStore.
var _ docset.IndexStore = (*LoggingIndexStore)(nil)

// LoggingIndexStore wraps an IndexStore with logging.
type LoggingIndexStore struct {
	*LoggingEntryService
	next docset.IndexStore
	path string
}

// NewLoggingIndexStore creates a new LoggingIndexStore.
func NewLoggingIndexStore(next docset.IndexStore, path string, logger *slog.Logger) *LoggingIndexStore {
	return &LoggingIndexStore{
		LoggingEntryService: NewLoggingEntryService(next, logger),
		next:                next,
		path:                path,
	}
}

// Close delegates to the wrapped store and logs the operation.
func (s *LoggingIndexStore) Close() (err error) {
	defer func() {
		s.logger.Info("close index", "path", s.path, "err", err)
	}()
	return s.next.Close()
}

// Ensure LoggingEntryService implements docset.EntryService.
var _ docset.EntryService = (*LoggingEntryService)(nil)

// LoggingEntryService wraps an EntryService with logging.
type LoggingEntryService struct {
	next   docset.EntryService
	logger *slog.Logger
}

// NewLoggingEntryService creates a new LoggingEntryService.
func NewLoggingEntryService(next docset.EntryService, logger *slog.Logger) *LoggingEntryService {
	return &LoggingEntryService{next: next, logger: logger}
}

// ResetIndex delegates to the wrapped service and logs the operation.
func (s *LoggingEntryService) ResetIndex(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("reset index",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ResetIndex(ctx)
}

// InsertEntry delegates to the wrapped service. Single inserts are frequent,
// so they are logged at debug level.
func (s *LoggingEntryService) InsertEntry(ctx context.Context, entry *docset.Entry) (inserted bool, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("insert entry",
			"name", entry.Name,
			"type", entry.Type,
			"path", entry.Path,
			"inserted", inserted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.InsertEntry(ctx, entry)
}

// InsertEntries delegates to the wrapped service and logs the batch outcome.
func (s *LoggingEntryService) InsertEntries(ctx context.Context, entries []*docset.Entry) (report *docset.InsertReport, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		}
		if report != nil {
			attrs = append(attrs,
				"inserted", report.Inserted,
				"skipped", report.Skipped,
				"failed", len(report.Failed),
			)
		}
		s.logger.Info("insert entries", attrs...)
	}(time.Now())
	return s.next.InsertEntries(ctx, entries)
}

// FindEntries delegates to the wrapped service and logs the operation.
func (s *LoggingEntryService) FindEntries(ctx context.Context, filter docset.EntryFilter) (entries []*docset.Entry, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find entries",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEntries(ctx, filter)
}
