// Package build assembles docset packages from static documentation trees.
package build

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fwojciec/docset"
)

// Indexer builds the search index of a docset from its index document.
type Indexer struct {
	Opener    docset.IndexOpener
	Extractor docset.EntryExtractor
	Logger    *slog.Logger
}

// BuildIndex rebuilds the index stored at storePath from the index.html file
// under docsRoot. Entries that cannot be inserted are logged and reported,
// never returned as an error. The store is closed on every path.
func (i *Indexer) BuildIndex(ctx context.Context, storePath, docsRoot string) (report *docset.InsertReport, err error) {
	logger := loggerOrDiscard(i.Logger)

	store, err := i.Opener.OpenIndex(storePath)
	if err != nil {
		logger.Error("failed to open index", "path", storePath, "err", err)
		return nil, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil && err == nil {
			err = docset.Errorf(docset.ESTORAGE, "failed to close index: %v", cerr)
		}
	}()

	if err := store.ResetIndex(ctx); err != nil {
		return nil, err
	}

	indexPath := filepath.Join(docsRoot, docset.IndexFile)
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, docset.Errorf(docset.ENOINDEX, "failed to read %s: %v", indexPath, err)
	}

	entries, err := i.Extractor.ExtractEntries(string(data))
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.Type.Known() {
			logger.Debug("unknown entry type", "name", e.Name, "type", e.Type, "path", e.Path)
		}
	}

	report, err = store.InsertEntries(ctx, entries)
	if err != nil {
		return nil, err
	}
	for _, f := range report.Failed {
		logger.Error("failed to insert entry",
			"name", f.Entry.Name,
			"type", f.Entry.Type,
			"path", f.Entry.Path,
			"err", f.Err,
		)
	}
	return report, nil
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
