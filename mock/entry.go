package mock

import (
	"context"

	"github.com/fwojciec/docset"
)

var _ docset.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of docset.EntryService.
type EntryService struct {
	ResetIndexFn    func(ctx context.Context) error
	InsertEntryFn   func(ctx context.Context, entry *docset.Entry) (bool, error)
	InsertEntriesFn func(ctx context.Context, entries []*docset.Entry) (*docset.InsertReport, error)
	FindEntriesFn   func(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error)
}

func (s *EntryService) ResetIndex(ctx context.Context) error {
	return s.ResetIndexFn(ctx)
}

func (s *EntryService) InsertEntry(ctx context.Context, entry *docset.Entry) (bool, error) {
	return s.InsertEntryFn(ctx, entry)
}

func (s *EntryService) InsertEntries(ctx context.Context, entries []*docset.Entry) (*docset.InsertReport, error) {
	return s.InsertEntriesFn(ctx, entries)
}

func (s *EntryService) FindEntries(ctx context.Context, filter docset.EntryFilter) ([]*docset.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

var _ docset.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of docset.IndexStore.
type IndexStore struct {
	EntryService
	CloseFn func() error
}

func (s *IndexStore) Close() error {
	return s.CloseFn()
}

var _ docset.IndexOpener = (*IndexOpener)(nil)

// IndexOpener is a mock implementation of docset.IndexOpener.
type IndexOpener struct {
	OpenIndexFn func(path string) (docset.IndexStore, error)
}

func (o *IndexOpener) OpenIndex(path string) (docset.IndexStore, error) {
	return o.OpenIndexFn(path)
}

var _ docset.EntryExtractor = (*EntryExtractor)(nil)

// EntryExtractor is a mock implementation of docset.EntryExtractor.
type EntryExtractor struct {
	ExtractEntriesFn func(html string) ([]*docset.Entry, error)
}

func (e *EntryExtractor) ExtractEntries(html string) ([]*docset.Entry, error) {
	return e.ExtractEntriesFn(html)
}
