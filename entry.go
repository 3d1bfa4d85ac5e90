package docset

import (
	"context"
	"io"
	"strings"
)

// EntryType classifies an indexed symbol. Viewers render each type with its
// own icon; see https://kapeli.com/docsets#supportedentrytypes.
type EntryType string

// EntryType constants for the types most documentation trees use.
const (
	TypeSection   EntryType = "Section"
	TypeGuide     EntryType = "Guide"
	TypeClass     EntryType = "Class"
	TypeFunction  EntryType = "Function"
	TypeMethod    EntryType = "Method"
	TypeType      EntryType = "Type"
	TypeConstant  EntryType = "Constant"
	TypeVariable  EntryType = "Variable"
	TypeModule    EntryType = "Module"
	TypePackage   EntryType = "Package"
	TypeInterface EntryType = "Interface"
	TypeProperty  EntryType = "Property"
	TypeKeyword   EntryType = "Keyword"
)

// knownTypes lists every entry type viewers recognise.
var knownTypes = map[EntryType]struct{}{}

func init() {
	for _, t := range strings.Fields(`Annotation Attribute Binding Builtin Callback
		Category Class Command Component Constant Constructor Define Delegate
		Diagram Directive Element Entry Enum Environment Error Event Exception
		Extension Field File Filter Framework Function Global Guide Hook Instance
		Instruction Interface Keyword Library Literal Macro Method Mixin Modifier
		Module Namespace Notation Object Operator Option Package Parameter Plugin
		Procedure Property Protocol Provider Provisioner Query Record Resource
		Sample Section Service Setting Shortcut Statement Struct Style Subroutine
		Tag Test Trait Type Union Value Variable Word`) {
		knownTypes[EntryType(t)] = struct{}{}
	}
}

// Known reports whether viewers recognise t. Unknown types are still indexed.
func (t EntryType) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// Entry represents a single indexed symbol in the search index.
type Entry struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Type EntryType `json:"type"`

	// Path is relative to the Documents directory and may carry a #fragment.
	Path string `json:"path"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return Errorf(EINVALID, "entry name required")
	}
	if e.Type == "" {
		return Errorf(EINVALID, "entry type required")
	}
	if e.Path == "" {
		return Errorf(EINVALID, "entry path required")
	}
	return nil
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	Name *string    `json:"name"`
	Type *EntryType `json:"type"`
	Path *string    `json:"path"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EntryFailure records an entry the index could not store.
type EntryFailure struct {
	Entry *Entry
	Err   error
}

// InsertReport summarises a batch insert.
type InsertReport struct {
	Inserted int
	Skipped  int
	Failed   []EntryFailure
}

// Total returns the number of entries offered to the index.
func (r *InsertReport) Total() int {
	return r.Inserted + r.Skipped + len(r.Failed)
}

// EntryService represents the search index of a docset.
type EntryService interface {
	// ResetIndex drops and recreates the searchIndex table and its unique
	// anchor index. Returns ESCHEMA on failure.
	ResetIndex(ctx context.Context) error

	// InsertEntry stores e unless an entry with the same path or the same
	// name already exists. Reports whether a row was written.
	InsertEntry(ctx context.Context, e *Entry) (bool, error)

	// InsertEntries inserts entries in order within one transaction using
	// the InsertEntry rules. Per-entry failures are collected in the report
	// rather than returned; the error covers the transaction itself.
	InsertEntries(ctx context.Context, entries []*Entry) (*InsertReport, error)

	// FindEntries retrieves entries matching the filter in insertion order.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)
}

// IndexStore is an open handle to a search index.
type IndexStore interface {
	EntryService
	io.Closer
}

// IndexOpener opens search indexes.
type IndexOpener interface {
	// OpenIndex opens the index at path, creating the file if absent.
	// Returns ESTORAGE if the database cannot be opened.
	OpenIndex(path string) (IndexStore, error)
}

// EntryExtractor discovers entries in an index document.
type EntryExtractor interface {
	// ExtractEntries returns entries in document order. Malformed markup is
	// recovered from rather than reported.
	ExtractEntries(html string) ([]*Entry, error)
}
