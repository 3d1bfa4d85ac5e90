// Package goquery extracts docset entries from HTML using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docset"
)

// Ensure EntryExtractor implements docset.EntryExtractor at compile time.
var _ docset.EntryExtractor = (*EntryExtractor)(nil)

// EntryExtractor turns the anchors of an index document into entries.
type EntryExtractor struct {
	indexFile string
}

// NewEntryExtractor creates a new EntryExtractor. Anchors pointing back at
// indexFile are treated as navigation and never become entries.
func NewEntryExtractor(indexFile string) *EntryExtractor {
	return &EntryExtractor{indexFile: indexFile}
}

// ExtractEntries returns one entry per anchor with a non-empty text and href,
// in document order. The entry type is the first class token of the anchor,
// or Section when it has none. Duplicates are left for the index to resolve.
func (x *EntryExtractor) ExtractEntries(html string) ([]*docset.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docset.Errorf(docset.EINVALID, "failed to parse HTML: %v", err)
	}

	entries := make([]*docset.Entry, 0)
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			return
		}

		href, _ := sel.Attr("href")
		path := strings.TrimSpace(href)
		if path == "" {
			return
		}

		if x.isSelfReference(path) {
			return
		}

		entries = append(entries, &docset.Entry{
			Name: name,
			Type: entryType(sel),
			Path: path,
		})
	})

	return entries, nil
}

// isSelfReference reports whether path points at the index document itself,
// ignoring any fragment. A fragment-only href targets the index page too.
func (x *EntryExtractor) isSelfReference(path string) bool {
	page, _, _ := strings.Cut(path, "#")
	return page == "" || page == x.indexFile
}

func entryType(sel *goquery.Selection) docset.EntryType {
	class, _ := sel.Attr("class")
	fields := strings.Fields(class)
	if len(fields) == 0 {
		return docset.TypeSection
	}
	return docset.EntryType(fields[0])
}
