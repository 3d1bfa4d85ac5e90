package fs

import (
	"encoding/json"
	"os"

	"github.com/fwojciec/docset"
)

// Meta is the content of meta.json, read by viewers that sync docsets.
type Meta struct {
	Extra    MetaExtra `json:"extra"`
	Name     string    `json:"name"`
	Title    string    `json:"title"`
	Revision string    `json:"revision"`
}

// MetaExtra holds the viewer-specific part of meta.json.
type MetaExtra struct {
	Keywords      []string `json:"keywords"`
	IndexFilePath string   `json:"indexFilePath"`
}

// NewMeta returns the meta.json content for d.
func NewMeta(d *docset.Docset) *Meta {
	keywords := d.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return &Meta{
		Extra: MetaExtra{
			Keywords:      keywords,
			IndexFilePath: d.IndexFilePath(),
		},
		Name:     d.Name,
		Title:    d.Name,
		Revision: d.Revision(),
	}
}

// Ensure MetaWriter implements docset.MetadataWriter at compile time.
var _ docset.MetadataWriter = (*MetaWriter)(nil)

// MetaWriter writes meta.json.
type MetaWriter struct{}

// NewMetaWriter creates a new MetaWriter.
func NewMetaWriter() *MetaWriter {
	return &MetaWriter{}
}

// WriteMetadata writes meta.json for d to path.
func (w *MetaWriter) WriteMetadata(path string, d *docset.Docset) error {
	data, err := json.MarshalIndent(NewMeta(d), "", "    ")
	if err != nil {
		return docset.Errorf(docset.EMETADATA, "failed to encode meta.json: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return docset.Errorf(docset.EMETADATA, "failed to write meta.json: %v", err)
	}
	return nil
}
