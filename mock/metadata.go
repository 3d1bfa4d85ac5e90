package mock

import "github.com/fwojciec/docset"

var _ docset.MetadataWriter = (*MetadataWriter)(nil)

// MetadataWriter is a mock implementation of docset.MetadataWriter.
type MetadataWriter struct {
	WriteMetadataFn func(path string, d *docset.Docset) error
}

func (w *MetadataWriter) WriteMetadata(path string, d *docset.Docset) error {
	return w.WriteMetadataFn(path, d)
}

var _ docset.IconValidator = (*IconValidator)(nil)

// IconValidator is a mock implementation of docset.IconValidator.
type IconValidator struct {
	ValidateIconFn func(path string) error
}

func (v *IconValidator) ValidateIcon(path string) error {
	return v.ValidateIconFn(path)
}
