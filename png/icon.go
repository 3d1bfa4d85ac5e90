// Package png validates docset icons.
package png

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docset"
)

// Ensure IconValidator implements docset.IconValidator at compile time.
var _ docset.IconValidator = (*IconValidator)(nil)

// IconValidator checks that an icon is a PNG small enough for viewers.
type IconValidator struct {
	maxSize int
}

// NewIconValidator creates an IconValidator accepting icons up to
// docset.MaxIconSize pixels in each dimension.
func NewIconValidator() *IconValidator {
	return &IconValidator{maxSize: docset.MaxIconSize}
}

// ValidateIcon returns EICON if path does not name a readable PNG image
// within the size limit. Only the image header is decoded.
func (v *IconValidator) ValidateIcon(path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".png") {
		return docset.Errorf(docset.EICON, "icon %s must be a png file", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return docset.Errorf(docset.EICON, "failed to open icon: %v", err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return docset.Errorf(docset.EICON, "failed to decode icon %s: %v", path, err)
	}
	if cfg.Width > v.maxSize || cfg.Height > v.maxSize {
		return docset.Errorf(docset.EICON, "image size must be at most %dx%d pixels, got %dx%d",
			v.maxSize, v.maxSize, cfg.Width, cfg.Height)
	}
	return nil
}
