// Package docset converts a static HTML documentation tree into a docset:
// the directory package read by Dash, Zeal and similar API-lookup viewers.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, etree/).
package docset

import (
	"context"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// IndexFile is the navigation root of every documentation tree. The index
// builder always reads this file, regardless of the page shown by viewers.
const IndexFile = "index.html"

// MaxIconSize is the largest icon width and height, in pixels, accepted by viewers.
const MaxIconSize = 16

// DefaultVersion is used when no valid version is supplied.
const DefaultVersion = "0.0"

// Docset describes the identity of a generated docset package.
type Docset struct {
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Keywords       []string `json:"keywords"`
	IndexPage      string   `json:"indexPage"`
	PlatformFamily string   `json:"platformFamily"`
}

// Validate returns an error if the docset contains invalid fields.
func (d *Docset) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "docset name required")
	}
	if strings.ContainsAny(d.Name, `/\`) {
		return Errorf(EINVALID, "docset name %q must not contain path separators", d.Name)
	}
	return nil
}

// BundleName returns the name up to its first dot. It is used as the bundle
// identifier and, unless overridden, the platform family.
func (d *Docset) BundleName() string {
	name, _, _ := strings.Cut(d.Name, ".")
	return name
}

// DisplayName returns BundleName with the first letter upper-cased and the
// rest lower-cased.
func (d *Docset) DisplayName() string {
	name := d.BundleName()
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(name[size:])
}

// Family returns the keyword viewers use to scope searches to this docset.
func (d *Docset) Family() string {
	if d.PlatformFamily != "" {
		return d.PlatformFamily
	}
	return d.BundleName()
}

// IndexFilePath returns the page viewers open first.
func (d *Docset) IndexFilePath() string {
	if d.IndexPage != "" {
		return d.IndexPage
	}
	return IndexFile
}

// Revision returns the version written to meta.json.
func (d *Docset) Revision() string {
	if d.Version == "" {
		return DefaultVersion
	}
	return d.Version
}

// ParseVersion validates a user-supplied version. Versions must be
// non-negative real numbers; ok is false when raw is empty or invalid, in
// which case DefaultVersion is returned.
func ParseVersion(raw string) (version string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultVersion, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultVersion, false
	}
	return raw, true
}

// Layout resolves the paths inside a docset package.
type Layout struct {
	Root string
}

// NewLayout returns the layout of the docset named name under destination.
func NewLayout(destination, name string) Layout {
	return Layout{Root: filepath.Join(destination, name+".docset")}
}

// Dir returns the directory holding the package.
func (l Layout) Dir() string {
	return filepath.Dir(l.Root)
}

// ContentsDir returns <name>.docset/Contents.
func (l Layout) ContentsDir() string {
	return filepath.Join(l.Root, "Contents")
}

// ResourcesDir returns <name>.docset/Contents/Resources.
func (l Layout) ResourcesDir() string {
	return filepath.Join(l.ContentsDir(), "Resources")
}

// DocumentsDir returns the directory holding the copied documentation tree.
func (l Layout) DocumentsDir() string {
	return filepath.Join(l.ResourcesDir(), "Documents")
}

// IndexPath returns the path of the search index database.
func (l Layout) IndexPath() string {
	return filepath.Join(l.ResourcesDir(), "docSet.dsidx")
}

// InfoPlistPath returns the path of the info.plist property list.
func (l Layout) InfoPlistPath() string {
	return filepath.Join(l.ContentsDir(), "info.plist")
}

// MetaPath returns the path of meta.json.
func (l Layout) MetaPath() string {
	return filepath.Join(l.Root, "meta.json")
}

// IconPath returns the path of the optional docset icon.
func (l Layout) IconPath() string {
	return filepath.Join(l.Root, "icon.png")
}

// LockPath returns the lock file guarding a build of this docset. It lives
// beside the package so removing a failed package leaves the lock intact.
func (l Layout) LockPath() string {
	return filepath.Join(l.Dir(), "."+filepath.Base(l.Root)+".lock")
}

// Copier copies a documentation tree into a docset.
type Copier interface {
	// CopyTree recursively copies src into dst and returns the number of
	// files copied. Any failed file fails the whole copy with ECOPY.
	CopyTree(ctx context.Context, src, dst string) (int, error)

	// CopyFile copies a single file.
	CopyFile(ctx context.Context, src, dst string) error
}

// MetadataWriter writes one of the docset metadata files.
type MetadataWriter interface {
	// WriteMetadata writes metadata for d to path.
	// Returns EMETADATA on failure.
	WriteMetadata(path string, d *Docset) error
}

// IconValidator checks a docset icon before it is copied.
type IconValidator interface {
	// ValidateIcon returns EICON if path is not a readable PNG within
	// MaxIconSize in both dimensions.
	ValidateIcon(path string) error
}

// Workspace manages the on-disk docset package during a build.
type Workspace interface {
	// Create locks and creates the package directories.
	// Returns ErrDocsetExists if the package root already exists.
	Create(l Layout) error

	// Abort removes a partially written package.
	Abort(l Layout) error

	// Release drops the build lock.
	Release(l Layout) error
}

// Reporter prints human-readable progress for the user.
type Reporter interface {
	Success(msg string)
	Warning(msg string)
}
