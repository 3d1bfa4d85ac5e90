package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fwojciec/docset"
)

// Builder creates a complete docset package: documents, search index,
// metadata and icon. A failed build leaves nothing behind.
type Builder struct {
	Indexer   *Indexer
	Copier    docset.Copier
	InfoPlist docset.MetadataWriter
	Meta      docset.MetadataWriter
	Icons     docset.IconValidator
	Workspace docset.Workspace
	Reporter  docset.Reporter
	Logger    *slog.Logger
}

// Request holds the inputs of a single build.
type Request struct {
	// Source is the static documentation tree to package.
	Source string

	// Destination is the directory receiving <name>.docset.
	Destination string

	// Icon is an optional PNG copied to the package root.
	Icon string
}

// Result holds the outcome of a successful build.
type Result struct {
	Path   string
	Files  int
	Report *docset.InsertReport
}

// Summary returns a one-line description of the build.
func (r *Result) Summary() string {
	return fmt.Sprintf("Generated docset %s (%d files, %d entries, %d skipped, %d failed)",
		r.Path, r.Files, r.Report.Inserted, r.Report.Skipped, len(r.Report.Failed))
}

// Build creates the docset described by d from req. It returns
// docset.ErrDocsetExists, leaving the existing package untouched, when the
// package is already present. Any other failure after the package directory
// was created removes it before returning.
func (b *Builder) Build(ctx context.Context, d *docset.Docset, req Request) (result *Result, err error) {
	logger := loggerOrDiscard(b.Logger)

	if err := d.Validate(); err != nil {
		return nil, err
	}
	if info, err := os.Stat(req.Source); err != nil || !info.IsDir() {
		return nil, docset.Errorf(docset.ENOTFOUND, "%s does not exist", req.Source)
	}

	layout := docset.NewLayout(req.Destination, d.Name)

	defer func() {
		if rerr := b.Workspace.Release(layout); rerr != nil {
			logger.Warn("failed to release build lock", "path", layout.LockPath(), "err", rerr)
		}
	}()
	if err := b.Workspace.Create(layout); err != nil {
		return nil, err
	}
	defer func() {
		if err == nil {
			return
		}
		logger.Info("removing partial docset", "path", layout.Root)
		if aerr := b.Workspace.Abort(layout); aerr != nil {
			logger.Error("failed to remove partial docset", "path", layout.Root, "err", aerr)
		}
	}()
	b.Reporter.Success("Create the docset folder")

	files, err := b.Copier.CopyTree(ctx, req.Source, layout.DocumentsDir())
	if err != nil {
		return nil, err
	}
	b.Reporter.Success("Copy the html documents")

	report, err := b.Indexer.BuildIndex(ctx, layout.IndexPath(), layout.DocumentsDir())
	if err != nil {
		return nil, err
	}
	b.Reporter.Success("Create the search index")

	if err := b.InfoPlist.WriteMetadata(layout.InfoPlistPath(), d); err != nil {
		return nil, err
	}
	b.Reporter.Success("Create the info.plist file")

	if err := b.Meta.WriteMetadata(layout.MetaPath(), d); err != nil {
		return nil, err
	}
	b.Reporter.Success("Create the meta.json file")

	if req.Icon != "" {
		if err := b.copyIcon(ctx, req.Icon, layout); err != nil {
			return nil, err
		}
		b.Reporter.Success("Create the icon for the docset")
	}

	return &Result{Path: layout.Root, Files: files, Report: report}, nil
}

func (b *Builder) copyIcon(ctx context.Context, icon string, layout docset.Layout) error {
	if err := b.Icons.ValidateIcon(icon); err != nil {
		var e *docset.Error
		if errors.As(err, &e) {
			b.Reporter.Warning(e.Message)
		}
		return docset.Errorf(docset.EICON, "icon file should be a valid PNG image of at most %dx%d pixels",
			docset.MaxIconSize, docset.MaxIconSize)
	}
	return b.Copier.CopyFile(ctx, icon, layout.IconPath())
}
