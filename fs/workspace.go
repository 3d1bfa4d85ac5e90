package fs

import (
	"errors"
	"fmt"
	"os"

	"github.com/fwojciec/docset"
	"github.com/gofrs/flock"
)

// Ensure Workspace implements docset.Workspace at compile time.
var _ docset.Workspace = (*Workspace)(nil)

// Workspace creates docset packages under a file lock so concurrent runs
// targeting the same package cannot both pass the existence check.
// A Workspace guards one build at a time.
type Workspace struct {
	flock *flock.Flock
}

// NewWorkspace creates a new Workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Create acquires the build lock, then creates the package directories up to
// Documents. Returns docset.ErrDocsetExists if the package root is present.
func (w *Workspace) Create(l docset.Layout) error {
	if err := w.lock(l); err != nil {
		return err
	}

	if _, err := os.Lstat(l.Root); err == nil {
		return docset.ErrDocsetExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return docset.Errorf(docset.ECOPY, "failed to inspect %s: %v", l.Root, err)
	}

	if err := os.MkdirAll(l.DocumentsDir(), 0o755); err != nil {
		_ = os.RemoveAll(l.Root)
		return docset.Errorf(docset.ECOPY, "failed to create the docset folder: %v", err)
	}
	return nil
}

func (w *Workspace) lock(l docset.Layout) error {
	if err := os.MkdirAll(l.Dir(), 0o755); err != nil {
		return docset.Errorf(docset.ECOPY, "failed to create destination %s: %v", l.Dir(), err)
	}

	fl := flock.New(l.LockPath())
	locked, err := fl.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return docset.Errorf(docset.ECONFLICT, "another build of %s is in progress", l.Root)
	}
	w.flock = fl
	return nil
}

// Abort removes the package root and everything below it.
func (w *Workspace) Abort(l docset.Layout) error {
	return os.RemoveAll(l.Root)
}

// Release unlocks and removes the lock file.
// It is safe to call Release without a held lock.
func (w *Workspace) Release(l docset.Layout) error {
	if w.flock == nil {
		return nil
	}
	fl := w.flock
	w.flock = nil

	if err := fl.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if err := os.Remove(l.LockPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
