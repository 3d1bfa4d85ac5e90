// Package fs provides file-system operations for building docsets.
package fs

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docset"
	"golang.org/x/sync/errgroup"
)

// Ensure Copier implements docset.Copier at compile time.
var _ docset.Copier = (*Copier)(nil)

// Copier copies documentation trees.
type Copier struct {
	jobs   int
	verify bool
}

// CopierOption configures a Copier.
type CopierOption func(*Copier)

// WithJobs sets how many files are copied concurrently. Values below one
// copy sequentially.
func WithJobs(n int) CopierOption {
	return func(c *Copier) {
		c.jobs = n
	}
}

// WithVerify makes the copier re-read each copied file and compare its
// digest with the source.
func WithVerify(verify bool) CopierOption {
	return func(c *Copier) {
		c.verify = verify
	}
}

// NewCopier creates a new Copier.
func NewCopier(opts ...CopierOption) *Copier {
	c := &Copier{jobs: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.jobs < 1 {
		c.jobs = 1
	}
	return c
}

// copyJob is one file scheduled for copying.
type copyJob struct {
	src, dst string
	mode     fs.FileMode
}

// CopyTree copies the contents of src into dst. Directories are created
// while walking; files are copied afterwards by up to jobs workers. Symbolic
// links to files are copied by content, links to directories are recreated.
func (c *Copier) CopyTree(ctx context.Context, src, dst string) (int, error) {
	src, err := filepath.EvalSymlinks(src)
	if err != nil {
		return 0, docset.Errorf(docset.ECOPY, "failed to read source: %v", err)
	}
	info, err := os.Stat(src)
	if err != nil {
		return 0, docset.Errorf(docset.ECOPY, "failed to read source %s: %v", src, err)
	}
	if !info.IsDir() {
		return 0, docset.Errorf(docset.ECOPY, "source %s is not a directory", src)
	}

	var jobs []copyJob
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.Type()&fs.ModeSymlink != 0 {
			linked, err := os.Stat(path)
			if err != nil {
				return err
			}
			if linked.IsDir() {
				return copySymlink(path, target)
			}
			jobs = append(jobs, copyJob{src: path, dst: target, mode: linked.Mode().Perm()})
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		jobs = append(jobs, copyJob{src: path, dst: target, mode: info.Mode().Perm()})
		return nil
	})
	if err != nil {
		return 0, docset.Errorf(docset.ECOPY, "failed to copy %s: %v", src, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs)
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return c.copyFile(job.src, job.dst, job.mode)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, docset.Errorf(docset.ECOPY, "copy html documents failed: %v", err)
	}

	return len(jobs), nil
}

// CopyFile copies a single file, creating dst's parent directory.
func (c *Copier) CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return docset.Errorf(docset.ECOPY, "failed to read %s: %v", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return docset.Errorf(docset.ECOPY, "failed to create %s: %v", filepath.Dir(dst), err)
	}
	if err := c.copyFile(src, dst, info.Mode().Perm()); err != nil {
		return docset.Errorf(docset.ECOPY, "%v", err)
	}
	return nil
}

func (c *Copier) copyFile(src, dst string, mode fs.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode|0o200)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	h := xxhash.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		return err
	}

	if !c.verify {
		return nil
	}
	if err := out.Sync(); err != nil {
		return err
	}
	got, err := fileDigest(dst)
	if err != nil {
		return err
	}
	if got != h.Sum64() {
		return &VerifyError{Path: dst}
	}
	return nil
}

// fileDigest returns the xxhash digest of the file at path.
func fileDigest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	return os.Symlink(target, dst)
}

// VerifyError is returned when a copied file does not match its source.
type VerifyError struct {
	Path string
}

func (e *VerifyError) Error() string {
	return "copied file " + e.Path + " does not match its source"
}
