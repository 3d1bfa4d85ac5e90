package mock

import (
	"context"

	"github.com/fwojciec/docset"
)

var _ docset.Copier = (*Copier)(nil)

// Copier is a mock implementation of docset.Copier.
type Copier struct {
	CopyTreeFn func(ctx context.Context, src, dst string) (int, error)
	CopyFileFn func(ctx context.Context, src, dst string) error
}

func (c *Copier) CopyTree(ctx context.Context, src, dst string) (int, error) {
	return c.CopyTreeFn(ctx, src, dst)
}

func (c *Copier) CopyFile(ctx context.Context, src, dst string) error {
	return c.CopyFileFn(ctx, src, dst)
}
