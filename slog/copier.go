package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docset"
)

// Ensure LoggingCopier implements docset.Copier.
var _ docset.Copier = (*LoggingCopier)(nil)

// LoggingCopier wraps a Copier with logging.
type LoggingCopier struct {
	next   docset.Copier
	logger *slog.Logger
}

// NewLoggingCopier creates a new LoggingCopier.
func NewLoggingCopier(next docset.Copier, logger *slog.Logger) *LoggingCopier {
	return &LoggingCopier{next: next, logger: logger}
}

// CopyTree delegates to the wrapped copier and logs the operation.
func (c *LoggingCopier) CopyTree(ctx context.Context, src, dst string) (n int, err error) {
	defer func(begin time.Time) {
		c.logger.Info("copy tree",
			"src", src,
			"dst", dst,
			"files", n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.CopyTree(ctx, src, dst)
}

// CopyFile delegates to the wrapped copier and logs the operation.
func (c *LoggingCopier) CopyFile(ctx context.Context, src, dst string) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("copy file",
			"src", src,
			"dst", dst,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.CopyFile(ctx, src, dst)
}
