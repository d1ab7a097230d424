package generator

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BuildConcurrent creates the same tree as Build but fans sibling subtrees out
// across at most opts.Workers goroutines. Sibling subtrees never share a path,
// so no locking is needed around the filesystem. Creation order across
// subtrees is unspecified; each directory still has its files written before
// its own children are scheduled.
//
// The first error cancels the remaining work and is returned.
func BuildConcurrent(ctx context.Context, root string, opts Options) (*Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Workers <= 1 {
		return Build(ctx, root, opts)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	stats := &Stats{}
	b := &builder{opts: opts, log: opts.logger(), stats: stats}

	g.Go(func() error {
		return b.buildDirConcurrent(gctx, g, root, 1)
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	b.log.Info("tree generated",
		zap.String("root", root),
		zap.Int("workers", opts.Workers),
		zap.Int64("dirs", stats.Dirs()),
		zap.Int64("files", stats.Files()),
		zap.Int64("bytes", stats.Bytes()))

	return stats, nil
}

func (b *builder) buildDirConcurrent(ctx context.Context, g *errgroup.Group, dir string, level int) error {
	if err := b.populate(ctx, dir, level); err != nil {
		return err
	}

	if level >= b.opts.Levels {
		return nil
	}

	for j := 1; j <= b.opts.SubdirsPerLevel; j++ {
		child := filepath.Join(dir, DirName(level, j))
		task := func() error {
			return b.buildDirConcurrent(ctx, g, child, level+1)
		}
		// Waiting for a free slot here could deadlock once every worker is
		// itself waiting, so a full pool means the subtree is built inline.
		if !g.TryGo(task) {
			if err := task(); err != nil {
				return err
			}
		}
	}
	return nil
}
