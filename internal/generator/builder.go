package generator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"treegen/internal/progress"
)

const (
	DefaultSubdirsPerLevel = 2
	DefaultFileSize        = 1024

	dirPerm  = 0755
	filePerm = 0644
)

var ErrInvalidOptions = errors.New("invalid generation options")

// Options describes the shape of the tree to generate.
type Options struct {
	Levels          int
	FilesPerDir     int
	SubdirsPerLevel int
	FileSize        int64

	// Workers bounds the number of goroutines used by BuildConcurrent.
	Workers int

	Logger   *zap.Logger
	Progress *progress.Bar
}

// DefaultOptions returns options for a tree of the given depth using the
// default fan-out and file size.
func DefaultOptions(levels, filesPerDir int) Options {
	return Options{
		Levels:          levels,
		FilesPerDir:     filesPerDir,
		SubdirsPerLevel: DefaultSubdirsPerLevel,
		FileSize:        DefaultFileSize,
		Workers:         1,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Levels < 1:
		return fmt.Errorf("%w: levels must be at least 1, got %d", ErrInvalidOptions, o.Levels)
	case o.FilesPerDir < 0:
		return fmt.Errorf("%w: files per directory must not be negative, got %d", ErrInvalidOptions, o.FilesPerDir)
	case o.SubdirsPerLevel < 0:
		return fmt.Errorf("%w: subdirectories per level must not be negative, got %d", ErrInvalidOptions, o.SubdirsPerLevel)
	case o.FileSize < 0:
		return fmt.Errorf("%w: file size must not be negative, got %d", ErrInvalidOptions, o.FileSize)
	}

	dirs, ok := countDirs(o)
	if !ok {
		return fmt.Errorf("%w: %d levels of %d subdirectories is too many directories", ErrInvalidOptions, o.Levels, o.SubdirsPerLevel)
	}
	if o.FilesPerDir > 0 && dirs > math.MaxInt64/int64(o.FilesPerDir) {
		return fmt.Errorf("%w: %d directories of %d files is too many files", ErrInvalidOptions, dirs, o.FilesPerDir)
	}
	return nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// FileName returns the name of the i-th file (1-based) in a directory at the given level.
func FileName(level, i int) string {
	return fmt.Sprintf("file_%d_%d.bin", level, i)
}

// DirName returns the name of the j-th subdirectory (1-based) of a directory at the given level.
func DirName(level, j int) string {
	return fmt.Sprintf("dir_%d_%d", level, j)
}

// ExpectedDirs returns the number of directories a tree with these options
// contains, the root included. Counts beyond math.MaxInt64 saturate; Validate
// rejects such options.
func ExpectedDirs(opts Options) int64 {
	dirs, ok := countDirs(opts)
	if !ok {
		return math.MaxInt64
	}
	return dirs
}

func ExpectedFiles(opts Options) int64 {
	dirs := ExpectedDirs(opts)
	if opts.FilesPerDir > 0 && dirs > math.MaxInt64/int64(opts.FilesPerDir) {
		return math.MaxInt64
	}
	return dirs * int64(opts.FilesPerDir)
}

// countDirs sums subdirs^d for d in [0, levels). ok is false on int64 overflow.
func countDirs(opts Options) (total int64, ok bool) {
	switch {
	case opts.Levels < 1:
		return 0, true
	case opts.SubdirsPerLevel == 0:
		return 1, true
	case opts.SubdirsPerLevel == 1:
		return int64(opts.Levels), true
	}

	fanOut := int64(opts.SubdirsPerLevel)
	width := int64(1)
	for d := 0; d < opts.Levels; d++ {
		if total > math.MaxInt64-width {
			return 0, false
		}
		total += width
		if d+1 == opts.Levels {
			break
		}
		if width > math.MaxInt64/fanOut {
			return 0, false
		}
		width *= fanOut
	}
	return total, true
}

// Build creates the tree rooted at root one directory at a time in
// depth-first pre-order: a directory's files are written before any of its
// subdirectories are created.
//
// Filesystem errors abort the build and are returned wrapped; whatever was
// created before the failure is left on disk.
func Build(ctx context.Context, root string, opts Options) (*Stats, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	stats := &Stats{}
	b := &builder{opts: opts, log: opts.logger(), stats: stats}
	if err := b.buildDir(ctx, root, 1); err != nil {
		return stats, err
	}

	b.log.Info("tree generated",
		zap.String("root", root),
		zap.Int64("dirs", stats.Dirs()),
		zap.Int64("files", stats.Files()),
		zap.Int64("bytes", stats.Bytes()))

	return stats, nil
}

type builder struct {
	opts  Options
	log   *zap.Logger
	stats *Stats
}

func (b *builder) buildDir(ctx context.Context, dir string, level int) error {
	if err := b.populate(ctx, dir, level); err != nil {
		return err
	}

	if level >= b.opts.Levels {
		return nil
	}

	for j := 1; j <= b.opts.SubdirsPerLevel; j++ {
		if err := b.buildDir(ctx, filepath.Join(dir, DirName(level, j)), level+1); err != nil {
			return err
		}
	}
	return nil
}

// populate creates dir and writes its files. It is shared by the sequential
// and concurrent builders.
func (b *builder) populate(ctx context.Context, dir string, level int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	b.stats.addDir()
	b.log.Debug("directory created", zap.String("path", dir), zap.Int("level", level))

	if b.opts.Progress != nil {
		b.opts.Progress.SetDirectory(dir)
	}

	for i := 1; i <= b.opts.FilesPerDir; i++ {
		path := filepath.Join(dir, FileName(level, i))
		if err := writeRandomFile(path, b.opts.FileSize); err != nil {
			return err
		}
		b.stats.addFile(b.opts.FileSize)

		if b.opts.Progress != nil {
			b.opts.Progress.Increment()
		}
	}
	return nil
}
