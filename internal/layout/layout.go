// Package layout describes the shape of a generated tree: which directories
// and files exist and how large each file is. File content is never part of
// a layout.
package layout

import (
	"errors"
	"fmt"
	"path"
	"sort"

	"treegen/internal/generator"
	"treegen/internal/walker"
)

// RootPath is the relative path of the layout root.
const RootPath = "."

// MaxEntries bounds the size of an expected layout held in memory.
const MaxEntries = 1 << 22

var ErrLayoutTooLarge = errors.New("layout too large")

type Entry struct {
	Path string // slash separated, relative to the layout root
	Size int64
	Dir  bool
}

type Layout struct {
	Root    string
	Entries map[string]Entry // relative path -> Entry
}

func (l *Layout) Dirs() int {
	n := 0
	for _, e := range l.Entries {
		if e.Dir {
			n++
		}
	}
	return n
}

func (l *Layout) Files() int {
	return len(l.Entries) - l.Dirs()
}

// Sorted returns the entries ordered by path.
func (l *Layout) Sorted() []Entry {
	entries := make([]Entry, 0, len(l.Entries))
	for _, e := range l.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// Expected returns the layout generator.Build produces for opts.
func Expected(root string, opts generator.Options) (*Layout, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dirs, files := generator.ExpectedDirs(opts), generator.ExpectedFiles(opts)
	if dirs > MaxEntries || files > MaxEntries-dirs {
		return nil, fmt.Errorf("%w: %d directories and %d files exceed %d entries",
			ErrLayoutTooLarge, dirs, files, MaxEntries)
	}

	l := &Layout{
		Root:    root,
		Entries: make(map[string]Entry, dirs+files),
	}

	var add func(dir string, level int)
	add = func(dir string, level int) {
		l.Entries[dir] = Entry{Path: dir, Dir: true}

		for i := 1; i <= opts.FilesPerDir; i++ {
			p := path.Join(dir, generator.FileName(level, i))
			l.Entries[p] = Entry{Path: p, Size: opts.FileSize}
		}

		if level >= opts.Levels {
			return
		}
		for j := 1; j <= opts.SubdirsPerLevel; j++ {
			add(path.Join(dir, generator.DirName(level, j)), level+1)
		}
	}
	add(RootPath, 1)

	return l, nil
}

// Observe walks root and records the layout found on disk. Paths matching
// the exclusion patterns are left out.
func Observe(root string, exclusions []string) (*Layout, error) {
	result, err := walker.Walk(root, exclusions)
	if err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("failed to read %d entries: %w", len(result.Errors), result.Errors[0])
	}

	l := &Layout{
		Root:    root,
		Entries: make(map[string]Entry, len(result.Dirs)+len(result.Files)),
	}
	for _, d := range result.Dirs {
		l.Entries[d.RelPath] = Entry{Path: d.RelPath, Dir: true}
	}
	for _, f := range result.Files {
		l.Entries[f.RelPath] = Entry{Path: f.RelPath, Size: f.Size}
	}

	return l, nil
}
