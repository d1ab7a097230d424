package walker

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

type Entry struct {
	Path    string // absolute
	RelPath string // slash separated, "." for the root
	Size    int64
	Dir     bool
}

type WalkResult struct {
	Dirs   []Entry
	Files  []Entry
	Errors []error
}

// Walk collects every directory and file below rootPath, the root included.
// An error on the root itself aborts the walk; errors below it are collected
// and walking continues.
func Walk(rootPath string, exclusions []string) (*WalkResult, error) {
	result := &WalkResult{
		Dirs:   make([]Entry, 0),
		Files:  make([]Entry, 0),
		Errors: make([]error, 0),
	}

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			result.Errors = append(result.Errors, err)
			return nil
		}

		relPath, err := filepath.Rel(rootPath, path)
		if err != nil {
			result.Errors = append(result.Errors, err)
			return nil
		}

		if relPath != "." && shouldExclude(relPath, exclusions) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entry := Entry{
			Path:    path,
			RelPath: filepath.ToSlash(relPath),
			Dir:     d.IsDir(),
		}

		if d.IsDir() {
			result.Dirs = append(result.Dirs, entry)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			result.Errors = append(result.Errors, err)
			return nil
		}
		entry.Size = info.Size()
		result.Files = append(result.Files, entry)

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

func shouldExclude(relPath string, exclusions []string) bool {
	for _, pattern := range exclusions {
		// Directory patterns end with /
		if strings.HasSuffix(pattern, "/") {
			dirPattern := strings.TrimSuffix(pattern, "/")
			for _, part := range strings.Split(relPath, string(filepath.Separator)) {
				if matched, _ := filepath.Match(dirPattern, part); matched || part == dirPattern {
					return true
				}
			}
			continue
		}

		if matched, err := filepath.Match(pattern, filepath.Base(relPath)); err == nil && matched {
			return true
		}
		if strings.Contains(pattern, "/") {
			if matched, err := filepath.Match(pattern, filepath.ToSlash(relPath)); err == nil && matched {
				return true
			}
		}
	}
	return false
}
