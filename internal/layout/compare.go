package layout

import (
	"fmt"
	"sort"
	"strings"
)

type ChangeType string

const (
	Missing    ChangeType = "MISSING"
	Unexpected ChangeType = "UNEXPECTED"
	Resized    ChangeType = "RESIZED"
)

type Change struct {
	Type     ChangeType
	Path     string
	Expected *Entry
	Observed *Entry
}

type CompareResult struct {
	Missing    []Change
	Unexpected []Change
	Resized    []Change
}

func (r *CompareResult) HasChanges() bool {
	return len(r.Missing) > 0 || len(r.Unexpected) > 0 || len(r.Resized) > 0
}

// Compare reports how observed differs from expected. An entry that is a
// directory on one side and a file on the other is reported as missing and
// unexpected.
func Compare(expected, observed *Layout) *CompareResult {
	result := &CompareResult{
		Missing:    make([]Change, 0),
		Unexpected: make([]Change, 0),
		Resized:    make([]Change, 0),
	}

	for p, want := range expected.Entries {
		got, exists := observed.Entries[p]
		switch {
		case !exists || got.Dir != want.Dir:
			result.Missing = append(result.Missing, Change{Type: Missing, Path: p, Expected: &want})
			if exists {
				result.Unexpected = append(result.Unexpected, Change{Type: Unexpected, Path: p, Observed: &got})
			}
		case !want.Dir && got.Size != want.Size:
			result.Resized = append(result.Resized, Change{Type: Resized, Path: p, Expected: &want, Observed: &got})
		}
	}

	for p, got := range observed.Entries {
		if _, exists := expected.Entries[p]; !exists {
			result.Unexpected = append(result.Unexpected, Change{Type: Unexpected, Path: p, Observed: &got})
		}
	}

	for _, changes := range [][]Change{result.Missing, result.Unexpected, result.Resized} {
		sort.Slice(changes, func(i, j int) bool {
			return changes[i].Path < changes[j].Path
		})
	}

	return result
}

func describe(e *Entry) string {
	if e.Dir {
		return "directory"
	}
	return fmt.Sprintf("file, %d bytes", e.Size)
}

func FormatReport(result *CompareResult) string {
	if !result.HasChanges() {
		return "Layout matches."
	}

	var b strings.Builder
	b.WriteString("Layout differs:\n\n")

	if len(result.Missing) > 0 {
		fmt.Fprintf(&b, "MISSING (%d entries):\n", len(result.Missing))
		for _, change := range result.Missing {
			fmt.Fprintf(&b, "  - %s (%s)\n", change.Path, describe(change.Expected))
		}
		b.WriteString("\n")
	}

	if len(result.Unexpected) > 0 {
		fmt.Fprintf(&b, "UNEXPECTED (%d entries):\n", len(result.Unexpected))
		for _, change := range result.Unexpected {
			fmt.Fprintf(&b, "  + %s (%s)\n", change.Path, describe(change.Observed))
		}
		b.WriteString("\n")
	}

	if len(result.Resized) > 0 {
		fmt.Fprintf(&b, "RESIZED (%d files):\n", len(result.Resized))
		for _, change := range result.Resized {
			fmt.Fprintf(&b, "  ~ %s (expected %d bytes, found %d bytes)\n",
				change.Path, change.Expected.Size, change.Observed.Size)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %d missing, %d unexpected, %d resized\n",
		len(result.Missing), len(result.Unexpected), len(result.Resized))

	return b.String()
}
