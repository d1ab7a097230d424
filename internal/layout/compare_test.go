package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treegen/internal/generator"
)

func expectedLayout(t *testing.T) *Layout {
	t.Helper()

	l, err := Expected("/tmp/t", generator.Options{Levels: 2, FilesPerDir: 1, SubdirsPerLevel: 2, FileSize: 100})
	require.NoError(t, err)
	return l
}

func TestCompare_NoChanges(t *testing.T) {
	result := Compare(expectedLayout(t), expectedLayout(t))

	assert.False(t, result.HasChanges())
	assert.Equal(t, "Layout matches.", FormatReport(result))
}

func TestCompare_DetectsDifferences(t *testing.T) {
	expected := expectedLayout(t)
	observed := expectedLayout(t)

	delete(observed.Entries, "dir_1_2/file_2_1.bin")
	observed.Entries["stray.txt"] = Entry{Path: "stray.txt", Size: 3}
	observed.Entries["file_1_1.bin"] = Entry{Path: "file_1_1.bin", Size: 99}
	observed.Entries["dir_1_1"] = Entry{Path: "dir_1_1", Size: 5}

	result := Compare(expected, observed)
	require.True(t, result.HasChanges())

	require.Len(t, result.Missing, 2)
	assert.Equal(t, "dir_1_1", result.Missing[0].Path)
	assert.Equal(t, "dir_1_2/file_2_1.bin", result.Missing[1].Path)

	require.Len(t, result.Unexpected, 2)
	assert.Equal(t, "dir_1_1", result.Unexpected[0].Path)
	assert.Equal(t, "stray.txt", result.Unexpected[1].Path)

	require.Len(t, result.Resized, 1)
	assert.Equal(t, Resized, result.Resized[0].Type)
	assert.Equal(t, int64(100), result.Resized[0].Expected.Size)
	assert.Equal(t, int64(99), result.Resized[0].Observed.Size)

	report := FormatReport(result)
	assert.Contains(t, report, "MISSING (2 entries)")
	assert.Contains(t, report, "+ stray.txt (file, 3 bytes)")
	assert.Contains(t, report, "~ file_1_1.bin (expected 100 bytes, found 99 bytes)")
	assert.Contains(t, report, "Summary: 2 missing, 2 unexpected, 1 resized")
}
