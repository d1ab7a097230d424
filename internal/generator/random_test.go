package generator

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillRandom_OddLength(t *testing.T) {
	buf := make([]byte, 13)
	fillRandom(buf)

	// 13 zero bytes from a uniform source is vanishingly unlikely
	assert.False(t, bytes.Equal(buf, make([]byte, 13)))
}

func TestWriteRandomFile(t *testing.T) {
	for _, size := range []int64{0, 1, 7, 8, chunkSize, chunkSize + 1} {
		path := filepath.Join(t.TempDir(), "f.bin")

		require.NoError(t, writeRandomFile(path, size))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, size, info.Size(), "size=%d", size)
	}
}

func TestWriteRandomFile_MissingParent(t *testing.T) {
	err := writeRandomFile(filepath.Join(t.TempDir(), "missing", "f.bin"), 1)
	assert.Error(t, err)
}
