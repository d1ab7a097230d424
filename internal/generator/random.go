package generator

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"os"
)

const chunkSize = 32 * 1024 // 32KB chunks for writing

// writeRandomFile creates or truncates path and fills it with size random bytes.
func writeRandomFile(path string, size int64) (err error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	buf := make([]byte, min(size, chunkSize))
	for remaining := size; remaining > 0; {
		n := min(remaining, int64(len(buf)))
		fillRandom(buf[:n])
		if _, err := file.Write(buf[:n]); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		remaining -= n
	}

	return nil
}

// fillRandom overwrites buf with bytes from the shared, goroutine-safe
// math/rand/v2 source.
func fillRandom(buf []byte) {
	var word [8]byte
	for len(buf) >= 8 {
		binary.LittleEndian.PutUint64(buf, rand.Uint64())
		buf = buf[8:]
	}
	if len(buf) > 0 {
		binary.LittleEndian.PutUint64(word[:], rand.Uint64())
		copy(buf, word[:])
	}
}
