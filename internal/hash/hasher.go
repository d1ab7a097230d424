package hash

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// XXHashFunc is a custom hash function adapter for go-merkletree.
// It returns the xxHash of data as 8 big-endian bytes.
func XXHashFunc(data []byte) ([]byte, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, xxhash.Sum64(data))
	return buf, nil
}

// Hex returns the hex encoded xxHash of data.
func Hex(data []byte) string {
	sum, _ := XXHashFunc(data)
	return hex.EncodeToString(sum)
}
