package hash

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/cespare/xxhash/v2"
)

func TestXXHashFunc(t *testing.T) {
	data := []byte("test data")

	hashBytes, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}

	if got := binary.BigEndian.Uint64(hashBytes); got != xxhash.Sum64(data) {
		t.Errorf("Expected %x, got %x", xxhash.Sum64(data), got)
	}

	// Same input should produce same output
	hashBytes2, err := XXHashFunc(data)
	if err != nil {
		t.Fatalf("XXHashFunc failed on second call: %v", err)
	}

	if hex.EncodeToString(hashBytes) != hex.EncodeToString(hashBytes2) {
		t.Error("XXHashFunc should be deterministic")
	}
}

func TestXXHashFunc_EmptyData(t *testing.T) {
	hashBytes, err := XXHashFunc([]byte{})
	if err != nil {
		t.Fatalf("XXHashFunc failed: %v", err)
	}

	if len(hashBytes) != 8 {
		t.Errorf("Expected 8 bytes, got %d", len(hashBytes))
	}
}

func TestHex(t *testing.T) {
	got := Hex([]byte("file_1_1.bin"))
	if len(got) != 16 {
		t.Errorf("Expected 16 hex characters, got %d (%q)", len(got), got)
	}

	if Hex([]byte("a")) == Hex([]byte("b")) {
		t.Error("Different inputs should produce different hashes")
	}
}
