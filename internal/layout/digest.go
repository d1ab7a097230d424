package layout

import (
	"encoding/hex"
	"fmt"
	"strconv"

	mt "github.com/txaty/go-merkletree"

	"treegen/internal/hash"
)

const emptyLayout = "empty-layout"

// leaf is a single layout entry as a merkle tree data block.
type leaf Entry

func (e leaf) Serialize() ([]byte, error) {
	kind := "f"
	if e.Dir {
		kind = "d"
	}
	return []byte(e.Path + "\x00" + kind + "\x00" + strconv.FormatInt(e.Size, 10)), nil
}

// Digest returns the merkle root of the layout, hex encoded. Entries are
// hashed in path order so equal layouts always produce equal digests.
func (l *Layout) Digest() (string, error) {
	entries := l.Sorted()

	switch len(entries) {
	case 0:
		return hash.Hex([]byte(emptyLayout)), nil
	case 1:
		// go-merkletree needs at least two blocks
		data, err := leaf(entries[0]).Serialize()
		if err != nil {
			return "", err
		}
		return hash.Hex(data), nil
	}

	blocks := make([]mt.DataBlock, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, leaf(e))
	}

	tree, err := mt.New(&mt.Config{
		HashFunc: hash.XXHashFunc,
		Mode:     mt.ModeTreeBuild,
	}, blocks)
	if err != nil {
		return "", fmt.Errorf("failed to build merkle tree: %w", err)
	}

	return hex.EncodeToString(tree.Root), nil
}
