package progress

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	defaultWidth   = 50
	renderInterval = 100 * time.Millisecond
)

// Bar renders the number of files written out of an expected total.
// All methods are safe for concurrent use.
type Bar struct {
	mu         sync.Mutex
	total      int64
	current    int64
	width      int
	writer     io.Writer
	directory  string
	lastUpdate time.Time
}

func New(total int64, writer io.Writer) *Bar {
	return &Bar{
		total:  total,
		width:  defaultWidth,
		writer: writer,
	}
}

// SetDirectory records the directory currently being populated.
func (b *Bar) SetDirectory(dir string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.directory = dir
}

func (b *Bar) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.current++

	// Throttle to reduce flickering
	now := time.Now()
	if now.Sub(b.lastUpdate) > renderInterval || b.current == b.total {
		b.lastUpdate = now
		b.render()
	}
}

func (b *Bar) Current() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.current
}

// render must be called with mu held
func (b *Bar) render() {
	if b.total <= 0 {
		return
	}

	current := min(b.current, b.total)
	filled := int(int64(b.width) * current / b.total)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)
	percent := current * 100 / b.total

	var dirDisplay string
	if b.directory != "" {
		dirDisplay = " | " + filepath.Base(b.directory)
	}

	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d)%s", bar, percent, current, b.total, dirDisplay)
}

// Finish renders the final state and ends the line.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total <= 0 {
		return
	}
	b.render()
	fmt.Fprintln(b.writer)
}
