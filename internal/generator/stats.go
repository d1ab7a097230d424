package generator

import "sync/atomic"

// Stats counts what a build created. It is safe for concurrent use.
type Stats struct {
	dirs  atomic.Int64
	files atomic.Int64
	bytes atomic.Int64
}

func (s *Stats) Dirs() int64  { return s.dirs.Load() }
func (s *Stats) Files() int64 { return s.files.Load() }
func (s *Stats) Bytes() int64 { return s.bytes.Load() }

func (s *Stats) addDir() {
	s.dirs.Add(1)
}

func (s *Stats) addFile(size int64) {
	s.files.Add(1)
	s.bytes.Add(size)
}
