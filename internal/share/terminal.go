package share

import (
	"io"
	"os"
	"sync"
)

// SyncFile is a terminal file whose writes are serialized. Hand the same
// SyncFile to the UI renderer and to Clipboard so an OSC 52 sequence lands
// between frames instead of inside one. It still exposes Fd, so terminal
// detection keeps working.
type SyncFile struct {
	*os.File
	mu sync.Mutex
}

// NewSyncFile wraps f.
func NewSyncFile(f *os.File) *SyncFile {
	return &SyncFile{File: f}
}

// Write writes p as one uninterrupted unit.
func (s *SyncFile) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.File.Write(p)
}

// WriteString writes str as one uninterrupted unit.
func (s *SyncFile) WriteString(str string) (int, error) {
	return s.Write([]byte(str))
}

// ReadFrom copies r while holding the lock.
func (s *SyncFile) ReadFrom(r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.Copy(onlyWriter{s.File}, r)
}

// onlyWriter hides ReadFrom so io.Copy does not recurse.
type onlyWriter struct {
	io.Writer
}
