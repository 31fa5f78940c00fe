package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONLRecorder appends entries as JSON lines for later analysis.
type JSONLRecorder struct {
	mu      sync.Mutex
	file    *os.File
	err     error
	skipped int
}

// NewJSONLRecorder creates/opens the target file and returns a recorder.
func NewJSONLRecorder(path string) (*JSONLRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &JSONLRecorder{file: file}, nil
}

// Record writes a single entry to the underlying JSONL file. An entry that
// cannot be encoded (NaN or infinite values) is skipped and counted. The first
// write failure is kept and reported by Err; later entries are dropped.
func (r *JSONLRecorder) Record(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil || r.err != nil {
		return
	}
	line, err := json.Marshal(e)
	if err != nil {
		r.skipped++
		return
	}
	if _, err := r.file.Write(append(line, '\n')); err != nil {
		r.err = fmt.Errorf("write journal: %w", err)
	}
}

// Skipped returns how many entries could not be encoded.
func (r *JSONLRecorder) Skipped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

// Err returns the first write error, if any.
func (r *JSONLRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Close flushes and closes the file handle.
func (r *JSONLRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
