// Package potatolog provides an in-memory log writer for zerolog, so that log
// entries can be shown inside the terminal UI instead of garbling it.
package potatolog

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LogEntry is a single log entry.
type LogEntry = map[string]any

// GlobalMemoryLogReaderWriter is a global MemoryLogReaderWriter, holding the
// most recent 1000 entries.
var GlobalMemoryLogReaderWriter = MemoryLogReaderWriter{
	mtx:   sync.Mutex{},
	log:   []LogEntry{},
	limit: 1000,
}

// MemoryLogReaderWriter is a simple in-memory log reader and writer.
// Entries past its limit (if any) are discarded oldest-first.
type MemoryLogReaderWriter struct {
	mtx   sync.Mutex
	log   []LogEntry
	limit int
}

// NewMemoryLogReaderWriter returns a log reader and writer holding at most
// limit entries; a limit <= 0 means unbounded.
func NewMemoryLogReaderWriter(limit int) *MemoryLogReaderWriter {
	return &MemoryLogReaderWriter{
		log:   []LogEntry{},
		limit: limit,
	}
}

// Write appends a log entry to the log.
func (w *MemoryLogReaderWriter) Write(p []byte) (int, error) {
	entry := LogEntry{}
	err := json.Unmarshal(p, &entry)
	if err != nil {
		return 0, fmt.Errorf("could not unmarshal log entry (err:%s) (input:'%s')", err.Error(), string(p))
	}

	w.mtx.Lock()
	defer w.mtx.Unlock()
	w.log = append(w.log, entry)
	if w.limit > 0 && len(w.log) > w.limit {
		w.log = w.log[len(w.log)-w.limit:]
	}
	return len(p), nil
}

// Get returns a copy of the log.
// The device link writes log entries from its own goroutine while the UI reads
// them, so the slice is never shared.
func (w *MemoryLogReaderWriter) Get() []LogEntry {
	w.mtx.Lock()
	defer w.mtx.Unlock()
	result := make([]LogEntry, len(w.log))
	copy(result, w.log)
	return result
}

// LogReader allows reading access to a log.
type LogReader interface {
	Get() []LogEntry
}
