// Package genstatus coordinates the external question-generation worker
// through a single file-backed status record. All in-process mutations are
// serialized by the Manager; across processes the record remains
// read-entire/write-entire with last-writer-wins, which the worker's polling
// contract depends on.
package genstatus

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"
)

type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateError     State = "error"
	StateStopped   State = "stopped"
)

// Record is the whole status blob; it is always read and written wholesale.
type Record struct {
	Status     State  `json:"status"`
	Total      int    `json:"total"`
	Completed  int    `json:"completed"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

func idleRecord() Record { return Record{Status: StateIdle} }

type Manager struct {
	mu   sync.Mutex
	path string
}

func NewManager(path string) (*Manager, error) {
	if path == "" {
		return nil, errors.New("empty status file path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &Manager{path: path}, nil
}

// Load returns the current record, defaulting to idle when the file is
// missing or unreadable. Unreadable files are logged, never surfaced.
func (m *Manager) Load() Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}

func (m *Manager) load() Record {
	b, err := os.ReadFile(m.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("generation status: read %s failed, defaulting to idle: %v", m.path, err)
		}
		return idleRecord()
	}
	var rec Record
	if err := json.Unmarshal(b, &rec); err != nil {
		log.Printf("generation status: malformed %s, defaulting to idle: %v", m.path, err)
		return idleRecord()
	}
	return rec
}

func (m *Manager) save(rec Record) (Record, error) {
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return Record{}, err
	}
	// Write-then-rename so a concurrent reader never sees a torn file.
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return Record{}, err
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Start replaces the record with a fresh running one.
func (m *Manager) Start(total int) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(Record{Status: StateRunning, Total: total, Message: "Generation started"})
}

// Stop marks the run stopped, preserving the prior counters.
func (m *Manager) Stop() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.load()
	rec.Status = StateStopped
	rec.Message = "Generation stopped by user"
	return m.save(rec)
}

// Reset discards all prior state.
func (m *Manager) Reset() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save(Record{Status: StateIdle, Message: "Status reset"})
}

// Progress advances the counters of a running record.
func (m *Manager) Progress(completed, successful, failed int) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.load()
	rec.Completed = completed
	rec.Successful = successful
	rec.Failed = failed
	return m.save(rec)
}

// Complete finishes the run, keeping the counters.
func (m *Manager) Complete() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.load()
	rec.Status = StateCompleted
	rec.Message = "Generation completed"
	return m.save(rec)
}

// Fail records a run-level error, keeping the counters.
func (m *Manager) Fail(msg string) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.load()
	rec.Status = StateError
	rec.Error = msg
	return m.save(rec)
}
