// internal/store/memory.go
//
// Store interface for finished games, plus an in-memory implementation.
// The memory store is used when no database path is configured and in tests.
//
// Characteristics:
//   - Records keyed by ID in a map; List orders newest first.
//   - Concurrency-safe via RWMutex (the history server reads concurrently).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: not found")

// Record is one finished game and the outcome of attesting it.
// The secret itself is never stored, only its commitment.
type Record struct {
	ID          string    `json:"id"`
	WordHash    string    `json:"wordHash"`
	GuessHashes []string  `json:"guessHashes"`
	Success     bool      `json:"success"`
	FinishedAt  time.Time `json:"finishedAt"`
	Network     string    `json:"network,omitempty"`
	Height      int64     `json:"height,omitempty"`
	TxHash      string    `json:"txHash,omitempty"`
	SubmitError string    `json:"submitError,omitempty"`
}

// Attested reports whether the record carries an inclusion receipt.
func (r Record) Attested() bool { return r.TxHash != "" }

// Stats aggregates the whole history.
type Stats struct {
	Games    int `json:"games"`
	Wins     int `json:"wins"`
	Attested int `json:"attested"`
}

// Store persists game records.
type Store interface {
	// Save inserts or replaces a record.
	Save(ctx context.Context, r Record) error
	// Get retrieves a record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Record, error)
	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)
	// Stats aggregates all records.
	Stats(ctx context.Context) (Stats, error)
	Close() error
}

type memory struct {
	mu      sync.RWMutex      // guards records
	records map[string]Record // keyed by Record.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{records: make(map[string]Record)}
}

func (m *memory) Save(ctx context.Context, r Record) error {
	if r.ID == "" {
		return errors.New("store: record has no id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r.GuessHashes = append([]string(nil), r.GuessHashes...)
	m.records[r.ID] = r
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.records[id]; ok {
		return r, nil
	}
	return Record{}, ErrNotFound
}

func (m *memory) List(ctx context.Context, limit int) ([]Record, error) {
	m.mu.RLock()
	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].FinishedAt.After(out[j].FinishedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Stats(ctx context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var s Stats
	for _, r := range m.records {
		s.Games++
		if r.Success {
			s.Wins++
		}
		if r.Attested() {
			s.Attested++
		}
	}
	return s, nil
}

func (m *memory) Close() error { return nil }
