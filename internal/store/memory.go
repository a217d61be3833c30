package store

import (
	"context"
	"iter"
	"maps"
	"slices"
	"sync"
	"time"
)

// Memory is a Store backed by a map. Contents vanish with the process.
type Memory struct {
	mu   sync.RWMutex
	rows map[string]Record
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{rows: make(map[string]Record)}
}

func (m *Memory) Ensure(_ context.Context, username string) (Record, error) {
	if username == "" {
		return Record{}, ErrEmptyUsername
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[username]
	if !ok {
		now := time.Now().UTC()
		rec = Record{Username: username, CreatedAt: now, UpdatedAt: now}
		m.rows[username] = rec
	}
	return rec, nil
}

func (m *Memory) Get(_ context.Context, username string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.rows[username]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (m *Memory) SetClaimed(_ context.Context, username string, claimed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.rows[username]
	if !ok {
		return ErrNotFound
	}
	rec.Claimed = claimed
	rec.UpdatedAt = time.Now().UTC()
	m.rows[username] = rec
	return nil
}

func (m *Memory) ResetAllToFree(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	now := time.Now().UTC()
	for name, rec := range m.rows {
		if rec.Claimed {
			rec.Claimed = false
			rec.UpdatedAt = now
			m.rows[name] = rec
			n++
		}
	}
	return n, nil
}

func (m *Memory) ListAll(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		m.mu.RLock()
		names := slices.Sorted(maps.Keys(m.rows))
		snapshot := make([]Record, 0, len(names))
		for _, name := range names {
			snapshot = append(snapshot, m.rows[name])
		}
		m.mu.RUnlock()

		for _, rec := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(Record{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func (m *Memory) Ping(context.Context) error { return nil }
func (m *Memory) Close() error               { return nil }
