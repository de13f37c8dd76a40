package meta

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrInvalidKey is returned for empty meta keys.
	ErrInvalidKey = errors.New("meta: key is required")
)

// Reader reads term metadata.
type Reader interface {
	Get(ctx context.Context, termID int64, key string) (string, bool, error)
}

// Store persists term metadata keyed by (term id, meta key). Implementations
// own atomicity per key; callers issue at most one Set or Delete per key per
// save.
type Store interface {
	Reader
	Set(ctx context.Context, termID int64, key, value string) error
	Delete(ctx context.Context, termID int64, key string) error
	All(ctx context.Context, termID int64) (map[string]string, error)
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex
	terms map[int64]map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{terms: make(map[int64]map[string]string)}
}

func (m *Memory) Get(_ context.Context, termID int64, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.terms[termID][key]
	return value, ok, nil
}

func (m *Memory) Set(_ context.Context, termID int64, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.terms[termID]
	if !ok {
		entries = make(map[string]string)
		m.terms[termID] = entries
	}
	entries[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, termID int64, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries, ok := m.terms[termID]
	if !ok {
		return nil
	}
	delete(entries, key)
	if len(entries) == 0 {
		delete(m.terms, termID)
	}
	return nil
}

func (m *Memory) All(_ context.Context, termID int64) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.terms[termID]))
	for key, value := range m.terms[termID] {
		out[key] = value
	}
	return out, nil
}

// Keys returns the sorted keys of values.
func Keys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
