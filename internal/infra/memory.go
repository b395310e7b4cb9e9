package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps JSON documents in process. Used for local runs and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, collection, id string, dest any) error {
	m.mu.RLock()
	data, ok := m.docs[collection][id]
	m.mu.RUnlock()
	if !ok {
		return ErrDocumentNotFound
	}
	return json.Unmarshal(data, dest)
}

func (m *MemoryStore) Set(_ context.Context, collection, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string][]byte)
	}
	m.docs[collection][id] = data
	return nil
}

func (m *MemoryStore) List(_ context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.docs[collection]))
	for id := range m.docs[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]Snapshot, 0, len(ids))
	for _, id := range ids {
		data := m.docs[collection][id]
		ok, err := matches(data, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, jsonSnapshot{id: id, data: data})
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error { return nil }

func matches(data []byte, filters []Filter) (bool, error) {
	if len(filters) == 0 {
		return true, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, err
	}
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok || fmt.Sprint(v) != f.Value {
			return false, nil
		}
	}
	return true, nil
}
