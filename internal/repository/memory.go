package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemorySnapshots keeps section snapshots in process memory. It is used when
// Firestore is not configured and in tests.
type MemorySnapshots struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemorySnapshots returns an empty store.
func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{items: make(map[string][]byte)}
}

func (m *MemorySnapshots) Save(ctx context.Context, section string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", section, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[section] = data
	return nil
}

func (m *MemorySnapshots) Load(ctx context.Context, section string, dst any) error {
	m.mu.RLock()
	data, ok := m.items[section]
	m.mu.RUnlock()
	if !ok {
		return ErrSnapshotNotFound
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", section, err)
	}
	return nil
}
