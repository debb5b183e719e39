package layouts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type memoryRepository struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]*Layout
	byPageKey map[string]uuid.UUID
}

// NewMemoryRepository constructs an in-memory layout repository.
func NewMemoryRepository() LayoutRepository {
	return &memoryRepository{
		byID:      make(map[uuid.UUID]*Layout),
		byPageKey: make(map[string]uuid.UUID),
	}
}

func (m *memoryRepository) Create(_ context.Context, layout *Layout) (*Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneLayout(layout)
	key := NormalizePageKey(cloned.PageKey)
	cloned.PageKey = key
	m.byID[cloned.ID] = cloned
	if key != "" {
		m.byPageKey[key] = cloned.ID
	}
	return cloneLayout(cloned), nil
}

func (m *memoryRepository) Update(_ context.Context, layout *Layout) (*Layout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[layout.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "layout", Key: layout.ID.String()}
	}
	oldKey := existing.PageKey
	cloned := cloneLayout(layout)
	newKey := NormalizePageKey(cloned.PageKey)
	cloned.PageKey = newKey
	m.byID[cloned.ID] = cloned

	if oldKey != "" && oldKey != newKey {
		delete(m.byPageKey, oldKey)
	}
	if newKey != "" {
		m.byPageKey[newKey] = cloned.ID
	}
	return cloneLayout(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "layout", Key: id.String()}
	}
	return cloneLayout(record), nil
}

func (m *memoryRepository) GetByPageKey(_ context.Context, pageKey string) (*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normalized := NormalizePageKey(pageKey)
	id, ok := m.byPageKey[normalized]
	if !ok {
		return nil, &NotFoundError{Resource: "layout", Key: normalized}
	}
	return cloneLayout(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context) ([]*Layout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]*Layout, 0, len(m.byID))
	for _, record := range m.byID {
		records = append(records, cloneLayout(record))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].PageKey < records[j].PageKey
	})
	return records, nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "layout", Key: id.String()}
	}
	delete(m.byID, id)
	if record != nil && record.PageKey != "" {
		delete(m.byPageKey, record.PageKey)
	}
	return nil
}
