package styles

import (
	"context"
	"maps"
	"strings"
	"sync"
)

// MemoryRepository stores style settings in-memory.
type MemoryRepository struct {
	mu          sync.RWMutex
	scopes      map[string]Settings
	broadcaster *changeBroadcaster
}

// NewMemoryRepository constructs an in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		scopes:      map[string]Settings{},
		broadcaster: newChangeBroadcaster(),
	}
}

// Get returns the stored settings or ErrSettingsNotFound.
func (r *MemoryRepository) Get(_ context.Context, scope string) (Settings, error) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil, ErrScopeRequired
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	settings, ok := r.scopes[scope]
	if !ok {
		return nil, ErrSettingsNotFound
	}
	return settings.Clone(), nil
}

// Upsert stores settings, emitting a change event when they differ.
func (r *MemoryRepository) Upsert(_ context.Context, scope string, settings Settings) (Settings, error) {
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil, ErrScopeRequired
	}
	copied := settings.Clone()

	r.mu.Lock()
	previous, exists := r.scopes[scope]
	r.scopes[scope] = copied
	r.mu.Unlock()

	if exists && maps.Equal(previous, copied) {
		return copied.Clone(), nil
	}
	changeType := ChangeUpdated
	if !exists {
		changeType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(changeType, scope, copied))
	return copied.Clone(), nil
}

// Delete clears stored settings and emits a change event.
func (r *MemoryRepository) Delete(_ context.Context, scope string) error {
	scope = strings.TrimSpace(scope)
	r.mu.Lock()
	if _, ok := r.scopes[scope]; !ok {
		r.mu.Unlock()
		return ErrSettingsNotFound
	}
	delete(r.scopes, scope)
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, scope, nil))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
