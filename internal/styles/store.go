package styles

import (
	"context"
	"errors"
	"maps"
	"strings"
	"sync"

	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/pkg/interfaces"
)

// Applier receives the full set of style tokens when a store is applied,
// typically the presentation layer's theme context.
type Applier interface {
	ApplyStyles(ctx context.Context, settings Settings) error
}

// ApplierFunc adapts a function into an Applier.
type ApplierFunc func(ctx context.Context, settings Settings) error

func (f ApplierFunc) ApplyStyles(ctx context.Context, settings Settings) error {
	if f == nil {
		return nil
	}
	return f(ctx, settings)
}

type StoreOption func(*Store)

func WithLogger(logger interfaces.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaults seeds tokens that apply until the scope overrides them.
func WithDefaults(defaults Settings) StoreOption {
	return func(s *Store) {
		s.defaults = defaults.Clone()
	}
}

// Store is the working copy of one scope's style tokens. Values change only
// in memory until Save; Apply pushes the effective tokens to an Applier.
// Style edits are not part of section history.
type Store struct {
	repo     Repository
	scope    string
	logger   interfaces.Logger
	defaults Settings

	mu     sync.RWMutex
	values Settings
	dirty  bool
}

// NewStore constructs a store for scope backed by repo.
func NewStore(repo Repository, scope string, opts ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("styles: repository is required")
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		scope = GlobalScope
	}
	s := &Store{
		repo:     repo,
		scope:    scope,
		logger:   logging.NoOp(),
		defaults: Settings{},
		values:   Settings{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// Scope returns the scope the store reads and writes.
func (s *Store) Scope() string {
	return s.scope
}

// Load replaces the working copy with the persisted settings. A scope with
// nothing saved loads as empty.
func (s *Store) Load(ctx context.Context) error {
	settings, err := s.repo.Get(ctx, s.scope)
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		return err
	}
	s.mu.Lock()
	s.values = settings.Clone()
	s.dirty = false
	count := len(s.values)
	s.mu.Unlock()

	s.logger.Debug("styles.loaded", "scope", s.scope, "count", count)
	return nil
}

// Get returns the effective value for key, falling back to the defaults.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if value, ok := s.values[key]; ok {
		return value, true
	}
	value, ok := s.defaults[key]
	return value, ok
}

// Set stores value for key in the working copy.
func (s *Store) Set(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if current, ok := s.values[key]; ok && current == value {
		return nil
	}
	s.values[key] = value
	s.dirty = true
	return nil
}

// Unset removes the override for key.
func (s *Store) Unset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Values returns the effective tokens: defaults overlaid by the working copy.
func (s *Store) Values() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.defaults.Clone()
	maps.Copy(out, s.values)
	return out
}

// Dirty reports whether the working copy differs from the last load or save.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Apply hands the effective tokens to applier.
func (s *Store) Apply(ctx context.Context, applier Applier) error {
	if applier == nil {
		return nil
	}
	values := s.Values()
	if err := applier.ApplyStyles(ctx, values); err != nil {
		s.logger.Error("styles.apply.failed", "scope", s.scope, "error", err)
		return err
	}
	s.logger.Debug("styles.applied", "scope", s.scope, "count", len(values))
	return nil
}

// Save persists the working copy overrides.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	values := s.values.Clone()
	s.mu.RUnlock()

	stored, err := s.repo.Upsert(ctx, s.scope, values)
	if err != nil {
		s.logger.Error("styles.save.failed", "scope", s.scope, "error", err)
		return err
	}

	s.mu.Lock()
	s.values = stored.Clone()
	s.dirty = false
	s.mu.Unlock()

	s.logger.Info("styles.saved", "scope", s.scope, "count", len(stored))
	return nil
}
