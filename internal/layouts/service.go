package layouts

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-composer/internal/logging"
	cmslayouts "github.com/goliatone/go-composer/layouts"
	"github.com/goliatone/go-composer/pkg/interfaces"
	cmssections "github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
)

// Service saves and restores the section list of pages. It is the
// persistence collaborator of an editing session: sessions load their
// initial list from it and hand their current snapshot back on save.
type Service interface {
	Save(ctx context.Context, pageKey string, snapshot cmssections.Snapshot) (*Layout, error)
	Load(ctx context.Context, pageKey string) ([]cmssections.Section, error)
	Get(ctx context.Context, pageKey string) (*Layout, error)
	List(ctx context.Context) ([]*Layout, error)
	Delete(ctx context.Context, pageKey string) error
}

var (
	ErrLayoutRepositoryRequired = errors.New("layouts: repository required")
	ErrPageKeyRequired          = errors.New("layouts: page key is required")
	ErrPageKeyInvalid           = errors.New("layouts: page key is invalid")
	ErrLayoutNotFound           = errors.New("layouts: layout not found")
)

// IDDeriver produces deterministic layout IDs from page keys.
type IDDeriver func(pageKey string) uuid.UUID

// ServiceOption configures service behaviour.
type ServiceOption func(*service)

// WithIDDeriver overrides layout ID derivation.
func WithIDDeriver(deriver IDDeriver) ServiceOption {
	return func(s *service) {
		if deriver != nil {
			s.id = deriver
		}
	}
}

// WithNow overrides the time source (primarily for tests).
func WithNow(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	repo   LayoutRepository
	id     IDDeriver
	now    func() time.Time
	logger interfaces.Logger
}

// NewService constructs a layout service instance.
func NewService(repo LayoutRepository, opts ...ServiceOption) Service {
	if repo == nil {
		panic(ErrLayoutRepositoryRequired)
	}

	s := &service{
		repo:   repo,
		id:     IDForPageKey,
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save stores the snapshot as the page layout, creating it on first save and
// bumping the revision on every later one.
func (s *service) Save(ctx context.Context, pageKey string, snapshot cmssections.Snapshot) (*Layout, error) {
	key, err := ValidatePageKey(pageKey)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	stored := StoredSections(snapshot)

	existing, err := s.repo.GetByPageKey(ctx, key)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	var saved *Layout
	if existing == nil {
		saved, err = s.repo.Create(ctx, &Layout{
			ID:        s.id(key),
			PageKey:   key,
			Sections:  stored,
			Revision:  1,
			CreatedAt: now,
			UpdatedAt: now,
		})
	} else {
		existing.Sections = stored
		existing.Revision++
		existing.UpdatedAt = now
		saved, err = s.repo.Update(ctx, existing)
	}
	if err != nil {
		s.logger.Error("layouts.save.failed", "page_key", key, "error", err)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("layouts.saved", "page_key", key, "revision", saved.Revision, "sections", len(stored))
	return saved, nil
}

// Load returns the saved sections of the page in order. A page that was
// never saved loads as an empty list.
func (s *service) Load(ctx context.Context, pageKey string) ([]cmssections.Section, error) {
	layout, err := s.Get(ctx, pageKey)
	if err != nil {
		if errors.Is(err, ErrLayoutNotFound) {
			return []cmssections.Section{}, nil
		}
		return nil, err
	}
	s.logger.Debug("layouts.loaded", "page_key", layout.PageKey, "revision", layout.Revision, "sections", len(layout.Sections))
	return cmslayouts.ToSections(layout.Sections), nil
}

func (s *service) Get(ctx context.Context, pageKey string) (*Layout, error) {
	key, err := ValidatePageKey(pageKey)
	if err != nil {
		return nil, err
	}
	layout, err := s.repo.GetByPageKey(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}
	return layout, nil
}

func (s *service) List(ctx context.Context) ([]*Layout, error) {
	return s.repo.List(ctx)
}

func (s *service) Delete(ctx context.Context, pageKey string) error {
	layout, err := s.Get(ctx, pageKey)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, layout.ID); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("layouts.deleted", "page_key", layout.PageKey)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	invalidator, ok := s.repo.(CacheInvalidator)
	if !ok {
		return
	}
	if err := invalidator.InvalidateCache(ctx); err != nil {
		s.logger.Warn("layouts.cache.invalidate_failed", "error", err)
	}
}

// ValidatePageKey normalizes pageKey and checks it against the page key pattern.
func ValidatePageKey(pageKey string) (string, error) {
	key := NormalizePageKey(pageKey)
	if key == "" {
		return "", ErrPageKeyRequired
	}
	if !pageKeyPattern.MatchString(key) {
		return "", ErrPageKeyInvalid
	}
	return key, nil
}

func isNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
