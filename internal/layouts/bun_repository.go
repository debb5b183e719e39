package layouts

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const layoutNamespace = "layout"

// BunLayoutRepository implements LayoutRepository with optional caching.
type BunLayoutRepository struct {
	repo         repository.Repository[*Layout]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunLayoutRepository creates a layout repository without caching.
func NewBunLayoutRepository(db *bun.DB) *BunLayoutRepository {
	return NewBunLayoutRepositoryWithCache(db, nil, nil)
}

// NewBunLayoutRepositoryWithCache creates a layout repository with caching support.
func NewBunLayoutRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunLayoutRepository {
	base := NewLayoutRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = layoutNamespace + cache.KeySeparator
	}
	return &BunLayoutRepository{
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

func (r *BunLayoutRepository) Create(ctx context.Context, layout *Layout) (*Layout, error) {
	record, err := r.repo.Create(ctx, layout)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *BunLayoutRepository) Update(ctx context.Context, layout *Layout) (*Layout, error) {
	updated, err := r.repo.Update(ctx, layout,
		repository.UpdateByID(layout.ID.String()),
		repository.UpdateColumns(
			"page_key",
			"sections",
			"revision",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "layout", layout.ID.String())
	}
	return updated, nil
}

func (r *BunLayoutRepository) GetByID(ctx context.Context, id uuid.UUID) (*Layout, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "layout", id.String())
	}
	return record, nil
}

func (r *BunLayoutRepository) GetByPageKey(ctx context.Context, pageKey string) (*Layout, error) {
	normalized := NormalizePageKey(pageKey)
	record, err := r.repo.GetByIdentifier(ctx, normalized)
	if err != nil {
		return nil, mapRepositoryError(err, "layout", normalized)
	}
	return record, nil
}

func (r *BunLayoutRepository) List(ctx context.Context) ([]*Layout, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("page_key ASC")
	}))
	return records, err
}

func (r *BunLayoutRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.repo.Delete(ctx, &Layout{ID: id})
}

func (r *BunLayoutRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
