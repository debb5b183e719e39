package layouts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// LayoutRepository exposes persistence operations for page layouts.
type LayoutRepository interface {
	Create(ctx context.Context, layout *Layout) (*Layout, error)
	Update(ctx context.Context, layout *Layout) (*Layout, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Layout, error)
	GetByPageKey(ctx context.Context, pageKey string) (*Layout, error)
	List(ctx context.Context) ([]*Layout, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CacheInvalidator is implemented by repositories that keep a read cache.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// NotFoundError is returned when a layout cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}
