package styles

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-composer/internal/identity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunRepository persists style settings using a Bun-backed database.
type BunRepository struct {
	db          *bun.DB
	broadcaster *changeBroadcaster
}

// NewBunRepository constructs a Bun-backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:          db,
		broadcaster: newChangeBroadcaster(),
	}
}

// Get returns the persisted style settings of scope.
func (r *BunRepository) Get(ctx context.Context, scope string) (Settings, error) {
	model, err := r.fetch(ctx, scope)
	if err != nil {
		return nil, err
	}
	return Settings(model.Values).Clone(), nil
}

// Upsert creates or updates the persisted style settings of scope.
func (r *BunRepository) Upsert(ctx context.Context, scope string, settings Settings) (Settings, error) {
	if r.db == nil {
		return nil, errors.New("styles: bun repository requires a database")
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil, ErrScopeRequired
	}

	_, err := r.fetch(ctx, scope)
	created := false
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			created = true
		} else {
			return nil, err
		}
	}

	model := StyleSettings{
		ID:        identity.StyleUUID(scope),
		Scope:     scope,
		Values:    settings.Clone(),
		UpdatedAt: time.Now().UTC(),
	}

	if created {
		if _, err := r.db.NewInsert().Model(&model).Exec(ctx); err != nil {
			return nil, err
		}
	} else {
		if _, err := r.db.NewUpdate().
			Model(&model).
			Column("tokens", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return nil, err
		}
	}

	stored, err := r.Get(ctx, scope)
	if err != nil {
		return nil, err
	}

	eventType := ChangeUpdated
	if created {
		eventType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(eventType, scope, stored))
	return stored, nil
}

// Delete clears persisted settings of scope.
func (r *BunRepository) Delete(ctx context.Context, scope string) error {
	model, err := r.fetch(ctx, scope)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx); err != nil {
		return err
	}
	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, model.Scope, nil))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func (r *BunRepository) fetch(ctx context.Context, scope string) (*StyleSettings, error) {
	if r.db == nil {
		return nil, errors.New("styles: bun repository requires a database")
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return nil, ErrScopeRequired
	}
	var model StyleSettings
	if err := r.db.NewSelect().Model(&model).Where("scope = ?", scope).Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &model, nil
}

// StyleSettings is the persisted row of one style scope.
type StyleSettings struct {
	bun.BaseModel `bun:"table:style_settings,alias:ss"`

	ID        uuid.UUID         `bun:",pk,type:uuid"`
	Scope     string            `bun:"scope,notnull,unique"`
	Values    map[string]string `bun:"tokens,type:jsonb"`
	UpdatedAt time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
