package styles

import (
	"context"
	"errors"
	"maps"
)

var (
	// ErrSettingsNotFound indicates that no styles were saved for the scope yet.
	ErrSettingsNotFound = errors.New("styles: settings not found")
	ErrScopeRequired    = errors.New("styles: scope is required")
	ErrKeyRequired      = errors.New("styles: style key is required")
)

// GlobalScope is the scope used when no page specific styles apply.
const GlobalScope = "global"

// Settings are the style tokens of one scope, e.g. "color.primary" or
// "font.heading".
type Settings map[string]string

// Clone returns an independent copy.
func (s Settings) Clone() Settings {
	if s == nil {
		return Settings{}
	}
	return maps.Clone(s)
}

// Repository persists style settings per scope and emits change notifications.
type Repository interface {
	Get(ctx context.Context, scope string) (Settings, error)
	Upsert(ctx context.Context, scope string, settings Settings) (Settings, error)
	Delete(ctx context.Context, scope string) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates settings change events.
type ChangeType string

const (
	ChangeCreated ChangeType = "created"
	ChangeUpdated ChangeType = "updated"
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports settings mutations to interested subscribers.
type ChangeEvent struct {
	Type     ChangeType
	Scope    string
	Settings Settings
}

func newChangeEvent(changeType ChangeType, scope string, settings Settings) ChangeEvent {
	return ChangeEvent{
		Type:     changeType,
		Scope:    scope,
		Settings: settings.Clone(),
	}
}
