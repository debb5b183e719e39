package composer

import (
	"context"
	"errors"

	sessioncmd "github.com/goliatone/go-composer/internal/commands/session"
	"github.com/goliatone/go-composer/internal/di"
	"github.com/goliatone/go-composer/internal/layouts"
	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/internal/session"
	"github.com/goliatone/go-composer/internal/styles"
	"github.com/goliatone/go-composer/internal/templates"
	cmssections "github.com/goliatone/go-composer/sections"
)

// Template exports the catalog template value.
type Template = cmssections.Template

// Section exports the page section value.
type Section = cmssections.Section

// Catalog exports the immutable template catalog.
type Catalog = templates.Catalog

// Session exports the editing session.
type Session = session.Session

// SessionOption exports session options.
type SessionOption = session.Option

// SessionState exports the UI facing session view.
type SessionState = session.State

// Resolved exports a rendered section.
type Resolved = render.Resolved

// LayoutService exports the layout persistence contract.
type LayoutService = layouts.Service

// StyleStore exports the style settings store.
type StyleStore = styles.Store

// CommandHandlers exports the session command handler set.
type CommandHandlers = sessioncmd.HandlerSet

var (
	ErrSessionNotFound = session.ErrSessionNotFound
	ErrSessionExists   = session.ErrSessionExists
	ErrPageKeyRequired = layouts.ErrPageKeyRequired
	ErrPageKeyInvalid  = layouts.ErrPageKeyInvalid
)

// Module represents the top level composer runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a composer module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Catalog returns the template catalog loaded at start up.
func (m *Module) Catalog() *Catalog {
	return m.container.Catalog()
}

// SearchTemplates filters the catalog by query and category.
func (m *Module) SearchTemplates(query, category string) []Template {
	return m.container.Catalog().Search(query, category)
}

// Layouts returns the layout persistence service.
func (m *Module) Layouts() LayoutService {
	return m.container.LayoutService()
}

// Commands returns the session command handlers. Call Subscribe on the set
// to route go-command dispatches to them.
func (m *Module) Commands() *CommandHandlers {
	return m.container.Commands()
}

// OpenSession starts an empty editing session for pageKey.
func (m *Module) OpenSession(pageKey string, opts ...SessionOption) (*Session, error) {
	key, err := layouts.ValidatePageKey(pageKey)
	if err != nil {
		return nil, err
	}
	s, err := session.New(m.container.Catalog(), m.sessionOptions(key, opts)...)
	if err != nil {
		return nil, err
	}
	if err := m.container.Sessions().Register(key, s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSession starts an editing session seeded with the saved layout of
// pageKey. A page that was never saved opens empty.
func (m *Module) LoadSession(ctx context.Context, pageKey string, opts ...SessionOption) (*Session, error) {
	key, err := layouts.ValidatePageKey(pageKey)
	if err != nil {
		return nil, err
	}
	if _, err := m.container.Sessions().Lookup(key); err == nil {
		return nil, ErrSessionExists
	}
	s, err := session.Load(ctx, m.container.Catalog(), m.container.LayoutService(), key, m.sessionOptions(key, opts)...)
	if err != nil {
		return nil, err
	}
	if err := m.container.Sessions().Register(key, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Session returns the open session for pageKey.
func (m *Module) Session(pageKey string) (*Session, error) {
	return m.container.Sessions().Lookup(layouts.NormalizePageKey(pageKey))
}

// CloseSession discards the open session of pageKey and its history.
func (m *Module) CloseSession(pageKey string) bool {
	return m.container.Sessions().Close(layouts.NormalizePageKey(pageKey))
}

// Styles opens the style store of scope, loaded from storage.
func (m *Module) Styles(ctx context.Context, scope string) (*StyleStore, error) {
	store, err := m.container.StyleStore(scope)
	if err != nil {
		return nil, err
	}
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Close releases storage held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return errors.New("composer: module is not initialised")
	}
	return m.container.Close()
}

func (m *Module) sessionOptions(pageKey string, extra []SessionOption) []SessionOption {
	opts := m.container.SessionOptions()
	opts = append(opts, session.WithPersister(m.container.LayoutService(), pageKey))
	return append(opts, extra...)
}
