package composer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-composer"
	"github.com/goliatone/go-composer/internal/di"
	sessioncmd "github.com/goliatone/go-composer/internal/commands/session"
)

func newModule(t *testing.T, cfg composer.Config) *composer.Module {
	t.Helper()
	module, err := composer.New(cfg, di.WithTemplates([]composer.Template{
		{ID: "hero", Name: "Hero", Category: "headers", Description: "Large heading", Markup: "<h1>{{title}}</h1>", Defaults: map[string]string{"title": "Welcome"}},
		{ID: "text", Name: "Text", Category: "content", Description: "Body copy", Markup: "<p>{{body}}</p>"},
	}))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModuleOpenSessionEditsAndSaves(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, composer.DefaultConfig())

	s, err := module.OpenSession("Home")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.PageKey() != "home" {
		t.Fatalf("expected normalized page key, got %q", s.PageKey())
	}
	hero, err := s.AddSection("hero")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	s.UpdateContent(hero.ID, map[string]string{"title": "Hello"})

	layout, err := s.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if layout.Revision != 1 || len(layout.Sections) != 1 {
		t.Fatalf("unexpected layout %#v", layout)
	}

	if !module.CloseSession("home") {
		t.Fatal("expected session to close")
	}
	reopened, err := module.LoadSession(ctx, "home")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	resolved := reopened.ResolvePage()
	if len(resolved) != 1 || resolved[0].Markup != "<h1>Hello</h1>" {
		t.Fatalf("unexpected resolved page %#v", resolved)
	}
	if reopened.CanUndo() {
		t.Fatal("expected fresh history after load")
	}
}

func TestModuleRejectsDuplicateSessionsAndBadKeys(t *testing.T) {
	module := newModule(t, composer.DefaultConfig())

	if _, err := module.OpenSession("home"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := module.OpenSession("home"); !errors.Is(err, composer.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists, got %v", err)
	}
	if _, err := module.LoadSession(context.Background(), "home"); !errors.Is(err, composer.ErrSessionExists) {
		t.Fatalf("expected ErrSessionExists on load, got %v", err)
	}
	if _, err := module.OpenSession("  "); !errors.Is(err, composer.ErrPageKeyRequired) {
		t.Fatalf("expected ErrPageKeyRequired, got %v", err)
	}
	if _, err := module.OpenSession("bad key!"); !errors.Is(err, composer.ErrPageKeyInvalid) {
		t.Fatalf("expected ErrPageKeyInvalid, got %v", err)
	}
	if _, err := module.Session("missing"); !errors.Is(err, composer.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestModuleCommandsReachOpenSessions(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, composer.DefaultConfig())
	s, err := module.OpenSession("landing")
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	cmds := module.Commands()
	if err := cmds.AddSection.Execute(ctx, sessioncmd.AddSectionCommand{PageKey: "landing", TemplateID: "text"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cmds.SaveLayout.Execute(ctx, sessioncmd.SaveLayoutCommand{PageKey: "landing"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := s.Sections(); len(got) != 1 || got[0].Template.ID != "text" {
		t.Fatalf("unexpected sections %#v", got)
	}
	if s.Dirty() {
		t.Fatal("expected clean session after save command")
	}
}

func TestModuleSearchTemplates(t *testing.T) {
	module := newModule(t, composer.DefaultConfig())
	if got := module.SearchTemplates("BODY", "all"); len(got) != 1 || got[0].ID != "text" {
		t.Fatalf("unexpected search result %#v", got)
	}
	if got := module.SearchTemplates("", "headers"); len(got) != 1 || got[0].ID != "hero" {
		t.Fatalf("unexpected category result %#v", got)
	}
}

func TestModuleStylesRoundTrip(t *testing.T) {
	ctx := context.Background()
	module := newModule(t, composer.DefaultConfig())

	store, err := module.Styles(ctx, "")
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	if err := store.Set("font", "serif"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := module.Styles(ctx, "")
	if err != nil {
		t.Fatalf("styles reload: %v", err)
	}
	if v, ok := again.Get("font"); !ok || v != "serif" {
		t.Fatalf("expected persisted font, got %q %v", v, ok)
	}
}

func TestConfigValidateHistoryLimit(t *testing.T) {
	cfg := composer.DefaultConfig()
	cfg.History.Limit = 1
	if err := cfg.Validate(); !errors.Is(err, composer.ErrHistoryLimitInvalid) {
		t.Fatalf("expected ErrHistoryLimitInvalid, got %v", err)
	}
}

func TestConfigValidateCatalogPath(t *testing.T) {
	cfg := composer.DefaultConfig()
	cfg.Catalog.Source = "manifest"
	if err := cfg.Validate(); !errors.Is(err, composer.ErrCatalogPathRequired) {
		t.Fatalf("expected ErrCatalogPathRequired, got %v", err)
	}
}

func TestConfigValidatePersistenceDriver(t *testing.T) {
	cfg := composer.DefaultConfig()
	cfg.Features.Persistence = true
	cfg.Storage.Driver = "oracle"
	if err := cfg.Validate(); !errors.Is(err, composer.ErrStorageDriverUnknown) {
		t.Fatalf("expected ErrStorageDriverUnknown, got %v", err)
	}
}
