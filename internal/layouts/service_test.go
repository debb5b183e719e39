package layouts

import (
	"context"
	"errors"
	"testing"
	"time"

	cmssections "github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
)

func sampleSnapshot() cmssections.Snapshot {
	hero := cmssections.Template{ID: "hero", Name: "Hero", Markup: "<h1>{{title}}</h1>", Defaults: map[string]string{"title": "Welcome"}}
	faq := cmssections.Template{ID: "faq", Name: "FAQ", Markup: "<dl>{{items}}</dl>"}
	return cmssections.NewSnapshot([]cmssections.Section{
		{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000b2"), Template: faq, Content: map[string]string{"items": "Q"}, Order: 1},
		{ID: uuid.MustParse("00000000-0000-0000-0000-0000000000b1"), Template: hero, Content: map[string]string{"title": ""}, Order: 0},
	})
}

func TestServiceSaveCreatesThenBumpsRevision(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.MustParse("00000000-0000-0000-0000-00000000a001")

	svc := NewService(NewMemoryRepository(),
		WithIDDeriver(func(string) uuid.UUID { return id }),
		WithNow(func() time.Time { return now }),
	)

	created, err := svc.Save(ctx, " Home ", sampleSnapshot())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if created.ID != id || created.PageKey != "home" || created.Revision != 1 {
		t.Fatalf("unexpected layout %+v", created)
	}
	if !created.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %s, got %s", now, created.CreatedAt)
	}
	if len(created.Sections) != 2 || created.Sections[0].TemplateID != "hero" {
		t.Fatalf("unexpected stored sections %+v", created.Sections)
	}

	updated, err := svc.Save(ctx, "home", cmssections.NewSnapshot(nil))
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if updated.Revision != 2 || len(updated.Sections) != 0 {
		t.Fatalf("expected revision 2 with no sections, got %+v", updated)
	}
}

func TestServiceLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())
	snapshot := sampleSnapshot()

	if _, err := svc.Save(ctx, "home", snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := svc.Load(ctx, "home")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cmssections.NewSnapshot(loaded).Equal(snapshot) {
		t.Fatalf("expected loaded sections to equal saved snapshot")
	}
	if value, ok := loaded[0].Content["title"]; !ok || value != "" {
		t.Fatalf("expected explicit empty override to survive, got %#v", loaded[0].Content)
	}
}

func TestServiceLoadMissingPageIsEmpty(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	loaded, err := svc.Load(context.Background(), "never-saved")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected no sections, got %d", len(loaded))
	}
}

func TestServiceValidatesPageKey(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	if _, err := svc.Save(ctx, "  ", sampleSnapshot()); !errors.Is(err, ErrPageKeyRequired) {
		t.Fatalf("expected ErrPageKeyRequired, got %v", err)
	}
	if _, err := svc.Save(ctx, "home page!", sampleSnapshot()); !errors.Is(err, ErrPageKeyInvalid) {
		t.Fatalf("expected ErrPageKeyInvalid, got %v", err)
	}
	if _, err := svc.Save(ctx, "blog/first-post", sampleSnapshot()); err != nil {
		t.Fatalf("expected nested page key to be valid, got %v", err)
	}
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository())

	if err := svc.Delete(ctx, "home"); !errors.Is(err, ErrLayoutNotFound) {
		t.Fatalf("expected ErrLayoutNotFound, got %v", err)
	}
	if _, err := svc.Save(ctx, "home", sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := svc.Delete(ctx, "home"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no layouts, got %d", len(list))
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	layout := &Layout{ID: uuid.New(), PageKey: "home", Sections: StoredSections(sampleSnapshot())}
	if _, err := repo.Create(ctx, layout); err != nil {
		t.Fatalf("create: %v", err)
	}
	layout.Sections[0].Content["title"] = "mutated"

	fetched, err := repo.GetByPageKey(ctx, "HOME")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Sections[0].Content["title"] != "" {
		t.Fatalf("expected stored copy to be isolated, got %q", fetched.Sections[0].Content["title"])
	}

	var nf *NotFoundError
	if _, err := repo.GetByID(ctx, uuid.New()); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
