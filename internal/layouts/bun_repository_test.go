package layouts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-composer/internal/layouts"
	"github.com/goliatone/go-composer/pkg/testsupport"
	cmssections "github.com/goliatone/go-composer/sections"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
)

func snapshotFixture() cmssections.Snapshot {
	hero := cmssections.Template{ID: "hero", Name: "Hero", Category: "headers", Markup: "<h1>{{title}}</h1>", Elements: []string{"title"}, Defaults: map[string]string{"title": "Welcome"}}
	return cmssections.NewSnapshot([]cmssections.Section{
		{ID: uuid.MustParse("00000000-0000-0000-0000-00000000c001"), Template: hero, Content: map[string]string{"title": "Hello"}, Order: 0},
		{ID: uuid.MustParse("00000000-0000-0000-0000-00000000c002"), Template: hero, Content: map[string]string{}, Order: 1},
	})
}

func TestBunLayoutRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	bunDB := testsupport.NewBunDB(t, (*layouts.Layout)(nil))

	repo := layouts.NewBunLayoutRepository(bunDB)
	now := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)

	layout := &layouts.Layout{
		ID:        uuid.MustParse("00000000-0000-0000-0000-00000000d001"),
		PageKey:   "home",
		Sections:  layouts.StoredSections(snapshotFixture()),
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := repo.Create(ctx, layout)
	if err != nil {
		t.Fatalf("create layout: %v", err)
	}
	if created.ID != layout.ID {
		t.Fatalf("expected id %s, got %s", layout.ID, created.ID)
	}

	byKey, err := repo.GetByPageKey(ctx, "home")
	if err != nil {
		t.Fatalf("get by page key: %v", err)
	}
	if len(byKey.Sections) != 2 || byKey.Sections[0].Content["title"] != "Hello" {
		t.Fatalf("unexpected sections %+v", byKey.Sections)
	}
	if byKey.Sections[0].Template.Defaults["title"] != "Welcome" {
		t.Fatalf("expected template copy to persist, got %+v", byKey.Sections[0].Template)
	}

	byKey.Revision = 2
	byKey.Sections = byKey.Sections[:1]
	byKey.UpdatedAt = now.Add(time.Hour)
	if _, err := repo.Update(ctx, byKey); err != nil {
		t.Fatalf("update layout: %v", err)
	}

	byID, err := repo.GetByID(ctx, layout.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Revision != 2 || len(byID.Sections) != 1 {
		t.Fatalf("expected updated layout, got revision %d with %d sections", byID.Revision, len(byID.Sections))
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one layout, got %d", len(list))
	}

	if err := repo.Delete(ctx, layout.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var nf *layouts.NotFoundError
	if _, err := repo.GetByPageKey(ctx, "home"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}

func TestLayoutServiceWithCachedBunRepository(t *testing.T) {
	ctx := context.Background()
	bunDB := testsupport.NewBunDB(t, (*layouts.Layout)(nil))

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheSvc, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := layouts.NewBunLayoutRepositoryWithCache(bunDB, cacheSvc, keySerializer)
	svc := layouts.NewService(repo)

	snapshot := snapshotFixture()
	if _, err := svc.Save(ctx, "landing", snapshot); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := svc.Load(ctx, "landing"); err != nil {
		t.Fatalf("warm load: %v", err)
	}

	saved, err := svc.Save(ctx, "landing", snapshot)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if saved.Revision != 2 {
		t.Fatalf("expected revision 2, got %d", saved.Revision)
	}

	loaded, err := svc.Load(ctx, "landing")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cmssections.NewSnapshot(loaded).Equal(snapshot) {
		t.Fatalf("expected loaded sections to match saved snapshot")
	}
}
