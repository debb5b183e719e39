package sections_test

import (
	"testing"

	"github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
)

func TestNewSnapshotSortsAndCopies(t *testing.T) {
	first := sections.Section{ID: uuid.New(), Order: 1, Content: map[string]string{"title": "b"}}
	second := sections.Section{ID: uuid.New(), Order: 0, Content: map[string]string{"title": "a"}}

	list := []sections.Section{first, second}
	snap := sections.NewSnapshot(list)

	list[0].Content["title"] = "mutated"

	ids := snap.IDs()
	if ids[0] != second.ID || ids[1] != first.ID {
		t.Fatalf("expected snapshot sorted by order, got %v", ids)
	}
	got, ok := snap.Find(first.ID)
	if !ok {
		t.Fatal("expected section to be found")
	}
	if got.Content["title"] != "b" {
		t.Fatalf("expected snapshot isolated from caller mutation, got %q", got.Content["title"])
	}
}

func TestSnapshotSectionsReturnsDeepCopy(t *testing.T) {
	section := sections.Section{
		ID:       uuid.New(),
		Template: sections.Template{ID: "hero", Defaults: map[string]string{"title": "Welcome"}},
		Content:  map[string]string{},
	}
	snap := sections.NewSnapshot([]sections.Section{section})

	out := snap.Sections()
	out[0].Content["title"] = "changed"
	out[0].Template.Defaults["title"] = "changed"

	again := snap.Sections()
	if _, ok := again[0].Content["title"]; ok {
		t.Fatal("expected content mutation not to leak into snapshot")
	}
	if again[0].Template.Defaults["title"] != "Welcome" {
		t.Fatal("expected template mutation not to leak into snapshot")
	}
}

func TestSnapshotEqual(t *testing.T) {
	id := uuid.New()
	a := sections.NewSnapshot([]sections.Section{{ID: id, Content: map[string]string{"k": "v"}}})
	b := sections.NewSnapshot([]sections.Section{{ID: id, Content: map[string]string{"k": "v"}}})
	c := sections.NewSnapshot([]sections.Section{{ID: id, Content: map[string]string{"k": "other"}}})

	if !a.Equal(b) {
		t.Fatal("expected equal snapshots")
	}
	if a.Equal(c) {
		t.Fatal("expected snapshots with different content to differ")
	}
	if a.Equal(sections.NewSnapshot(nil)) {
		t.Fatal("expected snapshots with different lengths to differ")
	}
}
