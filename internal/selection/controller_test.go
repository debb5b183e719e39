package selection_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/goliatone/go-composer/internal/selection"
	"github.com/google/uuid"
)

type fakeSource struct {
	ids      []uuid.UUID
	reorders [][]uuid.UUID
	err      error
}

func (f *fakeSource) IDs() []uuid.UUID {
	return slices.Clone(f.ids)
}

func (f *fakeSource) Reorder(ids []uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.reorders = append(f.reorders, slices.Clone(ids))
	f.ids = slices.Clone(ids)
	return nil
}

func newSource(n int) *fakeSource {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.New()
	}
	return &fakeSource{ids: ids}
}

func TestDragEndReordersOnce(t *testing.T) {
	src := newSource(3)
	a, b, c := src.ids[0], src.ids[1], src.ids[2]
	ctrl := selection.NewController(src)

	changed, err := ctrl.DragEnd(c, 0)
	if err != nil || !changed {
		t.Fatalf("expected reorder, got changed=%v err=%v", changed, err)
	}
	if len(src.reorders) != 1 {
		t.Fatalf("expected exactly one reorder call, got %d", len(src.reorders))
	}
	if !slices.Equal(src.reorders[0], []uuid.UUID{c, a, b}) {
		t.Fatalf("unexpected sequence %v", src.reorders[0])
	}
}

func TestDragEndOntoOwnPositionIsNoop(t *testing.T) {
	src := newSource(3)
	ctrl := selection.NewController(src)

	changed, err := ctrl.DragEnd(src.ids[1], 1)
	if err != nil || changed {
		t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
	}
	if len(src.reorders) != 0 {
		t.Fatalf("expected no reorder calls, got %d", len(src.reorders))
	}
}

func TestDragEndClampsTarget(t *testing.T) {
	src := newSource(3)
	a, b, c := src.ids[0], src.ids[1], src.ids[2]
	ctrl := selection.NewController(src)

	if _, err := ctrl.DragEnd(a, 99); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if !slices.Equal(src.ids, []uuid.UUID{b, c, a}) {
		t.Fatalf("expected source moved to end, got %v", src.ids)
	}

	if _, err := ctrl.DragEnd(a, -4); err != nil {
		t.Fatalf("DragEnd: %v", err)
	}
	if !slices.Equal(src.ids, []uuid.UUID{a, b, c}) {
		t.Fatalf("expected source moved to start, got %v", src.ids)
	}
}

func TestDragEndUnknownSource(t *testing.T) {
	src := newSource(2)
	ctrl := selection.NewController(src)

	changed, err := ctrl.DragEnd(uuid.New(), 0)
	if err != nil || changed || len(src.reorders) != 0 {
		t.Fatalf("expected unknown source to be ignored")
	}
}

func TestDropPropagatesReorderErrors(t *testing.T) {
	src := newSource(2)
	src.err = errors.New("mismatch")
	ctrl := selection.NewController(src)

	changed, err := ctrl.Drop([]uuid.UUID{src.ids[1], src.ids[0]})
	if err == nil || changed {
		t.Fatalf("expected error from source, got changed=%v err=%v", changed, err)
	}
	if changed, err := ctrl.Drop(src.IDs()); err != nil || changed {
		t.Fatalf("expected identical sequence to be skipped")
	}
}

func TestSelection(t *testing.T) {
	src := newSource(2)
	ctrl := selection.NewController(src)

	if !ctrl.SelectID(src.ids[0]) {
		t.Fatalf("expected selection to succeed")
	}
	if id, ok := ctrl.Selected(); !ok || id != src.ids[0] {
		t.Fatalf("unexpected selection %v %v", id, ok)
	}

	unknown := uuid.New()
	if ctrl.Select(&unknown) {
		t.Fatalf("expected unknown id to clear selection")
	}
	if _, ok := ctrl.Selected(); ok {
		t.Fatalf("expected no selection")
	}

	ctrl.SelectID(src.ids[1])
	ctrl.Select(nil)
	if _, ok := ctrl.Selected(); ok {
		t.Fatalf("expected nil select to clear")
	}
}

func TestOnDeletedClearsMatchingSelection(t *testing.T) {
	src := newSource(2)
	ctrl := selection.NewController(src)
	ctrl.SelectID(src.ids[0])

	ctrl.OnDeleted(src.ids[1])
	if _, ok := ctrl.Selected(); !ok {
		t.Fatalf("expected unrelated delete to keep selection")
	}
	ctrl.OnDeleted(src.ids[0])
	if _, ok := ctrl.Selected(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestOnDuplicated(t *testing.T) {
	src := newSource(1)
	copyID := uuid.New()
	src.ids = append(src.ids, copyID)

	ctrl := selection.NewController(src)
	ctrl.SelectID(src.ids[0])
	ctrl.OnDuplicated(src.ids[0], copyID)
	if id, _ := ctrl.Selected(); id != copyID {
		t.Fatalf("expected selection to follow the copy")
	}

	pinned := selection.NewController(src, selection.WithSelectOnDuplicate(false))
	pinned.SelectID(src.ids[0])
	pinned.OnDuplicated(src.ids[0], copyID)
	if id, _ := pinned.Selected(); id != src.ids[0] {
		t.Fatalf("expected selection to stay on the source")
	}
}

func TestPrune(t *testing.T) {
	src := newSource(2)
	ctrl := selection.NewController(src)
	ctrl.SelectID(src.ids[1])

	src.ids = src.ids[:1]
	if !ctrl.Prune() {
		t.Fatalf("expected stale selection to be pruned")
	}
	if ctrl.Prune() {
		t.Fatalf("expected second prune to be a no-op")
	}
}

func TestMove(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	got := selection.Move(ids, 0, 2)
	want := []uuid.UUID{ids[1], ids[2], ids[0], ids[3]}
	if !slices.Equal(got, want) {
		t.Fatalf("Move = %v, want %v", got, want)
	}
	if !slices.Equal(selection.Move(ids, 9, 0), ids) {
		t.Fatalf("expected out of range source to return a copy")
	}
}
