package selection

import (
	"slices"

	"github.com/google/uuid"
)

// Source is the section list the controller reads and reorders.
type Source interface {
	IDs() []uuid.UUID
	Reorder(ids []uuid.UUID) error
}

type ControllerOption func(*Controller)

// WithSelectOnDuplicate controls whether duplicating the selected section
// moves the selection to the copy. Enabled by default.
func WithSelectOnDuplicate(enabled bool) ControllerOption {
	return func(c *Controller) {
		c.selectOnDuplicate = enabled
	}
}

// Controller translates pointer events into store calls and tracks the single
// selected section. Drag frames are never forwarded; only the final drop
// reaches the store, and only when it changes the order.
type Controller struct {
	source            Source
	selected          uuid.UUID
	hasSelection      bool
	selectOnDuplicate bool
}

func NewController(source Source, opts ...ControllerOption) *Controller {
	c := &Controller{
		source:            source,
		selectOnDuplicate: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Selected returns the selected section id, if any.
func (c *Controller) Selected() (uuid.UUID, bool) {
	return c.selected, c.hasSelection
}

// Select marks id as selected. A nil id, or an id that is not in the source,
// clears the selection. It reports whether a section is selected afterwards.
func (c *Controller) Select(id *uuid.UUID) bool {
	if id == nil {
		c.Clear()
		return false
	}
	return c.SelectID(*id)
}

func (c *Controller) SelectID(id uuid.UUID) bool {
	if !slices.Contains(c.source.IDs(), id) {
		c.Clear()
		return false
	}
	c.selected = id
	c.hasSelection = true
	return true
}

func (c *Controller) Clear() {
	c.selected = uuid.Nil
	c.hasSelection = false
}

// DragEnd moves sourceID to targetIndex, clamped into range, and issues a
// single reorder. It reports false without touching the source when the id
// is unknown or the resulting sequence equals the current one.
func (c *Controller) DragEnd(sourceID uuid.UUID, targetIndex int) (bool, error) {
	current := c.source.IDs()
	from := slices.Index(current, sourceID)
	if from < 0 {
		return false, nil
	}
	next := Move(current, from, targetIndex)
	return c.apply(current, next)
}

// Drop issues a reorder for a precomputed full id sequence, skipping the call
// when the sequence does not change the order.
func (c *Controller) Drop(ids []uuid.UUID) (bool, error) {
	return c.apply(c.source.IDs(), ids)
}

// OnDeleted clears the selection when the deleted section was selected.
func (c *Controller) OnDeleted(id uuid.UUID) {
	if c.hasSelection && c.selected == id {
		c.Clear()
	}
}

// OnDuplicated moves the selection from source to its copy when the source
// was selected.
func (c *Controller) OnDuplicated(source, duplicate uuid.UUID) {
	if !c.selectOnDuplicate {
		return
	}
	if c.hasSelection && c.selected == source {
		c.selected = duplicate
	}
}

// Prune clears a selection whose section no longer exists, as happens after
// undo or redo swaps the whole list.
func (c *Controller) Prune() bool {
	if !c.hasSelection {
		return false
	}
	if slices.Contains(c.source.IDs(), c.selected) {
		return false
	}
	c.Clear()
	return true
}

func (c *Controller) apply(current, next []uuid.UUID) (bool, error) {
	if slices.Equal(current, next) {
		return false, nil
	}
	if err := c.source.Reorder(next); err != nil {
		return false, err
	}
	return true, nil
}

// Move returns a copy of ids with the element at from relocated to to. The
// target index is clamped into range.
func Move(ids []uuid.UUID, from, to int) []uuid.UUID {
	out := slices.Clone(ids)
	if from < 0 || from >= len(out) {
		return out
	}
	if to < 0 {
		to = 0
	}
	if to >= len(out) {
		to = len(out) - 1
	}
	if from == to {
		return out
	}
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, moved)
}
