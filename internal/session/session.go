package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-composer/internal/history"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/render"
	"github.com/goliatone/go-composer/internal/selection"
	"github.com/goliatone/go-composer/internal/sections"
	cmslayouts "github.com/goliatone/go-composer/layouts"
	"github.com/goliatone/go-composer/pkg/interfaces"
	cmssections "github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
)

var (
	ErrCatalogRequired   = errors.New("session: template catalog is required")
	ErrTemplateNotFound  = errors.New("session: template not found")
	ErrPersisterRequired = errors.New("session: persister and page key are required to save")
	// ErrReorderMismatch is returned when a reorder does not name exactly the
	// current sections.
	ErrReorderMismatch = sections.ErrReorderMismatch
)

// Catalog supplies templates. *templates.Catalog satisfies it.
type Catalog interface {
	Get(id string) (cmssections.Template, bool)
	Search(query, category string) []cmssections.Template
}

// Persister stores and restores page section lists. The layouts service
// satisfies it.
type Persister interface {
	Save(ctx context.Context, pageKey string, snapshot cmssections.Snapshot) (*cmslayouts.Layout, error)
	Load(ctx context.Context, pageKey string) ([]cmssections.Section, error)
}

// State is the UI facing view of a session.
type State struct {
	Sections []cmssections.Section
	Resolved []render.Resolved
	CanUndo  bool
	CanRedo  bool
	Selected *uuid.UUID
	Dirty    bool
}

// Session is one editing session over a page. It owns the section store,
// the linear history of its snapshots, the selection and the renderer.
// Every mutation either commits exactly one snapshot or changes nothing.
// Closing a session without Save discards its history.
type Session struct {
	mu sync.Mutex

	catalog   Catalog
	store     *sections.Store
	history   *history.Manager[cmssections.Snapshot]
	selection *selection.Controller
	resolver  *render.Resolver
	persister Persister
	pageKey   string
	logger    interfaces.Logger
	saved     cmssections.Snapshot
}

// New opens a session over catalog.
func New(catalog Catalog, opts ...Option) (*Session, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	cfg := newConfig(opts...)

	s := &Session{
		catalog:   catalog,
		persister: cfg.persister,
		pageKey:   cfg.pageKey,
		logger:    cfg.logger,
		resolver:  cfg.resolver,
	}

	storeOpts := []sections.StoreOption{sections.WithInitial(cfg.initial)}
	if cfg.idGenerator != nil {
		storeOpts = append(storeOpts, sections.WithIDGenerator(cfg.idGenerator))
	}
	s.store = sections.NewStore(sections.RecorderFunc(func(snapshot cmssections.Snapshot) {
		s.history.Commit(snapshot)
	}), storeOpts...)

	seed := s.store.Snapshot()
	s.history = history.New(seed, history.WithLimit(cfg.historyLimit))
	s.saved = seed
	s.selection = selection.NewController(s.store, selection.WithSelectOnDuplicate(cfg.selectOnDuplicate))

	s.logger.Debug("session.opened", "page_key", s.pageKey, "sections", seed.Len())
	return s, nil
}

// Load opens a session seeded with the sections persister holds for pageKey.
func Load(ctx context.Context, catalog Catalog, persister Persister, pageKey string, opts ...Option) (*Session, error) {
	if persister == nil {
		return nil, ErrPersisterRequired
	}
	list, err := persister.Load(ctx, pageKey)
	if err != nil {
		return nil, fmt.Errorf("session: load %q: %w", pageKey, err)
	}
	opts = append(opts, WithInitialSections(list), WithPersister(persister, pageKey))
	return New(catalog, opts...)
}

// PageKey returns the page the session saves to.
func (s *Session) PageKey() string {
	return s.pageKey
}

// AddSection appends a section created from the catalog template id.
func (s *Session) AddSection(templateID string) (cmssections.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tpl, ok := s.catalog.Get(templateID)
	if !ok {
		return cmssections.Section{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
	}
	section := s.store.Add(tpl)
	s.log(section.ID, "add").Debug("session.section.added", "template_id", tpl.ID, "order", section.Order)
	return section, nil
}

// DeleteSection removes the section. Unknown ids are ignored.
func (s *Session) DeleteSection(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Delete(id) {
		s.log(id, "delete").Debug("session.section.missing")
		return false
	}
	s.selection.OnDeleted(id)
	s.log(id, "delete").Debug("session.section.deleted")
	return true
}

// DuplicateSection appends a copy of the section. Unknown ids are ignored.
func (s *Session) DuplicateSection(id uuid.UUID) (cmssections.Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied, ok := s.store.Duplicate(id)
	if !ok {
		s.log(id, "duplicate").Debug("session.section.missing")
		return cmssections.Section{}, false
	}
	s.selection.OnDuplicated(id, copied.ID)
	s.log(id, "duplicate").Debug("session.section.duplicated", "copy_id", copied.ID.String())
	return copied, true
}

// Reorder applies a full id sequence. ErrReorderMismatch is returned, and
// nothing changes, when ids is not a permutation of the current sections.
func (s *Session) Reorder(ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.selection.Drop(ids)
	if err != nil {
		s.log(uuid.Nil, "reorder").Debug("session.reorder.rejected", "error", err)
		return err
	}
	if changed {
		s.log(uuid.Nil, "reorder").Debug("session.sections.reordered", "count", len(ids))
	}
	return nil
}

// DragEnd moves a section to targetIndex once the drag gesture completes.
func (s *Session) DragEnd(id uuid.UUID, targetIndex int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.selection.DragEnd(id, targetIndex)
	if err != nil {
		return false, err
	}
	if changed {
		s.log(id, "drag").Debug("session.sections.reordered", "target", targetIndex)
	}
	return changed, nil
}

// UpdateContent merges partial into the section content. Unknown ids are
// ignored.
func (s *Session) UpdateContent(id uuid.UUID, partial map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.UpdateContent(id, partial) {
		s.log(id, "update").Debug("session.section.missing")
		return false
	}
	s.log(id, "update").Debug("session.content.updated", "keys", len(partial))
	return true
}

// Undo steps back one snapshot. It reports false at the start of history.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snapshot)
	s.log(uuid.Nil, "undo").Debug("session.history.undo", "cursor", s.history.Cursor())
	return true
}

// Redo steps forward one snapshot. It reports false at the end of history.
func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snapshot)
	s.log(uuid.Nil, "redo").Debug("session.history.redo", "cursor", s.history.Cursor())
	return true
}

// SelectSection selects id, or clears the selection when id is nil or
// unknown.
func (s *Session) SelectSection(id *uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Select(id)
}

// Search filters the catalog.
func (s *Session) Search(query, category string) []cmssections.Template {
	return s.catalog.Search(query, category)
}

func (s *Session) Sections() []cmssections.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Sections()
}

// Snapshot returns the snapshot at the history cursor.
func (s *Session) Snapshot() cmssections.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Snapshot()
}

// Resolve renders one section.
func (s *Session) Resolve(id uuid.UUID) (string, bool) {
	s.mu.Lock()
	section, ok := s.store.Find(id)
	s.mu.Unlock()
	if !ok {
		return "", false
	}
	return s.resolver.Resolve(section), true
}

// ResolvePage renders every section in order.
func (s *Session) ResolvePage() []render.Resolved {
	return s.resolver.ResolvePage(s.Snapshot())
}

// Unresolved lists the placeholder keys of the section that render as the
// bracketed fallback.
func (s *Session) Unresolved(id uuid.UUID) []string {
	s.mu.Lock()
	section, ok := s.store.Find(id)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	return s.resolver.Unresolved(section)
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// HistoryLen reports the number of retained snapshots.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Len()
}

// HistoryCursor reports the index of the current snapshot.
func (s *Session) HistoryCursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Cursor()
}

func (s *Session) Selected() (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Selected()
}

// Dirty reports whether the current list differs from the last saved or
// loaded one.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.store.Snapshot().Equal(s.saved)
}

// State captures everything a view needs to draw the session.
func (s *Session) State() State {
	s.mu.Lock()
	snapshot := s.store.Snapshot()
	state := State{
		Sections: snapshot.Sections(),
		CanUndo:  s.history.CanUndo(),
		CanRedo:  s.history.CanRedo(),
		Dirty:    !snapshot.Equal(s.saved),
	}
	if id, ok := s.selection.Selected(); ok {
		state.Selected = &id
	}
	s.mu.Unlock()

	state.Resolved = s.resolver.ResolvePage(snapshot)
	return state
}

// Save hands the current snapshot to the persister. History is kept, so
// undo keeps working after a save.
func (s *Session) Save(ctx context.Context) (*cmslayouts.Layout, error) {
	s.mu.Lock()
	persister, pageKey := s.persister, s.pageKey
	snapshot := s.store.Snapshot()
	s.mu.Unlock()

	if persister == nil || pageKey == "" {
		return nil, ErrPersisterRequired
	}
	layout, err := persister.Save(ctx, pageKey, snapshot)
	if err != nil {
		s.logger.Error("session.save.failed", "page_key", pageKey, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.saved = snapshot
	s.mu.Unlock()

	s.log(uuid.Nil, "save").Info("session.saved", "sections", snapshot.Len(), "revision", layout.Revision)
	return layout, nil
}

func (s *Session) restore(snapshot cmssections.Snapshot) {
	s.store.Restore(snapshot)
	if s.selection.Prune() {
		s.logger.Debug("session.selection.pruned", "page_key", s.pageKey)
	}
}

func (s *Session) log(sectionID uuid.UUID, operation string) interfaces.Logger {
	id := ""
	if sectionID != uuid.Nil {
		id = sectionID.String()
	}
	return logging.WithSessionContext(s.logger, s.pageKey, id, operation)
}
