package sections

import (
	"maps"

	cmssections "github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
)

// Recorder receives a snapshot after every successful mutation.
type Recorder interface {
	Commit(snapshot Snapshot)
}

// RecorderFunc adapts a function into a Recorder.
type RecorderFunc func(snapshot Snapshot)

// Commit implements Recorder.
func (f RecorderFunc) Commit(snapshot Snapshot) {
	if f != nil {
		f(snapshot)
	}
}

type IDGenerator func() uuid.UUID

type StoreOption func(*Store)

// WithIDGenerator overrides the generator used for fresh section ids.
func WithIDGenerator(generator IDGenerator) StoreOption {
	return func(s *Store) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithInitial seeds the store with a persisted section list. Orders are
// normalised so the dense order invariant holds from the start.
func WithInitial(list []Section) StoreOption {
	return func(s *Store) {
		s.items = normalize(cmssections.NewSnapshot(list).Sections())
	}
}

// Store owns the live ordered list of sections. Every successful mutation
// produces a new snapshot and hands it to the recorder. Calls that fail or
// target a missing section leave both the list and the recorder untouched.
type Store struct {
	items    []Section
	recorder Recorder
	id       IDGenerator
}

// NewStore constructs a store reporting snapshots to recorder.
func NewStore(recorder Recorder, opts ...StoreOption) *Store {
	s := &Store{
		items:    []Section{},
		recorder: recorder,
		id:       uuid.New,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add appends a new section created from template and returns it.
func (s *Store) Add(template Template) Section {
	section := Section{
		ID:       s.id(),
		Template: template.Clone(),
		Content:  map[string]string{},
		Order:    len(s.items),
	}
	s.items = append(s.items, section)
	s.commit()
	return section.Clone()
}

// Delete removes the section with id and reports whether it existed.
func (s *Store) Delete(id uuid.UUID) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	next := make([]Section, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.items = normalize(next)
	s.commit()
	return true
}

// Duplicate appends an independent copy of the section with id.
func (s *Store) Duplicate(id uuid.UUID) (Section, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Section{}, false
	}
	source := s.items[idx]
	copied := Section{
		ID:       s.id(),
		Template: source.Template.Clone(),
		Content:  maps.Clone(source.Content),
		Order:    len(s.items),
	}
	if copied.Content == nil {
		copied.Content = map[string]string{}
	}
	s.items = append(s.items, copied)
	s.commit()
	return copied.Clone(), true
}

// Reorder assigns order by position in ids. The ids must be exactly the
// current id set; otherwise ErrReorderMismatch is returned and nothing changes.
func (s *Store) Reorder(ids []uuid.UUID) error {
	if !s.isPermutation(ids) {
		return ErrReorderMismatch
	}
	byID := make(map[uuid.UUID]Section, len(s.items))
	for _, section := range s.items {
		byID[section.ID] = section
	}
	next := make([]Section, len(ids))
	for i, id := range ids {
		section := byID[id]
		section.Order = i
		next[i] = section
	}
	s.items = next
	s.commit()
	return nil
}

// UpdateContent shallow merges partial into the section's content overrides.
// Keys absent from partial are left untouched.
func (s *Store) UpdateContent(id uuid.UUID, partial map[string]string) bool {
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	content := maps.Clone(s.items[idx].Content)
	if content == nil {
		content = map[string]string{}
	}
	maps.Copy(content, partial)
	s.items[idx].Content = content
	s.commit()
	return true
}

// Restore replaces the visible state with snapshot without recording it.
func (s *Store) Restore(snapshot Snapshot) {
	s.items = snapshot.Sections()
}

// Snapshot captures the current list.
func (s *Store) Snapshot() Snapshot {
	return cmssections.NewSnapshot(s.items)
}

// Sections returns a copy of the current list in order.
func (s *Store) Sections() []Section {
	out := make([]Section, len(s.items))
	for i, section := range s.items {
		out[i] = section.Clone()
	}
	return out
}

// IDs returns the current section ids in order.
func (s *Store) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.items))
	for i, section := range s.items {
		ids[i] = section.ID
	}
	return ids
}

// Find returns a copy of the section with id.
func (s *Store) Find(id uuid.UUID) (Section, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Section{}, false
	}
	return s.items[idx].Clone(), true
}

// Len returns the number of sections.
func (s *Store) Len() int {
	return len(s.items)
}

func (s *Store) commit() {
	if s.recorder == nil {
		return
	}
	s.recorder.Commit(cmssections.NewSnapshot(s.items))
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, section := range s.items {
		if section.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) isPermutation(ids []uuid.UUID) bool {
	if len(ids) != len(s.items) {
		return false
	}
	current := make(map[uuid.UUID]struct{}, len(s.items))
	for _, section := range s.items {
		current[section.ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := current[id]; !ok {
			return false
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

func normalize(list []Section) []Section {
	for i := range list {
		list[i].Order = i
	}
	return list
}
