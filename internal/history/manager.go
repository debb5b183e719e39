package history

// Option configures a Manager.
type Option func(*options)

type options struct {
	limit int
}

// MinLimit is the smallest cap that still allows one undo.
const MinLimit = 2

// WithLimit caps the number of retained entries. Once exceeded, the oldest
// entries are dropped and the cursor shifts accordingly. Zero or a negative
// limit disables the cap; a limit of 1 is raised to MinLimit.
func WithLimit(limit int) Option {
	return func(o *options) {
		switch {
		case limit <= 0:
			limit = 0
		case limit < MinLimit:
			limit = MinLimit
		}
		o.limit = limit
	}
}

// Manager keeps a linear sequence of immutable snapshots and a cursor pointing
// at the one currently materialised by its consumer. Committing while the
// cursor is behind the tail discards the redo branch.
type Manager[T any] struct {
	entries []T
	cursor  int
	limit   int
}

// New returns a manager seeded with the supplied initial snapshot.
func New[T any](seed T, opts ...Option) *Manager[T] {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Manager[T]{
		entries: []T{seed},
		limit:   cfg.limit,
	}
}

// Commit records a new snapshot as the present state.
func (m *Manager[T]) Commit(snapshot T) {
	if m.cursor < len(m.entries)-1 {
		clear(m.entries[m.cursor+1:])
		m.entries = m.entries[:m.cursor+1]
	}
	m.entries = append(m.entries, snapshot)
	m.cursor = len(m.entries) - 1

	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		trimmed := make([]T, m.limit)
		copy(trimmed, m.entries[drop:])
		m.entries = trimmed
		m.cursor -= drop
	}
}

// Undo moves the cursor back one entry and returns the snapshot found there.
// At the initial state it reports false and leaves the cursor untouched.
func (m *Manager[T]) Undo() (T, bool) {
	if m.cursor <= 0 {
		var zero T
		return zero, false
	}
	m.cursor--
	return m.entries[m.cursor], true
}

// Redo moves the cursor forward one entry and returns the snapshot found there.
// At the tail it reports false and leaves the cursor untouched.
func (m *Manager[T]) Redo() (T, bool) {
	if m.cursor >= len(m.entries)-1 {
		var zero T
		return zero, false
	}
	m.cursor++
	return m.entries[m.cursor], true
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager[T]) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager[T]) CanRedo() bool {
	return m.cursor < len(m.entries)-1
}

// Current returns the snapshot at the cursor.
func (m *Manager[T]) Current() T {
	return m.entries[m.cursor]
}

// Cursor returns the index of the current snapshot.
func (m *Manager[T]) Cursor() int {
	return m.cursor
}

// Len returns the number of retained snapshots.
func (m *Manager[T]) Len() int {
	return len(m.entries)
}

// Reset discards every entry and seeds the manager again.
func (m *Manager[T]) Reset(seed T) {
	clear(m.entries)
	m.entries = []T{seed}
	m.cursor = 0
}
