package sessioncmd

import (
	"time"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/pkg/interfaces"
	"github.com/goliatone/go-command/dispatcher"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the session command handlers produced by RegisterSessionCommands.
type HandlerSet struct {
	AddSection       *AddSectionHandler
	DeleteSection    *DeleteSectionHandler
	DuplicateSection *DuplicateSectionHandler
	ReorderSections  *ReorderSectionsHandler
	DragEnd          *DragEndHandler
	UpdateContent    *UpdateContentHandler
	Undo             *UndoHandler
	Redo             *RedoHandler
	SelectSection    *SelectSectionHandler
	SaveLayout       *SaveLayoutHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	timeout time.Duration
}

// WithTimeout bounds every session command. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *options) {
		cfg.timeout = timeout
	}
}

// RegisterSessionCommands builds the session command handlers and registers
// them with reg when it is non-nil.
func RegisterSessionCommands(reg CommandRegistry, locator Locator, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if locator == nil {
		return nil, ErrLocatorRequired
	}

	cfg := options{timeout: commands.DefaultCommandTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "session")

	set := &HandlerSet{
		AddSection:       NewAddSectionHandler(locator, logger, commands.WithTimeout[AddSectionCommand](cfg.timeout)),
		DeleteSection:    NewDeleteSectionHandler(locator, logger, commands.WithTimeout[DeleteSectionCommand](cfg.timeout)),
		DuplicateSection: NewDuplicateSectionHandler(locator, logger, commands.WithTimeout[DuplicateSectionCommand](cfg.timeout)),
		ReorderSections:  NewReorderSectionsHandler(locator, logger, commands.WithTimeout[ReorderSectionsCommand](cfg.timeout)),
		DragEnd:          NewDragEndHandler(locator, logger, commands.WithTimeout[DragEndCommand](cfg.timeout)),
		UpdateContent:    NewUpdateContentHandler(locator, logger, commands.WithTimeout[UpdateContentCommand](cfg.timeout)),
		Undo:             NewUndoHandler(locator, logger, commands.WithTimeout[UndoCommand](cfg.timeout)),
		Redo:             NewRedoHandler(locator, logger, commands.WithTimeout[RedoCommand](cfg.timeout)),
		SelectSection:    NewSelectSectionHandler(locator, logger, commands.WithTimeout[SelectSectionCommand](cfg.timeout)),
		SaveLayout:       NewSaveLayoutHandler(locator, logger, commands.WithTimeout[SaveLayoutCommand](cfg.timeout)),
	}

	if reg != nil {
		for _, handler := range set.handlers() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func (s *HandlerSet) handlers() []any {
	return []any{
		s.AddSection,
		s.DeleteSection,
		s.DuplicateSection,
		s.ReorderSections,
		s.DragEnd,
		s.UpdateContent,
		s.Undo,
		s.Redo,
		s.SelectSection,
		s.SaveLayout,
	}
}

type subscription interface {
	Unsubscribe()
}

// Subscribe attaches every handler in the set to the go-command dispatcher
// and returns a function that detaches them again.
func (s *HandlerSet) Subscribe() func() {
	subs := []subscription{
		dispatcher.SubscribeCommand[AddSectionCommand](s.AddSection),
		dispatcher.SubscribeCommand[DeleteSectionCommand](s.DeleteSection),
		dispatcher.SubscribeCommand[DuplicateSectionCommand](s.DuplicateSection),
		dispatcher.SubscribeCommand[ReorderSectionsCommand](s.ReorderSections),
		dispatcher.SubscribeCommand[DragEndCommand](s.DragEnd),
		dispatcher.SubscribeCommand[UpdateContentCommand](s.UpdateContent),
		dispatcher.SubscribeCommand[UndoCommand](s.Undo),
		dispatcher.SubscribeCommand[RedoCommand](s.Redo),
		dispatcher.SubscribeCommand[SelectSectionCommand](s.SelectSection),
		dispatcher.SubscribeCommand[SaveLayoutCommand](s.SaveLayout),
	}
	return func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}
}
