package sessioncmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-composer/internal/commands"
	"github.com/goliatone/go-composer/internal/logging"
	"github.com/goliatone/go-composer/internal/session"
	"github.com/goliatone/go-composer/pkg/interfaces"
	command "github.com/goliatone/go-command"
	"github.com/google/uuid"
)

const (
	addSectionOperation       = "session.add_section"
	deleteSectionOperation    = "session.delete_section"
	duplicateSectionOperation = "session.duplicate_section"
	reorderSectionsOperation  = "session.reorder_sections"
	dragEndOperation          = "session.drag_end"
	updateContentOperation    = "session.update_content"
	undoOperation             = "session.undo"
	redoOperation             = "session.redo"
	selectSectionOperation    = "session.select_section"
	saveLayoutOperation       = "session.save_layout"
)

// ErrLocatorRequired is returned when handlers are built without a session locator.
var ErrLocatorRequired = errors.New("session command: locator is nil")

// Locator resolves the open session for a page. *session.Registry satisfies it.
type Locator interface {
	Lookup(pageKey string) (*session.Session, error)
}

var (
	_ command.Commander[AddSectionCommand]       = (*AddSectionHandler)(nil)
	_ command.Commander[DeleteSectionCommand]    = (*DeleteSectionHandler)(nil)
	_ command.Commander[DuplicateSectionCommand] = (*DuplicateSectionHandler)(nil)
	_ command.Commander[ReorderSectionsCommand]  = (*ReorderSectionsHandler)(nil)
	_ command.Commander[DragEndCommand]          = (*DragEndHandler)(nil)
	_ command.Commander[UpdateContentCommand]    = (*UpdateContentHandler)(nil)
	_ command.Commander[UndoCommand]             = (*UndoHandler)(nil)
	_ command.Commander[RedoCommand]             = (*RedoHandler)(nil)
	_ command.Commander[SelectSectionCommand]    = (*SelectSectionHandler)(nil)
	_ command.Commander[SaveLayoutCommand]       = (*SaveLayoutHandler)(nil)
)

// AddSectionHandler appends catalog templates to open sessions.
type AddSectionHandler struct {
	inner *commands.Handler[AddSectionCommand]
}

// NewAddSectionHandler creates a handler bound to the supplied locator.
func NewAddSectionHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[AddSectionCommand]) *AddSectionHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg AddSectionCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		section, err := s.AddSection(msg.TemplateID)
		if errors.Is(err, session.ErrTemplateNotFound) {
			return commands.PreconditionError(err, "template not found in catalog")
		}
		if err != nil {
			return err
		}
		baseLogger.Debug("session.command.section_added", "page_key", msg.PageKey, "section_id", section.ID.String())
		return nil
	}
	return &AddSectionHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, addSectionOperation, func(msg AddSectionCommand) map[string]any {
			return map[string]any{"page_key": msg.PageKey, "template_id": msg.TemplateID}
		}, opts)...),
	}
}

// Execute satisfies command.Commander[AddSectionCommand].
func (h *AddSectionHandler) Execute(ctx context.Context, msg AddSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteSectionHandler removes sections from open sessions.
type DeleteSectionHandler struct {
	inner *commands.Handler[DeleteSectionCommand]
}

func NewDeleteSectionHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSectionCommand]) *DeleteSectionHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg DeleteSectionCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		if !s.DeleteSection(msg.SectionID) {
			baseLogger.Debug("session.command.section_missing", "page_key", msg.PageKey, "section_id", msg.SectionID.String())
		}
		return nil
	}
	return &DeleteSectionHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, deleteSectionOperation, func(msg DeleteSectionCommand) map[string]any {
			return sectionFields(msg.PageKey, msg.SectionID)
		}, opts)...),
	}
}

// Execute satisfies command.Commander[DeleteSectionCommand].
func (h *DeleteSectionHandler) Execute(ctx context.Context, msg DeleteSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DuplicateSectionHandler copies sections within open sessions.
type DuplicateSectionHandler struct {
	inner *commands.Handler[DuplicateSectionCommand]
}

func NewDuplicateSectionHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[DuplicateSectionCommand]) *DuplicateSectionHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg DuplicateSectionCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		copied, ok := s.DuplicateSection(msg.SectionID)
		if !ok {
			baseLogger.Debug("session.command.section_missing", "page_key", msg.PageKey, "section_id", msg.SectionID.String())
			return nil
		}
		baseLogger.Debug("session.command.section_duplicated", "page_key", msg.PageKey, "copy_id", copied.ID.String())
		return nil
	}
	return &DuplicateSectionHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, duplicateSectionOperation, func(msg DuplicateSectionCommand) map[string]any {
			return sectionFields(msg.PageKey, msg.SectionID)
		}, opts)...),
	}
}

// Execute satisfies command.Commander[DuplicateSectionCommand].
func (h *DuplicateSectionHandler) Execute(ctx context.Context, msg DuplicateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReorderSectionsHandler applies full order sequences to open sessions.
type ReorderSectionsHandler struct {
	inner *commands.Handler[ReorderSectionsCommand]
}

func NewReorderSectionsHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderSectionsCommand]) *ReorderSectionsHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg ReorderSectionsCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		return reorderError(s.Reorder(msg.SectionIDs))
	}
	return &ReorderSectionsHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, reorderSectionsOperation, func(msg ReorderSectionsCommand) map[string]any {
			return map[string]any{"page_key": msg.PageKey, "count": len(msg.SectionIDs)}
		}, opts)...),
	}
}

// Execute satisfies command.Commander[ReorderSectionsCommand].
func (h *ReorderSectionsHandler) Execute(ctx context.Context, msg ReorderSectionsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DragEndHandler completes drag gestures against open sessions.
type DragEndHandler struct {
	inner *commands.Handler[DragEndCommand]
}

func NewDragEndHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[DragEndCommand]) *DragEndHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg DragEndCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		_, err = s.DragEnd(msg.SectionID, msg.TargetIndex)
		return reorderError(err)
	}
	return &DragEndHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, dragEndOperation, func(msg DragEndCommand) map[string]any {
			fields := sectionFields(msg.PageKey, msg.SectionID)
			fields["target_index"] = msg.TargetIndex
			return fields
		}, opts)...),
	}
}

// Execute satisfies command.Commander[DragEndCommand].
func (h *DragEndHandler) Execute(ctx context.Context, msg DragEndCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateContentHandler merges content edits into open sessions.
type UpdateContentHandler struct {
	inner *commands.Handler[UpdateContentCommand]
}

func NewUpdateContentHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateContentCommand]) *UpdateContentHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg UpdateContentCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		if !s.UpdateContent(msg.SectionID, msg.Content) {
			baseLogger.Debug("session.command.section_missing", "page_key", msg.PageKey, "section_id", msg.SectionID.String())
		}
		return nil
	}
	return &UpdateContentHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, updateContentOperation, func(msg UpdateContentCommand) map[string]any {
			fields := sectionFields(msg.PageKey, msg.SectionID)
			fields["keys"] = len(msg.Content)
			return fields
		}, opts)...),
	}
}

// Execute satisfies command.Commander[UpdateContentCommand].
func (h *UpdateContentHandler) Execute(ctx context.Context, msg UpdateContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UndoHandler steps open sessions back through their history. Undo at the
// start of history is a no-op.
type UndoHandler struct {
	inner *commands.Handler[UndoCommand]
}

func NewUndoHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[UndoCommand]) *UndoHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg UndoCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		if !s.Undo() {
			baseLogger.Debug("session.command.history_exhausted", "page_key", msg.PageKey, "direction", "undo")
		}
		return nil
	}
	return &UndoHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, undoOperation, pageFields[UndoCommand], opts)...),
	}
}

// Execute satisfies command.Commander[UndoCommand].
func (h *UndoHandler) Execute(ctx context.Context, msg UndoCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RedoHandler steps open sessions forward through their history.
type RedoHandler struct {
	inner *commands.Handler[RedoCommand]
}

func NewRedoHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[RedoCommand]) *RedoHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg RedoCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		if !s.Redo() {
			baseLogger.Debug("session.command.history_exhausted", "page_key", msg.PageKey, "direction", "redo")
		}
		return nil
	}
	return &RedoHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, redoOperation, pageFields[RedoCommand], opts)...),
	}
}

// Execute satisfies command.Commander[RedoCommand].
func (h *RedoHandler) Execute(ctx context.Context, msg RedoCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SelectSectionHandler changes the selected section of open sessions.
type SelectSectionHandler struct {
	inner *commands.Handler[SelectSectionCommand]
}

func NewSelectSectionHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[SelectSectionCommand]) *SelectSectionHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg SelectSectionCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		s.SelectSection(msg.SectionID)
		return nil
	}
	return &SelectSectionHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, selectSectionOperation, func(msg SelectSectionCommand) map[string]any {
			fields := map[string]any{"page_key": msg.PageKey}
			if msg.SectionID != nil {
				fields["section_id"] = msg.SectionID.String()
			}
			return fields
		}, opts)...),
	}
}

// Execute satisfies command.Commander[SelectSectionCommand].
func (h *SelectSectionHandler) Execute(ctx context.Context, msg SelectSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SaveLayoutHandler persists open sessions through their configured persister.
type SaveLayoutHandler struct {
	inner *commands.Handler[SaveLayoutCommand]
}

func NewSaveLayoutHandler(locator Locator, logger interfaces.Logger, opts ...commands.HandlerOption[SaveLayoutCommand]) *SaveLayoutHandler {
	baseLogger := commands.EnsureLogger(logger)
	exec := func(ctx context.Context, msg SaveLayoutCommand) error {
		s, err := lookup(ctx, locator, msg.PageKey)
		if err != nil {
			return err
		}
		layout, err := s.Save(ctx)
		if errors.Is(err, session.ErrPersisterRequired) {
			return commands.PreconditionError(err, "session has no persister")
		}
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"page_key": layout.PageKey,
			"revision": layout.Revision,
			"sections": len(layout.Sections),
		}).Info("session.command.layout_saved")
		return nil
	}
	return &SaveLayoutHandler{
		inner: commands.NewHandler(exec, handlerOptions(baseLogger, saveLayoutOperation, pageFields[SaveLayoutCommand], opts)...),
	}
}

// Execute satisfies command.Commander[SaveLayoutCommand].
func (h *SaveLayoutHandler) Execute(ctx context.Context, msg SaveLayoutCommand) error {
	return h.inner.Execute(ctx, msg)
}

type pageMessage interface {
	command.Message
	page() string
}

func (cmd UndoCommand) page() string       { return cmd.PageKey }
func (cmd RedoCommand) page() string       { return cmd.PageKey }
func (cmd SaveLayoutCommand) page() string { return cmd.PageKey }

func pageFields[T pageMessage](msg T) map[string]any {
	return map[string]any{"page_key": msg.page()}
}

func sectionFields(pageKey string, id uuid.UUID) map[string]any {
	return map[string]any{"page_key": pageKey, "section_id": id.String()}
}

func handlerOptions[T command.Message](logger interfaces.Logger, operation string, fields func(T) map[string]any, extra []commands.HandlerOption[T]) []commands.HandlerOption[T] {
	opts := []commands.HandlerOption[T]{
		commands.WithLogger[T](logger),
		commands.WithOperation[T](operation),
		commands.WithMessageFields(fields),
		commands.WithTelemetry(commands.DefaultTelemetry[T](logger)),
	}
	return append(opts, extra...)
}

func lookup(ctx context.Context, locator Locator, pageKey string) (*session.Session, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if locator == nil {
		return nil, ErrLocatorRequired
	}
	return locator.Lookup(pageKey)
}

func reorderError(err error) error {
	if errors.Is(err, session.ErrReorderMismatch) {
		return commands.PreconditionError(err, "reorder must name every section exactly once")
	}
	return err
}
