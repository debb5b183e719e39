package sessioncmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const (
	addSectionMessageType       = "composer.session.add_section"
	deleteSectionMessageType    = "composer.session.delete_section"
	duplicateSectionMessageType = "composer.session.duplicate_section"
	reorderSectionsMessageType  = "composer.session.reorder_sections"
	dragEndMessageType          = "composer.session.drag_end"
	updateContentMessageType    = "composer.session.update_content"
	undoMessageType             = "composer.session.undo"
	redoMessageType             = "composer.session.redo"
	selectSectionMessageType    = "composer.session.select_section"
	saveLayoutMessageType       = "composer.session.save_layout"
)

// AddSectionCommand appends a section built from a catalog template to the
// page's open session.
type AddSectionCommand struct {
	// PageKey selects the open session.
	PageKey string `json:"page_key" yaml:"page_key"`
	// TemplateID names the catalog template to instantiate.
	TemplateID string `json:"template_id" yaml:"template_id"`
}

// Type implements command.Message.
func (AddSectionCommand) Type() string { return addSectionMessageType }

// Validate ensures the page and template are named.
func (cmd AddSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(addSectionMessageType)...),
		validation.Field(&cmd.TemplateID, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError(addSectionMessageType+".template_id_required", "template id is required")
			}
			return nil
		})),
	)
}

// DeleteSectionCommand removes a section. Unknown ids leave the page unchanged.
type DeleteSectionCommand struct {
	PageKey   string    `json:"page_key" yaml:"page_key"`
	SectionID uuid.UUID `json:"section_id" yaml:"section_id"`
}

// Type implements command.Message.
func (DeleteSectionCommand) Type() string { return deleteSectionMessageType }

func (cmd DeleteSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(deleteSectionMessageType)...),
		validation.Field(&cmd.SectionID, sectionIDRule(deleteSectionMessageType)),
	)
}

// DuplicateSectionCommand appends a copy of a section.
type DuplicateSectionCommand struct {
	PageKey   string    `json:"page_key" yaml:"page_key"`
	SectionID uuid.UUID `json:"section_id" yaml:"section_id"`
}

// Type implements command.Message.
func (DuplicateSectionCommand) Type() string { return duplicateSectionMessageType }

func (cmd DuplicateSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(duplicateSectionMessageType)...),
		validation.Field(&cmd.SectionID, sectionIDRule(duplicateSectionMessageType)),
	)
}

// ReorderSectionsCommand replaces the page order with SectionIDs, which
// must name every current section exactly once.
type ReorderSectionsCommand struct {
	PageKey    string      `json:"page_key" yaml:"page_key"`
	SectionIDs []uuid.UUID `json:"section_ids" yaml:"section_ids"`
}

// Type implements command.Message.
func (ReorderSectionsCommand) Type() string { return reorderSectionsMessageType }

func (cmd ReorderSectionsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(reorderSectionsMessageType)...),
	)
}

// DragEndCommand moves one section to TargetIndex when a drag gesture
// completes. Out of range targets are clamped.
type DragEndCommand struct {
	PageKey     string    `json:"page_key" yaml:"page_key"`
	SectionID   uuid.UUID `json:"section_id" yaml:"section_id"`
	TargetIndex int       `json:"target_index" yaml:"target_index"`
}

// Type implements command.Message.
func (DragEndCommand) Type() string { return dragEndMessageType }

func (cmd DragEndCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(dragEndMessageType)...),
		validation.Field(&cmd.SectionID, sectionIDRule(dragEndMessageType)),
	)
}

// UpdateContentCommand merges Content into a section's content map.
type UpdateContentCommand struct {
	PageKey   string            `json:"page_key" yaml:"page_key"`
	SectionID uuid.UUID         `json:"section_id" yaml:"section_id"`
	Content   map[string]string `json:"content" yaml:"content"`
}

// Type implements command.Message.
func (UpdateContentCommand) Type() string { return updateContentMessageType }

func (cmd UpdateContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(updateContentMessageType)...),
		validation.Field(&cmd.SectionID, sectionIDRule(updateContentMessageType)),
		validation.Field(&cmd.Content, validation.By(func(value any) error {
			if content, _ := value.(map[string]string); len(content) == 0 {
				return validation.NewError(updateContentMessageType+".content_required", "content is required")
			}
			return nil
		})),
	)
}

// UndoCommand steps the page history back one snapshot.
type UndoCommand struct {
	PageKey string `json:"page_key" yaml:"page_key"`
}

// Type implements command.Message.
func (UndoCommand) Type() string { return undoMessageType }

func (cmd UndoCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(undoMessageType)...),
	)
}

// RedoCommand steps the page history forward one snapshot.
type RedoCommand struct {
	PageKey string `json:"page_key" yaml:"page_key"`
}

// Type implements command.Message.
func (RedoCommand) Type() string { return redoMessageType }

func (cmd RedoCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(redoMessageType)...),
	)
}

// SelectSectionCommand selects a section. A nil SectionID clears the
// selection.
type SelectSectionCommand struct {
	PageKey   string     `json:"page_key" yaml:"page_key"`
	SectionID *uuid.UUID `json:"section_id,omitempty" yaml:"section_id,omitempty"`
}

// Type implements command.Message.
func (SelectSectionCommand) Type() string { return selectSectionMessageType }

func (cmd SelectSectionCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(selectSectionMessageType)...),
	)
}

// SaveLayoutCommand persists the current sections of the page.
type SaveLayoutCommand struct {
	PageKey string `json:"page_key" yaml:"page_key"`
}

// Type implements command.Message.
func (SaveLayoutCommand) Type() string { return saveLayoutMessageType }

func (cmd SaveLayoutCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.PageKey, pageKeyRules(saveLayoutMessageType)...),
	)
}

func pageKeyRules(messageType string) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError(messageType+".page_key_required", "page key is required")
			}
			return nil
		}),
	}
}

func sectionIDRule(messageType string) validation.Rule {
	return validation.By(func(value any) error {
		if id, ok := value.(uuid.UUID); !ok || id == uuid.Nil {
			return validation.NewError(messageType+".section_id_required", "section id is required")
		}
		return nil
	})
}
