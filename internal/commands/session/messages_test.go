package sessioncmd

import (
	"testing"

	"github.com/google/uuid"
)

func TestMessagesRequirePageKey(t *testing.T) {
	id := uuid.New()
	cases := map[string]interface{ Validate() error }{
		"add":       AddSectionCommand{PageKey: " ", TemplateID: "hero"},
		"delete":    DeleteSectionCommand{SectionID: id},
		"duplicate": DuplicateSectionCommand{SectionID: id},
		"reorder":   ReorderSectionsCommand{SectionIDs: []uuid.UUID{id}},
		"drag":      DragEndCommand{SectionID: id},
		"update":    UpdateContentCommand{SectionID: id, Content: map[string]string{"title": "x"}},
		"undo":      UndoCommand{},
		"redo":      RedoCommand{},
		"select":    SelectSectionCommand{SectionID: &id},
		"save":      SaveLayoutCommand{},
	}
	for name, msg := range cases {
		if err := msg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error for missing page key", name)
		}
	}
}

func TestMessagesRequireSectionID(t *testing.T) {
	cases := map[string]interface{ Validate() error }{
		"delete":    DeleteSectionCommand{PageKey: "home"},
		"duplicate": DuplicateSectionCommand{PageKey: "home"},
		"drag":      DragEndCommand{PageKey: "home"},
		"update":    UpdateContentCommand{PageKey: "home", Content: map[string]string{"title": "x"}},
	}
	for name, msg := range cases {
		if err := msg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error for nil section id", name)
		}
	}
}

func TestAddSectionRequiresTemplateID(t *testing.T) {
	if err := (AddSectionCommand{PageKey: "home", TemplateID: "  "}).Validate(); err == nil {
		t.Fatal("expected validation error for blank template id")
	}
	if err := (AddSectionCommand{PageKey: "home", TemplateID: "hero"}).Validate(); err != nil {
		t.Fatalf("expected valid command, got %v", err)
	}
}

func TestUpdateContentRequiresContent(t *testing.T) {
	msg := UpdateContentCommand{PageKey: "home", SectionID: uuid.New()}
	if err := msg.Validate(); err == nil {
		t.Fatal("expected validation error for empty content")
	}
	msg.Content = map[string]string{"title": ""}
	if err := msg.Validate(); err != nil {
		t.Fatalf("expected empty string values to be accepted, got %v", err)
	}
}

func TestOptionalFieldsAccepted(t *testing.T) {
	if err := (SelectSectionCommand{PageKey: "home"}).Validate(); err != nil {
		t.Fatalf("nil selection should clear, got %v", err)
	}
	if err := (ReorderSectionsCommand{PageKey: "home"}).Validate(); err != nil {
		t.Fatalf("empty reorder is valid for an empty page, got %v", err)
	}
	if err := (DragEndCommand{PageKey: "home", SectionID: uuid.New(), TargetIndex: -3}).Validate(); err != nil {
		t.Fatalf("negative targets are clamped, got %v", err)
	}
}

func TestMessageTypes(t *testing.T) {
	want := map[string]string{
		AddSectionCommand{}.Type():       "composer.session.add_section",
		DeleteSectionCommand{}.Type():    "composer.session.delete_section",
		DuplicateSectionCommand{}.Type(): "composer.session.duplicate_section",
		ReorderSectionsCommand{}.Type():  "composer.session.reorder_sections",
		DragEndCommand{}.Type():          "composer.session.drag_end",
		UpdateContentCommand{}.Type():    "composer.session.update_content",
		UndoCommand{}.Type():             "composer.session.undo",
		RedoCommand{}.Type():             "composer.session.redo",
		SelectSectionCommand{}.Type():    "composer.session.select_section",
		SaveLayoutCommand{}.Type():       "composer.session.save_layout",
	}
	for got, expected := range want {
		if got != expected {
			t.Fatalf("expected %s, got %s", expected, got)
		}
	}
	if len(want) != 10 {
		t.Fatalf("expected 10 distinct message types, got %d", len(want))
	}
}
