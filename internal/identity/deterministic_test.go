package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	first := UUID("go-composer:layout:home")
	second := UUID("go-composer:layout:home")
	if first == uuid.Nil {
		t.Fatalf("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable uuid, got %s and %s", first, second)
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if got := UUID("   "); got != uuid.Nil {
		t.Fatalf("expected nil uuid for blank key, got %s", got)
	}
}

func TestScopedHelpersDoNotCollide(t *testing.T) {
	layout := LayoutUUID("hero")
	template := TemplateUUID("hero")
	style := StyleUUID("hero")
	if layout == template || template == style || layout == style {
		t.Fatalf("expected distinct ids per scope")
	}
	if TemplateUUID(" Hero ") != template {
		t.Fatalf("expected template ids to ignore case and padding")
	}
}
