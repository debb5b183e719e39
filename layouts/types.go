package layouts

import (
	"time"

	"github.com/goliatone/go-composer/sections"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Layout is the saved section list of one page.
type Layout struct {
	bun.BaseModel `bun:"table:page_layouts,alias:pl"`

	ID        uuid.UUID       `bun:",pk,type:uuid" json:"id"`
	PageKey   string          `bun:"page_key,notnull,unique" json:"page_key"`
	Sections  []StoredSection `bun:"sections,type:jsonb,notnull" json:"sections"`
	Revision  int             `bun:"revision,notnull,default:0" json:"revision"`
	CreatedAt time.Time       `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time       `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// StoredSection is the persisted form of a section. The template travels
// with the section so a layout renders the same after the catalog changes.
type StoredSection struct {
	ID          uuid.UUID         `json:"id"`
	TemplateID  string            `json:"template_id"`
	TemplateRef uuid.UUID         `json:"template_ref"`
	Template    sections.Template `json:"template"`
	Content     map[string]string `json:"content"`
	Order       int               `json:"order"`
}

// ToSections converts stored sections back into live sections, in order.
func ToSections(stored []StoredSection) []sections.Section {
	out := make([]sections.Section, len(stored))
	for i, entry := range stored {
		out[i] = sections.Section{
			ID:       entry.ID,
			Template: entry.Template,
			Content:  entry.Content,
			Order:    entry.Order,
		}.Clone()
	}
	return sections.NewSnapshot(out).Sections()
}
