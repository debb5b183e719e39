package layouts

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewLayoutRepository creates a repository for layout records.
func NewLayoutRepository(db *bun.DB) repository.Repository[*Layout] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Layout]{
		NewRecord: func() *Layout { return &Layout{} },
		GetID: func(layout *Layout) uuid.UUID {
			return layout.ID
		},
		SetID: func(layout *Layout, id uuid.UUID) {
			layout.ID = id
		},
		GetIdentifier: func() string {
			return "page_key"
		},
		GetIdentifierValue: func(layout *Layout) string {
			return layout.PageKey
		},
	})
}
