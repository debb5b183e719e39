package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// LayoutUUID identifies the persisted layout of a page.
func LayoutUUID(pageKey string) uuid.UUID {
	return UUID("go-composer:layout:" + strings.TrimSpace(pageKey))
}

// TemplateUUID identifies a catalog template across catalog reloads.
func TemplateUUID(templateID string) uuid.UUID {
	return UUID("go-composer:template:" + strings.ToLower(strings.TrimSpace(templateID)))
}

func StyleUUID(scope string) uuid.UUID {
	return UUID("go-composer:style:" + strings.ToLower(strings.TrimSpace(scope)))
}
