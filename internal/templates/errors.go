package templates

import "errors"

var (
	ErrTemplateIDRequired  = errors.New("templates: template id is required")
	ErrTemplateNameMissing = errors.New("templates: template name is required")
	ErrDuplicateTemplate   = errors.New("templates: duplicate template id")
	ErrManifestInvalid     = errors.New("templates: catalog manifest invalid")
)
