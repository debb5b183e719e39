package sections

import "errors"

// ErrReorderMismatch marks a reorder request whose ids are not a permutation
// of the current section ids.
var ErrReorderMismatch = errors.New("sections: reorder ids must be a permutation of the current section ids")
