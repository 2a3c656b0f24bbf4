package preflight

import (
	"fmt"

	"github.com/andyballingall/deploy-preflight/internal/prompt"
)

// ErrDirtyTree is returned when the working tree has uncommitted changes.
// It matches prompt.ErrAborted so callers report it as an operator abort.
var ErrDirtyTree = fmt.Errorf("uncommitted changes in working tree: %w", prompt.ErrAborted)

// TagVerificationError is returned when the tag just created is not
// decorating HEAD.
type TagVerificationError struct {
	Expected   string
	Decoration string
}

func (e *TagVerificationError) Error() string {
	return fmt.Sprintf("git tag is missing, should have been %s", e.Expected)
}

type InvalidRequestError struct {
	Field string
	Value string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s '%s' must not contain whitespace", e.Field, e.Value)
}
