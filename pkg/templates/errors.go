package templates

import "errors"

var (
	// ErrTemplateNotFound is returned when a template id resolves to nothing.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrDuplicateName is returned when creating or renaming a template
	// to a name that is already taken.
	ErrDuplicateName = errors.New("template name already exists")

	// ErrTemplateInactive is returned when a deactivated template is used
	// to produce a notification.
	ErrTemplateInactive = errors.New("template is deactivated")

	// ErrMissingField is returned when a required template field is empty.
	ErrMissingField = errors.New("missing required template field")
)
