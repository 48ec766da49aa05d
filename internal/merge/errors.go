package merge

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDefaultTarget means the document has no default profile GUID.
	ErrNoDefaultTarget = errors.New("no default profile found")
	// ErrTargetNotFound means no record matches the default GUID.
	ErrTargetNotFound = errors.New("default profile not found in preferences")
	// ErrInvalidColor means a color field is not a {Red, Green, Blue} mapping.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInvalidSection means a recognized section is not a mapping.
	ErrInvalidSection = errors.New("section must be a mapping")
	// ErrNullValue means a recognized field is present but null.
	ErrNullValue = errors.New("value must not be null")
)

// FieldError ties a structural problem to its place in the profile
type FieldError struct {
	Section string
	Field   string
	Err     error
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("%s / %s: %v", e.Section, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
