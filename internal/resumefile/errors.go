// Package resumefile loads and saves resume documents as JSON or YAML files.
package resumefile

import "fmt"

// LoadError reports a document that could not be read, parsed, or validated
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	where := e.Path
	if where == "" {
		where = "document"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", where, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", where, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// DuplicateIDError reports an id used by more than one section, or by more
// than one item within a section
type DuplicateIDError struct {
	Scope string
	ID    string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate %s id %q", e.Scope, e.ID)
}
