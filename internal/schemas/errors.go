package schemas

import (
	"fmt"
	"strings"
)

// SchemaLoadError is returned when the schema or the validated input cannot be loaded
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// FieldError is one violation at a dotted field path; the root is "(root)"
type FieldError struct {
	Field   string
	Kind    string
	Message string
}

// ValidationError lists every violation found in one input
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:", e.Schema)
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, "\n  - %s: %s", fe.Field, fe.Message)
	}
	return sb.String()
}

// Fields returns the distinct field paths with violations, in report order
func (e *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(e.Errors))
	fields := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			fields = append(fields, fe.Field)
		}
	}
	return fields
}
