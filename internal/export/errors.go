// Package export turns render trees into printable A4 documents.
package export

import "fmt"

// ExportError represents a failure producing a printable document
type ExportError struct {
	Engine  string
	Message string
	Cause   error
}

func (e *ExportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error (%s): %s: %v", e.Engine, e.Message, e.Cause)
	}
	return fmt.Sprintf("export error (%s): %s", e.Engine, e.Message)
}

func (e *ExportError) Unwrap() error {
	return e.Cause
}
