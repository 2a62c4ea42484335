// Package rendering projects resume documents into template-specific render trees and HTML pages.
package rendering

import "fmt"

// TemplateError is returned when the HTML page for a layout cannot be parsed or executed
type TemplateError struct {
	Layout string
	Stage  string // "parse" or "execute"
	Cause  error
}

func (e *TemplateError) Error() string {
	if e.Layout == "" {
		return fmt.Sprintf("page template %s failed: %v", e.Stage, e.Cause)
	}
	return fmt.Sprintf("page template %s failed for %s layout: %v", e.Stage, e.Layout, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
