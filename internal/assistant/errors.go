package assistant

import (
	"errors"
	"fmt"
)

// ErrUnknownTool is returned when the model calls a tool other than update_cv
var ErrUnknownTool = errors.New("unknown tool")

// InvocationError represents a tool invocation that was dropped because its
// arguments did not match the update_cv schema
type InvocationError struct {
	Tool    string
	Message string
	Cause   error
}

func (e *InvocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s invocation: %s: %v", e.Tool, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s invocation: %s", e.Tool, e.Message)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}
