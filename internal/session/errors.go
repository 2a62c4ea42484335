// Package session owns the current resume document, its revision counter,
// the assistant conversation, and the render cache derived from them.
package session

import "errors"

// ErrTurnInFlight is returned when an assistant turn is requested while another is pending
var ErrTurnInFlight = errors.New("an assistant turn is already in flight")

// ErrClosed is returned by Watch and Chat after Close
var ErrClosed = errors.New("session is closed")
