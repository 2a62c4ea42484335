package editor

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDSource generates opaque identifiers that are never reused
type IDSource interface {
	NewID() string
}

// UUIDSource generates random UUIDv4 identifiers
type UUIDSource struct{}

// NewID returns a new random UUID string
func (UUIDSource) NewID() string {
	return uuid.NewString()
}

// SequenceSource generates prefixed, monotonically increasing identifiers.
// It is deterministic, which makes it convenient in tests and CLI fixtures.
type SequenceSource struct {
	Prefix string
	next   atomic.Uint64
}

// NewID returns the next identifier in the sequence
func (s *SequenceSource) NewID() string {
	return fmt.Sprintf("%s%d", s.Prefix, s.next.Add(1))
}
