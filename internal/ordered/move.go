// Package ordered provides primitives over ordered sequences where position is the only ranking.
package ordered

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when a position does not address an element of the sequence
var ErrIndexOutOfRange = errors.New("index out of range")

// Move returns a new slice with the element at from placed at to, shifting the
// elements in between by one. The input slice is never modified.
func Move[T any](s []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(s) {
		return nil, fmt.Errorf("move from %d (len %d): %w", from, len(s), ErrIndexOutOfRange)
	}
	if to < 0 || to >= len(s) {
		return nil, fmt.Errorf("move to %d (len %d): %w", to, len(s), ErrIndexOutOfRange)
	}

	out := make([]T, len(s))
	copy(out, s)
	if from == to {
		return out, nil
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved
	return out, nil
}

// Replace returns a new slice with the element at i replaced by v
func Replace[T any](s []T, i int, v T) ([]T, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("replace at %d (len %d): %w", i, len(s), ErrIndexOutOfRange)
	}
	out := make([]T, len(s))
	copy(out, s)
	out[i] = v
	return out, nil
}

// Append returns a new slice with v added at the end
func Append[T any](s []T, v T) []T {
	out := make([]T, len(s), len(s)+1)
	copy(out, s)
	return append(out, v)
}

// Remove returns a new slice without the element at i
func Remove[T any](s []T, i int) ([]T, error) {
	if i < 0 || i >= len(s) {
		return nil, fmt.Errorf("remove at %d (len %d): %w", i, len(s), ErrIndexOutOfRange)
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...), nil
}

// Filter returns the elements matching keep, preserving their relative order
func Filter[T any](s []T, keep func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
