package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown collection or store backend.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrCollectionUnresolved indicates no active collection is configured.
	ErrCollectionUnresolved = errors.New("active collection not configured")

	// ErrInvalidLesson indicates a malformed lesson content descriptor.
	ErrInvalidLesson = errors.New("invalid lesson content")

	// ErrFetchFailed indicates a store-level failure (I/O, permission, transport).
	ErrFetchFailed = errors.New("fetch failed")

	// ErrContentUnavailable is the single user-visible failure of a run.
	ErrContentUnavailable = errors.New("content unavailable")

	// ErrClosed indicates the consumer of a service has been torn down.
	ErrClosed = errors.New("closed")
)

// FetchError records a store failure for one document read.
type FetchError struct {
	Ref DocumentRef
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Ref.Path(), e.Err)
}

// Unwrap returns the originating store error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports ErrFetchFailed and ErrContentUnavailable as matches.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed || target == ErrContentUnavailable
}

// LessonError describes one invalid entry of a lesson descriptor.
type LessonError struct {
	// Field is the descriptor field, e.g. "terms" or "sources".
	Field string

	// Index is the position of the entry, -1 for the descriptor itself.
	Index int

	Reason string
}

func (e *LessonError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("lesson %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("lesson %s[%d]: %s", e.Field, e.Index, e.Reason)
}

// Is reports ErrInvalidLesson as a match.
func (e *LessonError) Is(target error) bool {
	return target == ErrInvalidLesson
}
