package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidReference marks an input URL that does not resolve to a
	// video or playlist identifier. No I/O was attempted.
	ErrInvalidReference = errors.New("not a recognizable video reference")

	// ErrNotFound marks an identifier the external source has no record for.
	ErrNotFound = errors.New("video not found at source")
)

// SourceUnavailableError reports a failed fetch against the external source:
// either a transport failure (Err set) or a non-success HTTP response
// (Status and Body set).
type SourceUnavailableError struct {
	Status int
	Body   string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source unavailable: %v", e.Err)
	}
	return fmt.Sprintf("source unavailable: status %d: %s", e.Status, e.Body)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// StorageError wraps a store read or write rejection.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
