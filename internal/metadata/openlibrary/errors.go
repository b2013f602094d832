package openlibrary

import (
	"errors"
	"fmt"
)

// Sentinel errors for OpenLibrary API operations.
var (
	ErrNotFound    = errors.New("openlibrary: not found")
	ErrUnavailable = errors.New("openlibrary: service unavailable")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op     string // Operation: "search", "fetchWork"
	WorkID string // If applicable
	Err    error
}

func (e *Error) Error() string {
	if e.WorkID != "" {
		return fmt.Sprintf("openlibrary %s [%s]: %v", e.Op, e.WorkID, e.Err)
	}
	return fmt.Sprintf("openlibrary %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, workID string, err error) error {
	return &Error{
		Op:     op,
		WorkID: workID,
		Err:    err,
	}
}
