package notification

import (
	"errors"
	"fmt"
)

var (
	// ErrNotificationNotFound is returned when no record exists for the
	// given (notification, recipient) pair.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrScopeNotFound is returned by Directory implementations for an
	// unknown college, branch or batch ID.
	ErrScopeNotFound = errors.New("scope not found")

	// ErrRecipientNotFound is returned by Store implementations when a
	// create addresses a user ID the directory does not know.
	ErrRecipientNotFound = errors.New("recipient not found")

	// ErrNoRecipients is returned by SendToMany for an empty recipient set.
	ErrNoRecipients = errors.New("recipient set is empty")
)

// ResolutionError means a target descriptor could not be turned into a
// recipient set. It always aborts an announcement before any record is
// written.
type ResolutionError struct {
	Scope string
	Err   error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve target %s: %v", e.Scope, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// PersistenceError means the record store rejected or failed a write. In a
// batch send it is isolated to the one recipient it occurred for.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist notification: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
