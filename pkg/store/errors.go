package store

import (
	"errors"
	"fmt"
)

// Standard store error types that all implementations should use.
var (
	// ErrEntityNotFound indicates no entity exists for the given identifier.
	ErrEntityNotFound = errors.New("entity not found")

	// ErrEntityAlreadyExists indicates an entity with the same identifier
	// already exists.
	ErrEntityAlreadyExists = errors.New("entity already exists")

	// ErrStaleEntity indicates the stored entity changed since the caller
	// read it; the caller should re-read and retry with fresh input.
	ErrStaleEntity = errors.New("entity modified since read")
)

// EntityError wraps entity storage errors with operation context.
type EntityError struct {
	Op       string // Operation being performed (e.g. "Save", "EntityByID")
	EntityID string
	Err      error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s operation failed for entity %s: %v", e.Op, e.EntityID, e.Err)
}

func (e *EntityError) Unwrap() error {
	return e.Err
}

func (e *EntityError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewEntityError creates a new entity error with context.
func NewEntityError(op, entityID string, err error) *EntityError {
	return &EntityError{Op: op, EntityID: entityID, Err: err}
}

// IsEntityNotFound checks if an error indicates a missing entity.
func IsEntityNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}

// IsStaleEntity checks if an error indicates a lost optimistic concurrency race.
func IsStaleEntity(err error) bool {
	return errors.Is(err, ErrStaleEntity)
}
