// Package services provides the host-side operations around the pure engine:
// entity creation, transition application against the store, and pipeline
// reporting reads.
package services

import (
	"errors"

	"github.com/stageflow/stageflow/pkg/registry"
	"github.com/stageflow/stageflow/pkg/store"
	"github.com/stageflow/stageflow/pkg/workflow"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrEmptyEntityID   = errors.New("entity ID cannot be empty")
	ErrEmptyWorkflowID = errors.New("workflow ID cannot be empty")
	ErrEmptyToState    = errors.New("target state cannot be empty")
	ErrInvalidStage    = errors.New("invalid stage")
)

// IsValidationError checks if an error should map to HTTP 400: malformed
// requests plus every expected transition rejection.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyEntityID) ||
		errors.Is(err, ErrEmptyWorkflowID) ||
		errors.Is(err, ErrEmptyToState) ||
		errors.Is(err, ErrInvalidStage) ||
		errors.Is(err, workflow.ErrIllegalTransition) ||
		errors.Is(err, workflow.ErrMissingNote) ||
		errors.Is(err, workflow.ErrUnknownState) ||
		errors.Is(err, workflow.ErrUnknownCurrentState) ||
		errors.Is(err, workflow.ErrInvalidDefinition)
}

// IsConflictError checks if an error should map to HTTP 409: optimistic
// concurrency losses and duplicate creations.
func IsConflictError(err error) bool {
	return errors.Is(err, store.ErrStaleEntity) ||
		errors.Is(err, store.ErrEntityAlreadyExists) ||
		errors.Is(err, registry.ErrDuplicateWorkflowID)
}

// IsNotFoundError checks if an error should map to HTTP 404.
func IsNotFoundError(err error) bool {
	return errors.Is(err, store.ErrEntityNotFound) ||
		errors.Is(err, registry.ErrWorkflowNotRegistered)
}
