// Package workflow implements the status-workflow engine: definition
// validation, transition legality checks, derived reporting views and the
// entity transition applier.
package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Standard engine error types. Illegal transitions and missing notes are
// anticipated outcomes, reported as values, never panics.
var (
	// ErrIllegalTransition indicates the requested edge is not part of the
	// workflow graph.
	ErrIllegalTransition = errors.New("transition not allowed")

	// ErrMissingNote indicates the target state requires a non-empty note and
	// none was supplied.
	ErrMissingNote = errors.New("a note is required for this transition")

	// ErrUnknownState indicates a state key that does not exist in the
	// definition.
	ErrUnknownState = errors.New("unknown state")

	// ErrUnknownCurrentState indicates an entity whose current state is not
	// part of its definition, usually a definition/entity version mismatch.
	ErrUnknownCurrentState = errors.New("entity current state not in definition")

	// ErrInvalidDefinition indicates a definition that failed validation.
	ErrInvalidDefinition = errors.New("invalid workflow definition")
)

// Violation codes reported by ValidateDefinition.
const (
	ViolationEmptyWorkflow     = "empty_workflow"
	ViolationDuplicateStateKey = "duplicate_state_key"
	ViolationDanglingEdge      = "dangling_transition_edge"
	ViolationDuplicateOrder    = "duplicate_order"
	ViolationInvalidStage      = "invalid_stage"
)

// Violation is a single definition problem found during validation.
type Violation struct {
	Code     string `json:"code"`
	StateKey string `json:"state_key,omitempty"`
	Detail   string `json:"detail"`
}

func (v Violation) String() string {
	if v.StateKey != "" {
		return fmt.Sprintf("%s (%s): %s", v.Code, v.StateKey, v.Detail)
	}

	return fmt.Sprintf("%s: %s", v.Code, v.Detail)
}

// DefinitionError collects every violation found in one validation pass, so a
// single call surfaces all problems at once.
type DefinitionError struct {
	DefinitionID string
	Violations   []Violation
}

func (e *DefinitionError) Error() string {
	details := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		details = append(details, v.String())
	}

	return fmt.Sprintf("workflow definition %q is invalid: %s", e.DefinitionID, strings.Join(details, "; "))
}

func (e *DefinitionError) Unwrap() error {
	return ErrInvalidDefinition
}

// TransitionError wraps transition failures with the context needed to report
// them to an end user.
type TransitionError struct {
	Op         string // Operation being performed
	WorkflowID string
	EntityID   string
	FromState  string
	ToState    string
	Err        error
}

func (e *TransitionError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s failed for entity %s (%s -> %s) in workflow %s: %v",
			e.Op, e.EntityID, e.FromState, e.ToState, e.WorkflowID, e.Err)
	}

	return fmt.Sprintf("%s failed (%s -> %s) in workflow %s: %v", e.Op, e.FromState, e.ToState, e.WorkflowID, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

func (e *TransitionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsIllegalTransition checks if an error reports an edge missing from the
// workflow graph.
func IsIllegalTransition(err error) bool {
	return errors.Is(err, ErrIllegalTransition)
}

// IsMissingNote checks if an error reports a missing required note.
func IsMissingNote(err error) bool {
	return errors.Is(err, ErrMissingNote)
}
