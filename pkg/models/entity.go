package models

import "time"

// WorkflowEntity is the business object being tracked through a workflow: a
// lead, an employee exit case, an onboarding checklist. EntityID is opaque to
// the engine. History is append-only; records are never rewritten.
type WorkflowEntity struct {
	EntityID     string             `json:"entity_id"     validate:"required"`
	WorkflowID   string             `json:"workflow_id"   validate:"required"`
	CurrentState string             `json:"current_state" validate:"required"`
	History      []TransitionRecord `json:"history"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// TransitionRecord captures one applied transition. Note is required to be
// non-empty when the target state demands one; Actor is informational.
type TransitionRecord struct {
	FromState string    `json:"from_state"`
	ToState   string    `json:"to_state"`
	Note      string    `json:"note,omitempty"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Clone returns a deep copy of the entity. The applier works on copies so a
// failed transition leaves the caller's value untouched.
func (e WorkflowEntity) Clone() WorkflowEntity {
	clone := e
	clone.History = make([]TransitionRecord, len(e.History))
	copy(clone.History, e.History)

	return clone
}
