package workflow

import (
	"time"

	"github.com/stageflow/stageflow/pkg/models"
)

// NewEntity creates an entity positioned at initialKey, or at the workflow's
// conventional initial state (smallest order) when initialKey is empty. The
// entity starts with an empty history; creation is not a transition.
func NewEntity(def models.WorkflowDefinition, entityID, initialKey string, now time.Time) (models.WorkflowEntity, error) {
	if initialKey == "" {
		initial, err := InitialState(def)
		if err != nil {
			return models.WorkflowEntity{}, err
		}

		initialKey = initial.Key
	} else if _, ok := def.State(initialKey); !ok {
		return models.WorkflowEntity{}, &TransitionError{
			Op:         "NewEntity",
			WorkflowID: def.ID,
			EntityID:   entityID,
			ToState:    initialKey,
			Err:        ErrUnknownState,
		}
	}

	return models.WorkflowEntity{
		EntityID:     entityID,
		WorkflowID:   def.ID,
		CurrentState: initialKey,
		History:      []models.TransitionRecord{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// ApplyTransition validates and applies a single transition, returning a new
// entity value with the updated current state and one appended history
// record. The input entity is never mutated, so a failure leaves the caller's
// value untouched and the operation is all-or-nothing on the single entity.
// Serializing concurrent applies against the same stored entity is the
// host's concern, not the applier's.
func ApplyTransition(
	entity models.WorkflowEntity,
	def models.WorkflowDefinition,
	toKey, note, actor string,
	now time.Time,
) (models.WorkflowEntity, error) {
	if _, ok := def.State(entity.CurrentState); !ok {
		return models.WorkflowEntity{}, &TransitionError{
			Op:         "ApplyTransition",
			WorkflowID: def.ID,
			EntityID:   entity.EntityID,
			FromState:  entity.CurrentState,
			ToState:    toKey,
			Err:        ErrUnknownCurrentState,
		}
	}

	if err := CheckTransitionRequirements(def, entity.CurrentState, toKey, note); err != nil {
		return models.WorkflowEntity{}, err
	}

	updated := entity.Clone()
	updated.History = append(updated.History, models.TransitionRecord{
		FromState: entity.CurrentState,
		ToState:   toKey,
		Note:      note,
		Actor:     actor,
		Timestamp: now,
	})
	updated.CurrentState = toKey
	updated.UpdatedAt = now

	return updated, nil
}
