package workflow

import (
	"strings"

	"github.com/stageflow/stageflow/pkg/models"
)

// CanTransition reports whether moving fromKey -> toKey is an edge of the
// workflow graph. Self-transitions are illegal unless explicitly listed;
// there are no implicit no-op moves. Legality is a pure function of the
// definition and the two keys, so it can be tested over the full edge set
// without constructing entities.
func CanTransition(def models.WorkflowDefinition, fromKey, toKey string) bool {
	from, ok := def.State(fromKey)
	if !ok {
		return false
	}

	if _, ok := def.State(toKey); !ok {
		return false
	}

	return from.CanReach(toKey)
}

// CheckTransitionRequirements decides whether fromKey -> toKey may be applied
// with the given note. It fails with ErrIllegalTransition when the edge is
// not in the graph, and with ErrMissingNote when the target state requires a
// note and none was supplied. Whitespace-only notes count as absent.
func CheckTransitionRequirements(def models.WorkflowDefinition, fromKey, toKey, note string) error {
	if !CanTransition(def, fromKey, toKey) {
		return &TransitionError{
			Op:         "CheckTransitionRequirements",
			WorkflowID: def.ID,
			FromState:  fromKey,
			ToState:    toKey,
			Err:        ErrIllegalTransition,
		}
	}

	target, _ := def.State(toKey)
	if target.RequiresNote && strings.TrimSpace(note) == "" {
		return &TransitionError{
			Op:         "CheckTransitionRequirements",
			WorkflowID: def.ID,
			FromState:  fromKey,
			ToState:    toKey,
			Err:        ErrMissingNote,
		}
	}

	return nil
}
