package workflow

import (
	"fmt"

	"github.com/stageflow/stageflow/pkg/models"
)

// ValidateDefinition checks a definition for structural problems: duplicate
// state keys, edges pointing at undeclared states, duplicate display orders
// and stages outside the closed set. All violations are collected into one
// DefinitionError rather than failing on the first, so a single call surfaces
// every problem for the caller to fix at once.
func ValidateDefinition(def models.WorkflowDefinition) error {
	var violations []Violation

	if len(def.States) == 0 {
		violations = append(violations, Violation{
			Code:   ViolationEmptyWorkflow,
			Detail: "workflow must declare at least one state",
		})

		return &DefinitionError{DefinitionID: def.ID, Violations: violations}
	}

	seenKeys := make(map[string]bool, len(def.States))
	seenOrders := make(map[int]string, len(def.States))

	for _, state := range def.States {
		if seenKeys[state.Key] {
			violations = append(violations, Violation{
				Code:     ViolationDuplicateStateKey,
				StateKey: state.Key,
				Detail:   fmt.Sprintf("state key %q declared more than once", state.Key),
			})
		}

		seenKeys[state.Key] = true

		if owner, taken := seenOrders[state.Order]; taken {
			violations = append(violations, Violation{
				Code:     ViolationDuplicateOrder,
				StateKey: state.Key,
				Detail:   fmt.Sprintf("order %d already used by state %q", state.Order, owner),
			})
		} else {
			seenOrders[state.Order] = state.Key
		}

		if !state.Stage.Valid() {
			violations = append(violations, Violation{
				Code:     ViolationInvalidStage,
				StateKey: state.Key,
				Detail:   fmt.Sprintf("stage %q is not one of active, success, failed, pending", state.Stage),
			})
		}
	}

	// Edge resolution runs against the full key set so forward references are
	// fine; only genuinely undeclared targets are violations.
	for _, state := range def.States {
		for _, next := range state.NextStates {
			if !seenKeys[next] {
				violations = append(violations, Violation{
					Code:     ViolationDanglingEdge,
					StateKey: state.Key,
					Detail:   fmt.Sprintf("next state %q is not declared in the workflow", next),
				})
			}
		}
	}

	if len(violations) > 0 {
		return &DefinitionError{DefinitionID: def.ID, Violations: violations}
	}

	return nil
}

// InitialState returns the conventional initial state of a definition: the
// state with the smallest order, ties broken by key ascending. The applier
// accepts an explicit override at entity creation.
func InitialState(def models.WorkflowDefinition) (models.StateNode, error) {
	sorted := AllStatesSorted(def)
	if len(sorted) == 0 {
		return models.StateNode{}, &DefinitionError{
			DefinitionID: def.ID,
			Violations: []Violation{{
				Code:   ViolationEmptyWorkflow,
				Detail: "workflow must declare at least one state",
			}},
		}
	}

	return sorted[0], nil
}
