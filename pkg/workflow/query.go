package workflow

import (
	"math"
	"sort"

	"github.com/stageflow/stageflow/pkg/models"
)

// AllStatesSorted returns every state of the definition sorted by order
// ascending, ties broken by key ascending. The ordering is deterministic so
// repeated calls produce identical sequences regardless of declaration order.
func AllStatesSorted(def models.WorkflowDefinition) []models.StateNode {
	states := make([]models.StateNode, len(def.States))
	copy(states, def.States)

	sort.Slice(states, func(i, j int) bool {
		if states[i].Order != states[j].Order {
			return states[i].Order < states[j].Order
		}

		return states[i].Key < states[j].Key
	})

	return states
}

// StatesByStage returns the states whose stage matches, in the same
// deterministic order as AllStatesSorted.
func StatesByStage(def models.WorkflowDefinition, stage models.Stage) []models.StateNode {
	matched := make([]models.StateNode, 0)

	for _, state := range AllStatesSorted(def) {
		if state.Stage == stage {
			matched = append(matched, state)
		}
	}

	return matched
}

// ProgressPercent computes round(order/count*100) for the given state,
// rounding half up. This is a display heuristic carried over from the
// original pipeline view: order is an arbitrary display sequence, not a
// measured completion fraction, so a high-order failure state reports high
// "progress". Callers wanting real completion metrics need their own measure.
func ProgressPercent(def models.WorkflowDefinition, stateKey string) (int, error) {
	state, ok := def.State(stateKey)
	if !ok {
		return 0, &TransitionError{
			Op:         "ProgressPercent",
			WorkflowID: def.ID,
			ToState:    stateKey,
			Err:        ErrUnknownState,
		}
	}

	if len(def.States) == 0 {
		return 0, nil
	}

	return roundPercent(float64(state.Order) / float64(len(def.States))), nil
}

// ConversionRate computes round(converted/total*100), returning 0 when total
// is zero. Converted is deliberately not clamped to total: callers passing
// converted > total get a value above 100, matching the original behavior.
func ConversionRate(totalCount, convertedCount int) int {
	if totalCount <= 0 {
		return 0
	}

	return roundPercent(float64(convertedCount) / float64(totalCount))
}

// IsTerminal reports whether the state has no outgoing edges. Terminality is
// computed from NextStates, never assumed from Stage.
func IsTerminal(def models.WorkflowDefinition, stateKey string) (bool, error) {
	state, ok := def.State(stateKey)
	if !ok {
		return false, &TransitionError{
			Op:         "IsTerminal",
			WorkflowID: def.ID,
			ToState:    stateKey,
			Err:        ErrUnknownState,
		}
	}

	return state.Terminal(), nil
}

// GroupByStageBuckets resolves a caller-supplied bucket spec to state nodes.
// Bucket member order is preserved as given: buckets are a curated narrative
// sequence distinct from raw display order, so they are never re-sorted.
// Member keys that do not resolve to a declared state are skipped.
func GroupByStageBuckets(def models.WorkflowDefinition, buckets []models.StageBucket) map[string][]models.StateNode {
	grouped := make(map[string][]models.StateNode, len(buckets))

	for _, bucket := range buckets {
		members := make([]models.StateNode, 0, len(bucket.Member))

		for _, key := range bucket.Member {
			if state, ok := def.State(key); ok {
				members = append(members, state)
			}
		}

		grouped[bucket.ID] = members
	}

	return grouped
}

// roundPercent rounds half up, so 33.5 reports as 34 and 88.88 as 89.
func roundPercent(fraction float64) int {
	return int(math.Floor(fraction*100 + 0.5))
}
