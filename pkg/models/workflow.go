// Package models defines the core domain models for status-workflow tracking.
package models

// Stage is the coarse reporting category of a state. It groups states for
// dashboards and badges and has no bearing on transition legality.
type Stage string

const (
	StageActive  Stage = "active"  // In-flight work
	StageSuccess Stage = "success" // Desired outcomes
	StageFailed  Stage = "failed"  // Undesired outcomes
	StagePending Stage = "pending" // Awaiting external action
)

// KnownStages lists every valid Stage value, in reporting order.
var KnownStages = []Stage{StageActive, StageSuccess, StageFailed, StagePending}

// Valid reports whether s is one of the closed set of stages.
func (s Stage) Valid() bool {
	switch s {
	case StageActive, StageSuccess, StageFailed, StagePending:
		return true
	default:
		return false
	}
}

// StateNode is one node in a workflow graph. Key is the stable identifier;
// Label is presentation-only. Order drives display sequencing and must be
// unique within a definition. NextStates lists the keys reachable directly
// from this state; an empty list makes the state terminal.
type StateNode struct {
	Key          string   `json:"key"           validate:"required"`
	Label        string   `json:"label"         validate:"required"`
	Stage        Stage    `json:"stage"         validate:"required"`
	Order        int      `json:"order"`
	NextStates   []string `json:"next_states"`
	RequiresNote bool     `json:"requires_note"`
	Automated    bool     `json:"automated"`
}

// Terminal reports whether the state has no outgoing transitions. Terminal
// status is computed from edges, never inferred from Stage: a failed state
// may still loop back into the pipeline.
func (s StateNode) Terminal() bool {
	return len(s.NextStates) == 0
}

// CanReach reports whether key is listed as a direct next state.
func (s StateNode) CanReach(key string) bool {
	for _, next := range s.NextStates {
		if next == key {
			return true
		}
	}

	return false
}

// WorkflowDefinition is the declarative description of one workflow: its
// states and their transition edges. Definitions are treated as immutable
// once validated; any edit produces a new definition under a new Version.
type WorkflowDefinition struct {
	ID      string      `json:"id"      validate:"required"`
	Name    string      `json:"name"    validate:"required,min=3"`
	Version int         `json:"version"`
	States  []StateNode `json:"states"  validate:"required,min=1"`
}

// State returns the node for key and whether it exists.
func (d WorkflowDefinition) State(key string) (StateNode, bool) {
	for _, s := range d.States {
		if s.Key == key {
			return s, true
		}
	}

	return StateNode{}, false
}

// StateKeys returns the declared keys in declaration order.
func (d WorkflowDefinition) StateKeys() []string {
	keys := make([]string, 0, len(d.States))
	for _, s := range d.States {
		keys = append(keys, s.Key)
	}

	return keys
}

// StageBucket names a curated group of state keys for pipeline views. Bucket
// and member order express a narrative sequence chosen by the caller and are
// preserved as given, distinct from StateNode.Order.
type StageBucket struct {
	ID     string   `json:"id"     validate:"required"`
	Label  string   `json:"label"`
	Member []string `json:"member" validate:"required,min=1"`
}
