package workflow

import (
	"errors"
	"testing"

	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leadDefinition() models.WorkflowDefinition {
	return models.WorkflowDefinition{
		ID:      "lead-pipeline",
		Name:    "Lead pipeline",
		Version: 1,
		States: []models.StateNode{
			{Key: "new_lead", Label: "New Lead", Stage: models.StageActive, Order: 1, NextStates: []string{"contacted", "lost_lead"}},
			{Key: "contacted", Label: "Contacted", Stage: models.StageActive, Order: 2, RequiresNote: true, NextStates: []string{"follow_up", "counselling_done", "not_interested", "lost_lead"}},
			{Key: "follow_up", Label: "Follow Up", Stage: models.StageActive, Order: 3, NextStates: []string{"contacted", "counselling_done", "not_interested", "lost_lead"}},
			{Key: "counselling_done", Label: "Counselling Done", Stage: models.StageActive, Order: 4, NextStates: []string{"documents_submitted", "not_interested", "lost_lead"}},
			{Key: "documents_submitted", Label: "Documents Submitted", Stage: models.StagePending, Order: 5, NextStates: []string{"admission_confirmed", "lost_lead"}},
			{Key: "admission_confirmed", Label: "Admission Confirmed", Stage: models.StagePending, Order: 6, Automated: true, NextStates: []string{"admission_completed"}},
			{Key: "not_interested", Label: "Not Interested", Stage: models.StageFailed, Order: 7, RequiresNote: true, NextStates: []string{}},
			{Key: "admission_completed", Label: "Admission Completed", Stage: models.StageSuccess, Order: 8, NextStates: []string{}},
			{Key: "lost_lead", Label: "Lost Lead", Stage: models.StageFailed, Order: 9, NextStates: []string{"follow_up"}},
		},
	}
}

func TestValidateDefinition_Valid(t *testing.T) {
	require.NoError(t, ValidateDefinition(leadDefinition()))
}

func TestValidateDefinition_Empty(t *testing.T) {
	err := ValidateDefinition(models.WorkflowDefinition{ID: "empty", Name: "Empty"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)
	require.Len(t, defErr.Violations, 1)
	assert.Equal(t, ViolationEmptyWorkflow, defErr.Violations[0].Code)
}

func TestValidateDefinition_CollectsAllViolations(t *testing.T) {
	def := models.WorkflowDefinition{
		ID:   "broken",
		Name: "Broken workflow",
		States: []models.StateNode{
			{Key: "a", Label: "A", Stage: models.StageActive, Order: 1, NextStates: []string{"missing"}},
			{Key: "a", Label: "A again", Stage: models.StageActive, Order: 1, NextStates: []string{"b"}},
			{Key: "b", Label: "B", Stage: "bogus", Order: 2},
		},
	}

	err := ValidateDefinition(def)
	require.Error(t, err)

	var defErr *DefinitionError
	require.ErrorAs(t, err, &defErr)

	codes := make(map[string]int)
	for _, v := range defErr.Violations {
		codes[v.Code]++
	}

	// One pass reports every problem: the duplicate key, the duplicate
	// order, the invalid stage and the dangling edge.
	assert.Equal(t, 1, codes[ViolationDuplicateStateKey])
	assert.Equal(t, 1, codes[ViolationDuplicateOrder])
	assert.Equal(t, 1, codes[ViolationInvalidStage])
	assert.Equal(t, 1, codes[ViolationDanglingEdge])
	assert.Len(t, defErr.Violations, 4)
}

func TestValidateDefinition_ForwardEdgesAllowed(t *testing.T) {
	def := models.WorkflowDefinition{
		ID:   "forward",
		Name: "Forward references",
		States: []models.StateNode{
			{Key: "first", Label: "First", Stage: models.StageActive, Order: 1, NextStates: []string{"second"}},
			{Key: "second", Label: "Second", Stage: models.StageSuccess, Order: 2},
		},
	}

	require.NoError(t, ValidateDefinition(def))
}

func TestInitialState(t *testing.T) {
	initial, err := InitialState(leadDefinition())
	require.NoError(t, err)
	assert.Equal(t, "new_lead", initial.Key)
}

func TestInitialState_TieBrokenByKey(t *testing.T) {
	def := models.WorkflowDefinition{
		ID:   "ties",
		Name: "Tied orders",
		States: []models.StateNode{
			{Key: "zeta", Label: "Zeta", Stage: models.StageActive, Order: 1},
			{Key: "alpha", Label: "Alpha", Stage: models.StageActive, Order: 1},
		},
	}

	// The definition is invalid (duplicate order), but InitialState is
	// still deterministic for callers that skip validation.
	initial, err := InitialState(def)
	require.NoError(t, err)
	assert.Equal(t, "alpha", initial.Key)
}

func TestInitialState_Empty(t *testing.T) {
	_, err := InitialState(models.WorkflowDefinition{ID: "empty", Name: "Empty"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDefinition))
}
