package workflow

import (
	"testing"
	"time"

	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntity_DefaultInitialState(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	entity, err := NewEntity(leadDefinition(), "lead-42", "", now)
	require.NoError(t, err)

	assert.Equal(t, "lead-42", entity.EntityID)
	assert.Equal(t, "lead-pipeline", entity.WorkflowID)
	assert.Equal(t, "new_lead", entity.CurrentState)
	assert.Empty(t, entity.History)
	assert.Equal(t, now, entity.CreatedAt)
}

func TestNewEntity_ExplicitInitialState(t *testing.T) {
	entity, err := NewEntity(leadDefinition(), "lead-7", "follow_up", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "follow_up", entity.CurrentState)
}

func TestNewEntity_UnknownInitialState(t *testing.T) {
	_, err := NewEntity(leadDefinition(), "lead-7", "ghost", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestApplyTransition(t *testing.T) {
	def := leadDefinition()
	now := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)

	entity, err := NewEntity(def, "lead-1", "", now)
	require.NoError(t, err)

	updated, err := ApplyTransition(entity, def, "contacted", "ok", "agent1", now)
	require.NoError(t, err)

	assert.Equal(t, "contacted", updated.CurrentState)
	require.Len(t, updated.History, 1)

	record := updated.History[0]
	assert.Equal(t, "new_lead", record.FromState)
	assert.Equal(t, "contacted", record.ToState)
	assert.Equal(t, "ok", record.Note)
	assert.Equal(t, "agent1", record.Actor)
	assert.Equal(t, now, record.Timestamp)

	// The input value is untouched.
	assert.Equal(t, "new_lead", entity.CurrentState)
	assert.Empty(t, entity.History)
}

func TestApplyTransition_HistoryGrowsByOne(t *testing.T) {
	def := leadDefinition()
	now := time.Now()

	entity, err := NewEntity(def, "lead-2", "", now)
	require.NoError(t, err)

	moves := []struct {
		to   string
		note string
	}{
		{"contacted", "first call"},
		{"follow_up", ""},
		{"counselling_done", ""},
		{"documents_submitted", ""},
	}

	for i, move := range moves {
		entity, err = ApplyTransition(entity, def, move.to, move.note, "agent1", now)
		require.NoError(t, err)
		assert.Len(t, entity.History, i+1)
		assert.Equal(t, move.to, entity.CurrentState)
	}
}

func TestApplyTransition_IllegalEdge(t *testing.T) {
	def := leadDefinition()

	entity, err := NewEntity(def, "lead-3", "", time.Now())
	require.NoError(t, err)

	_, err = ApplyTransition(entity, def, "admission_completed", "", "agent1", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllegalTransition)

	// Failure leaves the input unchanged.
	assert.Equal(t, "new_lead", entity.CurrentState)
	assert.Empty(t, entity.History)
}

func TestApplyTransition_MissingNote(t *testing.T) {
	def := leadDefinition()

	entity, err := NewEntity(def, "lead-4", "", time.Now())
	require.NoError(t, err)

	_, err = ApplyTransition(entity, def, "contacted", "", "agent1", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingNote)
}

func TestApplyTransition_UnknownCurrentState(t *testing.T) {
	def := leadDefinition()

	entity := models.WorkflowEntity{
		EntityID:     "lead-5",
		WorkflowID:   def.ID,
		CurrentState: "state_from_older_version",
	}

	_, err := ApplyTransition(entity, def, "contacted", "note", "agent1", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCurrentState)

	var trErr *TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "lead-5", trErr.EntityID)
}

func TestApplyTransition_AppendDoesNotShareHistory(t *testing.T) {
	def := leadDefinition()
	now := time.Now()

	entity, err := NewEntity(def, "lead-6", "", now)
	require.NoError(t, err)

	first, err := ApplyTransition(entity, def, "contacted", "call one", "agent1", now)
	require.NoError(t, err)

	// Two divergent futures from the same snapshot must not share backing
	// arrays.
	branchA, err := ApplyTransition(first, def, "follow_up", "", "agent1", now)
	require.NoError(t, err)

	branchB, err := ApplyTransition(first, def, "not_interested", "changed mind", "agent2", now)
	require.NoError(t, err)

	assert.Equal(t, "follow_up", branchA.History[1].ToState)
	assert.Equal(t, "not_interested", branchB.History[1].ToState)
	assert.Equal(t, "call one", first.History[0].Note)
}
