package hrm

import (
	"log/slog"
	"testing"

	"github.com/stageflow/stageflow/pkg/registry"
	"github.com/stageflow/stageflow/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinDefinitionsValidate(t *testing.T) {
	for _, def := range All() {
		t.Run(def.ID, func(t *testing.T) {
			assert.NoError(t, workflow.ValidateDefinition(def))
		})
	}
}

func TestConstructorsReturnFreshValues(t *testing.T) {
	first := LeadPipeline()
	first.States[0].Label = "Mutated"

	assert.Equal(t, "New Lead", LeadPipeline().States[0].Label)
}

func TestLeadPipelineShape(t *testing.T) {
	def := LeadPipeline()
	require.Len(t, def.States, 9)

	initial, err := workflow.InitialState(def)
	require.NoError(t, err)
	assert.Equal(t, "new_lead", initial.Key)

	// Revival path: a lost lead can come back through follow_up.
	assert.True(t, workflow.CanTransition(def, "lost_lead", "follow_up"))

	terminal, err := workflow.IsTerminal(def, "lost_lead")
	require.NoError(t, err)
	assert.False(t, terminal)

	terminal, err = workflow.IsTerminal(def, "admission_completed")
	require.NoError(t, err)
	assert.True(t, terminal)

	confirmed, ok := def.State("admission_confirmed")
	require.True(t, ok)
	assert.True(t, confirmed.Automated)

	contacted, ok := def.State("contacted")
	require.True(t, ok)
	assert.True(t, contacted.RequiresNote)
}

func TestExitProcessShape(t *testing.T) {
	def := ExitProcess()
	require.Len(t, def.States, 7)

	initial, err := workflow.InitialState(def)
	require.NoError(t, err)
	assert.Equal(t, "resignation_submitted", initial.Key)

	assert.True(t, workflow.CanTransition(def, "notice_period", "withdrawn"))
	assert.False(t, workflow.CanTransition(def, "handover", "withdrawn"))

	settlement, ok := def.State("final_settlement")
	require.True(t, ok)
	assert.True(t, settlement.Automated)
}

func TestPerformanceReviewDisputeLoop(t *testing.T) {
	def := PerformanceReview()

	assert.True(t, workflow.CanTransition(def, "calibration", "disputed"))
	assert.True(t, workflow.CanTransition(def, "disputed", "calibration"))

	terminal, err := workflow.IsTerminal(def, "disputed")
	require.NoError(t, err)
	assert.False(t, terminal)
}

func TestRegisterAll(t *testing.T) {
	reg := registry.NewRegistry(slog.Default())

	require.NoError(t, RegisterAll(reg))
	assert.Equal(t, []string{ExitProcessID, LeadPipelineID, OnboardingID, PerformanceReviewID}, reg.IDs())

	// Registering twice collides on every id.
	assert.Error(t, RegisterAll(reg))
}
