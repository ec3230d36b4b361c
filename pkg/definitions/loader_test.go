package definitions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stageflow/stageflow/pkg/log"
	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
	"id": "ticket-triage",
	"name": "Ticket triage",
	"version": 2,
	"states": [
		{"key": "open", "label": "Open", "stage": "active", "order": 1, "next_states": ["resolved", "rejected"]},
		{"key": "resolved", "label": "Resolved", "stage": "success", "order": 2, "next_states": []},
		{"key": "rejected", "label": "Rejected", "stage": "failed", "order": 3, "requires_note": true, "next_states": []}
	]
}`

func newLoader(t *testing.T) *Loader {
	t.Helper()

	loader, err := NewLoader(log.WithModule("definitions_test"))
	require.NoError(t, err)

	return loader
}

func TestParse(t *testing.T) {
	loader := newLoader(t)

	def, err := loader.Parse([]byte(validDocument))
	require.NoError(t, err)

	assert.Equal(t, "ticket-triage", def.ID)
	assert.Equal(t, 2, def.Version)
	require.Len(t, def.States, 3)
	assert.Equal(t, models.StageActive, def.States[0].Stage)
	assert.True(t, def.States[2].RequiresNote)
}

func TestParse_SchemaViolations(t *testing.T) {
	loader := newLoader(t)

	tests := []struct {
		name     string
		document string
	}{
		{"missing id", `{"name": "No id", "states": [{"key": "a", "label": "A", "stage": "active", "order": 1}]}`},
		{"empty states", `{"id": "x", "name": "Empty", "states": []}`},
		{"unknown stage", `{"id": "x", "name": "Bad stage", "states": [{"key": "a", "label": "A", "stage": "archived", "order": 1}]}`},
		{"state missing label", `{"id": "x", "name": "No label", "states": [{"key": "a", "stage": "active", "order": 1}]}`},
		{"unknown top-level field", `{"id": "x", "name": "Extra", "owner": "me", "states": [{"key": "a", "label": "A", "stage": "active", "order": 1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.Parse([]byte(tt.document))
			require.Error(t, err)
			assert.ErrorIs(t, err, workflow.ErrInvalidDefinition)
		})
	}
}

func TestParse_GraphViolation(t *testing.T) {
	loader := newLoader(t)

	// Shape is fine but the edge dangles; the graph pass catches it.
	document := `{
		"id": "dangling",
		"name": "Dangling edge",
		"states": [
			{"key": "open", "label": "Open", "stage": "active", "order": 1, "next_states": ["ghost"]}
		]
	}`

	_, err := loader.Parse([]byte(document))
	require.Error(t, err)

	var defErr *workflow.DefinitionError
	require.ErrorAs(t, err, &defErr)
	require.Len(t, defErr.Violations, 1)
	assert.Equal(t, workflow.ViolationDanglingEdge, defErr.Violations[0].Code)
}

func TestLoadFile(t *testing.T) {
	loader := newLoader(t)

	path := filepath.Join(t.TempDir(), "triage.json")
	require.NoError(t, os.WriteFile(path, []byte(validDocument), 0o600))

	def, err := loader.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ticket-triage", def.ID)

	_, err = loader.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()

	second := `{
		"id": "two-step",
		"name": "Two step",
		"states": [
			{"key": "a", "label": "A", "stage": "active", "order": 1, "next_states": ["b"]},
			{"key": "b", "label": "B", "stage": "success", "order": 2, "next_states": []}
		]
	}`

	require.NoError(t, os.WriteFile(filepath.Join(dir, "20-triage.json"), []byte(validDocument), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "10-two-step.json"), []byte(second), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	defs, err := loader.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	// File-name order, not insertion order.
	assert.Equal(t, "two-step", defs[0].ID)
	assert.Equal(t, "ticket-triage", defs[1].ID)
}

func TestLoadDir_OneBadFileFailsAll(t *testing.T) {
	loader := newLoader(t)
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.json"), []byte(validDocument), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(`{"id": "x"}`), 0o600))

	_, err := loader.LoadDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, workflow.ErrInvalidDefinition)
}
