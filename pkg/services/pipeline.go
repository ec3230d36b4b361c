package services

import (
	"context"

	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/registry"
	"github.com/stageflow/stageflow/pkg/store"
	"github.com/stageflow/stageflow/pkg/workflow"
)

// Pipeline serves the read side: sorted state lists, stage groupings,
// progress and population reports for dashboard screens.
type Pipeline struct {
	registry *registry.Registry
	store    store.Store
}

func NewPipeline(reg *registry.Registry, st store.Store) *Pipeline {
	return &Pipeline{
		registry: reg,
		store:    st,
	}
}

// StateCount pairs a state with the number of entities currently on it.
type StateCount struct {
	State models.StateNode `json:"state"`
	Count int              `json:"count"`
}

// Report summarizes a workflow's entity population. ConversionRate is the
// share of entities sitting on success-stage states, rounded half up.
type Report struct {
	WorkflowID     string               `json:"workflow_id"`
	TotalEntities  int                  `json:"total_entities"`
	StageCounts    map[models.Stage]int `json:"stage_counts"`
	StateCounts    []StateCount         `json:"state_counts"`
	ConversionRate int                  `json:"conversion_rate"`
}

// States returns a workflow's states in display order, optionally filtered by
// stage.
func (s *Pipeline) States(_ context.Context, workflowID string, stage *models.Stage) ([]models.StateNode, error) {
	def, err := s.registry.Get(workflowID)
	if err != nil {
		return nil, err
	}

	if stage == nil {
		return workflow.AllStatesSorted(def), nil
	}

	if !stage.Valid() {
		return nil, ErrInvalidStage
	}

	return workflow.StatesByStage(def, *stage), nil
}

// Buckets resolves a caller-curated bucket spec against a workflow.
func (s *Pipeline) Buckets(_ context.Context, workflowID string, buckets []models.StageBucket) (map[string][]models.StateNode, error) {
	def, err := s.registry.Get(workflowID)
	if err != nil {
		return nil, err
	}

	return workflow.GroupByStageBuckets(def, buckets), nil
}

// Progress returns the display progress percentage of an entity's current
// state within its workflow.
func (s *Pipeline) Progress(ctx context.Context, entityID string) (int, error) {
	if entityID == "" {
		return 0, ErrEmptyEntityID
	}

	entity, err := s.store.EntityByID(ctx, entityID)
	if err != nil {
		return 0, err
	}

	def, err := s.registry.Get(entity.WorkflowID)
	if err != nil {
		return 0, err
	}

	return workflow.ProgressPercent(def, entity.CurrentState)
}

// BuildReport counts a workflow's entities per state and stage and derives
// the conversion rate of the population.
func (s *Pipeline) BuildReport(ctx context.Context, workflowID string) (Report, error) {
	def, err := s.registry.Get(workflowID)
	if err != nil {
		return Report{}, err
	}

	entities, err := s.store.EntitiesByWorkflow(ctx, workflowID)
	if err != nil {
		return Report{}, err
	}

	byState := make(map[string]int, len(def.States))
	for _, entity := range entities {
		byState[entity.CurrentState]++
	}

	stageCounts := make(map[models.Stage]int, len(models.KnownStages))
	for _, stage := range models.KnownStages {
		stageCounts[stage] = 0
	}

	stateCounts := make([]StateCount, 0, len(def.States))
	converted := 0

	for _, state := range workflow.AllStatesSorted(def) {
		count := byState[state.Key]
		stateCounts = append(stateCounts, StateCount{State: state, Count: count})
		stageCounts[state.Stage] += count

		if state.Stage == models.StageSuccess {
			converted += count
		}
	}

	return Report{
		WorkflowID:     workflowID,
		TotalEntities:  len(entities),
		StageCounts:    stageCounts,
		StateCounts:    stateCounts,
		ConversionRate: workflow.ConversionRate(len(entities), converted),
	}, nil
}
