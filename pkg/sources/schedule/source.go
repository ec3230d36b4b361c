// Package schedule sweeps entities that have sat too long in a state into a
// follow-up state on a cron schedule, e.g. moving stale contacted leads back
// to follow_up overnight.
package schedule

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stageflow/stageflow/pkg/services"
)

// Actor recorded on transitions the sweeper applies.
const Actor = "scheduler"

// Rule describes one sweep: entities of WorkflowID sitting in FromState for
// longer than OlderThan are moved to ToState with Note attached.
type Rule struct {
	WorkflowID string        `json:"workflow_id" validate:"required"`
	FromState  string        `json:"from_state"  validate:"required"`
	ToState    string        `json:"to_state"    validate:"required"`
	OlderThan  time.Duration `json:"older_than"`
	Note       string        `json:"note"`
}

// Source runs sweep rules on a cron expression.
type Source struct {
	cron   *cron.Cron
	spec   string
	rules  []Rule
	entity *services.Entity
	logger *slog.Logger
	now    func() time.Time
}

func NewSource(spec string, rules []Rule, entity *services.Entity, logger *slog.Logger) (*Source, error) {
	if spec == "" {
		return nil, errors.New("cron spec is required")
	}

	return &Source{
		cron:   cron.New(),
		spec:   spec,
		rules:  rules,
		entity: entity,
		logger: logger.With("module", "schedule_source", "spec", spec),
		now:    time.Now,
	}, nil
}

// Start registers the sweep job and starts the cron scheduler.
func (s *Source) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.InfoContext(ctx, "Schedule source started", "rules", len(s.rules))

	return nil
}

// Sweep runs every rule once. Exposed so tests and operators can force a run
// without waiting for the schedule.
func (s *Source) Sweep(ctx context.Context) {
	for _, rule := range s.rules {
		s.apply(ctx, rule)
	}
}

func (s *Source) apply(ctx context.Context, rule Rule) {
	entities, err := s.entity.ListByWorkflow(ctx, rule.WorkflowID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list entities for sweep",
			"workflow_id", rule.WorkflowID, "error", err)

		return
	}

	cutoff := s.now().Add(-rule.OlderThan)

	for _, entity := range entities {
		if entity.CurrentState != rule.FromState || entity.UpdatedAt.After(cutoff) {
			continue
		}

		_, err := s.entity.Transition(ctx, services.TransitionRequest{
			EntityID: entity.EntityID,
			ToState:  rule.ToState,
			Note:     rule.Note,
			Actor:    Actor,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "Sweep transition rejected",
				"entity_id", entity.EntityID, "to", rule.ToState, "error", err)
		}
	}
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *Source) Stop() {
	<-s.cron.Stop().Done()
}
