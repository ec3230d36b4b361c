package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stageflow/stageflow/pkg/eventbus"
	"github.com/stageflow/stageflow/pkg/events"
	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/otelhelper"
	"github.com/stageflow/stageflow/pkg/registry"
	"github.com/stageflow/stageflow/pkg/store"
	"github.com/stageflow/stageflow/pkg/workflow"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "stageflow/services"

// Entity is the only writer of stored entities. It resolves the governing
// definition through the registry, runs the pure applier, swaps the result
// into the store under the optimistic history-length check, and publishes the
// outcome on the event bus. Event publishing is best-effort: a bus failure is
// logged, never rolled into the transition result.
type Entity struct {
	registry *registry.Registry
	store    store.Store
	eventBus eventbus.EventBus
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

func NewEntity(reg *registry.Registry, st store.Store, bus eventbus.EventBus, logger *slog.Logger) *Entity {
	return &Entity{
		registry: reg,
		store:    st,
		eventBus: bus,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Tests use it to pin timestamps.
func (s *Entity) WithClock(now func() time.Time) *Entity {
	s.now = now

	return s
}

// CreateRequest describes a new entity. An empty EntityID gets a generated
// UUID; an empty InitialState places the entity at the workflow's
// conventional initial state.
type CreateRequest struct {
	EntityID     string `json:"entity_id"`
	WorkflowID   string `json:"workflow_id"   validate:"required"`
	InitialState string `json:"initial_state"`
}

// TransitionRequest asks to move an entity to ToState.
type TransitionRequest struct {
	EntityID string `json:"entity_id" validate:"required"`
	ToState  string `json:"to_state"  validate:"required"`
	Note     string `json:"note"`
	Actor    string `json:"actor"`
}

func (s *Entity) Create(ctx context.Context, req CreateRequest) (models.WorkflowEntity, error) {
	if req.WorkflowID == "" {
		return models.WorkflowEntity{}, ErrEmptyWorkflowID
	}

	def, err := s.registry.Get(req.WorkflowID)
	if err != nil {
		return models.WorkflowEntity{}, err
	}

	entityID := req.EntityID
	if entityID == "" {
		entityID = uuid.New().String()
	}

	entity, err := workflow.NewEntity(def, entityID, req.InitialState, s.now())
	if err != nil {
		return models.WorkflowEntity{}, err
	}

	if err := s.store.Create(ctx, entity); err != nil {
		return models.WorkflowEntity{}, err
	}

	s.publish(ctx, entity.EntityID, events.EntityCreated{
		BaseEvent:    s.baseEvent(events.EntityCreatedEvent, entity),
		InitialState: entity.CurrentState,
	})

	return entity, nil
}

// Transition applies a single transition. Rejections are normal outcomes:
// they come back as errors for the caller to present, and are also published
// as TransitionRejected events for audit consumers.
func (s *Entity) Transition(ctx context.Context, req TransitionRequest) (models.WorkflowEntity, error) {
	if req.EntityID == "" {
		return models.WorkflowEntity{}, ErrEmptyEntityID
	}

	if req.ToState == "" {
		return models.WorkflowEntity{}, ErrEmptyToState
	}

	ctx, span := s.tracer.Start(ctx, "entity.transition", trace.WithAttributes(
		attribute.String(otelhelper.EntityIDKey, req.EntityID),
		attribute.String(otelhelper.ToStateKey, req.ToState),
		attribute.String(otelhelper.ActorKey, req.Actor),
	))
	defer span.End()

	entity, err := s.store.EntityByID(ctx, req.EntityID)
	if err != nil {
		return models.WorkflowEntity{}, err
	}

	span.SetAttributes(
		attribute.String(otelhelper.WorkflowIDKey, entity.WorkflowID),
		attribute.String(otelhelper.FromStateKey, entity.CurrentState),
	)

	def, err := s.registry.Get(entity.WorkflowID)
	if err != nil {
		return models.WorkflowEntity{}, err
	}

	updated, err := workflow.ApplyTransition(entity, def, req.ToState, req.Note, req.Actor, s.now())
	if err != nil {
		span.RecordError(err)
		s.publish(ctx, entity.EntityID, events.TransitionRejected{
			BaseEvent: s.baseEvent(events.TransitionRejectedEvent, entity),
			FromState: entity.CurrentState,
			ToState:   req.ToState,
			Reason:    err.Error(),
		})

		return models.WorkflowEntity{}, err
	}

	if err := s.store.Save(ctx, updated, len(entity.History)); err != nil {
		span.RecordError(err)

		return models.WorkflowEntity{}, err
	}

	terminal, _ := workflow.IsTerminal(def, updated.CurrentState)
	record := updated.History[len(updated.History)-1]

	s.publish(ctx, updated.EntityID, events.EntityTransitioned{
		BaseEvent: s.baseEvent(events.EntityTransitionedEvent, updated),
		Record:    record,
		Terminal:  terminal,
	})

	s.logger.InfoContext(ctx, "Applied transition",
		"entity_id", updated.EntityID,
		"workflow_id", updated.WorkflowID,
		"from", record.FromState,
		"to", record.ToState,
	)

	return updated, nil
}

func (s *Entity) FetchByID(ctx context.Context, entityID string) (models.WorkflowEntity, error) {
	if entityID == "" {
		return models.WorkflowEntity{}, ErrEmptyEntityID
	}

	return s.store.EntityByID(ctx, entityID)
}

func (s *Entity) ListByWorkflow(ctx context.Context, workflowID string) ([]models.WorkflowEntity, error) {
	if workflowID != "" {
		if _, err := s.registry.Get(workflowID); err != nil {
			return nil, err
		}
	}

	return s.store.EntitiesByWorkflow(ctx, workflowID)
}

func (s *Entity) baseEvent(eventType events.EventType, entity models.WorkflowEntity) events.BaseEvent {
	return events.BaseEvent{
		ID:         s.eventBus.GenerateID(),
		Type:       eventType,
		Timestamp:  s.now(),
		WorkflowID: entity.WorkflowID,
		EntityID:   entity.EntityID,
	}
}

func (s *Entity) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, key, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			"event_type", event.GetType(), "key", key, "error", err)
	}
}
