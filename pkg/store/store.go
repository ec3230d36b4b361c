// Package store provides the entity storage abstraction the engine's host
// side works against. Durable persistence is out of scope; the only shipped
// backend is the in-memory one under store/memory.
package store

import (
	"context"

	"github.com/stageflow/stageflow/pkg/models"
)

// Store holds workflow entities. Implementations must treat entities as
// values: Get returns copies, and Save replaces the stored value wholesale.
//
// Save enforces an optimistic concurrency check: expectedHistoryLen is the
// history length the caller read before computing the update, and the save
// fails with ErrStaleEntity when the stored entity has moved on since. That
// is the per-entity serialization guard the pure applier leaves to its host.
type Store interface {
	Create(ctx context.Context, entity models.WorkflowEntity) error
	Save(ctx context.Context, entity models.WorkflowEntity, expectedHistoryLen int) error
	EntityByID(ctx context.Context, entityID string) (models.WorkflowEntity, error)
	EntitiesByWorkflow(ctx context.Context, workflowID string) ([]models.WorkflowEntity, error)
	HealthCheck(ctx context.Context) error

	Close(ctx context.Context) error
}
