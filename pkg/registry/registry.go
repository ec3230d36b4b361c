// Package registry namespaces workflow definitions so independent pipelines
// coexist under one engine without key collisions.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/workflow"
)

var (
	// ErrDuplicateWorkflowID indicates a definition id that is already
	// registered.
	ErrDuplicateWorkflowID = errors.New("workflow id already registered")

	// ErrWorkflowNotRegistered indicates a workflow id with no registered
	// definition.
	ErrWorkflowNotRegistered = errors.New("workflow not registered")
)

// Registry holds validated workflow definitions keyed by id. A definition
// that fails validation is never registered, so every definition handed out
// by Get is structurally sound.
type Registry struct {
	logger      *slog.Logger
	mu          sync.RWMutex
	definitions map[string]models.WorkflowDefinition
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:      logger,
		definitions: make(map[string]models.WorkflowDefinition),
	}
}

// Register validates and stores a definition. Ids are unique; re-registering
// an id fails with ErrDuplicateWorkflowID rather than replacing the rulebook
// in-flight entities were created against.
func (r *Registry) Register(def models.WorkflowDefinition) error {
	if err := workflow.ValidateDefinition(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[def.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateWorkflowID, def.ID)
	}

	r.definitions[def.ID] = def
	r.logger.Info("Registered workflow definition", "workflow_id", def.ID, "states", len(def.States))

	return nil
}

// Get returns the definition for workflowID, or ErrWorkflowNotRegistered.
func (r *Registry) Get(workflowID string) (models.WorkflowDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[workflowID]
	if !exists {
		return models.WorkflowDefinition{}, fmt.Errorf("%w: %q", ErrWorkflowNotRegistered, workflowID)
	}

	return def, nil
}

// IDs returns the registered workflow ids in ascending order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.definitions))
	for id := range r.definitions {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Definitions returns every registered definition, ordered by id.
func (r *Registry) Definitions() []models.WorkflowDefinition {
	defs := make([]models.WorkflowDefinition, 0)

	for _, id := range r.IDs() {
		if def, err := r.Get(id); err == nil {
			defs = append(defs, def)
		}
	}

	return defs
}

// IsNotRegistered checks if an error reports an unregistered workflow id.
func IsNotRegistered(err error) bool {
	return errors.Is(err, ErrWorkflowNotRegistered)
}
