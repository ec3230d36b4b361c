// Package memory provides the in-memory store implementation. It is the only
// backend the engine ships: entity state lives for the life of the process,
// which matches the mock-data contract of the HRM screens it backs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/store"
)

// Store implements store.Store with a mutex-guarded map. Entities are stored
// and returned by value, so callers never share history slices with the map.
type Store struct {
	mu       sync.RWMutex
	entities map[string]models.WorkflowEntity
}

func NewStore() *Store {
	return &Store{
		entities: make(map[string]models.WorkflowEntity),
	}
}

func (s *Store) Create(_ context.Context, entity models.WorkflowEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entities[entity.EntityID]; exists {
		return store.NewEntityError("Create", entity.EntityID, store.ErrEntityAlreadyExists)
	}

	s.entities[entity.EntityID] = entity.Clone()

	return nil
}

func (s *Store) Save(_ context.Context, entity models.WorkflowEntity, expectedHistoryLen int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.entities[entity.EntityID]
	if !exists {
		return store.NewEntityError("Save", entity.EntityID, store.ErrEntityNotFound)
	}

	if len(current.History) != expectedHistoryLen {
		return store.NewEntityError("Save", entity.EntityID, store.ErrStaleEntity)
	}

	s.entities[entity.EntityID] = entity.Clone()

	return nil
}

func (s *Store) EntityByID(_ context.Context, entityID string) (models.WorkflowEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entity, exists := s.entities[entityID]
	if !exists {
		return models.WorkflowEntity{}, store.NewEntityError("EntityByID", entityID, store.ErrEntityNotFound)
	}

	return entity.Clone(), nil
}

// EntitiesByWorkflow returns the entities governed by workflowID, sorted by
// entity id so listings are stable across calls. An empty workflowID returns
// every entity.
func (s *Store) EntitiesByWorkflow(_ context.Context, workflowID string) ([]models.WorkflowEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entities := make([]models.WorkflowEntity, 0)

	for _, entity := range s.entities {
		if workflowID == "" || entity.WorkflowID == workflowID {
			entities = append(entities, entity.Clone())
		}
	}

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].EntityID < entities[j].EntityID
	})

	return entities, nil
}

func (s *Store) HealthCheck(_ context.Context) error {
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return nil
}
