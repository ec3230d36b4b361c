package cmd

import (
	"github.com/stageflow/stageflow/pkg/store"
	"github.com/stageflow/stageflow/pkg/store/memory"
)

// NewStore returns the entity store. Memory is the only backend: durable
// persistence is deliberately out of scope for this engine.
func NewStore() store.Store {
	return memory.NewStore()
}
