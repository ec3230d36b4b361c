package cmd

import (
	"fmt"
	"log/slog"

	"github.com/stageflow/stageflow/pkg/definitions"
	"github.com/stageflow/stageflow/pkg/hrm"
	"github.com/stageflow/stageflow/pkg/registry"
)

// NewRegistry builds a registry holding the built-in HRM pipelines plus any
// definitions found under definitionsPath (may be empty).
func NewRegistry(logger *slog.Logger, definitionsPath string) (*registry.Registry, error) {
	reg := registry.NewRegistry(logger)

	if err := hrm.RegisterAll(reg); err != nil {
		return nil, fmt.Errorf("failed to register built-in pipelines: %w", err)
	}

	if definitionsPath == "" {
		return reg, nil
	}

	loader, err := definitions.NewLoader(logger)
	if err != nil {
		return nil, err
	}

	defs, err := loader.LoadDir(definitionsPath)
	if err != nil {
		return nil, err
	}

	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}

	return reg, nil
}
