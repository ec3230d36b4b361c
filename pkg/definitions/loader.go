// Package definitions loads declarative workflow definitions from JSON files.
// Definitions are static configuration: they are read once at startup,
// validated, and registered; the loader never writes anything back.
package definitions

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/workflow"
	"github.com/xeipuuv/gojsonschema"
)

// Loader reads definition documents and validates them twice: against the
// JSON Schema for shape, then through workflow.ValidateDefinition for graph
// soundness.
type Loader struct {
	schema *gojsonschema.Schema
	logger *slog.Logger
}

func NewLoader(logger *slog.Logger) (*Loader, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(definitionSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile definition schema: %w", err)
	}

	return &Loader{
		schema: schema,
		logger: logger,
	}, nil
}

// LoadFile loads and validates a single definition document.
func (l *Loader) LoadFile(path string) (models.WorkflowDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.WorkflowDefinition{}, fmt.Errorf("failed to read definition file %s: %w", path, err)
	}

	return l.Parse(data)
}

// Parse validates and decodes one definition document.
func (l *Loader) Parse(data []byte) (models.WorkflowDefinition, error) {
	result, err := l.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return models.WorkflowDefinition{}, fmt.Errorf("failed to validate definition document: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return models.WorkflowDefinition{}, fmt.Errorf("%w: %s",
			workflow.ErrInvalidDefinition, strings.Join(details, "; "))
	}

	var def models.WorkflowDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return models.WorkflowDefinition{}, fmt.Errorf("failed to decode definition document: %w", err)
	}

	if err := workflow.ValidateDefinition(def); err != nil {
		return models.WorkflowDefinition{}, err
	}

	return def, nil
}

// LoadDir loads every *.json definition in dir, in file-name order so load
// outcomes are reproducible. A single invalid file fails the whole load:
// partial definition sets would leave entities ungoverned.
func (l *Loader) LoadDir(dir string) ([]models.WorkflowDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		names = append(names, entry.Name())
	}

	sort.Strings(names)

	defs := make([]models.WorkflowDefinition, 0, len(names))

	for _, name := range names {
		def, err := l.LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}

		l.logger.Info("Loaded workflow definition", "file", name, "workflow_id", def.ID)
		defs = append(defs, def)
	}

	return defs, nil
}
