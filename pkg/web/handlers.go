// Package web provides the HTTP handlers for workflow queries and entity
// transitions.
package web

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stageflow/stageflow/pkg/models"
	"github.com/stageflow/stageflow/pkg/registry"
	"github.com/stageflow/stageflow/pkg/services"
)

type APIHandlers struct {
	entityService   *services.Entity
	pipelineService *services.Pipeline
	registry        *registry.Registry
	validator       *validator.Validate
}

func NewAPIHandlers(
	entityService *services.Entity,
	pipelineService *services.Pipeline,
	registry *registry.Registry,
	validator *validator.Validate,
) *APIHandlers {
	return &APIHandlers{
		entityService:   entityService,
		pipelineService: pipelineService,
		registry:        registry,
		validator:       validator,
	}
}

func (h *APIHandlers) GetWorkflows(c fiber.Ctx) error {
	defs := h.registry.Definitions()

	summaries := make([]WorkflowSummary, 0, len(defs))
	for _, def := range defs {
		summaries = append(summaries, WorkflowSummary{
			ID:         def.ID,
			Name:       def.Name,
			Version:    def.Version,
			StateCount: len(def.States),
		})
	}

	return c.JSON(fiber.Map{
		"workflows":   summaries,
		"total_count": len(summaries),
	})
}

func (h *APIHandlers) GetWorkflow(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	def, err := h.registry.Get(id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(def)
}

// GetWorkflowStates returns a workflow's states in display order. An optional
// `stage` query parameter filters to one reporting stage.
func (h *APIHandlers) GetWorkflowStates(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var stage *models.Stage

	if stageStr := c.Query("stage"); stageStr != "" {
		s := models.Stage(stageStr)
		if !s.Valid() {
			return badRequest(c, "Unknown stage: "+stageStr)
		}

		stage = &s
	}

	states, err := h.pipelineService.States(c.Context(), id, stage)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"states": states})
}

func (h *APIHandlers) GetWorkflowBuckets(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req BucketsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	grouped, err := h.pipelineService.Buckets(c.Context(), id, req.Buckets)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"buckets": grouped})
}

func (h *APIHandlers) GetWorkflowReport(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Workflow ID is required")
	}

	report, err := h.pipelineService.BuildReport(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(report)
}

func (h *APIHandlers) CreateEntity(c fiber.Ctx) error {
	var req services.CreateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	entity, err := h.entityService.Create(c.Context(), req)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}

func (h *APIHandlers) GetEntity(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Entity ID is required")
	}

	entity, err := h.entityService.FetchByID(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(entity)
}

func (h *APIHandlers) ListEntities(c fiber.Ctx) error {
	entities, err := h.entityService.ListByWorkflow(c.Context(), c.Query("workflow_id"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"entities":    entities,
		"total_count": len(entities),
	})
}

// TransitionEntity applies one transition. Rejections come back as RFC 7807
// problems whose detail is suitable for direct display, e.g. "a note is
// required for this transition".
func (h *APIHandlers) TransitionEntity(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Entity ID is required")
	}

	var body TransitionBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(body); err != nil {
		return badRequest(c, err.Error())
	}

	entity, err := h.entityService.Transition(c.Context(), services.TransitionRequest{
		EntityID: id,
		ToState:  body.ToState,
		Note:     body.Note,
		Actor:    body.Actor,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(entity)
}

func (h *APIHandlers) GetEntityProgress(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "Entity ID is required")
	}

	percent, err := h.pipelineService.Progress(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"entity_id":        id,
		"progress_percent": percent,
	})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	status := "healthy"
	message := "Stageflow API is healthy"
	httpStatus := http.StatusOK

	if len(h.registry.IDs()) == 0 {
		status = "unhealthy"
		message = "No workflow definitions registered"
		httpStatus = http.StatusInternalServerError
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"workflows": h.registry.IDs(),
		"timestamp": time.Now().UTC(),
	})
}
