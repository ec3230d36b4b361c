// Package main provides the Stageflow API server.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/stageflow/stageflow/pkg/eventbus"
	"github.com/stageflow/stageflow/pkg/registry"
	"github.com/stageflow/stageflow/pkg/services"
	"github.com/stageflow/stageflow/pkg/store"
	"github.com/stageflow/stageflow/pkg/web"
)

type API struct {
	logger   *slog.Logger
	registry *registry.Registry
	store    store.Store
	eventBus eventbus.EventBus
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	reg *registry.Registry,
	st store.Store,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		logger:   logger,
		registry: reg,
		store:    st,
		eventBus: eventBus,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) EntityService() *services.Entity {
	return services.NewEntity(a.registry, a.store, a.eventBus, a.logger)
}

func (a *API) App() *fiber.App {
	entityService := a.EntityService()
	pipelineService := services.NewPipeline(a.registry, a.store)

	handlers := web.NewAPIHandlers(entityService, pipelineService, a.registry, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Stageflow API")
	})

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Get("/:id", handlers.GetWorkflow)
	w.Get("/:id/states", handlers.GetWorkflowStates)
	w.Post("/:id/buckets", handlers.GetWorkflowBuckets)
	w.Get("/:id/report", handlers.GetWorkflowReport)

	e := app.Group("/entities")
	e.Get("/", handlers.ListEntities)
	e.Post("/", handlers.CreateEntity)
	e.Get("/:id", handlers.GetEntity)
	e.Post("/:id/transitions", handlers.TransitionEntity)
	e.Get("/:id/progress", handlers.GetEntityProgress)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
