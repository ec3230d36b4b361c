package main

import (
	"context"
	"os"

	"github.com/stageflow/stageflow/pkg/cmd"
	"github.com/stageflow/stageflow/pkg/log"
	"github.com/stageflow/stageflow/pkg/otelhelper"
	"github.com/stageflow/stageflow/pkg/sources/queue"
	"github.com/stageflow/stageflow/pkg/sources/schedule"
	cli "github.com/urfave/cli/v3"
)

const defaultPort = 9091

func main() {
	command := &cli.Command{
		Name:                  "stageflow-api",
		Usage:                 "Serve the status-workflow engine over HTTP",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "definitions-path",
				Usage:   "Directory with extra workflow definition JSON files",
				Sources: cli.EnvVars("DEFINITIONS_PATH"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus channel (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "redis-url",
				Usage:   "Redis URL for the automated transition queue (disabled when empty)",
				Sources: cli.EnvVars("REDIS_URL"),
			},
			&cli.StringFlag{
				Name:    "queue",
				Usage:   "Redis list the automated transition source consumes",
				Value:   "stageflow.transitions",
				Sources: cli.EnvVars("TRANSITION_QUEUE"),
			},
			&cli.StringFlag{
				Name:    "sweep-rules-file",
				Usage:   "YAML file with the cron spec and stale-entity sweep rules (disabled when empty)",
				Sources: cli.EnvVars("SWEEP_RULES_FILE"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Enable OTLP trace export",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing Stageflow API")

			if command.Bool("tracing") {
				tracerProvider, err := otelhelper.InitTracer(ctx, "stageflow-api")
				if err != nil {
					return err
				}

				defer func() {
					if err := tracerProvider.Shutdown(ctx); err != nil {
						logger.ErrorContext(ctx, "Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			reg, err := cmd.NewRegistry(logger, command.String("definitions-path"))
			if err != nil {
				return err
			}

			eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			entityStore := cmd.NewStore()
			defer func() {
				if err := entityStore.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close store", "error", err)
				}
			}()

			api := NewAPI(logger, reg, entityStore, eventBus)

			if redisURL := command.String("redis-url"); redisURL != "" {
				source, err := queue.NewSource(redisURL, command.String("queue"), api.EntityService(), logger)
				if err != nil {
					return err
				}

				if err := source.Start(ctx); err != nil {
					return err
				}

				defer func() {
					if err := source.Stop(); err != nil {
						logger.ErrorContext(ctx, "Failed to stop queue source", "error", err)
					}
				}()
			}

			// The store is in-process, so sweeping has to run inside the API
			// process to see its entities.
			if path := command.String("sweep-rules-file"); path != "" {
				rules, err := schedule.LoadRulesFile(path)
				if err != nil {
					return err
				}

				sweeper, err := schedule.NewSource(rules.Cron, rules.Rules, api.EntityService(), logger)
				if err != nil {
					return err
				}

				if err := sweeper.Start(ctx); err != nil {
					return err
				}

				defer sweeper.Stop()
			}

			return api.Start(command.Int("port"))
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
