package main

import (
	"context"
	"fmt"

	"github.com/stageflow/stageflow/pkg/cmd"
	"github.com/stageflow/stageflow/pkg/log"
	"github.com/stageflow/stageflow/pkg/workflow"
	"github.com/urfave/cli/v3"
)

func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"l"},
		Usage:   "List registered workflows and their states",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "definitions-path",
				Usage:   "Directory with extra workflow definition JSON files",
				Sources: cli.EnvVars("DEFINITIONS_PATH"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			logger := log.WithModule("list")

			reg, err := cmd.NewRegistry(logger, command.String("definitions-path"))
			if err != nil {
				return err
			}

			for _, def := range reg.Definitions() {
				fmt.Printf("\nWorkflow: %s (%s) v%d\n", def.Name, def.ID, def.Version)

				for _, state := range workflow.AllStatesSorted(def) {
					marker := ""
					if state.Terminal() {
						marker = " [terminal]"
					}

					if state.RequiresNote {
						marker += " [note required]"
					}

					if state.Automated {
						marker += " [automated]"
					}

					fmt.Printf("  %2d. %-24s stage=%-8s -> %v%s\n",
						state.Order, state.Key, state.Stage, state.NextStates, marker)
				}
			}

			return nil
		},
	}
}
