package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/stageflow/stageflow/pkg/definitions"
	"github.com/stageflow/stageflow/pkg/log"
	"github.com/stageflow/stageflow/pkg/workflow"
	"github.com/urfave/cli/v3"
)

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate workflow definition files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "definitions-path",
				Usage:    "Directory with workflow definition JSON files",
				Required: true,
				Sources:  cli.EnvVars("DEFINITIONS_PATH"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			logger := log.WithModule("validate")

			loader, err := definitions.NewLoader(logger)
			if err != nil {
				return err
			}

			fmt.Println("Definition Validation Results:")
			fmt.Println("==============================")

			defs, err := loader.LoadDir(command.String("definitions-path"))
			if err != nil {
				var defErr *workflow.DefinitionError
				if errors.As(err, &defErr) {
					fmt.Printf("\nWorkflow: %s\n", defErr.DefinitionID)

					for _, violation := range defErr.Violations {
						fmt.Printf("    ❌ INVALID: %s\n", violation)
					}

					return fmt.Errorf("found %d violations", len(defErr.Violations))
				}

				return err
			}

			for _, def := range defs {
				fmt.Printf("\nWorkflow: %s (%s)\n", def.Name, def.ID)
				fmt.Printf("    ✅ VALID: %d states\n", len(def.States))
			}

			fmt.Printf("\nValidation Summary:\n")
			fmt.Printf("  Total definitions: %d\n", len(defs))
			fmt.Printf("  Valid definitions: %d\n", len(defs))

			return nil
		},
	}
}
