// Package steps implements the registry listing command.
package steps

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapflow-dev/mapflow/internal/cli"
	"github.com/mapflow-dev/mapflow/internal/logging"
	"github.com/mapflow-dev/mapflow/internal/ui"
)

// New creates the steps sub-command for the CLI.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the workflow stages",
		Long:  `List the workflow stages in order, marking each as done, active, or pending relative to the session's current step.`,
		Args:  cobra.NoArgs,
		RunE:  runSteps,
		Example: `
# List stages for the default session
mapflow steps

# List stages defined by a manifest
mapflow steps --config ./team/.mapflow.yaml`,
	}
}

func runSteps(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	rt, err := cli.NewRuntime(cmd)
	if err != nil {
		return err
	}

	presenter, err := rt.Presenter(false)
	if err != nil {
		return err
	}

	store, err := rt.OpenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	step, err := presenter.CurrentStep(cmd.Context(), store, rt.SessionID)
	if err != nil {
		return err
	}

	logger.Debug("Listing workflow stages", "session", rt.SessionID, "step", step)

	fmt.Fprint(cmd.OutOrStdout(), ui.StepTable(rt.Registry, step))
	return nil
}
