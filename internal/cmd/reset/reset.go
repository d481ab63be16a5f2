// Package reset implements the command that clears a session's step state.
package reset

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapflow-dev/mapflow/internal/cli"
	"github.com/mapflow-dev/mapflow/internal/logging"
	"github.com/mapflow-dev/mapflow/internal/session"
)

// New creates the reset sub-command for the CLI.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the session to the first stage",
		Long:  `Delete the session's current_step key. The next render falls back to the first stage.`,
		Args:  cobra.NoArgs,
		RunE:  runReset,
		Example: `
# Send the default session back to the first stage
mapflow reset

# Reset a named session
mapflow reset --session reviewer`,
	}
}

func runReset(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	rt, err := cli.NewRuntime(cmd)
	if err != nil {
		return err
	}

	store, err := rt.OpenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), rt.SessionID, session.KeyCurrentStep); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}

	logger.Info("Session reset to first stage", "session", rt.SessionID)
	return nil
}
