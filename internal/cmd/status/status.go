// Package status implements the one-shot progress display command.
package status

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mapflow-dev/mapflow/internal/cli"
	"github.com/mapflow-dev/mapflow/internal/logging"
	"github.com/mapflow-dev/mapflow/internal/ui"
)

// New creates the status sub-command for the CLI.
func New() *cobra.Command {
	statusCommand := &cobra.Command{
		Use:   "status",
		Short: "Display progress for a session",
		Long: `Display the "Step X of N" label and progress bar for a session.
The step index is read from the session store as-is: an index outside the
registry range renders outside the usual bounds unless --clamp is given.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			outputFormat, err := cmd.Flags().GetString("output")
			if err != nil {
				return fmt.Errorf("failed to get output format: %w", err)
			}

			if !slices.Contains(cli.OutputFormats, outputFormat) {
				return fmt.Errorf("invalid output format: '%s', must be one of: %s", outputFormat, strings.Join(cli.OutputFormats, ", "))
			}

			return nil
		},
		RunE: runStatus,
		Example: `
# Show progress for the default session
mapflow status

# Show progress for a named session from the shared store
mapflow status --session reviewer --store /var/lib/mapflow/sessions.db

# Machine-readable output
mapflow status --output json

# Clamp an out-of-range index into the registry range
mapflow status --clamp`,
	}

	statusCommand.Flags().String("output", cli.OutputFormatTable, "Output format: table, json")
	statusCommand.Flags().Bool("clamp", false, "Clamp the step index into the registry range")
	statusCommand.Flags().Int("width", 0, "Progress bar width in cells (0 = auto)")

	return statusCommand
}

// RenderOnce performs a single read-and-render pass with default options.
// It backs the bare `mapflow` invocation.
func RenderOnce(cmd *cobra.Command, args []string) error {
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

	return presenter.Show(cmd.Context(), store, rt.SessionID, ui.NewBarSink(cmd.OutOrStdout(), 0))
}

func runStatus(cmd *cobra.Command, args []string) error {
	logger := logging.GetObservableLogger(cmd)

	rt, err := cli.NewRuntime(cmd)
	if err != nil {
		return err
	}

	clamp, err := cmd.Flags().GetBool("clamp")
	if err != nil {
		return fmt.Errorf("failed to get clamp flag: %w", err)
	}

	outputFormat, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output format: %w", err)
	}

	width, err := cmd.Flags().GetInt("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}

	presenter, err := rt.Presenter(clamp)
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

	logger.Debug("Rendering session progress", "session", rt.SessionID, "step", step)

	switch outputFormat {
	case cli.OutputFormatJSON:
		sink := ui.NewJSONSink(cmd.OutOrStdout())
		if err := presenter.Render(step, sink); err != nil {
			return err
		}
		if err := sink.Flush(); err != nil {
			return err
		}
	default:
		sink := ui.NewBarSink(cmd.OutOrStdout(), width)
		if err := presenter.Render(step, sink); err != nil {
			return err
		}
	}

	logger.Metric(cmd.Context(), "mapflow.render.count", 1, map[string]string{"output": outputFormat})

	return nil
}
