// Package sessions implements the session listing command.
package sessions

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mapflow-dev/mapflow/internal/cli"
	"github.com/mapflow-dev/mapflow/internal/logging"
	"github.com/mapflow-dev/mapflow/internal/ui"
)

// New creates the sessions sub-command for the CLI.
func New() *cobra.Command {
	sessionsCommand := &cobra.Command{
		Use:   "sessions",
		Short: "List known sessions",
		Long:  `List every session in the store with its current stage and last update time.`,
		Args:  cobra.NoArgs,
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
		RunE: runSessions,
		Example: `
# List sessions in the shared store
mapflow sessions --store /var/lib/mapflow/sessions.db

# Machine-readable output
mapflow sessions --output json`,
	}

	sessionsCommand.Flags().String("output", cli.OutputFormatTable, "Output format: table, json")

	return sessionsCommand
}

// sessionView is the rendered form of one session.
type sessionView struct {
	ID    string `json:"id"`
	Step  int    `json:"step"`
	Stage string `json:"stage,omitempty"`
	Age   string `json:"age"`
}

func runSessions(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	rt, err := cli.NewRuntime(cmd)
	if err != nil {
		return err
	}

	outputFormat, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output format: %w", err)
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

	infos, err := store.Sessions(cmd.Context())
	if err != nil {
		return err
	}

	logger.Debug("Listing sessions", "count", len(infos))

	views := make([]sessionView, 0, len(infos))
	for _, info := range infos {
		step, err := presenter.CurrentStep(cmd.Context(), store, info.ID)
		if err != nil {
			// A corrupt session should not hide the rest of the listing.
			logger.Warn("Skipping session with unreadable state", "session", info.ID, "err", err)
			continue
		}

		view := sessionView{
			ID:   info.ID,
			Step: step,
			Age:  humanize.Time(info.UpdatedAt),
		}
		if name, nameErr := rt.Registry.Name(step); nameErr == nil {
			view.Stage = name
		}
		views = append(views, view)
	}

	if outputFormat == cli.OutputFormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	rows := make([]ui.Row, 0, len(views))
	for _, view := range views {
		stage := view.Stage
		if stage == "" {
			stage = fmt.Sprintf("(out of range: %d)", view.Step)
		}
		rows = append(rows, ui.Row{
			"session": view.ID,
			"step":    strconv.Itoa(view.Step + 1),
			"stage":   stage,
			"age":     view.Age,
		})
	}

	table := ui.NewTable().
		SetColumns([]ui.Column{
			{Title: "SESSION", Key: "session"},
			{Title: "STEP", Key: "step"},
			{Title: "STAGE", Key: "stage"},
			{Title: "UPDATED", Key: "age"},
		}).
		SetRows(rows)
	fmt.Fprint(cmd.OutOrStdout(), table.Render())

	return nil
}
