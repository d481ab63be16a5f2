// Package set implements the workflow driver commands that move a session's
// current step. These commands write the integer as given: stepping outside
// the registry range is allowed and left for status to make visible.
package set

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/mapflow-dev/mapflow/internal/cli"
	"github.com/mapflow-dev/mapflow/internal/logging"
	"github.com/mapflow-dev/mapflow/internal/session"
	"github.com/mapflow-dev/mapflow/internal/ui"
)

// New creates the set sub-command for the CLI.
func New() *cobra.Command {
	setCommand := &cobra.Command{
		Use:   "set [step]",
		Short: "Set the session's current step",
		Long: `Set the session's current step to a zero-based index or a stage name.
With no argument, an interactive stage picker is shown.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one step argument, received %d: %v", len(args), args)
			}
			return nil
		},
		RunE: runSet,
		Example: `
# Jump straight to the review stage by index
mapflow set 2

# Or by stage name
mapflow set "Review Results"

# Pick the stage interactively
mapflow set`,
	}

	return setCommand
}

// NewAdvance creates the advance sub-command for the CLI.
func NewAdvance() *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance the session to the next step",
		Long:  `Increment the session's current step by one.`,
		Args:  cobra.NoArgs,
		RunE:  runAdvance,
		Example: `
# Move the default session one stage forward
mapflow advance`,
	}
}

// resolveStep interprets the argument as a zero-based index or a stage name.
func resolveStep(rt *cli.Runtime, arg string) (int, error) {
	if step, err := cast.ToIntE(arg); err == nil {
		return step, nil
	}

	for i, name := range rt.Registry.Steps() {
		if name == arg {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q: not an integer or a stage name", arg)
}

// pickStep runs the interactive stage picker.
func pickStep(rt *cli.Runtime) (int, error) {
	var picked string
	form := ui.StagePicker(
		"Current stage",
		fmt.Sprintf("Which stage is session %q on?", rt.SessionID),
		rt.Registry.Steps(),
		&picked,
	)
	if err := form.Run(); err != nil {
		return 0, fmt.Errorf("stage selection aborted: %w", err)
	}
	return strconv.Atoi(picked)
}

func runSet(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	rt, err := cli.NewRuntime(cmd)
	if err != nil {
		return err
	}

	var step int
	if len(args) == 1 {
		step, err = resolveStep(rt, args[0])
	} else {
		if !ui.IsTerminal() {
			return fmt.Errorf("a step argument is required when not running interactively")
		}
		step, err = pickStep(rt)
	}
	if err != nil {
		return err
	}

	store, err := rt.OpenStore()
	if err != nil {
		return err
	}
	defer store.Close()

	write := func(ctx context.Context) error {
		return store.Set(ctx, rt.SessionID, session.KeyCurrentStep, strconv.Itoa(step))
	}

	if ui.IsTerminal() {
		err = spinner.New().
			Title(fmt.Sprintf("Updating session '%s'...", rt.SessionID)).
			Context(cmd.Context()).
			ActionWithErr(write).
			Run()
	} else {
		err = write(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to update current step: %w", err)
	}

	if name, nameErr := rt.Registry.Name(step); nameErr == nil {
		logger.Info("Current step updated", "session", rt.SessionID, "step", step, "stage", name)
	} else {
		logger.Warn("Current step set outside the registry range", "session", rt.SessionID, "step", step)
	}

	return nil
}

func runAdvance(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	rt, err := cli.NewRuntime(cmd)
	if err != nil {
		return err
	}

	// Advance reads the raw index, so an out-of-range session keeps moving
	// rather than snapping back into range.
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

	next := step + 1
	if err := store.Set(cmd.Context(), rt.SessionID, session.KeyCurrentStep, strconv.Itoa(next)); err != nil {
		return fmt.Errorf("failed to advance current step: %w", err)
	}

	if name, nameErr := rt.Registry.Name(next); nameErr == nil {
		logger.Info("Session advanced", "session", rt.SessionID, "step", next, "stage", name)
	} else {
		logger.Warn("Session advanced past the last stage", "session", rt.SessionID, "step", next)
	}

	return nil
}
