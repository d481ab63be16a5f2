// Package initialize implements the interactive manifest creation command.
package initialize

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mapflow-dev/mapflow/internal/logging"
	"github.com/mapflow-dev/mapflow/internal/manifest"
	"github.com/mapflow-dev/mapflow/internal/session"
	"github.com/mapflow-dev/mapflow/internal/ui"
	"github.com/mapflow-dev/mapflow/internal/workflow"
)

// Dry-run mode constants
const (
	DryRunPreviewHeader = "=== DRY RUN MODE - PREVIEW OF GENERATED MANIFEST ===\n"
	DryRunPreviewFooter = "\n=== END PREVIEW ===\n\nThis is a preview. Use --dry-run=false to actually save the configuration."
)

// initFlowSteps are the stages of the init flow itself.
var initFlowSteps = []string{
	"Stages",
	"Store",
	"Session",
	"Summary",
}

// New creates the init sub-command for the CLI.
func New() *cobra.Command {
	initCommand := &cobra.Command{
		Use:   "init",
		Short: "Create a .mapflow.yaml manifest interactively",
		Long:  `Walk through the workflow stages, store location, and session defaults, and write them to a manifest file.`,
		Args:  cobra.NoArgs,
		RunE:  runInit,
		Example: `
# Create .mapflow.yaml in the current directory
mapflow init

# Preview without writing
mapflow init --dry-run

# Write to another location
mapflow init --output ./team/.mapflow.yaml`,
	}

	initCommand.Flags().BoolP("dry-run", "d", false, "Preview the generated manifest without saving")
	initCommand.Flags().StringP("output", "o", manifest.DefaultManifestPath, "Path to write the manifest to")

	return initCommand
}

// validateStages checks the comma-separated stage list.
func validateStages(value string) error {
	if len(splitStages(value)) == 0 {
		return fmt.Errorf("at least one stage is required")
	}
	return nil
}

func splitStages(value string) []string {
	var stages []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			stages = append(stages, trimmed)
		}
	}
	return stages
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger(cmd)

	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}

	flowRegistry, err := workflow.New(initFlowSteps)
	if err != nil {
		return err
	}
	tracker := ui.NewProgressTracker(flowRegistry)

	m := manifest.Defaults()

	// Stage list
	stagesValue := strings.Join(workflow.DefaultSteps, ", ")
	stagesForm := ui.InputForm(
		tracker.GetCurrentStep(),
		"Upload File, Map Accounts, ...",
		"Comma-separated, in workflow order.",
		validateStages,
		&stagesValue,
	)
	if err := stagesForm.Run(); err != nil {
		return fmt.Errorf("failed to collect stages: %w", err)
	}
	m.Steps = splitStages(stagesValue)
	tracker.NextStep()

	// Store location
	storePath := ""
	storeForm := ui.InputForm(
		tracker.GetCurrentStep(),
		".mapflow/sessions.db",
		"SQLite database for session state. Leave empty for in-memory.",
		nil,
		&storePath,
	)
	if err := storeForm.Run(); err != nil {
		return fmt.Errorf("failed to collect store path: %w", err)
	}
	m.Store.Path = strings.TrimSpace(storePath)
	tracker.NextStep()

	// Session defaults
	sessionID := session.DefaultSessionID
	clamp := false
	sessionForm := huh.NewForm(
		ui.InputGroup(
			tracker.GetCurrentStep(),
			session.DefaultSessionID,
			"Session ID used when --session is not given.",
			func(value string) error {
				if strings.TrimSpace(value) == "" {
					return fmt.Errorf("session ID cannot be empty")
				}
				return nil
			},
			&sessionID,
		),
		ui.ConfirmGroup(
			"Clamp step indices?",
			"Clamping keeps out-of-range indices inside the stage range instead of rendering them as-is.",
			"Clamp",
			"Pass through",
			&clamp,
		),
	)
	if err := sessionForm.Run(); err != nil {
		return fmt.Errorf("failed to collect session defaults: %w", err)
	}
	m.Session.Default = strings.TrimSpace(sessionID)
	m.Clamp = clamp
	tracker.NextStep()

	// Summary
	if dryRun {
		data, err := yaml.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to render manifest preview: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), DryRunPreviewHeader)
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		fmt.Fprintln(cmd.OutOrStdout(), DryRunPreviewFooter)
		return nil
	}

	confirmed := true
	confirmForm := ui.ConfirmForm(
		tracker.GetCurrentStep(),
		fmt.Sprintf("Write manifest to %q?", outputPath),
		"Save",
		"Cancel",
		&confirmed,
	)
	if err := confirmForm.Run(); err != nil {
		return fmt.Errorf("failed to confirm save: %w", err)
	}
	if !confirmed {
		logger.Info("Manifest not saved")
		return nil
	}

	if err := manifest.Save(m, outputPath); err != nil {
		return err
	}

	logger.Info("Manifest saved", "file", outputPath, "stages", len(m.Steps))
	return nil
}
