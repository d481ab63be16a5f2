// Copyright 2026 The Mapflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd provides the commands for the mapflow application.
package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mapflow-dev/mapflow/internal/cmd/initialize"
	"github.com/mapflow-dev/mapflow/internal/cmd/reset"
	"github.com/mapflow-dev/mapflow/internal/cmd/sessions"
	"github.com/mapflow-dev/mapflow/internal/cmd/set"
	"github.com/mapflow-dev/mapflow/internal/cmd/status"
	"github.com/mapflow-dev/mapflow/internal/cmd/steps"
	"github.com/mapflow-dev/mapflow/internal/logging"
)

const (
	// ExitError is the exit code used when the application encounters an error.
	ExitError = 1

	// ExitTimedOut is the exit code used when the application times out.
	ExitTimedOut = 124
)

// NewRootCommand creates the root command for the mapflow application.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mapflow",
		Short: "Mapflow tracks progress through the account-mapping workflow",
		Long: `Mapflow reads the current step of an account-mapping session from a
session-state store and renders it as a label and a proportional progress bar.
The workflow stages come from a built-in registry or a .mapflow.yaml manifest.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		// Bare `mapflow` performs one read-and-render pass.
		Args: cobra.NoArgs,
		RunE: status.RenderOnce,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			// .env values back the MAPFLOW_* overrides; a missing file is fine.
			_ = godotenv.Load()

			logLevel, _ := cmd.Flags().GetString("log-level")
			noColor, _ := cmd.Flags().GetBool("no-color")
			quiet, _ := cmd.Flags().GetBool("quiet")

			// When quiet is true, suppress usage and error output from cobra.
			cmd.SilenceErrors = quiet
			cmd.SilenceUsage = true

			return logging.SetupCharmLogger(cmd, logLevel, noColor, quiet)
		},
	}

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "Set the logging level (debug|info|warn|error|fatal)")
	rootCmd.PersistentFlags().Bool("no-color", false, "If specified, output won't contain any color.")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Quiet or silent mode. Do not show logs or error messages.")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the mapflow manifest (default .mapflow.yaml)")
	rootCmd.PersistentFlags().String("store", "", "Path to the SQLite session store (default in-memory)")
	rootCmd.PersistentFlags().StringP("session", "s", "", "Session ID to operate on (default from manifest)")

	return rootCmd
}

// Execute is the main entry point for the mapflow application.
func Execute() {
	rootCmd := NewRootCommand()
	rootCmd.AddCommand(
		status.New(),
		steps.New(),
		set.New(),
		set.NewAdvance(),
		reset.New(),
		sessions.New(),
		initialize.New(),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := fang.Execute(ctx, rootCmd); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			os.Exit(ExitTimedOut)
		}

		os.Exit(ExitError)
	}
}
