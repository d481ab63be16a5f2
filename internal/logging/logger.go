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

// Package logging configures the CLI logger and carries it through command
// contexts.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const (
	// LogTimeFormat is the timestamp format used in log output.
	LogTimeFormat = "15:04:05"

	// LogPrefix is the prefix shown before every log line.
	LogPrefix = "mapflow"
)

// SetupCharmLogger builds the process logger from the root command's flags
// and stores it in the command context. Quiet mode discards everything;
// otherwise the logger writes styled lines to stderr and feeds an in-process
// metrics collector.
func SetupCharmLogger(cmd *cobra.Command, logLevel string, noColor, quiet bool) error {
	if quiet {
		silent := log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
		cmd.SetContext(WithLogger(cmd.Context(), silent))
		return nil
	}

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	options := log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      LogTimeFormat,
		Prefix:          LogPrefix,
		// Caller locations only matter when debugging.
		ReportCaller: level == log.DebugLevel,
	}
	// color.NoColor also honors NO_COLOR and non-TTY stderr.
	if noColor || color.NoColor {
		options.Formatter = log.TextFormatter
	}

	logger := log.NewWithOptions(os.Stderr, options)
	logger.SetStyles(logStyles())

	observable := NewObservableLogger(logger)
	observable.AddHook(NewMetricsCollector())

	cmd.SetContext(WithObservableLogger(cmd.Context(), observable))
	return nil
}

// logStyles colors levels and the keys that recur in mapflow log lines.
func logStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.InfoLevel] = styles.Levels[log.InfoLevel].Foreground(lipgloss.Color("#00ff00"))
	styles.Levels[log.WarnLevel] = styles.Levels[log.WarnLevel].Foreground(lipgloss.Color("#ffff00"))
	styles.Levels[log.ErrorLevel] = styles.Levels[log.ErrorLevel].Foreground(lipgloss.Color("#ff0000"))
	styles.Levels[log.FatalLevel] = styles.Levels[log.FatalLevel].Foreground(lipgloss.Color("#ff0000")).Bold(true)

	for key, hex := range map[string]string{
		"session": "#00ffff",
		"step":    "#ff00ff",
		"store":   "#00ffff",
		"err":     "#ff0000",
	} {
		styles.Keys[key] = styles.Keys[key].Foreground(lipgloss.Color(hex))
	}

	return styles
}

// GetLogger returns the logger stored in the command context, or a default
// stderr logger when none was set up.
func GetLogger(cmd *cobra.Command) *log.Logger {
	if logger := From(cmd.Context()); logger != nil {
		return logger
	}
	return log.New(os.Stderr)
}

// GetObservableLogger returns the observable logger stored in the command
// context, or a hookless one when none was set up.
func GetObservableLogger(cmd *cobra.Command) *ObservableLogger {
	if logger := FromObservable(cmd.Context()); logger != nil {
		return logger
	}
	return NewObservableLogger(log.New(os.Stderr))
}
