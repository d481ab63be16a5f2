package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mapflow-dev/mapflow/internal/manifest"
	"github.com/mapflow-dev/mapflow/internal/progress"
	"github.com/mapflow-dev/mapflow/internal/session"
	"github.com/mapflow-dev/mapflow/internal/session/memory"
	"github.com/mapflow-dev/mapflow/internal/session/sqlite"
	"github.com/mapflow-dev/mapflow/internal/workflow"
)

// Runtime resolves manifest, flags, and environment into the pieces a
// command needs. Precedence, lowest to highest: manifest file, MAPFLOW_*
// environment variables, command-line flags.
type Runtime struct {
	Manifest  *manifest.Manifest
	Registry  *workflow.Registry
	SessionID string
	StorePath string
}

// NewRuntime builds the runtime from the command's persistent flags.
func NewRuntime(cmd *cobra.Command) (*Runtime, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	m, err := manifest.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}
	if err := m.ApplyEnvOverrides(); err != nil {
		return nil, err
	}

	if storePath, err := cmd.Flags().GetString("store"); err == nil && storePath != "" {
		m.Store.Path = storePath
	}
	if sessionID, err := cmd.Flags().GetString("session"); err == nil && sessionID != "" {
		m.Session.Default = sessionID
	}

	registry, err := m.Registry()
	if err != nil {
		return nil, fmt.Errorf("failed to build step registry: %w", err)
	}

	return &Runtime{
		Manifest:  m,
		Registry:  registry,
		SessionID: m.Session.Default,
		StorePath: m.Store.Path,
	}, nil
}

// OpenStore opens the configured session store: SQLite when a path is set,
// otherwise the in-memory store. The caller owns Close.
func (r *Runtime) OpenStore() (session.Store, error) {
	if r.StorePath == "" {
		return memory.New(), nil
	}

	store, err := sqlite.Open(r.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store %q: %w", r.StorePath, err)
	}
	return store, nil
}

// Presenter builds the progress presenter. clampFlag forces clamping on top
// of whatever the manifest says; the default stays passthrough.
func (r *Runtime) Presenter(clampFlag bool) (*progress.Presenter, error) {
	var opts []progress.Option
	if clampFlag || r.Manifest.Clamp {
		opts = append(opts, progress.WithClamp())
	}
	return progress.New(r.Registry, opts...)
}
