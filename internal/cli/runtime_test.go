package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapflow-dev/mapflow/internal/session/memory"
	"github.com/mapflow-dev/mapflow/internal/session/sqlite"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "test", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("store", "", "")
	cmd.Flags().String("session", "", "")
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return cmd
}

func TestNewRuntimeDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	rt, err := NewRuntime(newTestCommand(t))
	require.NoError(t, err)
	assert.Equal(t, 4, rt.Registry.Count())
	assert.Equal(t, "default", rt.SessionID)
	assert.Empty(t, rt.StorePath)

	store, err := rt.OpenStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	assert.IsType(t, &memory.Store{}, store)
}

func TestNewRuntimeFlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "mapflow.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
apiVersion: v1-alpha.1
session:
  default: from-manifest
store:
  path: `+filepath.Join(dir, "manifest.db")+`
`), 0o644))

	dbPath := filepath.Join(dir, "flag.db")
	cmd := newTestCommand(t,
		"--config", configPath,
		"--store", dbPath,
		"--session", "from-flag",
	)

	rt, err := NewRuntime(cmd)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", rt.SessionID)
	assert.Equal(t, dbPath, rt.StorePath)

	store, err := rt.OpenStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	assert.IsType(t, &sqlite.Store{}, store)
}

func TestPresenterClampPrecedence(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	rt, err := NewRuntime(newTestCommand(t))
	require.NoError(t, err)

	// Default is passthrough.
	p, err := rt.Presenter(false)
	require.NoError(t, err)
	require.NotNil(t, p)

	// Flag opts in.
	p, err = rt.Presenter(true)
	require.NoError(t, err)
	require.NotNil(t, p)
}
