package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mapflow.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingDefaultPathUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	m, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, APIVersionV1Alpha1, m.APIVersion)
	assert.Empty(t, m.Steps)
	assert.False(t, m.Clamp)
	assert.Equal(t, "default", m.Session.Default)

	registry, err := m.Registry()
	require.NoError(t, err)
	assert.Equal(t, 4, registry.Count())
}

func TestLoadMissingExplicitPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFullManifest(t *testing.T) {
	path := writeManifest(t, `
apiVersion: v1-alpha.1
steps:
  - Ingest
  - Transform
  - Publish
clamp: true
store:
  path: /tmp/mapflow/sessions.db
session:
  default: reviewer
`)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ingest", "Transform", "Publish"}, m.Steps)
	assert.True(t, m.Clamp)
	assert.Equal(t, "/tmp/mapflow/sessions.db", m.Store.Path)
	assert.Equal(t, "reviewer", m.Session.Default)

	registry, err := m.Registry()
	require.NoError(t, err)
	assert.Equal(t, 3, registry.Count())
}

func TestParseRejectsEmptySteps(t *testing.T) {
	_, err := Parse([]byte(`
apiVersion: v1-alpha.1
steps: []
`))
	assert.Error(t, err)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`
apiVersion: v1-alpha.1
stepz:
  - Upload File
`))
	assert.Error(t, err)
}

func TestParseRejectsMissingAPIVersion(t *testing.T) {
	_, err := Parse([]byte(`clamp: true`))
	assert.Error(t, err)
}

func TestParseRejectsUnknownAPIVersion(t *testing.T) {
	_, err := Parse([]byte(`apiVersion: v9`))
	assert.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvStorePath, "/var/lib/mapflow.db")
	t.Setenv(EnvDefaultSession, "imports")
	t.Setenv(EnvClamp, "true")

	m := Defaults()
	require.NoError(t, m.ApplyEnvOverrides())
	assert.Equal(t, "/var/lib/mapflow.db", m.Store.Path)
	assert.Equal(t, "imports", m.Session.Default)
	assert.True(t, m.Clamp)
}

func TestApplyEnvOverridesBadClamp(t *testing.T) {
	t.Setenv(EnvClamp, "definitely")

	m := Defaults()
	assert.Error(t, m.ApplyEnvOverrides())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapflow.yaml")

	m := Defaults()
	m.Steps = []string{"One", "Two"}
	m.Clamp = true
	require.NoError(t, Save(m, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, m.Steps, loaded.Steps)
	assert.True(t, loaded.Clamp)
}
