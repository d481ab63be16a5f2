package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapflow-dev/mapflow/internal/cmd/reset"
	"github.com/mapflow-dev/mapflow/internal/cmd/sessions"
	"github.com/mapflow-dev/mapflow/internal/cmd/set"
	"github.com/mapflow-dev/mapflow/internal/cmd/status"
	"github.com/mapflow-dev/mapflow/internal/cmd/steps"
	"github.com/mapflow-dev/mapflow/internal/session"
	"github.com/mapflow-dev/mapflow/internal/session/sqlite"
)

// runCommand executes the CLI against the given store and returns stdout.
func runCommand(t *testing.T, storePath string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand()
	root.AddCommand(
		status.New(),
		steps.New(),
		set.New(),
		set.NewAdvance(),
		reset.New(),
		sessions.New(),
	)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--quiet", "--store", storePath}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type progressPayload struct {
	Label    string  `json:"label"`
	Fraction float64 `json:"fraction"`
}

func statusJSON(t *testing.T, storePath string, extra ...string) progressPayload {
	t.Helper()

	args := append([]string{"status", "--output", "json"}, extra...)
	out, err := runCommand(t, storePath, args...)
	require.NoError(t, err)

	var payload progressPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	return payload
}

func testStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "sessions.db")
}

func TestBareInvocationRendersProgress(t *testing.T) {
	out, err := runCommand(t, testStorePath(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Step 1 of 4")
	assert.Contains(t, out, "25%")
}

func TestStatusEmptySession(t *testing.T) {
	payload := statusJSON(t, testStorePath(t))

	assert.Equal(t, "Step 1 of 4", payload.Label)
	assert.InDelta(t, 0.25, payload.Fraction, 1e-9)
}

func TestSetThenStatus(t *testing.T) {
	storePath := testStorePath(t)

	_, err := runCommand(t, storePath, "set", "3")
	require.NoError(t, err)

	payload := statusJSON(t, storePath)
	assert.Equal(t, "Step 4 of 4", payload.Label)
	assert.InDelta(t, 1.0, payload.Fraction, 1e-9)
}

func TestSetByStageName(t *testing.T) {
	storePath := testStorePath(t)

	_, err := runCommand(t, storePath, "set", "Review Results")
	require.NoError(t, err)

	payload := statusJSON(t, storePath)
	assert.Equal(t, "Step 3 of 4", payload.Label)
	assert.InDelta(t, 0.75, payload.Fraction, 1e-9)
}

func TestSetUnknownStage(t *testing.T) {
	_, err := runCommand(t, testStorePath(t), "set", "Nonsense Stage")
	assert.Error(t, err)
}

func TestOutOfRangePassthrough(t *testing.T) {
	storePath := testStorePath(t)

	_, err := runCommand(t, storePath, "set", "5")
	require.NoError(t, err)

	payload := statusJSON(t, storePath)
	assert.Equal(t, "Step 6 of 4", payload.Label)
	assert.InDelta(t, 1.5, payload.Fraction, 1e-9)
}

func TestOutOfRangeClampFlag(t *testing.T) {
	storePath := testStorePath(t)

	_, err := runCommand(t, storePath, "set", "5")
	require.NoError(t, err)

	payload := statusJSON(t, storePath, "--clamp")
	assert.Equal(t, "Step 4 of 4", payload.Label)
	assert.InDelta(t, 1.0, payload.Fraction, 1e-9)
}

func TestAdvance(t *testing.T) {
	storePath := testStorePath(t)

	_, err := runCommand(t, storePath, "advance")
	require.NoError(t, err)

	payload := statusJSON(t, storePath)
	assert.Equal(t, "Step 2 of 4", payload.Label)
	assert.InDelta(t, 0.5, payload.Fraction, 1e-9)
}

func TestResetReturnsToFirstStage(t *testing.T) {
	storePath := testStorePath(t)

	_, err := runCommand(t, storePath, "set", "2")
	require.NoError(t, err)

	_, err = runCommand(t, storePath, "reset")
	require.NoError(t, err)

	payload := statusJSON(t, storePath)
	assert.Equal(t, "Step 1 of 4", payload.Label)
	assert.InDelta(t, 0.25, payload.Fraction, 1e-9)
}

func TestStatusRejectsBadOutputFormat(t *testing.T) {
	_, err := runCommand(t, testStorePath(t), "status", "--output", "xml")
	assert.Error(t, err)
}

func TestStepsListsStages(t *testing.T) {
	out, err := runCommand(t, testStorePath(t), "steps")
	require.NoError(t, err)

	assert.Contains(t, out, "Upload File")
	assert.Contains(t, out, "Map Accounts")
	assert.Contains(t, out, "Review Results")
	assert.Contains(t, out, "Finalize")
}

func TestSessionsListing(t *testing.T) {
	storePath := testStorePath(t)

	_, err := runCommand(t, storePath, "--session", "alpha", "set", "1")
	require.NoError(t, err)
	_, err = runCommand(t, storePath, "--session", "bravo", "set", "3")
	require.NoError(t, err)

	out, err := runCommand(t, storePath, "sessions", "--output", "json")
	require.NoError(t, err)

	var views []struct {
		ID    string `json:"id"`
		Step  int    `json:"step"`
		Stage string `json:"stage"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "alpha", views[0].ID)
	assert.Equal(t, 1, views[0].Step)
	assert.Equal(t, "Map Accounts", views[0].Stage)
	assert.Equal(t, "bravo", views[1].ID)
	assert.Equal(t, "Finalize", views[1].Stage)
}

func TestStatusFailsOnCorruptState(t *testing.T) {
	storePath := testStorePath(t)

	// An external writer leaves a non-integer behind.
	store, err := sqlite.Open(storePath)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), "default", session.KeyCurrentStep, "not-a-number"))
	require.NoError(t, store.Close())

	_, err = runCommand(t, storePath, "status")
	assert.Error(t, err)
}
