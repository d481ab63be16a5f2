package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrNoSteps)

	_, err = New([]string{})
	assert.ErrorIs(t, err, ErrNoSteps)
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	assert.Equal(t, 4, r.Count())
	assert.Equal(t, []string{"Upload File", "Map Accounts", "Review Results", "Finalize"}, r.Steps())
	assert.Len(t, r.Steps(), r.Count())

	// Count is stable across calls
	assert.Equal(t, r.Count(), r.Count())
}

func TestNewCopiesInput(t *testing.T) {
	steps := []string{"one", "two"}
	r, err := New(steps)
	require.NoError(t, err)

	steps[0] = "mutated"
	assert.Equal(t, []string{"one", "two"}, r.Steps())

	returned := r.Steps()
	returned[1] = "mutated"
	assert.Equal(t, []string{"one", "two"}, r.Steps())
}

func TestName(t *testing.T) {
	r := Default()

	tests := []struct {
		name     string
		index    int
		expected string
		wantErr  bool
	}{
		{name: "first stage", index: 0, expected: "Upload File"},
		{name: "last stage", index: 3, expected: "Finalize"},
		{name: "negative index", index: -1, wantErr: true},
		{name: "past the end", index: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Name(tt.index)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
