package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarSinkWriteText(t *testing.T) {
	var buf bytes.Buffer
	sink := NewBarSink(&buf, 10)

	require.NoError(t, sink.WriteText("Step 2 of 4"))
	assert.Contains(t, buf.String(), "Step 2 of 4")
}

func TestBarSinkWriteProgress(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		filled   int
		percent  string
	}{
		{name: "quarter", fraction: 0.25, filled: 2, percent: "25%"},
		{name: "full", fraction: 1.0, filled: 8, percent: "100%"},
		{name: "empty", fraction: 0.0, filled: 0, percent: "0%"},
		{name: "overflow keeps raw percent", fraction: 1.5, filled: 8, percent: "150%"},
		{name: "negative keeps raw percent", fraction: -0.25, filled: 0, percent: "-25%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := NewBarSink(&buf, 8)

			require.NoError(t, sink.WriteProgress(tt.fraction))

			out := buf.String()
			assert.Equal(t, tt.filled, strings.Count(out, BarFilledCell))
			assert.Contains(t, out, tt.percent)
		})
	}
}

func TestBarSinkDefaultsWidth(t *testing.T) {
	var buf bytes.Buffer
	sink := NewBarSink(&buf, 0)
	assert.Positive(t, sink.barWidth)
}
