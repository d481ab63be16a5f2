package ui

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONSink collects the rendered label and fraction and emits them as one
// JSON object. It implements progress.Sink.
type JSONSink struct {
	out io.Writer

	label    string
	fraction float64
	hasValue bool
}

// NewJSONSink creates a JSON sink writing to out.
func NewJSONSink(out io.Writer) *JSONSink {
	return &JSONSink{out: out}
}

func (j *JSONSink) WriteText(text string) error {
	j.label = text
	return nil
}

func (j *JSONSink) WriteProgress(fraction float64) error {
	j.fraction = fraction
	j.hasValue = true
	return nil
}

// Flush writes the collected output. It must be called after the render
// pass; rendering alone only accumulates.
func (j *JSONSink) Flush() error {
	if !j.hasValue && j.label == "" {
		return fmt.Errorf("nothing rendered")
	}

	payload := struct {
		Label    string  `json:"label"`
		Fraction float64 `json:"fraction"`
	}{
		Label:    j.label,
		Fraction: j.fraction,
	}

	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return nil
}
