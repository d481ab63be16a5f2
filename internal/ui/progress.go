package ui

import (
	"fmt"

	"github.com/mapflow-dev/mapflow/internal/workflow"
)

// ProgressTracker helps track steps during interactive flows
type ProgressTracker struct {
	currentStep int
	registry    *workflow.Registry
}

// NewProgressTracker creates a tracker over the given registry.
func NewProgressTracker(registry *workflow.Registry) *ProgressTracker {
	return &ProgressTracker{registry: registry}
}

// NextStep increments the current step
func (pt *ProgressTracker) NextStep() { pt.currentStep++ }

// GetCurrentStep returns a "Step X/N: name" label for the current step, or
// "Complete" once the tracker has moved past the last stage.
func (pt *ProgressTracker) GetCurrentStep() string {
	name, err := pt.registry.Name(pt.currentStep)
	if err != nil {
		return "Complete"
	}
	return fmt.Sprintf("Step %d/%d: %s", pt.currentStep+1, pt.registry.Count(), name)
}
