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

// Package workflow defines the ordered list of stages that make up the
// account-mapping flow. The registry is fixed at construction time and is
// never mutated afterwards.
package workflow

import (
	"errors"
	"fmt"
)

// ErrNoSteps is returned when a registry is constructed or used with zero stages.
var ErrNoSteps = errors.New("workflow: registry has no steps")

// DefaultSteps is the reference stage sequence. Order is meaningful:
// index 0 is the first stage a session goes through.
var DefaultSteps = []string{
	"Upload File",
	"Map Accounts",
	"Review Results",
	"Finalize",
}

// Registry is an immutable, ordered sequence of stage names.
type Registry struct {
	steps []string
}

// New creates a registry from the given stage names. The input slice is
// copied so later mutation by the caller cannot affect the registry.
func New(steps []string) (*Registry, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	owned := make([]string, len(steps))
	copy(owned, steps)
	return &Registry{steps: owned}, nil
}

// Default returns a registry over DefaultSteps.
func Default() *Registry {
	r, _ := New(DefaultSteps)
	return r
}

// Steps returns a copy of the ordered stage names.
func (r *Registry) Steps() []string {
	out := make([]string, len(r.steps))
	copy(out, r.steps)
	return out
}

// Count returns the number of stages.
func (r *Registry) Count() int {
	return len(r.steps)
}

// Name returns the stage name at the given zero-based index.
func (r *Registry) Name(index int) (string, error) {
	if index < 0 || index >= len(r.steps) {
		return "", fmt.Errorf("workflow: step index %d out of range [0, %d)", index, len(r.steps))
	}
	return r.steps[index], nil
}
