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

// Package progress derives the active step index from session state and
// renders it as a label plus a proportional fraction. The presenter holds no
// state of its own: each render pass reads, computes, and writes once.
package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/mapflow-dev/mapflow/internal/session"
	"github.com/mapflow-dev/mapflow/internal/workflow"
	"github.com/spf13/cast"
)

// ErrInvalidState is returned when the stored current_step value cannot be
// interpreted as an integer. It is never coerced to 0, since that would mask
// bugs in whatever advanced the session.
var ErrInvalidState = errors.New("progress: current_step is not an integer")

// Sink is the rendering surface the presenter writes to. Implementations
// live in internal/ui.
type Sink interface {
	WriteText(text string) error
	WriteProgress(fraction float64) error
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithClamp makes CurrentStep clamp the stored index into [0, Count()-1].
// The default is passthrough: out-of-range values are returned unchanged,
// which keeps a misbehaving workflow driver visible in the rendered output.
func WithClamp() Option {
	return func(p *Presenter) { p.clamp = true }
}

// Presenter renders step progress for one registry.
type Presenter struct {
	registry *workflow.Registry
	clamp    bool
}

// New creates a presenter over the given registry.
func New(registry *workflow.Registry, opts ...Option) (*Presenter, error) {
	if registry == nil || registry.Count() == 0 {
		return nil, workflow.ErrNoSteps
	}

	p := &Presenter{registry: registry}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Registry returns the registry the presenter renders against.
func (p *Presenter) Registry() *workflow.Registry {
	return p.registry
}

// CurrentStep reads the active step index for the session. An absent key
// means the session is on the first stage, index 0. Store failures and
// non-integer values propagate to the caller.
func (p *Presenter) CurrentStep(ctx context.Context, store session.Store, sessionID string) (int, error) {
	value, ok, err := store.Get(ctx, sessionID, session.KeyCurrentStep)
	if err != nil {
		return 0, fmt.Errorf("read session state: %w", err)
	}
	if !ok {
		return 0, nil
	}

	step, err := cast.ToIntE(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidState, value)
	}

	if p.clamp {
		step = min(max(step, 0), p.registry.Count()-1)
	}
	return step, nil
}

// Render emits the "Step X of N" label and the completion fraction for the
// given step index. The label and fraction are computed from the raw index:
// an out-of-range step yields an out-of-range label and fraction, and Render
// does not correct that.
func (p *Presenter) Render(step int, sink Sink) error {
	count := p.registry.Count()
	if count == 0 {
		return workflow.ErrNoSteps
	}

	fraction := float64(step+1) / float64(count)

	if err := sink.WriteText(fmt.Sprintf("Step %d of %d", step+1, count)); err != nil {
		return fmt.Errorf("write label: %w", err)
	}
	if err := sink.WriteProgress(fraction); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}

// Show performs one full pass: read the current step, then render it.
func (p *Presenter) Show(ctx context.Context, store session.Store, sessionID string, sink Sink) error {
	step, err := p.CurrentStep(ctx, store, sessionID)
	if err != nil {
		return err
	}
	return p.Render(step, sink)
}
