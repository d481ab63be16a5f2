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

// Package session defines the key-value session-state store consumed by the
// progress presenter and written by the workflow driver commands. A store is
// owned by the hosting application; the presenter only ever reads from it.
package session

import (
	"context"
	"errors"
	"time"
)

// KeyCurrentStep is the session key holding the zero-based index of the
// active workflow stage.
const KeyCurrentStep = "current_step"

// DefaultSessionID is used when the caller does not name a session.
const DefaultSessionID = "default"

// ErrStoreClosed is returned by operations on a store after Close.
var ErrStoreClosed = errors.New("session: store is closed")

// Info describes one known session.
type Info struct {
	ID        string    `json:"id"`
	Keys      int       `json:"keys"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is a per-session string key-value store.
//
// Get reports whether the key was present; an absent key is not an error.
// Implementations must be safe for use from a single goroutine per session,
// matching the single-owner session model.
type Store interface {
	Get(ctx context.Context, sessionID, key string) (value string, ok bool, err error)
	Set(ctx context.Context, sessionID, key, value string) error
	Delete(ctx context.Context, sessionID, key string) error
	Sessions(ctx context.Context) ([]Info, error)
	Close() error
}
