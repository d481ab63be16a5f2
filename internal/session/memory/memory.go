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

// Package memory provides an in-process session.Store, used by tests and by
// one-shot invocations that do not need durable state.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mapflow-dev/mapflow/internal/session"
)

type record struct {
	values    map[string]string
	updatedAt time.Time
}

// Store is an in-memory session.Store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*record
	closed   bool
	now      func() time.Time
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		sessions: make(map[string]*record),
		now:      time.Now,
	}
}

func (s *Store) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", false, session.ErrStoreClosed
	}

	rec, ok := s.sessions[sessionID]
	if !ok {
		return "", false, nil
	}
	value, ok := rec.values[key]
	return value, ok, nil
}

func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return session.ErrStoreClosed
	}

	rec, ok := s.sessions[sessionID]
	if !ok {
		rec = &record{values: make(map[string]string)}
		s.sessions[sessionID] = rec
	}
	rec.values[key] = value
	rec.updatedAt = s.now()
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return session.ErrStoreClosed
	}

	if rec, ok := s.sessions[sessionID]; ok {
		delete(rec.values, key)
		rec.updatedAt = s.now()
	}
	return nil
}

func (s *Store) Sessions(ctx context.Context) ([]session.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, session.ErrStoreClosed
	}

	infos := make([]session.Info, 0, len(s.sessions))
	for id, rec := range s.sessions {
		infos = append(infos, session.Info{
			ID:        id,
			Keys:      len(rec.values),
			UpdatedAt: rec.updatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
