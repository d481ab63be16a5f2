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

// Package sqlite provides a durable session.Store backed by a local SQLite
// database, so session state survives across invocations.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mapflow-dev/mapflow/internal/session"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_state (
	session_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (session_id, key)
);
`

// Store implements session.Store on top of SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, session.ErrStoreClosed
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_state WHERE session_id = ? AND key = ?`,
		sessionID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %q for session %q: %w", key, sessionID, err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	if s == nil || s.db == nil {
		return session.ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO session_state (session_id, key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (session_id, key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		sessionID, key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("write %q for session %q: %w", key, sessionID, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID, key string) error {
	if s == nil || s.db == nil {
		return session.ErrStoreClosed
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_state WHERE session_id = ? AND key = ?`,
		sessionID, key,
	)
	if err != nil {
		return fmt.Errorf("delete %q for session %q: %w", key, sessionID, err)
	}
	return nil
}

func (s *Store) Sessions(ctx context.Context) ([]session.Info, error) {
	if s == nil || s.db == nil {
		return nil, session.ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, COUNT(*), MAX(updated_at)
		 FROM session_state
		 GROUP BY session_id
		 ORDER BY session_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var infos []session.Info
	for rows.Next() {
		var info session.Info
		var updated int64
		if err := rows.Scan(&info.ID, &info.Keys, &updated); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		info.UpdatedAt = time.Unix(updated, 0)
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return infos, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
