// Copyright 2026 Dataflow Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package history persists tool invocations to a local SQLite
// database so past runs can be inspected after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Invocation is one recorded tool call.
type Invocation struct {
	ID        string
	Tool      string
	Success   bool
	Error     string
	ElapsedMs int64
	At        time.Time
}

// Store is an append-only invocation log backed by SQLite. Safe for
// concurrent use; database/sql serializes access to the single
// connection modernc.org/sqlite provides.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id         TEXT PRIMARY KEY,
	tool       TEXT NOT NULL,
	success    INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	elapsed_ms INTEGER NOT NULL DEFAULT 0,
	at         TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocations_at ON invocations(at);
`

// Open opens (creating if needed) the invocation log at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create history directory: %w", err)
			}
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one invocation.
func (s *Store) Record(ctx context.Context, inv Invocation) error {
	if inv.At.IsZero() {
		inv.At = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (id, tool, success, error, elapsed_ms, at) VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Tool, inv.Success, inv.Error, inv.ElapsedMs, inv.At)
	if err != nil {
		return fmt.Errorf("record invocation: %w", err)
	}
	return nil
}

// Recent returns up to n invocations, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Invocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tool, success, error, elapsed_ms, at FROM invocations ORDER BY at DESC, id LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		if err := rows.Scan(&inv.ID, &inv.Tool, &inv.Success, &inv.Error, &inv.ElapsedMs, &inv.At); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
