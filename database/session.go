/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/uptrace/bun"
)

// Session is a request-scoped handle to the relational store. A read-only
// session executes statements directly against the connection pool; a
// transactional session runs every statement inside one transaction that is
// finalized exactly once by Close.
//
// Repositories bound to a session stage writes but never commit: the session
// alone decides between commit and rollback, so multiple repository calls
// inside one request form a single atomic unit of work.
type Session struct {
	db            bun.IDB
	tx            *bun.Tx
	transactional bool
	closeOnce     sync.Once
	closeErr      error
}

// NewSession returns a read-only session on top of the given database.
func NewSession(db *bun.DB) *Session {
	return &Session{db: db}
}

// BeginSession opens a transactional session. The transaction starts
// immediately; the caller must always invoke Close.
func BeginSession(ctx context.Context, db *bun.DB) (*Session, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Session{db: tx, tx: &tx, transactional: true}, nil
}

// DB returns the handle repositories should issue statements through:
// the bare connection for read-only sessions, the open transaction for
// transactional ones.
func (s *Session) DB() bun.IDB {
	return s.db
}

// Transactional reports whether the session owns an open transaction.
func (s *Session) Transactional() bool {
	return s.transactional
}

// Close finalizes the session: commit when cause is nil, rollback otherwise.
// It is idempotent; only the first call decides the outcome. Read-only
// sessions release without further action.
func (s *Session) Close(cause error) error {
	s.closeOnce.Do(func() {
		if !s.transactional || s.tx == nil {
			return
		}
		if cause != nil {
			if err := s.tx.Rollback(); err != nil {
				s.closeErr = fmt.Errorf("failed to rollback transaction: %w", err)
			}
			return
		}
		if err := s.tx.Commit(); err != nil {
			s.closeErr = fmt.Errorf("failed to commit transaction: %w", err)
		}
	})
	return s.closeErr
}
