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

// Package models declares the persisted entity types. Every model embeds
// TimestampModel and registers itself in the database model registry so the
// startup migration creates its table.
package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"github.com/tomoncle/colibri/types"
)

// TimestampModel carries the shared audit columns. CreatedAt is stamped on
// insert, UpdatedAt on every update; both are bun query hooks, so they apply
// no matter which repository method issued the statement.
type TimestampModel struct {
	CreatedAt time.Time  `bun:"created_at,nullzero,notnull" json:"created_at"`
	UpdatedAt *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

var _ bun.BeforeAppendModelHook = (*TimestampModel)(nil)

// BeforeAppendModel stamps audit timestamps before the query is rendered.
func (m *TimestampModel) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		if m.CreatedAt.IsZero() {
			m.CreatedAt = types.NowKST()
		}
	case *bun.UpdateQuery:
		now := types.NowKST()
		m.UpdatedAt = &now
	}
	return nil
}
