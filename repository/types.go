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

package repository

import (
	"context"

	"github.com/tomoncle/colibri/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// CrudRepository defines basic CRUD operations for a generic entity type.
// Mutation methods stage changes against the bound session handle but never
// finalize a transaction; the owning session commits or rolls back.
type CrudRepository[T any] interface {
	GetOne(ctx context.Context, id any) (*T, error)

	GetAll(ctx context.Context, offset, limit int) ([]*T, error)

	List(ctx context.Context, filter *types.QueryFilter) ([]*T, error)

	Query(ctx context.Context, query string, args ...interface{}) ([]*T, error)

	Create(ctx context.Context, entity ...*T) error

	BulkInsert(ctx context.Context, entities []*T) error

	Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error

	Update(ctx context.Context, entity *T) error

	Delete(ctx context.Context, id any) error
}

// FilterRepository defines column-based lookups for a generic entity type.
type FilterRepository[T any] interface {
	// FilterBy returns all entities whose columns equal the given values.
	FilterBy(ctx context.Context, fields map[string]interface{}) ([]*T, error)

	// FilterByOne returns the first entity matching the given values.
	FilterByOne(ctx context.Context, fields map[string]interface{}) (*T, error)

	// Count returns the number of entities matching the given values; an
	// empty map counts every row.
	Count(ctx context.Context, fields map[string]interface{}) (int, error)

	// OrderBy returns all entities sorted by the given column. An unknown
	// column name yields an empty result, not an error.
	OrderBy(ctx context.Context, column, direction string) ([]*T, error)
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)
}

// Repository combines CRUD, filtering, and pagination operations and exposes
// Bun query builders for advanced use cases.
type Repository[T any] interface {
	CrudRepository[T]
	FilterRepository[T]
	PageQueryRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
	NewUpdate() *bun.UpdateQuery
	NewDelete() *bun.DeleteQuery
}
