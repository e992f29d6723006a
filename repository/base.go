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
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/tomoncle/colibri/database"
	"github.com/tomoncle/colibri/types"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
	"github.com/uptrace/bun/schema"
)

const defaultListLimit = 100

type baseRepositoryImpl[T any] struct {
	db bun.IDB
}

// NewRepository returns a generic repository issuing statements through the
// provided handle, which may be a bare *bun.DB or an open transaction.
func NewRepository[T any](db bun.IDB) Repository[T] {
	return &baseRepositoryImpl[T]{db: db}
}

// NewSessionRepository returns a generic repository bound to a request
// session; reads and writes run inside the session's transaction boundary.
func NewSessionRepository[T any](session *database.Session) Repository[T] {
	return &baseRepositoryImpl[T]{db: session.DB()}
}

func (r *baseRepositoryImpl[T]) Dialect() schema.Dialect { return r.db.Dialect() }

func (r *baseRepositoryImpl[T]) NewSelect() *bun.SelectQuery { return r.db.NewSelect() }

func (r *baseRepositoryImpl[T]) NewInsert() *bun.InsertQuery { return r.db.NewInsert() }

func (r *baseRepositoryImpl[T]) NewUpdate() *bun.UpdateQuery { return r.db.NewUpdate() }

func (r *baseRepositoryImpl[T]) NewDelete() *bun.DeleteQuery { return r.db.NewDelete() }

func (r *baseRepositoryImpl[T]) ValsToSlice(entity ...*T) []*T {
	entities := make([]*T, len(entity))
	copy(entities, entity)
	return entities
}

func (r *baseRepositoryImpl[T]) GetOne(ctx context.Context, id any) (*T, error) {
	var entity T
	err := r.db.NewSelect().Model(&entity).Where("id = ?", id).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) GetAll(ctx context.Context, offset, limit int) ([]*T, error) {
	if limit < 1 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Offset(offset).Limit(limit).Scan(ctx)
	return entities, err
}

func (r *baseRepositoryImpl[T]) List(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if filter != nil {
		query = query.Where(filter.Schema, filter.Args...)
	}
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, err
}

func (r *baseRepositoryImpl[T]) Query(ctx context.Context, query string, args ...interface{}) ([]*T, error) {
	var entities []*T
	err := r.db.NewSelect().Model(&entities).Where(query, args...).Scan(ctx)
	return entities, err
}

func (r *baseRepositoryImpl[T]) Page(ctx context.Context, pageRequest *types.PageRequest) (*types.Pagination[T], error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	if pageRequest.GetFilter() != nil {
		query = query.Where(pageRequest.GetFilter().Schema, pageRequest.GetFilter().Args...)
	}
	pagination := types.NewDefaultPagination[T](pageRequest.GetPage(), pageRequest.GetPageSize())
	total, err := query.Count(ctx)
	if err != nil || total == 0 {
		return pagination, err
	}
	err = query.
		Offset(pageRequest.GetOffset()).
		Limit(pageRequest.GetPageSize()).
		Order(pageRequest.GetOrders()...).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	pagination.Total = total
	pagination.Items = entities
	return pagination, nil
}

func (r *baseRepositoryImpl[T]) Create(ctx context.Context, entity ...*T) error {
	entities := r.ValsToSlice(entity...)
	_, err := r.db.NewInsert().Model(&entities).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) BulkInsert(ctx context.Context, entities []*T) error {
	if len(entities) == 0 {
		return nil
	}
	_, err := r.db.NewInsert().Model(&entities).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Upsert(ctx context.Context, fields []string, duplicateKeys []string, entity ...*T) error {
	if len(fields) == 0 {
		return fmt.Errorf("fields cannot be empty")
	}

	entities := r.ValsToSlice(entity...)
	features := r.db.Dialect().Features()

	if features.Has(feature.InsertOnConflict) {
		return r.upsertWithPostgresqlOrSQLite(ctx, fields, duplicateKeys, entities)
	} else if features.Has(feature.InsertOnDuplicateKey) {
		return r.upsertWithMySQL(ctx, fields, entities)
	}
	// Fallback: separate insert/update logic
	return r.upsertFallback(ctx, entities)
}

func (r *baseRepositoryImpl[T]) Update(ctx context.Context, entity *T) error {
	_, err := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) Delete(ctx context.Context, id any) error {
	var entity T
	_, err := r.db.NewDelete().Model(&entity).Where("id = ?", id).Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) FilterBy(ctx context.Context, fields map[string]interface{}) ([]*T, error) {
	var entities []*T
	query := r.db.NewSelect().Model(&entities)
	query = applyFieldFilters(query, fields)
	err := query.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) FilterByOne(ctx context.Context, fields map[string]interface{}) (*T, error) {
	var entity T
	query := r.db.NewSelect().Model(&entity)
	query = applyFieldFilters(query, fields)
	err := query.Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *baseRepositoryImpl[T]) Count(ctx context.Context, fields map[string]interface{}) (int, error) {
	query := r.db.NewSelect().Model((*T)(nil))
	query = applyFieldFilters(query, fields)
	return query.Count(ctx)
}

func (r *baseRepositoryImpl[T]) OrderBy(ctx context.Context, column, direction string) ([]*T, error) {
	// Unknown column names return an empty result on purpose; the column is
	// checked against the model schema before it reaches the SQL text.
	if !r.hasColumn(column) {
		return make([]*T, 0), nil
	}
	if strings.ToLower(direction) != "asc" {
		direction = "desc"
	}
	var entities []*T
	err := r.db.NewSelect().
		Model(&entities).
		Order(fmt.Sprintf("%s %s", column, strings.ToUpper(direction))).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *baseRepositoryImpl[T]) hasColumn(column string) bool {
	table := r.db.Dialect().Tables().Get(reflect.TypeOf((*T)(nil)).Elem())
	if table == nil {
		return false
	}
	_, ok := table.FieldMap[column]
	return ok
}

// applyFieldFilters adds one equality predicate per map entry, in
// deterministic key order.
func applyFieldFilters(query *bun.SelectQuery, fields map[string]interface{}) *bun.SelectQuery {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		query = query.Where("? = ?", bun.Ident(k), fields[k])
	}
	return query
}

func (r *baseRepositoryImpl[T]) upsertWithMySQL(ctx context.Context, fields []string, entities []*T) error {
	var queryArgs []string
	for _, field := range fields {
		queryArgs = append(queryArgs, fmt.Sprintf("%s = VALUES(%s)", bun.Ident(field), bun.Ident(field)))
	}
	_, err := r.db.NewInsert().
		Model(&entities).
		On("DUPLICATE KEY UPDATE " + strings.Join(queryArgs, ", ")).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertWithPostgresqlOrSQLite(ctx context.Context, fields []string, duplicateKeys []string, entities []*T) error {
	if len(duplicateKeys) == 0 {
		duplicateKeys = []string{"id"}
	}
	keyNames := strings.Join(duplicateKeys, ",")
	var queryArgs []string
	for _, field := range fields {
		queryArgs = append(queryArgs, fmt.Sprintf("%s = EXCLUDED.%s", bun.Ident(field), bun.Ident(field)))
	}
	_, err := r.db.NewInsert().
		Model(&entities).
		On("CONFLICT (" + keyNames + ") DO UPDATE").
		Set(strings.Join(queryArgs, ", ")).
		Exec(ctx)
	return err
}

func (r *baseRepositoryImpl[T]) upsertFallback(ctx context.Context, entities []*T) error {
	for _, entity := range entities {
		_, err := r.db.NewInsert().Model(entity).Exec(ctx)
		if err != nil {
			_, updateErr := r.db.NewUpdate().Model(entity).WherePK().Exec(ctx)
			if updateErr != nil {
				return fmt.Errorf("upsert failed for entity: insert error: %v, update error: %v", err, updateErr)
			}
		}
	}
	return nil
}
