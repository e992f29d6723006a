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

package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/tomoncle/colibri/apperrors"
	"github.com/tomoncle/colibri/database"
	"github.com/tomoncle/colibri/models"
	"github.com/tomoncle/colibri/types"
)

func newTestSession(t *testing.T) *database.Session {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	sqldb.SetMaxIdleConns(1000)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	_, err = db.NewCreateTable().Model((*models.Task)(nil)).Exec(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return database.NewSession(db)
}

func TestTaskServiceCreateAndGet(t *testing.T) {
	svc := NewTaskService(newTestSession(t))
	ctx := context.Background()

	task, err := svc.Create(ctx, &TaskCreate{Name: "ship release", Description: "v1.0"})
	require.NoError(t, err)
	assert.NotZero(t, task.ID)

	got, err := svc.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "ship release", got.Name)
}

func TestTaskServiceGetNotFound(t *testing.T) {
	svc := NewTaskService(newTestSession(t))

	_, err := svc.Get(context.Background(), 9999)
	se, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, se.Code)
	assert.Equal(t, http.StatusNotFound, se.Status)
}

func TestTaskServiceCreateConflict(t *testing.T) {
	svc := NewTaskService(newTestSession(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &TaskCreate{Name: "unique name"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &TaskCreate{Name: "unique name"})
	se, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, se.Code)
	assert.Equal(t, http.StatusConflict, se.Status)
}

func TestTaskServiceCreateAll(t *testing.T) {
	svc := NewTaskService(newTestSession(t))
	ctx := context.Background()

	tasks, err := svc.CreateAll(ctx, []*TaskCreate{
		{Name: "first"},
		{Name: "second"},
	})
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	page, err := svc.Page(ctx, types.NewDefaultPageRequest(1, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}

func TestTaskServiceUpdate(t *testing.T) {
	svc := NewTaskService(newTestSession(t))
	ctx := context.Background()

	task, err := svc.Create(ctx, &TaskCreate{Name: "original", Description: "before"})
	require.NoError(t, err)

	name := "patched"
	done := true
	updated, err := svc.Update(ctx, task.ID, &TaskUpdate{Name: &name, Done: &done})
	require.NoError(t, err)
	assert.Equal(t, "patched", updated.Name)
	assert.Equal(t, "before", updated.Description)
	assert.True(t, updated.Done)
}

func TestTaskServiceUpdateNameConflict(t *testing.T) {
	svc := NewTaskService(newTestSession(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &TaskCreate{Name: "taken"})
	require.NoError(t, err)
	task, err := svc.Create(ctx, &TaskCreate{Name: "renamable"})
	require.NoError(t, err)

	name := "taken"
	_, err = svc.Update(ctx, task.ID, &TaskUpdate{Name: &name})
	se, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadyExists, se.Code)
}

func TestTaskServiceDelete(t *testing.T) {
	svc := NewTaskService(newTestSession(t))
	ctx := context.Background()

	task, err := svc.Create(ctx, &TaskCreate{Name: "to delete"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, task.ID))

	_, err = svc.Get(ctx, task.ID)
	se, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, se.Code)
}

func TestTaskServiceDeleteMissing(t *testing.T) {
	svc := NewTaskService(newTestSession(t))

	err := svc.Delete(context.Background(), 12345)
	se, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, se.Code)
}

func TestTaskServiceOrderedByUnknownColumn(t *testing.T) {
	svc := NewTaskService(newTestSession(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, &TaskCreate{Name: "present"})
	require.NoError(t, err)

	items, err := svc.OrderedBy(ctx, "not_a_column", "asc")
	require.NoError(t, err)
	assert.Empty(t, items)
}
