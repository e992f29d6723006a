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

package database_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/tomoncle/colibri/database"
	"github.com/tomoncle/colibri/models"
)

func newTestDB(t *testing.T) *bun.DB {
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
	return db
}

func countTasks(t *testing.T, db *bun.DB) int {
	t.Helper()
	count, err := db.NewSelect().Model((*models.Task)(nil)).Count(context.Background())
	require.NoError(t, err)
	return count
}

func TestReadSessionNeverTransacts(t *testing.T) {
	db := newTestDB(t)

	session := database.NewSession(db)
	assert.False(t, session.Transactional())
	assert.NoError(t, session.Close(nil))
	assert.NoError(t, session.Close(errors.New("late failure")))
}

func TestTxSessionCommitsWhenNoFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	session, err := database.BeginSession(ctx, db)
	require.NoError(t, err)
	assert.True(t, session.Transactional())

	_, err = session.DB().NewInsert().Model(&models.Task{Name: "committed"}).Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, session.Close(nil))

	assert.Equal(t, 1, countTasks(t, db))
}

func TestTxSessionRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	session, err := database.BeginSession(ctx, db)
	require.NoError(t, err)

	_, err = session.DB().NewInsert().Model(&models.Task{Name: "discarded"}).Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, session.Close(errors.New("handler failed")))

	assert.Equal(t, 0, countTasks(t, db))
}

func TestTxSessionCloseIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	session, err := database.BeginSession(ctx, db)
	require.NoError(t, err)

	_, err = session.DB().NewInsert().Model(&models.Task{Name: "once"}).Exec(ctx)
	require.NoError(t, err)

	// Only the first Close decides the outcome.
	require.NoError(t, session.Close(nil))
	assert.NoError(t, session.Close(errors.New("too late")))
	assert.Equal(t, 1, countTasks(t, db))
}
