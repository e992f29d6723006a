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
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsSqlErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   bool
		code SQLError
	}{
		{"no rows", sql.ErrNoRows, true, NoRowsErr},
		{"wrapped no rows", fmt.Errorf("query: %w", sql.ErrNoRows), true, NoRowsErr},
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, true, DuplicateKeyErr},
		{"mysql unknown column", &mysql.MySQLError{Number: 1054, Message: "Unknown column"}, true, NoColumnErr},
		{"sqlite duplicate", errors.New("UNIQUE constraint failed: tasks.name"), true, DuplicateKeyErr},
		{"postgres duplicate", errors.New(`duplicate key value violates unique constraint "tasks_name_key" (SQLSTATE 23505)`), true, DuplicateKeyErr},
		{"sqlite missing table", errors.New("no such table: tasks"), true, NoTableErr},
		{"sqlite missing column", errors.New("no such column: bogus"), true, NoColumnErr},
		{"sqlite not null", errors.New("NOT NULL constraint failed: tasks.name"), true, NotNullViolationErr},
		{"unclassified", errors.New("connection reset by peer"), false, UnknownErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is, code := IsSqlError(tt.err)
			assert.Equal(t, tt.is, is)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestDuplicateAndNoRowsHelpers(t *testing.T) {
	assert.True(t, IsDuplicateKeyError(errors.New("UNIQUE constraint failed: tasks.name")))
	assert.False(t, IsDuplicateKeyError(nil))
	assert.False(t, IsDuplicateKeyError(errors.New("boom")))

	assert.True(t, IsNoRowsError(sql.ErrNoRows))
	assert.True(t, IsNoRowsError(fmt.Errorf("scan: %w", sql.ErrNoRows)))
	assert.False(t, IsNoRowsError(nil))
	assert.False(t, IsNoRowsError(errors.New("boom")))
}
