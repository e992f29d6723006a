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

package server

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/tomoncle/colibri/apperrors"
	"github.com/tomoncle/colibri/config"
	"github.com/tomoncle/colibri/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) (*Server, *bun.DB) {
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

	return New(config.Default(), db), db
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "SUCCESS", body["result"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "healthy", data["status"])
}

func TestRequestIDEchoedAndGenerated(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set(RequestIDHeader, "req-fixed-123")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Equal(t, "req-fixed-123", w.Header().Get(RequestIDHeader))

	w2 := doJSON(t, s, http.MethodGet, "/api/v1/health", nil)
	assert.NotEmpty(t, w2.Header().Get(RequestIDHeader))
}

func TestCreateTask(t *testing.T) {
	s, db := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{
		"name":        "deploy",
		"description": "to staging",
		"steps":       []gin.H{{"order": 1, "text": "build image"}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "SUCCESS", body["result"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "deploy", data["name"])
	assert.NotZero(t, data["id"])
	steps := data["steps"].([]interface{})
	require.Len(t, steps, 1)
	assert.Equal(t, "build image", steps[0].(map[string]interface{})["text"])

	count, err := db.NewSelect().Model((*models.Task)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateTaskConflictRollsBack(t *testing.T) {
	s, db := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"name": "only once"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"name": "only once"})
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "FAIL", body["result"])
	assert.Equal(t, apperrors.CodeAlreadyExists, body["errorCode"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotEmpty(t, body["request_id"])
	assert.Equal(t, "/api/v1/tasks", body["path"])
	assert.Equal(t, body["request_id"], w.Header().Get(RequestIDHeader))

	// The failed request left no partial write behind.
	count, err := db.NewSelect().Model((*models.Task)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateTaskValidation(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"description": "missing name"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "FAIL", body["result"])
	assert.Equal(t, apperrors.CodeValidation, body["errorCode"])
}

func TestGetTaskNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/tasks/404", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, apperrors.CodeNotFound, body["errorCode"])
	assert.Equal(t, "task not found", body["message"])
}

func TestGetTaskBadID(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/tasks/not-a-number", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeBadRequest, decodeBody(t, w)["errorCode"])
}

func TestListTasksPagination(t *testing.T) {
	s, _ := newTestServer(t)

	for i := 1; i <= 5; i++ {
		w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"name": fmt.Sprintf("task-%d", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, s, http.MethodGet, "/api/v1/tasks?page=2&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.EqualValues(t, 2, data["page"])
	assert.EqualValues(t, 2, data["pageSize"])
	assert.EqualValues(t, 5, data["total"])
	assert.Len(t, data["items"], 2)
}

func TestListTasksRejectsBadPageParams(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/v1/tasks?page=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeBadRequest, decodeBody(t, w)["errorCode"])

	w = doJSON(t, s, http.MethodGet, "/api/v1/tasks?size=many", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.CodeBadRequest, decodeBody(t, w)["errorCode"])
}

func TestListTasksOrdered(t *testing.T) {
	s, _ := newTestServer(t)

	for _, name := range []string{"banana", "apple"} {
		w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"name": name})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, s, http.MethodGet, "/api/v1/tasks?order=name&direction=asc", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, items, 2)
	assert.Equal(t, "apple", items[0].(map[string]interface{})["name"])

	// Unknown order columns yield an empty list, never an error.
	w = doJSON(t, s, http.MethodGet, "/api/v1/tasks?order=bogus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeBody(t, w)["data"])
}

func TestUpdateTask(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"name": "draft"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	w = doJSON(t, s, http.MethodPatch, fmt.Sprintf("/api/v1/tasks/%.0f", id), gin.H{"done": true})
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["done"])
	assert.Equal(t, "draft", data["name"])
}

func TestDeleteTask(t *testing.T) {
	s, db := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks", gin.H{"name": "ephemeral"})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	w = doJSON(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/tasks/%.0f", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SUCCESS", decodeBody(t, w)["result"])

	count, err := db.NewSelect().Model((*models.Task)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestBatchCreate(t *testing.T) {
	s, db := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks/batch", []gin.H{
		{"name": "one"}, {"name": "two"}, {"name": "three"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	count, err := db.NewSelect().Model((*models.Task)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestBatchCreateDuplicateRollsBackAll(t *testing.T) {
	s, db := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/tasks/batch", []gin.H{
		{"name": "dup"}, {"name": "dup"},
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// All-or-nothing: the transaction discarded both staged rows.
	count, err := db.NewSelect().Model((*models.Task)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/tasks", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
