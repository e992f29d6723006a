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

	"github.com/tomoncle/colibri/apperrors"
	"github.com/tomoncle/colibri/database"
	"github.com/tomoncle/colibri/models"
	"github.com/tomoncle/colibri/repository"
	"github.com/tomoncle/colibri/types"
)

// TaskCreate is the payload accepted when creating a task.
type TaskCreate struct {
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	Meta        types.JsonObject `json:"meta"`
	Steps       types.JsonArray  `json:"steps"`
}

// TaskUpdate is the patch payload; nil fields are left unchanged.
type TaskUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

// TaskService implements the task domain operations on top of the generic
// repository. All calls run within the session injected at construction;
// the service itself never commits or rolls back.
type TaskService struct {
	repo repository.Repository[models.Task]
}

// NewTaskService returns a TaskService bound to the given request session.
func NewTaskService(session *database.Session) *TaskService {
	return &TaskService{repo: repository.NewSessionRepository[models.Task](session)}
}

// Get returns the task with the given id.
func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.repo.GetOne(ctx, id)
	if err != nil {
		if database.IsNoRowsError(err) {
			return nil, apperrors.NotFound("task not found")
		}
		return nil, err
	}
	return task, nil
}

// Page returns a page of tasks.
func (s *TaskService) Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[models.Task], error) {
	return s.repo.Page(ctx, page)
}

// OrderedBy returns all tasks sorted by column; an unknown column yields an
// empty list.
func (s *TaskService) OrderedBy(ctx context.Context, column, direction string) ([]*models.Task, error) {
	return s.repo.OrderBy(ctx, column, direction)
}

// Create stages a new task. A task with the same name raises a conflict.
func (s *TaskService) Create(ctx context.Context, in *TaskCreate) (*models.Task, error) {
	count, err := s.repo.Count(ctx, map[string]interface{}{"name": in.Name})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.Conflict("task with this name already exists")
	}

	task := &models.Task{
		Name:        in.Name,
		Description: in.Description,
		Meta:        in.Meta,
		Steps:       in.Steps,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		// Concurrent creation can still trip the unique constraint.
		if database.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("task with this name already exists")
		}
		return nil, err
	}
	return task, nil
}

// CreateAll stages multiple tasks in one statement.
func (s *TaskService) CreateAll(ctx context.Context, ins []*TaskCreate) ([]*models.Task, error) {
	tasks := make([]*models.Task, 0, len(ins))
	for _, in := range ins {
		tasks = append(tasks, &models.Task{
			Name:        in.Name,
			Description: in.Description,
			Meta:        in.Meta,
			Steps:       in.Steps,
		})
	}
	if err := s.repo.BulkInsert(ctx, tasks); err != nil {
		if database.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("task with this name already exists")
		}
		return nil, err
	}
	return tasks, nil
}

// Update applies the patch to an existing task and stages the write.
func (s *TaskService) Update(ctx context.Context, id int64, in *TaskUpdate) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != task.Name {
		count, err := s.repo.Count(ctx, map[string]interface{}{"name": *in.Name})
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperrors.Conflict("task with this name already exists")
		}
		task.Name = *in.Name
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Done != nil {
		task.Done = *in.Done
	}

	if err := s.repo.Update(ctx, task); err != nil {
		if database.IsDuplicateKeyError(err) {
			return nil, apperrors.Conflict("task with this name already exists")
		}
		return nil, err
	}
	return task, nil
}

// Delete removes the task with the given id.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
