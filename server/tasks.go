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
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/bun"

	"github.com/tomoncle/colibri/apperrors"
	"github.com/tomoncle/colibri/service"
	"github.com/tomoncle/colibri/types"
)

func registerTaskRoutes(api *gin.RouterGroup, db *bun.DB) {
	tasks := api.Group("/tasks")

	// Reads run on a plain session, writes inside a request transaction.
	reads := tasks.Group("", ReadSession(db))
	reads.GET("", listTasksHandler)
	reads.GET("/:id", getTaskHandler)

	writes := tasks.Group("", TxSession(db))
	writes.POST("", createTaskHandler)
	writes.POST("/batch", createTasksHandler)
	writes.PATCH("/:id", updateTaskHandler)
	writes.DELETE("/:id", deleteTaskHandler)
}

func taskIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("invalid task id")
	}
	return id, nil
}

func listTasksHandler(c *gin.Context) {
	svc := service.NewTaskService(SessionFrom(c))

	if column := c.Query("order"); column != "" {
		items, err := svc.OrderedBy(c.Request.Context(), column, c.DefaultQuery("direction", "asc"))
		if err != nil {
			Fail(c, err)
			return
		}
		OK(c, http.StatusOK, items, "")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		Fail(c, apperrors.BadRequest("invalid page parameter"))
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		Fail(c, apperrors.BadRequest("invalid size parameter"))
		return
	}
	result, err := svc.Page(c.Request.Context(), types.NewDefaultPageRequest(page, size))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, http.StatusOK, result, "")
}

func getTaskHandler(c *gin.Context) {
	id, err := taskIDParam(c)
	if err != nil {
		Fail(c, err)
		return
	}

	task, err := service.NewTaskService(SessionFrom(c)).Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, http.StatusOK, task, "")
}

func createTaskHandler(c *gin.Context) {
	var in service.TaskCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperrors.Validation(err.Error()))
		return
	}

	task, err := service.NewTaskService(SessionFrom(c)).Create(c.Request.Context(), &in)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, http.StatusCreated, task, "task created")
}

func createTasksHandler(c *gin.Context) {
	var ins []*service.TaskCreate
	if err := c.ShouldBindJSON(&ins); err != nil {
		Fail(c, apperrors.Validation(err.Error()))
		return
	}
	if len(ins) == 0 {
		Fail(c, apperrors.BadRequest("empty task list"))
		return
	}

	tasks, err := service.NewTaskService(SessionFrom(c)).CreateAll(c.Request.Context(), ins)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, http.StatusCreated, tasks, "tasks created")
}

func updateTaskHandler(c *gin.Context) {
	id, err := taskIDParam(c)
	if err != nil {
		Fail(c, err)
		return
	}

	var in service.TaskUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		Fail(c, apperrors.Validation(err.Error()))
		return
	}

	task, err := service.NewTaskService(SessionFrom(c)).Update(c.Request.Context(), id, &in)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, http.StatusOK, task, "task updated")
}

func deleteTaskHandler(c *gin.Context) {
	id, err := taskIDParam(c)
	if err != nil {
		Fail(c, err)
		return
	}

	if err := service.NewTaskService(SessionFrom(c)).Delete(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, http.StatusOK, nil, "task deleted")
}
