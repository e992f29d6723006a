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

package models

import (
	"github.com/uptrace/bun"

	"github.com/tomoncle/colibri/database"
	"github.com/tomoncle/colibri/types"
)

// Task is the exemplar resource demonstrating the repository conventions.
// Name is unique; creating a second task with the same name is a conflict.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID          int64            `bun:"id,pk,autoincrement" json:"id"`
	Name        string           `bun:"name,notnull,unique" json:"name"`
	Description string           `bun:"description" json:"description"`
	Done        bool             `bun:"done,notnull,default:false" json:"done"`
	Meta        types.JsonObject `bun:"meta" json:"meta,omitempty"`
	Steps       types.JsonArray  `bun:"steps" json:"steps,omitempty"`

	TimestampModel
}

func init() {
	database.RegisteredModel(database.NewModelAdapter((*Task)(nil), 10))
}
