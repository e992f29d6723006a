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
	"github.com/gin-gonic/gin"

	"github.com/tomoncle/colibri/types"
)

// OK writes a success envelope with the given status code.
func OK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, types.NewSuccessResponse(data, message))
}

// Fail records err for the boundary error handler and stops the chain.
// The failure is rendered into the uniform envelope exactly once, by the
// ErrorHandler middleware.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
