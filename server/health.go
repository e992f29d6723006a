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

	"github.com/gin-gonic/gin"

	"github.com/tomoncle/colibri/database"
)

func registerHealthRoutes(api *gin.RouterGroup) {
	// Liveness never touches the store; it answers 200 even when the
	// database is down.
	api.GET("/health", healthHandler)
	api.GET("/health/db", healthDBHandler)
}

func healthHandler(c *gin.Context) {
	OK(c, http.StatusOK, gin.H{"status": "healthy"}, "")
}

func healthDBHandler(c *gin.Context) {
	status := database.GetHealthStatus(c.Request.Context())
	OK(c, http.StatusOK, gin.H{
		"database": status,
		"stats":    database.GetDatabaseStats(),
	}, "")
}
