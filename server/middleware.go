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
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/tomoncle/colibri/apperrors"
	"github.com/tomoncle/colibri/database"
	"github.com/tomoncle/colibri/logging"
	"github.com/tomoncle/colibri/types"
)

// RequestIDHeader is read from the inbound request and echoed on every
// response.
const RequestIDHeader = "X-Request-ID"

const (
	contextRequestIDKey = "request_id"
	contextSessionKey   = "db_session"
)

// RequestID assigns a per-request identifier before any handler logic runs
// and binds it into the request-scoped logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

// RequestIDFrom returns the identifier assigned by RequestID.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(contextRequestIDKey)
}

// RequestLogger logs one line per completed request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}
		c.Next()
		logging.FromContext(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request completed")
	}
}

// CORS allows cross-origin requests from the configured origins only.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := false
		for _, o := range allowedOrigins {
			if origin == o {
				allowed = true
				break
			}
		}
		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, "+RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PATCH, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ErrorHandler translates recorded failures into the uniform error envelope.
// Translation happens here and nowhere else: structured failures map to their
// own status/code/message, anything unclassified maps to a fixed internal
// error shape with no internal detail exposed.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		if c.Writer.Written() {
			// Response already sent; the failure can only be logged.
			logging.FromContext(c.Request.Context()).Error().Err(err).Msg("post-response error")
			return
		}
		writeErrorEnvelope(c, err)
	}
}

func writeErrorEnvelope(c *gin.Context, err error) {
	requestID := RequestIDFrom(c)
	path := c.Request.URL.Path
	log := logging.FromContext(c.Request.Context())

	if se, ok := apperrors.As(err); ok {
		log.Warn().
			Str("error_code", se.Code).
			Int("status", se.Status).
			Msg(se.Message)
		c.JSON(se.Status, types.NewErrorResponse(se.Code, se.Message, se.Data, requestID, path))
		return
	}

	log.Error().Err(err).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, types.NewErrorResponse(
		apperrors.CodeInternal, "internal server error", nil, requestID, path))
}

// Recovery renders panics as unclassified internal errors in the envelope
// shape.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logging.FromContext(c.Request.Context()).Error().
			Interface("panic", recovered).
			Msg("panic recovered")
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(
			apperrors.CodeInternal, "internal server error", nil,
			RequestIDFrom(c), c.Request.URL.Path))
		c.Abort()
	})
}

// ReadSession attaches a read-only session to the request. GET endpoints use
// this dependency; no transaction is opened.
func ReadSession(db *bun.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := database.NewSession(db)
		c.Set(contextSessionKey, session)
		defer func() { _ = session.Close(nil) }()
		c.Next()
	}
}

// TxSession attaches a transactional session to the request. The transaction
// commits only when the request completes without a recorded failure and with
// a success status; any failure rolls back every staged write. The session is
// always released, whatever the outcome.
func TxSession(db *bun.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := database.BeginSession(c.Request.Context(), db)
		if err != nil {
			Fail(c, err)
			return
		}
		c.Set(contextSessionKey, session)

		completed := false
		defer func() {
			if !completed {
				// Unwinding from a panic: discard every staged write.
				_ = session.Close(fmt.Errorf("request aborted"))
			}
		}()

		c.Next()
		completed = true

		var cause error
		switch {
		case len(c.Errors) > 0:
			cause = c.Errors.Last().Err
		case c.Writer.Status() >= http.StatusBadRequest:
			cause = fmt.Errorf("request failed with status %d", c.Writer.Status())
		}
		if closeErr := session.Close(cause); closeErr != nil {
			_ = c.Error(closeErr)
		}
	}
}

// SessionFrom returns the session attached by ReadSession or TxSession.
func SessionFrom(c *gin.Context) *database.Session {
	if v, ok := c.Get(contextSessionKey); ok {
		if session, ok := v.(*database.Session); ok {
			return session
		}
	}
	return nil
}
