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

package apperrors

import (
	"errors"
	"net/http"
)

// Machine-readable error codes exposed in the API error envelope.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInternal      = "INTERNAL_SERVER_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
)

// ServiceError is a structured failure raised by the service layer. It carries
// a machine-readable code, a caller-authored message safe to expose, the HTTP
// status to render, and optional auxiliary data. It is translated into the
// uniform error envelope exactly once, at the request boundary.
type ServiceError struct {
	Code    string
	Message string
	Status  int
	Data    map[string]interface{}
}

func (e *ServiceError) Error() string {
	return e.Code + ": " + e.Message
}

// WithData attaches auxiliary data rendered in the error envelope.
func (e *ServiceError) WithData(data map[string]interface{}) *ServiceError {
	e.Data = data
	return e
}

// As unwraps err into a *ServiceError, reporting whether it matched.
func As(err error) (*ServiceError, bool) {
	var se *ServiceError
	ok := errors.As(err, &se)
	return se, ok
}

// NotFound reports that a requested record does not exist.
func NotFound(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

// BadRequest reports a malformed or semantically invalid request.
func BadRequest(message string) *ServiceError {
	return &ServiceError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

// Unauthorized reports a missing or invalid authentication credential.
func Unauthorized(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// Forbidden reports that the caller may not perform the operation.
func Forbidden(message string) *ServiceError {
	return &ServiceError{Code: CodeForbidden, Message: message, Status: http.StatusForbidden}
}

// Conflict reports a uniqueness or state conflict with an existing record.
func Conflict(message string) *ServiceError {
	return &ServiceError{Code: CodeAlreadyExists, Message: message, Status: http.StatusConflict}
}

// Internal reports an unrecoverable server-side failure.
func Internal(message string) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message, Status: http.StatusInternalServerError}
}

// Validation reports request payload validation failures.
func Validation(message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message, Status: http.StatusUnprocessableEntity}
}
