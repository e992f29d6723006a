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

package types

import "time"

// Result is the discriminator carried by every API response envelope.
type Result string

const (
	ResultSuccess Result = "SUCCESS"
	ResultFail    Result = "FAIL"
)

// SuccessResponse is the envelope for successful API responses.
type SuccessResponse struct {
	Result  Result      `json:"result"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// NewSuccessResponse wraps a payload and message into a success envelope.
func NewSuccessResponse(data interface{}, message string) *SuccessResponse {
	return &SuccessResponse{
		Result:  ResultSuccess,
		Data:    data,
		Message: message,
	}
}

// ErrorResponse is the envelope for failed API responses. Every failure,
// structured or not, is rendered in this shape exactly once at the request
// boundary.
type ErrorResponse struct {
	Result    Result                 `json:"result"`
	ErrorCode string                 `json:"errorCode"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	RequestID string                 `json:"request_id,omitempty"`
	Path      string                 `json:"path,omitempty"`
}

// NewErrorResponse builds a failure envelope stamped with the current time.
func NewErrorResponse(errorCode, message string, data map[string]interface{}, requestID, path string) *ErrorResponse {
	return &ErrorResponse{
		Result:    ResultFail,
		ErrorCode: errorCode,
		Message:   message,
		Data:      data,
		Timestamp: NowKST(),
		RequestID: requestID,
		Path:      path,
	}
}
