// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when the API responds with a status of 399 or
// above, or with a body that is not a JSON object. Callers can use
// errors.As to extract it:
//
//	var apiErr *chat.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == chat.ErrCodeDoesNotExist { ... }
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`

	// Code is the API error code. Zero when the body was not JSON.
	Code int `json:"code"`

	// Message is the server's error description.
	Message string `json:"message"`

	// MoreInfo links to documentation for the error, when provided.
	MoreInfo string `json:"more_info"`

	// ExceptionFields maps invalid request fields to their problems.
	ExceptionFields map[string]string `json:"exception_fields,omitempty"`

	// JSONResponse reports whether the body parsed as JSON. When false,
	// Code and Message are unset and Body holds the raw response.
	JSONResponse bool `json:"-"`

	// Body is the raw response body.
	Body []byte `json:"-"`

	// Header holds the response headers.
	Header http.Header `json:"-"`
}

func (e *APIError) Error() string {
	if e.JSONResponse {
		return fmt.Sprintf("chat: StreamChat error code %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("chat: StreamChat error HTTP code: %d", e.StatusCode)
}

// API error codes returned in the "code" field.
const (
	ErrCodeInternal         = -1
	ErrCodeInputError       = 4
	ErrCodeAuthFailed       = 5
	ErrCodeRateLimited      = 9
	ErrCodeDoesNotExist     = 16
	ErrCodeNotAllowed       = 17
	ErrCodeTokenExpired     = 40
	ErrCodeTokenNotValidYet = 41
	ErrCodeTokenSignature   = 43
)

// UsageError reports invalid use of the SDK: missing credentials,
// arguments the API would reject, or a facade without the identifier
// it needs. It is always returned before any network I/O.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return "chat: " + e.Message
}

func usageErrorf(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// IsAPIError reports whether err is an *APIError with the given code.
func IsAPIError(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.JSONResponse && apiErr.Code == code
}

// IsNotFound reports whether err is an *APIError for a missing
// resource, either by HTTP status or by API code.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound || (apiErr.JSONResponse && apiErr.Code == ErrCodeDoesNotExist)
}

// IsRateLimited reports whether err is an *APIError for an exhausted
// rate limit.
func IsRateLimited(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusTooManyRequests || (apiErr.JSONResponse && apiErr.Code == ErrCodeRateLimited)
}

// IsUsageError reports whether err is a *UsageError.
func IsUsageError(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}
