// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// Response is a successful API response: the decoded JSON object plus
// transport metadata.
type Response struct {
	// Data is the decoded top-level JSON object.
	Data map[string]any

	// Raw is the undecoded body, for Decode into typed structs.
	Raw json.RawMessage

	// StatusCode is the HTTP status code.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// RateLimit is the rate-limit snapshot for the endpoint. Nil when
	// the response carried no X-Ratelimit-Limit header.
	RateLimit *RateLimits
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Raw, v)
}

// Lookup walks nested objects in Data by key. It returns false when a
// key is missing or an intermediate value is not an object.
func (r *Response) Lookup(path ...string) (any, bool) {
	var current any = r.Data
	for _, key := range path {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = object[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// String returns the string at path, or "" if absent or not a string.
func (r *Response) String(path ...string) string {
	value, _ := r.Lookup(path...)
	text, _ := value.(string)
	return text
}

// TaskID returns the "task_id" of an asynchronous operation, or "".
func (r *Response) TaskID() string {
	return r.String("task_id")
}

// RateLimits is the rate-limit window reported for the endpoint.
type RateLimits struct {
	// Limit is the number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests left in the window.
	Remaining int

	// Reset is when the window resets.
	Reset time.Time
}

// parseRateLimits extracts the snapshot from response headers. Values
// that do not parse as integers read as zero.
func parseRateLimits(header http.Header) *RateLimits {
	limit := header.Get("X-Ratelimit-Limit")
	if limit == "" {
		return nil
	}
	return &RateLimits{
		Limit:     atoi(limit),
		Remaining: atoi(header.Get("X-Ratelimit-Remaining")),
		Reset:     time.Unix(int64(atoi(header.Get("X-Ratelimit-Reset"))), 0),
	}
}

func atoi(value string) int {
	parsed, _ := strconv.Atoi(value)
	return parsed
}
