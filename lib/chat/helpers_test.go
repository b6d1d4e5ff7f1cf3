// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

const (
	testAPIKey    = "test-key"
	testAPISecret = "test-secret-with-enough-entropy"
)

// recordedRequest is one request seen by a recorder.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Query    url.Values
	Header   http.Header
	Body     []byte
}

// decodeBody unmarshals the recorded JSON body into a map.
func (request recordedRequest) decodeBody(t *testing.T) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(request.Body, &body); err != nil {
		t.Fatalf("decoding request body %q: %v", request.Body, err)
	}
	return body
}

// recorder is an httptest server that records every request and
// answers with a fixed status and JSON body.
type recorder struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
	status   int
	response any
	header   http.Header
}

func newRecorder(t *testing.T, status int, response any) *recorder {
	t.Helper()
	rec := &recorder{status: status, response: response, header: http.Header{}}
	rec.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)
		rec.mu.Lock()
		rec.requests = append(rec.requests, recordedRequest{
			Method:   request.Method,
			Path:     request.URL.Path,
			RawQuery: request.URL.RawQuery,
			Query:    request.URL.Query(),
			Header:   request.Header.Clone(),
			Body:     body,
		})
		status, response := rec.status, rec.response
		for key, values := range rec.header {
			writer.Header()[key] = values
		}
		rec.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		switch typed := response.(type) {
		case string:
			io.WriteString(writer, typed)
		default:
			json.NewEncoder(writer).Encode(typed)
		}
	}))
	t.Cleanup(rec.server.Close)
	return rec
}

func (rec *recorder) count() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.requests)
}

// last returns the most recent request, failing the test if none.
func (rec *recorder) last(t *testing.T) recordedRequest {
	t.Helper()
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.requests) == 0 {
		t.Fatal("no request recorded")
	}
	return rec.requests[len(rec.requests)-1]
}

// newTestClient creates a Client pointed at rec. It is closed when the
// test completes.
func newTestClient(t *testing.T, rec *recorder) *Client {
	t.Helper()
	return newTestClientURL(t, rec.server.URL)
}

func newTestClientURL(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		APIKey:    testAPIKey,
		APISecret: testAPISecret,
		BaseURL:   baseURL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

// requireUsageError fails unless err is a *UsageError.
func requireUsageError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected usage error, got nil")
	}
	if !IsUsageError(err) {
		t.Fatalf("expected *UsageError, got %T: %v", err, err)
	}
}

// requireAPIError fails unless err is an *APIError, and returns it.
func requireAPIError(t *testing.T, err error) *APIError {
	t.Helper()
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	return apiErr
}

func jsonUnmarshalString(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}
