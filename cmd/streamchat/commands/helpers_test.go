// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bureau-foundation/streamchat/lib/config"
)

const (
	testAPIKey    = "cli-test-key"
	testAPISecret = "cli-test-secret-with-entropy"
	secretEnvVar  = "STREAMCHAT_TEST_SECRET"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// apiRequest is one request seen by fakeAPI.
type apiRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
}

func (request apiRequest) decodeBody(t *testing.T) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(request.Body, &body); err != nil {
		t.Fatalf("decoding request body %q: %v", request.Body, err)
	}
	return body
}

// payload decodes the "payload" query parameter used by GET searches.
func (request apiRequest) payload(t *testing.T) map[string]any {
	t.Helper()
	values := request.Query["payload"]
	if len(values) != 1 {
		t.Fatalf("request has %d payload parameters, want 1", len(values))
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(values[0]), &payload); err != nil {
		t.Fatalf("decoding payload %q: %v", values[0], err)
	}
	return payload
}

// fakeAPI serves canned responses and records every request.
type fakeAPI struct {
	server *httptest.Server

	mu       sync.Mutex
	requests []apiRequest
	respond  func(request apiRequest, count int) (int, string)
}

func newFakeAPI(t *testing.T, respond func(request apiRequest, count int) (int, string)) *fakeAPI {
	t.Helper()
	api := &fakeAPI{respond: respond}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		request := apiRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.Query(), Body: body}

		api.mu.Lock()
		api.requests = append(api.requests, request)
		count := len(api.requests)
		api.mu.Unlock()

		status, response := api.respond(request, count)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(api.server.Close)
	return api
}

// staticAPI answers every request with status and body.
func staticAPI(t *testing.T, status int, body string) *fakeAPI {
	return newFakeAPI(t, func(apiRequest, int) (int, string) { return status, body })
}

func (api *fakeAPI) all() []apiRequest {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]apiRequest(nil), api.requests...)
}

func (api *fakeAPI) last(t *testing.T) apiRequest {
	t.Helper()
	requests := api.all()
	if len(requests) == 0 {
		t.Fatal("no requests recorded")
	}
	return requests[len(requests)-1]
}

// writeProfile writes a config file pointing at baseURL and exports the
// secret it references.
func writeProfile(t *testing.T, baseURL string) string {
	t.Helper()
	t.Setenv(secretEnvVar, testAPISecret)
	t.Setenv(config.EnvConfigPath, "")

	content := "default_profile: test\n" +
		"profiles:\n" +
		"  test:\n" +
		"    api_key: " + testAPIKey + "\n" +
		"    api_secret_env: " + secretEnvVar + "\n" +
		"    base_url: " + baseURL + "\n" +
		"    timeout: 5s\n"
	path := filepath.Join(t.TempDir(), "streamchat.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// testEnv returns an Env with captured stdout, a fake clock, and a
// silent logger.
func testEnv(stdin string) (Env, *bytes.Buffer, *clockwork.FakeClock) {
	var stdout bytes.Buffer
	clock := clockwork.NewFakeClockAt(testEpoch)
	return Env{
		Stdout: &stdout,
		Stdin:  bytes.NewBufferString(stdin),
		Clock:  clock,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, &stdout, clock
}

// execute runs the command tree against the fake API at api.
func execute(t *testing.T, env Env, api *fakeAPI, args ...string) error {
	t.Helper()
	configPath := writeProfile(t, api.server.URL)
	return Root(env).Execute(context.Background(), append(args, "--config", configPath))
}
