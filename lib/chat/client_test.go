// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bureau-foundation/streamchat/lib/version"
)

func TestNewClient(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := NewClient(Config{APISecret: testAPISecret})
		requireUsageError(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: testAPIKey})
		requireUsageError(t, err)
	})

	t.Run("defaults", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: testAPIKey, APISecret: testAPISecret})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		defer client.Close()
		if client.baseURL != DefaultBaseURL {
			t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
		}
		if client.httpClient.Timeout != DefaultTimeout {
			t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
		}
		if client.APIKey() != testAPIKey {
			t.Errorf("APIKey() = %q", client.APIKey())
		}
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient(Config{APIKey: testAPIKey, APISecret: testAPISecret, BaseURL: "http://localhost:3030/"})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		defer client.Close()
		if client.baseURL != "http://localhost:3030" {
			t.Errorf("baseURL = %q", client.baseURL)
		}
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "env-key")
		t.Setenv(EnvAPISecret, "env-secret")
		t.Setenv(EnvTimeout, "2.5")
		t.Setenv(EnvBaseURL, "http://chat.internal")

		config, err := ConfigFromEnv()
		if err != nil {
			t.Fatalf("ConfigFromEnv: %v", err)
		}
		want := Config{
			APIKey:    "env-key",
			APISecret: "env-secret",
			BaseURL:   "http://chat.internal",
			Timeout:   2500 * time.Millisecond,
		}
		if !reflect.DeepEqual(config, want) {
			t.Errorf("config = %+v, want %+v", config, want)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Setenv(EnvTimeout, "soon")
		_, err := ConfigFromEnv()
		requireUsageError(t, err)
	})

	t.Run("missing credentials reported by constructor", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		t.Setenv(EnvAPISecret, "")
		t.Setenv(EnvTimeout, "")
		_, err := NewClientFromEnv()
		requireUsageError(t, err)
	})

	t.Run("overrides applied", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		t.Setenv(EnvAPISecret, "")
		t.Setenv(EnvTimeout, "")
		client, err := NewClientFromEnv(func(config *Config) {
			config.APIKey = testAPIKey
			config.APISecret = testAPISecret
		})
		if err != nil {
			t.Fatalf("NewClientFromEnv: %v", err)
		}
		client.Close()
	})
}

func TestRequestShape(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, map[string]any{"duration": "1ms"})
	client := newTestClient(t, rec)

	query := url.Values{"zeta": {"1"}, "alpha": {"2"}}
	if _, err := client.Post(context.Background(), "some/path", query, Payload{"hello": "world"}); err != nil {
		t.Fatalf("Post: %v", err)
	}

	request := rec.last(t)
	if request.Method != http.MethodPost {
		t.Errorf("method = %s", request.Method)
	}
	if request.Path != "/some/path" {
		t.Errorf("path = %s", request.Path)
	}
	if request.RawQuery != "alpha=2&api_key="+testAPIKey+"&zeta=1" {
		t.Errorf("query not sorted or missing api_key: %s", request.RawQuery)
	}
	if got := request.Header.Get("Stream-Auth-Type"); got != "jwt" {
		t.Errorf("stream-auth-type = %q", got)
	}
	if got := request.Header.Get("X-Stream-Client"); got != version.UserAgent() {
		t.Errorf("X-Stream-Client = %q", got)
	}
	if !strings.HasPrefix(request.Header.Get("X-Stream-Client"), "stream-go-client-") {
		t.Errorf("user agent prefix missing")
	}
	if got := request.Header.Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q", got)
	}
	if body := request.decodeBody(t); body["hello"] != "world" {
		t.Errorf("body = %v", body)
	}

	token, err := jwt.Parse(request.Header.Get("Authorization"), func(*jwt.Token) (any, error) {
		return []byte(testAPISecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		t.Fatalf("parsing server token: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["server"] != true {
		t.Errorf("server token claims = %v", claims)
	}
}

func TestBodylessVerbs(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, map[string]any{})
	client := newTestClient(t, rec)

	if _, err := client.Get(context.Background(), "app", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if request := rec.last(t); len(request.Body) != 0 || request.RawQuery != "api_key="+testAPIKey {
		t.Errorf("GET sent body %q, query %q", request.Body, request.RawQuery)
	}

	if _, err := client.Delete(context.Background(), "app", url.Values{"hard": {"true"}}); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if request := rec.last(t); request.Method != http.MethodDelete || len(request.Body) != 0 {
		t.Errorf("DELETE method %s body %q", request.Method, request.Body)
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         any
		wantErr      bool
		wantJSON     bool
		wantCode     int
		wantNotFound bool
		wantLimited  bool
	}{
		{name: "success", status: http.StatusOK, body: map[string]any{"ok": true}},
		{name: "created", status: http.StatusCreated, body: map[string]any{"ok": true}},
		{name: "json error", status: http.StatusBadRequest, body: map[string]any{"code": 4, "message": "bad input"}, wantErr: true, wantJSON: true, wantCode: ErrCodeInputError},
		{name: "not found code", status: http.StatusBadRequest, body: map[string]any{"code": 16, "message": "missing"}, wantErr: true, wantJSON: true, wantCode: ErrCodeDoesNotExist, wantNotFound: true},
		{name: "rate limited", status: http.StatusTooManyRequests, body: map[string]any{"code": 9, "message": "slow down"}, wantErr: true, wantJSON: true, wantCode: ErrCodeRateLimited, wantLimited: true},
		{name: "status 399", status: 399, body: map[string]any{"code": 1, "message": "odd"}, wantErr: true, wantJSON: true, wantCode: 1},
		{name: "html error", status: http.StatusBadGateway, body: "<html>bad gateway</html>", wantErr: true},
		{name: "non-json success", status: http.StatusOK, body: "not json", wantErr: true},
		{name: "json array success", status: http.StatusOK, body: "[1,2]", wantErr: true},
		{name: "404 without json", status: http.StatusNotFound, body: "nope", wantErr: true, wantNotFound: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := newRecorder(t, test.status, test.body)
			client := newTestClient(t, rec)

			response, err := client.Get(context.Background(), "thing", nil)
			if !test.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if response.StatusCode != test.status || response.Data["ok"] != true {
					t.Errorf("response = %+v", response)
				}
				return
			}

			apiErr := requireAPIError(t, err)
			if apiErr.StatusCode != test.status {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, test.status)
			}
			if apiErr.JSONResponse != test.wantJSON {
				t.Errorf("JSONResponse = %v, want %v", apiErr.JSONResponse, test.wantJSON)
			}
			if apiErr.Code != test.wantCode {
				t.Errorf("Code = %d, want %d", apiErr.Code, test.wantCode)
			}
			if len(apiErr.Body) == 0 {
				t.Error("raw body not retained")
			}
			if IsNotFound(err) != test.wantNotFound {
				t.Errorf("IsNotFound = %v", IsNotFound(err))
			}
			if IsRateLimited(err) != test.wantLimited {
				t.Errorf("IsRateLimited = %v", IsRateLimited(err))
			}
			if test.wantJSON && !IsAPIError(err, test.wantCode) {
				t.Errorf("IsAPIError(%d) = false", test.wantCode)
			}
		})
	}
}

func TestAPIErrorMessage(t *testing.T) {
	jsonErr := &APIError{StatusCode: 400, Code: 4, Message: "bad input", JSONResponse: true}
	if got := jsonErr.Error(); got != "chat: StreamChat error code 4: bad input" {
		t.Errorf("Error() = %q", got)
	}
	rawErr := &APIError{StatusCode: 502}
	if got := rawErr.Error(); got != "chat: StreamChat error HTTP code: 502" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRateLimits(t *testing.T) {
	t.Run("headers present", func(t *testing.T) {
		rec := newRecorder(t, http.StatusOK, map[string]any{})
		rec.header.Set("X-Ratelimit-Limit", "60")
		rec.header.Set("X-Ratelimit-Remaining", "59")
		rec.header.Set("X-Ratelimit-Reset", "1700000000")
		client := newTestClient(t, rec)

		response, err := client.Get(context.Background(), "app", nil)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		limits := response.RateLimit
		if limits == nil {
			t.Fatal("RateLimit is nil")
		}
		if limits.Limit != 60 || limits.Remaining != 59 || !limits.Reset.Equal(time.Unix(1700000000, 0)) {
			t.Errorf("RateLimit = %+v", limits)
		}
	})

	t.Run("headers absent", func(t *testing.T) {
		rec := newRecorder(t, http.StatusOK, map[string]any{})
		client := newTestClient(t, rec)

		response, err := client.Get(context.Background(), "app", nil)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if response.RateLimit != nil {
			t.Errorf("RateLimit = %+v, want nil", response.RateLimit)
		}
	})
}

func TestPayloadRoundTrip(t *testing.T) {
	// The server echoes the payload parameter back as its body.
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(request.URL.Query().Get("payload")))
	}))
	defer server.Close()
	client := newTestClientURL(t, server.URL)

	filter := Filter{"id": Payload{"$in": []any{"alice", "bob"}}, "banned": false}
	sort := SortBy("last_active", Descending).Then("created_at", Ascending)
	response, err := client.QueryUsers(context.Background(), filter, sort, Payload{"limit": 10})
	if err != nil {
		t.Fatalf("QueryUsers: %v", err)
	}

	var echoed struct {
		FilterConditions Filter `json:"filter_conditions"`
		Sort             Sort   `json:"sort"`
		Limit            int    `json:"limit"`
	}
	if err := response.Decode(&echoed); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	wantFilter := Filter{"id": map[string]any{"$in": []any{"alice", "bob"}}, "banned": false}
	if !reflect.DeepEqual(echoed.FilterConditions, wantFilter) {
		t.Errorf("filter = %#v, want %#v", echoed.FilterConditions, wantFilter)
	}
	if !reflect.DeepEqual(echoed.Sort, sort) {
		t.Errorf("sort = %#v, want %#v", echoed.Sort, sort)
	}
	if echoed.Limit != 10 {
		t.Errorf("limit = %d", echoed.Limit)
	}
}

func TestResponseLookup(t *testing.T) {
	response := &Response{Data: map[string]any{
		"channel":  map[string]any{"id": "general", "member_count": 3.0},
		"task_id":  "task-1",
		"duration": "1ms",
	}}
	if got := response.String("channel", "id"); got != "general" {
		t.Errorf("String(channel, id) = %q", got)
	}
	if got := response.String("channel", "member_count"); got != "" {
		t.Errorf("non-string lookup = %q", got)
	}
	if _, ok := response.Lookup("duration", "nested"); ok {
		t.Error("lookup through a string succeeded")
	}
	if got := response.TaskID(); got != "task-1" {
		t.Errorf("TaskID() = %q", got)
	}
}
