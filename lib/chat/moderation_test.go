// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"net/http"
	"reflect"
	"testing"
)

func TestModeration(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		call      func(*Moderation) error
		method    string
		path      string
		wantQuery map[string]string
		wantBody  map[string]any
	}{
		{
			name: "FlagUser",
			call: func(moderation *Moderation) error {
				_, err := moderation.FlagUser(ctx, "bob", "spam", Payload{"user_id": "alice"})
				return err
			},
			method: http.MethodPost,
			path:   "/api/v2/moderation/flag",
			wantBody: map[string]any{
				"entity_type":       EntityTypeUser,
				"entity_id":         "bob",
				"entity_creator_id": "",
				"reason":            "spam",
				"user_id":           "alice",
			},
		},
		{
			name: "FlagMessage",
			call: func(moderation *Moderation) error {
				_, err := moderation.FlagMessage(ctx, "m1", "rude", nil)
				return err
			},
			method: http.MethodPost,
			path:   "/api/v2/moderation/flag",
			wantBody: map[string]any{
				"entity_type":       EntityTypeMessage,
				"entity_id":         "m1",
				"entity_creator_id": "",
				"reason":            "rude",
			},
		},
		{
			name: "MuteUser",
			call: func(moderation *Moderation) error {
				_, err := moderation.MuteUser(ctx, "bob", Payload{"user_id": "alice", "timeout": 5})
				return err
			},
			method:   http.MethodPost,
			path:     "/api/v2/moderation/mute",
			wantBody: map[string]any{"target_ids": []any{"bob"}, "user_id": "alice", "timeout": 5.0},
		},
		{
			name: "GetUserModerationReport",
			call: func(moderation *Moderation) error {
				_, err := moderation.GetUserModerationReport(ctx, "bob", Payload{"include_user_mutes": true})
				return err
			},
			method:    http.MethodGet,
			path:      "/api/v2/moderation/user_report",
			wantQuery: map[string]string{"user_id": "bob", "include_user_mutes": "true"},
		},
		{
			name: "QueryReviewQueue",
			call: func(moderation *Moderation) error {
				_, err := moderation.QueryReviewQueue(ctx, Filter{"status": "pending"}, SortBy("created_at", Descending), Payload{"limit": 3})
				return err
			},
			method: http.MethodPost,
			path:   "/api/v2/moderation/review_queue",
			wantBody: map[string]any{
				"filter": map[string]any{"status": "pending"},
				"sort":   []any{map[string]any{"field": "created_at", "direction": -1.0}},
				"limit":  3.0,
			},
		},
		{
			name: "GetConfig",
			call: func(moderation *Moderation) error {
				_, err := moderation.GetConfig(ctx, "chat:messaging", nil)
				return err
			},
			method: http.MethodGet,
			path:   "/api/v2/moderation/config/chat:messaging",
		},
		{
			name: "DeleteConfig",
			call: func(moderation *Moderation) error {
				_, err := moderation.DeleteConfig(ctx, "custom", Payload{"team": "red"})
				return err
			},
			method:    http.MethodDelete,
			path:      "/api/v2/moderation/config/custom",
			wantQuery: map[string]string{"team": "red"},
		},
		{
			name: "SubmitAction",
			call: func(moderation *Moderation) error {
				_, err := moderation.SubmitAction(ctx, "mark_reviewed", "item-1", Payload{"user_id": "mod"})
				return err
			},
			method:   http.MethodPost,
			path:     "/api/v2/moderation/submit_action",
			wantBody: map[string]any{"action_type": "mark_reviewed", "item_id": "item-1", "user_id": "mod"},
		},
		{
			name: "CheckUserProfile",
			call: func(moderation *Moderation) error {
				_, err := moderation.CheckUserProfile(ctx, "bob", UserProfile{Username: "bobby"})
				return err
			},
			method: http.MethodPost,
			path:   "/api/v2/moderation/check",
			wantBody: map[string]any{
				"entity_type":        EntityTypeUserProfile,
				"entity_id":          "bob",
				"entity_creator_id":  "bob",
				"moderation_payload": map[string]any{"texts": []any{"bobby"}},
				"config_key":         UserProfileConfigKey,
				"options":            map[string]any{"force_sync": true, "test_mode": true},
			},
		},
		{
			name: "AddCustomMessageFlags",
			call: func(moderation *Moderation) error {
				_, err := moderation.AddCustomMessageFlags(ctx, "m1", []CustomFlag{{Type: "custom_check_text", Labels: []string{"hate"}}})
				return err
			},
			method: http.MethodPost,
			path:   "/api/v2/moderation/custom_check",
			wantBody: map[string]any{
				"entity_type":        EntityTypeMessage,
				"entity_id":          "m1",
				"entity_creator_id":  "",
				"moderation_payload": map[string]any{},
				"flags":              []any{map[string]any{"type": "custom_check_text", "labels": []any{"hate"}}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := newRecorder(t, http.StatusOK, map[string]any{})
			client := newTestClient(t, rec)
			if err := test.call(client.Moderation()); err != nil {
				t.Fatalf("call: %v", err)
			}

			request := rec.last(t)
			if request.Method != test.method || request.Path != test.path {
				t.Errorf("%s %s, want %s %s", request.Method, request.Path, test.method, test.path)
			}
			for key, want := range test.wantQuery {
				if got := request.Query.Get(key); got != want {
					t.Errorf("query %s = %q, want %q", key, got, want)
				}
			}
			if test.wantBody != nil {
				if body := request.decodeBody(t); !reflect.DeepEqual(body, test.wantBody) {
					t.Errorf("body = %#v, want %#v", body, test.wantBody)
				}
			}
		})
	}
}

func TestCheckUserProfileRequiresContent(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, map[string]any{})
	client := newTestClient(t, rec)

	_, err := client.Moderation().CheckUserProfile(context.Background(), "bob", UserProfile{})
	requireUsageError(t, err)
	if rec.count() != 0 {
		t.Error("request sent for empty profile")
	}
}

func TestThreads(t *testing.T) {
	rec := newRecorder(t, http.StatusOK, map[string]any{"threads": []any{}})
	client := newTestClient(t, rec)
	threads := client.Threads()
	ctx := context.Background()

	if _, err := threads.QueryThreads(ctx, Filter{"channel_cid": "messaging:a"}, SortBy("created_at", Ascending), Payload{"user_id": "alice", "limit": 10}); err != nil {
		t.Fatalf("QueryThreads: %v", err)
	}
	request := rec.last(t)
	if request.Method != http.MethodPost || request.Path != "/threads" {
		t.Errorf("%s %s", request.Method, request.Path)
	}
	want := map[string]any{
		"filter":  map[string]any{"channel_cid": "messaging:a"},
		"sort":    []any{map[string]any{"field": "created_at", "direction": 1.0}},
		"user_id": "alice",
		"limit":   10.0,
	}
	if body := request.decodeBody(t); !reflect.DeepEqual(body, want) {
		t.Errorf("body = %v, want %v", body, want)
	}

	if _, err := threads.UpdateThreadPartial(ctx, "parent-1", "alice", FieldUpdate{Set: Payload{"title": "Plans"}}); err != nil {
		t.Fatalf("UpdateThreadPartial: %v", err)
	}
	request = rec.last(t)
	if request.Method != http.MethodPatch || request.Path != "/threads/parent-1" {
		t.Errorf("%s %s", request.Method, request.Path)
	}
	wantUpdate := map[string]any{"set": map[string]any{"title": "Plans"}, "user_id": "alice"}
	if body := request.decodeBody(t); !reflect.DeepEqual(body, wantUpdate) {
		t.Errorf("body = %v, want %v", body, wantUpdate)
	}

	_, err := threads.UpdateThreadPartial(ctx, "parent-1", "alice", FieldUpdate{})
	requireUsageError(t, err)
}
