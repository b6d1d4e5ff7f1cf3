// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
)

// Delete modes for DeleteUsersOptions.
const (
	SoftDelete = "soft"
	HardDelete = "hard"
)

// PartialUpdate sets and unsets fields of one object by id.
type PartialUpdate struct {
	ID    string   `json:"id"`
	Set   Payload  `json:"set,omitempty"`
	Unset []string `json:"unset,omitempty"`
}

// UpsertUsers creates or replaces users. Every user must carry a
// non-empty string "id"; otherwise a *UsageError is returned and
// nothing is sent.
func (client *Client) UpsertUsers(ctx context.Context, users ...Payload) (*Response, error) {
	byID := make(map[string]Payload, len(users))
	for _, user := range users {
		id, _ := user["id"].(string)
		if id == "" {
			return nil, usageErrorf("user must have an id")
		}
		byID[id] = user
	}

	response, err := client.Post(ctx, "users", nil, Payload{"users": byID})
	if err != nil {
		return nil, fmt.Errorf("upserting %d users: %w", len(users), err)
	}
	return response, nil
}

// UpsertUser creates or replaces one user.
func (client *Client) UpsertUser(ctx context.Context, user Payload) (*Response, error) {
	return client.UpsertUsers(ctx, user)
}

// UpdateUsers is UpsertUsers under its older name.
func (client *Client) UpdateUsers(ctx context.Context, users ...Payload) (*Response, error) {
	return client.UpsertUsers(ctx, users...)
}

// UpdateUser is UpsertUser under its older name.
func (client *Client) UpdateUser(ctx context.Context, user Payload) (*Response, error) {
	return client.UpsertUsers(ctx, user)
}

// UpdateUsersPartial applies set/unset updates to several users.
func (client *Client) UpdateUsersPartial(ctx context.Context, updates []PartialUpdate) (*Response, error) {
	response, err := client.Patch(ctx, "users", nil, Payload{"users": updates})
	if err != nil {
		return nil, fmt.Errorf("partially updating %d users: %w", len(updates), err)
	}
	return response, nil
}

// UpdateUserPartial applies a set/unset update to one user.
func (client *Client) UpdateUserPartial(ctx context.Context, update PartialUpdate) (*Response, error) {
	return client.UpdateUsersPartial(ctx, []PartialUpdate{update})
}

// QueryUsers searches users.
func (client *Client) QueryUsers(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	query, err := payloadQuery(queryPayload("filter_conditions", filter, sort, options))
	if err != nil {
		return nil, err
	}
	response, err := client.Get(ctx, "users", query)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	return response, nil
}

// DeleteUser deletes one user synchronously. Options such as
// "mark_messages_deleted" or "hard_delete" go in the query string.
func (client *Client) DeleteUser(ctx context.Context, userID string, options Payload) (*Response, error) {
	response, err := client.Delete(ctx, endpoint("users", userID), queryFromPayload(options))
	if err != nil {
		return nil, fmt.Errorf("deleting user %s: %w", userID, err)
	}
	return response, nil
}

// DeleteUsersOptions controls what DeleteUsers removes besides the
// user records.
type DeleteUsersOptions struct {
	// User is SoftDelete or HardDelete. Defaults to SoftDelete.
	User string `json:"user"`

	// Messages is SoftDelete or HardDelete, or empty to keep them.
	Messages string `json:"messages,omitempty"`

	// Conversations is SoftDelete or HardDelete, or empty to keep them.
	Conversations string `json:"conversations,omitempty"`

	// NewChannelOwnerID takes over channels created by deleted users.
	NewChannelOwnerID string `json:"new_channel_owner_id,omitempty"`
}

// DeleteUsers deletes users asynchronously. The response's TaskID
// identifies the job for GetTask.
func (client *Client) DeleteUsers(ctx context.Context, userIDs []string, options DeleteUsersOptions) (*Response, error) {
	if options.User == "" {
		options.User = SoftDelete
	}
	body := struct {
		UserIDs []string `json:"user_ids"`
		DeleteUsersOptions
	}{userIDs, options}

	response, err := client.Post(ctx, "users/delete", nil, body)
	if err != nil {
		return nil, fmt.Errorf("deleting %d users: %w", len(userIDs), err)
	}
	return response, nil
}

// DeactivateUser deactivates one user. Options are sent in the body.
func (client *Client) DeactivateUser(ctx context.Context, userID string, options Payload) (*Response, error) {
	response, err := client.Post(ctx, endpoint("users", userID, "deactivate"), nil, merge(options))
	if err != nil {
		return nil, fmt.Errorf("deactivating user %s: %w", userID, err)
	}
	return response, nil
}

// DeactivateUsers deactivates several users asynchronously.
func (client *Client) DeactivateUsers(ctx context.Context, userIDs []string, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "users/deactivate", nil, merge(options, Payload{"user_ids": userIDs}))
	if err != nil {
		return nil, fmt.Errorf("deactivating %d users: %w", len(userIDs), err)
	}
	return response, nil
}

// ReactivateUser reactivates a deactivated user.
func (client *Client) ReactivateUser(ctx context.Context, userID string, options Payload) (*Response, error) {
	response, err := client.Post(ctx, endpoint("users", userID, "reactivate"), nil, merge(options))
	if err != nil {
		return nil, fmt.Errorf("reactivating user %s: %w", userID, err)
	}
	return response, nil
}

// ExportUser returns everything stored about a user.
func (client *Client) ExportUser(ctx context.Context, userID string, options Payload) (*Response, error) {
	response, err := client.Get(ctx, endpoint("users", userID, "export"), queryFromPayload(options))
	if err != nil {
		return nil, fmt.Errorf("exporting user %s: %w", userID, err)
	}
	return response, nil
}

// CreateGuest creates a guest user and returns its access token.
func (client *Client) CreateGuest(ctx context.Context, user Payload) (*Response, error) {
	response, err := client.Post(ctx, "guests", nil, Payload{"user": user})
	if err != nil {
		return nil, fmt.Errorf("creating guest: %w", err)
	}
	return response, nil
}

// SendUserCustomEvent delivers a custom event to every connection of
// a user. The event must carry a "type".
func (client *Client) SendUserCustomEvent(ctx context.Context, userID string, event Payload) (*Response, error) {
	response, err := client.Post(ctx, endpoint("users", userID, "event"), nil, Payload{"event": event})
	if err != nil {
		return nil, fmt.Errorf("sending event to user %s: %w", userID, err)
	}
	return response, nil
}

// MarkAllRead marks every channel of a user as read.
func (client *Client) MarkAllRead(ctx context.Context, userID string) (*Response, error) {
	response, err := client.Post(ctx, "channels/read", nil, Payload{"user": userRef(userID)})
	if err != nil {
		return nil, fmt.Errorf("marking all read for %s: %w", userID, err)
	}
	return response, nil
}

// QueryBannedUsers searches active bans.
func (client *Client) QueryBannedUsers(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	query, err := payloadQuery(queryPayload("filter_conditions", filter, sort, options))
	if err != nil {
		return nil, err
	}
	response, err := client.Get(ctx, "query_banned_users", query)
	if err != nil {
		return nil, fmt.Errorf("querying banned users: %w", err)
	}
	return response, nil
}

// userRef is the {"id": ...} reference the API expects for a user.
func userRef(userID string) Payload {
	return Payload{"id": userID}
}

// withUser returns payload with "user" set to the user reference.
func withUser(payload Payload, userID string) Payload {
	return merge(payload, Payload{"user": userRef(userID)})
}
