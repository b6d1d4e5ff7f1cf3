// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/http"
)

// QueryChannels searches channels. Unless options override them, state
// is returned and the server user neither watches nor subscribes to
// presence.
func (client *Client) QueryChannels(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	defaults := Payload{"state": true, "watch": false, "presence": false}
	body := queryPayload("filter_conditions", filter, sort, merge(defaults, options))
	response, err := client.Post(ctx, "channels", nil, body)
	if err != nil {
		return nil, fmt.Errorf("querying channels: %w", err)
	}
	return response, nil
}

// DeleteChannels deletes channels by cid asynchronously. The response's
// TaskID identifies the job for GetTask.
func (client *Client) DeleteChannels(ctx context.Context, cids []string, hardDelete bool) (*Response, error) {
	response, err := client.Post(ctx, "channels/delete", nil, Payload{"cids": cids, "hard_delete": hardDelete})
	if err != nil {
		return nil, fmt.Errorf("deleting %d channels: %w", len(cids), err)
	}
	return response, nil
}

// Batch operations for ChannelsBatchOptions.Operation.
const (
	BatchAddMembers       = "addMembers"
	BatchRemoveMembers    = "removeMembers"
	BatchInvites          = "invites"
	BatchAddModerators    = "addModerators"
	BatchDemoteModerators = "demoteModerators"
	BatchAssignRoles      = "assignRoles"
	BatchHide             = "hide"
	BatchShow             = "show"
	BatchArchive          = "archive"
	BatchUnarchive        = "unarchive"
	BatchUpdateData       = "updateData"
	BatchAddFilterTags    = "addFilterTags"
	BatchRemoveFilterTags = "removeFilterTags"
)

// MemberRole names a channel member and, optionally, the channel role
// to give it.
type MemberRole struct {
	UserID      string `json:"user_id"`
	ChannelRole string `json:"channel_role,omitempty"`
}

// ChannelsBatchOptions is one operation applied to every channel that
// matches Filter. Which of Members, Data, and FilterTagsUpdate apply
// depends on Operation.
type ChannelsBatchOptions struct {
	Operation        string       `json:"operation,omitempty"`
	Filter           Filter       `json:"filter,omitempty"`
	Members          []MemberRole `json:"members,omitempty"`
	Data             Payload      `json:"data,omitempty"`
	FilterTagsUpdate []string     `json:"filter_tags_update,omitempty"`
}

// UpdateChannelsBatch applies one operation to many channels
// asynchronously. The request is not validated locally; the server
// rejects a missing filter or operation with an *APIError.
func (client *Client) UpdateChannelsBatch(ctx context.Context, options ChannelsBatchOptions) (*Response, error) {
	return updateChannelsBatch(ctx, client, options)
}

func updateChannelsBatch(ctx context.Context, requester Requester, options ChannelsBatchOptions) (*Response, error) {
	response, err := requester.Do(ctx, http.MethodPut, "channels/batch", nil, options)
	if err != nil {
		return nil, fmt.Errorf("batch updating channels (%s): %w", options.Operation, err)
	}
	return response, nil
}

// QueryDrafts lists the drafts of a user.
func (client *Client) QueryDrafts(ctx context.Context, userID string, filter Filter, sort Sort, options Payload) (*Response, error) {
	body := queryPayload("filter", filter, sort, options)
	body["user_id"] = userID
	response, err := client.Post(ctx, "drafts/query", nil, body)
	if err != nil {
		return nil, fmt.Errorf("querying drafts of %s: %w", userID, err)
	}
	return response, nil
}

// CreateChannelType creates a channel type. When data carries no
// "commands", every command is enabled.
func (client *Client) CreateChannelType(ctx context.Context, data Payload) (*Response, error) {
	body := merge(data)
	if _, ok := body["commands"]; !ok {
		body["commands"] = []string{"all"}
	}
	response, err := client.Post(ctx, "channeltypes", nil, body)
	if err != nil {
		return nil, fmt.Errorf("creating channel type: %w", err)
	}
	return response, nil
}

// GetChannelType returns one channel type.
func (client *Client) GetChannelType(ctx context.Context, name string) (*Response, error) {
	response, err := client.Get(ctx, endpoint("channeltypes", name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting channel type %s: %w", name, err)
	}
	return response, nil
}

// ListChannelTypes returns every channel type.
func (client *Client) ListChannelTypes(ctx context.Context) (*Response, error) {
	response, err := client.Get(ctx, "channeltypes", nil)
	if err != nil {
		return nil, fmt.Errorf("listing channel types: %w", err)
	}
	return response, nil
}

// UpdateChannelType replaces the given settings of a channel type.
func (client *Client) UpdateChannelType(ctx context.Context, name string, settings Payload) (*Response, error) {
	response, err := client.Put(ctx, endpoint("channeltypes", name), nil, merge(settings))
	if err != nil {
		return nil, fmt.Errorf("updating channel type %s: %w", name, err)
	}
	return response, nil
}

// DeleteChannelType deletes a channel type. The server refuses while
// channels of the type exist.
func (client *Client) DeleteChannelType(ctx context.Context, name string) (*Response, error) {
	response, err := client.Delete(ctx, endpoint("channeltypes", name), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting channel type %s: %w", name, err)
	}
	return response, nil
}
