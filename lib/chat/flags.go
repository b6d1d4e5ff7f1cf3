// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/http"
)

// FlagMessage reports a message for review.
func (client *Client) FlagMessage(ctx context.Context, messageID string, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "moderation/flag", nil, merge(Payload{"target_message_id": messageID}, options))
	if err != nil {
		return nil, fmt.Errorf("flagging message %s: %w", messageID, err)
	}
	return response, nil
}

// UnflagMessage withdraws a message flag.
func (client *Client) UnflagMessage(ctx context.Context, messageID string, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "moderation/unflag", nil, merge(Payload{"target_message_id": messageID}, options))
	if err != nil {
		return nil, fmt.Errorf("unflagging message %s: %w", messageID, err)
	}
	return response, nil
}

// QueryMessageFlags lists message flags matching filter.
func (client *Client) QueryMessageFlags(ctx context.Context, filter Filter, options Payload) (*Response, error) {
	if filter == nil {
		filter = Filter{}
	}
	query, err := payloadQuery(merge(options, Payload{"filter_conditions": filter}))
	if err != nil {
		return nil, err
	}
	response, err := client.Get(ctx, "moderation/flags/message", query)
	if err != nil {
		return nil, fmt.Errorf("querying message flags: %w", err)
	}
	return response, nil
}

// FlagUser reports a user for review.
func (client *Client) FlagUser(ctx context.Context, userID string, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "moderation/flag", nil, merge(Payload{"target_user_id": userID}, options))
	if err != nil {
		return nil, fmt.Errorf("flagging user %s: %w", userID, err)
	}
	return response, nil
}

// UnflagUser withdraws a user flag.
func (client *Client) UnflagUser(ctx context.Context, userID string, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "moderation/unflag", nil, merge(Payload{"target_user_id": userID}, options))
	if err != nil {
		return nil, fmt.Errorf("unflagging user %s: %w", userID, err)
	}
	return response, nil
}

// BanUser bans a user app-wide. Options such as "timeout" (minutes),
// "reason", and "banned_by_id" go in the body.
func (client *Client) BanUser(ctx context.Context, targetID string, options Payload) (*Response, error) {
	return banUser(ctx, client, targetID, options)
}

// UnbanUser lifts an app-wide ban.
func (client *Client) UnbanUser(ctx context.Context, targetID string, options Payload) (*Response, error) {
	return unbanUser(ctx, client, targetID, options)
}

// ShadowBan bans a user without telling them: their messages are only
// visible to themselves.
func (client *Client) ShadowBan(ctx context.Context, targetID string, options Payload) (*Response, error) {
	return banUser(ctx, client, targetID, merge(Payload{"shadow": true}, options))
}

// RemoveShadowBan lifts a shadow ban.
func (client *Client) RemoveShadowBan(ctx context.Context, targetID string, options Payload) (*Response, error) {
	return unbanUser(ctx, client, targetID, merge(Payload{"shadow": true}, options))
}

// MuteUser mutes targetID for userID.
func (client *Client) MuteUser(ctx context.Context, targetID, userID string) (*Response, error) {
	response, err := client.Post(ctx, "moderation/mute", nil, Payload{"target_id": targetID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("muting %s for %s: %w", targetID, userID, err)
	}
	return response, nil
}

// UnmuteUser unmutes targetID for userID.
func (client *Client) UnmuteUser(ctx context.Context, targetID, userID string) (*Response, error) {
	response, err := client.Post(ctx, "moderation/unmute", nil, Payload{"target_id": targetID, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("unmuting %s for %s: %w", targetID, userID, err)
	}
	return response, nil
}

func banUser(ctx context.Context, requester Requester, targetID string, options Payload) (*Response, error) {
	body := merge(Payload{"target_user_id": targetID}, options)
	response, err := requester.Do(ctx, http.MethodPost, "moderation/ban", nil, body)
	if err != nil {
		return nil, fmt.Errorf("banning user %s: %w", targetID, err)
	}
	return response, nil
}

// unbanUser sends the ban parameters in the query string; DELETE has
// no body.
func unbanUser(ctx context.Context, requester Requester, targetID string, options Payload) (*Response, error) {
	query := queryFromPayload(merge(Payload{"target_user_id": targetID}, options))
	response, err := requester.Do(ctx, http.MethodDelete, "moderation/ban", query, nil)
	if err != nil {
		return nil, fmt.Errorf("unbanning user %s: %w", targetID, err)
	}
	return response, nil
}
