// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"time"
)

// FieldUpdate is a partial update: fields to set and field names to
// unset.
type FieldUpdate struct {
	Set   Payload  `json:"set,omitempty"`
	Unset []string `json:"unset,omitempty"`
}

func (update FieldUpdate) empty() bool {
	return len(update.Set) == 0 && len(update.Unset) == 0
}

func (update FieldUpdate) payload() Payload {
	payload := Payload{}
	if update.Set != nil {
		payload["set"] = update.Set
	}
	if update.Unset != nil {
		payload["unset"] = update.Unset
	}
	return payload
}

// GetMessage returns one message. Options such as "show_deleted_message"
// go in the query string.
func (client *Client) GetMessage(ctx context.Context, messageID string, options Payload) (*Response, error) {
	response, err := client.Get(ctx, endpoint("messages", messageID), queryFromPayload(options))
	if err != nil {
		return nil, fmt.Errorf("getting message %s: %w", messageID, err)
	}
	return response, nil
}

// UpdateMessage replaces a message. The message must carry a non-empty
// "id".
func (client *Client) UpdateMessage(ctx context.Context, message Payload) (*Response, error) {
	messageID, _ := message["id"].(string)
	if messageID == "" {
		return nil, usageErrorf("message must have an id")
	}
	response, err := client.Post(ctx, endpoint("messages", messageID), nil, Payload{"message": message})
	if err != nil {
		return nil, fmt.Errorf("updating message %s: %w", messageID, err)
	}
	return response, nil
}

// UpdateMessagePartial sets and unsets message fields on behalf of
// userID. An empty userID omits the user.
func (client *Client) UpdateMessagePartial(ctx context.Context, messageID string, update FieldUpdate, userID string, options Payload) (*Response, error) {
	body := merge(update.payload(), options)
	if userID != "" {
		body = withUser(body, userID)
	}
	response, err := client.Put(ctx, endpoint("messages", messageID), nil, body)
	if err != nil {
		return nil, fmt.Errorf("partially updating message %s: %w", messageID, err)
	}
	return response, nil
}

// DeleteMessage deletes a message. Options such as "hard" or
// "deleted_by" go in the query string.
func (client *Client) DeleteMessage(ctx context.Context, messageID string, options Payload) (*Response, error) {
	response, err := client.Delete(ctx, endpoint("messages", messageID), queryFromPayload(options))
	if err != nil {
		return nil, fmt.Errorf("deleting message %s: %w", messageID, err)
	}
	return response, nil
}

// PinMessage pins a message. A zero expiration pins it indefinitely.
func (client *Client) PinMessage(ctx context.Context, messageID, userID string, expiration time.Time) (*Response, error) {
	var expires any
	if !expiration.IsZero() {
		expires = expiration.UTC().Format(time.RFC3339)
	}
	update := FieldUpdate{Set: Payload{"pinned": true, "pin_expires": expires}}
	return client.UpdateMessagePartial(ctx, messageID, update, userID, nil)
}

// UnpinMessage unpins a message.
func (client *Client) UnpinMessage(ctx context.Context, messageID, userID string) (*Response, error) {
	update := FieldUpdate{Set: Payload{"pinned": false}}
	return client.UpdateMessagePartial(ctx, messageID, update, userID, nil)
}

// TranslateMessage translates a message into language (an ISO 639-1
// code) and stores the translation on the message.
func (client *Client) TranslateMessage(ctx context.Context, messageID, language string) (*Response, error) {
	response, err := client.Post(ctx, endpoint("messages", messageID, "translate"), nil, Payload{"language": language})
	if err != nil {
		return nil, fmt.Errorf("translating message %s: %w", messageID, err)
	}
	return response, nil
}

// RunMessageAction runs a command action (for example a giphy
// shuffle) on an ephemeral message.
func (client *Client) RunMessageAction(ctx context.Context, messageID string, data Payload) (*Response, error) {
	response, err := client.Post(ctx, endpoint("messages", messageID, "action"), nil, data)
	if err != nil {
		return nil, fmt.Errorf("running action on message %s: %w", messageID, err)
	}
	return response, nil
}

// CommitMessage publishes a message that was sent as pending.
func (client *Client) CommitMessage(ctx context.Context, messageID string) (*Response, error) {
	response, err := client.Post(ctx, endpoint("messages", messageID, "commit"), nil, Payload{})
	if err != nil {
		return nil, fmt.Errorf("committing message %s: %w", messageID, err)
	}
	return response, nil
}

// QueryMessageHistory lists the edit history of messages.
func (client *Client) QueryMessageHistory(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "messages/history", nil, queryPayload("filter", filter, sort, options))
	if err != nil {
		return nil, fmt.Errorf("querying message history: %w", err)
	}
	return response, nil
}

// SearchOptions refines Search. Offset pagination and Next cursor
// pagination are exclusive, and Offset cannot be combined with Sort.
type SearchOptions struct {
	// Query is a full-text query. Ignored when MessageFilter is set.
	Query string

	// MessageFilter filters messages by field instead of full text.
	MessageFilter Filter

	Sort   Sort
	Limit  int
	Offset int
	Next   string

	// Extra holds further request fields passed through unchanged.
	Extra Payload
}

// Search finds messages in the channels matched by filter.
func (client *Client) Search(ctx context.Context, filter Filter, options SearchOptions) (*Response, error) {
	if options.Offset > 0 && (options.Next != "" || len(options.Sort) > 0) {
		return nil, usageErrorf("cannot use offset with next or sort parameters")
	}

	payload := queryPayload("filter_conditions", filter, options.Sort, options.Extra)
	if options.MessageFilter != nil {
		payload["message_filter_conditions"] = options.MessageFilter
	} else {
		payload["query"] = options.Query
	}
	if options.Limit > 0 {
		payload["limit"] = options.Limit
	}
	if options.Offset > 0 {
		payload["offset"] = options.Offset
	}
	if options.Next != "" {
		payload["next"] = options.Next
	}

	query, err := payloadQuery(payload)
	if err != nil {
		return nil, err
	}
	response, err := client.Get(ctx, "search", query)
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}
	return response, nil
}
