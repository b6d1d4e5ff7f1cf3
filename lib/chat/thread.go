// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/http"
)

// Threads queries and updates message threads.
type Threads struct {
	requester Requester
}

// Threads returns the thread facade.
func (client *Client) Threads() *Threads {
	return NewThreads(client)
}

func NewThreads(requester Requester) *Threads {
	return &Threads{requester: requester}
}

// QueryThreads lists threads matching filter. Options such as "limit",
// "next", and "user_id" go in the body.
func (threads *Threads) QueryThreads(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	response, err := threads.requester.Do(ctx, http.MethodPost, "threads", nil, queryPayload("filter", filter, sort, options))
	if err != nil {
		return nil, fmt.Errorf("querying threads: %w", err)
	}
	return response, nil
}

// GetThread returns the thread rooted at messageID. Options such as
// "reply_limit" go in the query string.
func (threads *Threads) GetThread(ctx context.Context, messageID string, options Payload) (*Response, error) {
	response, err := threads.requester.Do(ctx, http.MethodGet, endpoint("threads", messageID), queryFromPayload(options), nil)
	if err != nil {
		return nil, fmt.Errorf("getting thread %s: %w", messageID, err)
	}
	return response, nil
}

// UpdateThreadPartial sets and unsets thread fields such as "title" on
// behalf of userID.
func (threads *Threads) UpdateThreadPartial(ctx context.Context, messageID, userID string, update FieldUpdate) (*Response, error) {
	if update.empty() {
		return nil, usageErrorf("set or unset is needed")
	}
	body := update.payload()
	if userID != "" {
		body["user_id"] = userID
	}
	response, err := threads.requester.Do(ctx, http.MethodPatch, endpoint("threads", messageID), nil, body)
	if err != nil {
		return nil, fmt.Errorf("partially updating thread %s: %w", messageID, err)
	}
	return response, nil
}
