// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
)

// DefaultBlocklist is the built-in English profanity list.
const DefaultBlocklist = "profanity_en_2020_v1"

func (client *Client) ListBlocklists(ctx context.Context) (*Response, error) {
	response, err := client.Get(ctx, "blocklists", nil)
	if err != nil {
		return nil, fmt.Errorf("listing blocklists: %w", err)
	}
	return response, nil
}

func (client *Client) GetBlocklist(ctx context.Context, name string) (*Response, error) {
	response, err := client.Get(ctx, endpoint("blocklists", name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting blocklist %s: %w", name, err)
	}
	return response, nil
}

func (client *Client) CreateBlocklist(ctx context.Context, name string, words []string) (*Response, error) {
	response, err := client.Post(ctx, "blocklists", nil, Payload{"name": name, "words": words})
	if err != nil {
		return nil, fmt.Errorf("creating blocklist %s: %w", name, err)
	}
	return response, nil
}

// UpdateBlocklist replaces the words of a blocklist.
func (client *Client) UpdateBlocklist(ctx context.Context, name string, words []string) (*Response, error) {
	response, err := client.Put(ctx, endpoint("blocklists", name), nil, Payload{"words": words})
	if err != nil {
		return nil, fmt.Errorf("updating blocklist %s: %w", name, err)
	}
	return response, nil
}

func (client *Client) DeleteBlocklist(ctx context.Context, name string) (*Response, error) {
	response, err := client.Delete(ctx, endpoint("blocklists", name), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting blocklist %s: %w", name, err)
	}
	return response, nil
}
