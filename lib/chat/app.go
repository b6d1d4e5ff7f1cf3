// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// GetAppSettings returns the application configuration.
func (client *Client) GetAppSettings(ctx context.Context) (*Response, error) {
	response, err := client.Get(ctx, "app", nil)
	if err != nil {
		return nil, fmt.Errorf("getting app settings: %w", err)
	}
	return response, nil
}

// UpdateAppSettings partially updates the application configuration.
func (client *Client) UpdateAppSettings(ctx context.Context, settings Payload) (*Response, error) {
	response, err := client.Patch(ctx, "app", nil, settings)
	if err != nil {
		return nil, fmt.Errorf("updating app settings: %w", err)
	}
	return response, nil
}

// RevokeTokens invalidates every token issued before the cutoff. A zero
// before means now, according to the client's clock.
func (client *Client) RevokeTokens(ctx context.Context, before time.Time) (*Response, error) {
	return client.UpdateAppSettings(ctx, Payload{"revoke_tokens_issued_before": client.revokeCutoff(before)})
}

// RevokeUserToken invalidates the tokens of one user issued before the
// cutoff.
func (client *Client) RevokeUserToken(ctx context.Context, userID string, before time.Time) (*Response, error) {
	return client.RevokeUsersToken(ctx, []string{userID}, before)
}

// RevokeUsersToken invalidates the tokens of each user issued before
// the cutoff, in one partial update.
func (client *Client) RevokeUsersToken(ctx context.Context, userIDs []string, before time.Time) (*Response, error) {
	cutoff := client.revokeCutoff(before)
	updates := make([]PartialUpdate, 0, len(userIDs))
	for _, userID := range userIDs {
		updates = append(updates, PartialUpdate{
			ID:  userID,
			Set: Payload{"revoke_tokens_issued_before": cutoff},
		})
	}
	return client.UpdateUsersPartial(ctx, updates)
}

func (client *Client) revokeCutoff(before time.Time) string {
	if before.IsZero() {
		before = client.clock.Now()
	}
	return before.UTC().Format(time.RFC3339)
}

// RateLimitsOptions selects which platforms and endpoints GetRateLimits
// reports. All zero returns every platform.
type RateLimitsOptions struct {
	ServerSide bool
	Android    bool
	IOS        bool
	Web        bool
	Endpoints  []string
}

func (options RateLimitsOptions) query() url.Values {
	query := url.Values{}
	if options.ServerSide {
		query.Set("server_side", "true")
	}
	if options.Android {
		query.Set("android", "true")
	}
	if options.IOS {
		query.Set("ios", "true")
	}
	if options.Web {
		query.Set("web", "true")
	}
	if len(options.Endpoints) > 0 {
		query.Set("endpoints", strings.Join(options.Endpoints, ","))
	}
	return query
}

// GetRateLimits returns the configured limits and current usage.
func (client *Client) GetRateLimits(ctx context.Context, options RateLimitsOptions) (*Response, error) {
	response, err := client.Get(ctx, "rate_limits", options.query())
	if err != nil {
		return nil, fmt.Errorf("getting rate limits: %w", err)
	}
	return response, nil
}

// CheckPush renders a push notification for a message and user
// without delivering it.
func (client *Client) CheckPush(ctx context.Context, push Payload) (*Response, error) {
	response, err := client.Post(ctx, "check_push", nil, push)
	if err != nil {
		return nil, fmt.Errorf("checking push: %w", err)
	}
	return response, nil
}

// SQSCheck holds the credentials tested by CheckSQS. Empty fields fall
// back to the stored app configuration.
type SQSCheck struct {
	Key    string `json:"sqs_key,omitempty"`
	Secret string `json:"sqs_secret,omitempty"`
	URL    string `json:"sqs_url,omitempty"`
}

// CheckSQS tests delivery to an SQS queue.
func (client *Client) CheckSQS(ctx context.Context, check SQSCheck) (*Response, error) {
	response, err := client.Post(ctx, "check_sqs", nil, check)
	if err != nil {
		return nil, fmt.Errorf("checking sqs: %w", err)
	}
	return response, nil
}

// SNSCheck holds the credentials tested by CheckSNS. Empty fields fall
// back to the stored app configuration.
type SNSCheck struct {
	Key      string `json:"sns_key,omitempty"`
	Secret   string `json:"sns_secret,omitempty"`
	TopicARN string `json:"sns_topic_arn,omitempty"`
}

// CheckSNS tests delivery to an SNS topic.
func (client *Client) CheckSNS(ctx context.Context, check SNSCheck) (*Response, error) {
	response, err := client.Post(ctx, "check_sns", nil, check)
	if err != nil {
		return nil, fmt.Errorf("checking sns: %w", err)
	}
	return response, nil
}
