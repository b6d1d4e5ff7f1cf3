// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/http"
)

// Entity types of the moderation API.
const (
	EntityTypeUser        = "stream:user"
	EntityTypeMessage     = "stream:chat:v1:message"
	EntityTypeUserProfile = "stream:v1:user_profile"
)

// UserProfileConfigKey is the moderation config applied by
// CheckUserProfile.
const UserProfileConfigKey = "user_profile:default"

const moderationPrefix = "api/v2/moderation/"

// Moderation is the facade over the v2 moderation API: flags, mutes,
// the review queue, configs, and content checks.
type Moderation struct {
	requester Requester
}

// Moderation returns the moderation facade.
func (client *Client) Moderation() *Moderation {
	return NewModeration(client)
}

func NewModeration(requester Requester) *Moderation {
	return &Moderation{requester: requester}
}

func (moderation *Moderation) do(ctx context.Context, action, method, path string, options Payload, body Payload) (*Response, error) {
	var response *Response
	var err error
	if method == http.MethodGet || method == http.MethodDelete {
		response, err = moderation.requester.Do(ctx, method, moderationPrefix+path, queryFromPayload(options), nil)
	} else {
		response, err = moderation.requester.Do(ctx, method, moderationPrefix+path, nil, merge(body, options))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	return response, nil
}

// FlagUser flags a user for review.
func (moderation *Moderation) FlagUser(ctx context.Context, userID, reason string, options Payload) (*Response, error) {
	return moderation.Flag(ctx, EntityTypeUser, userID, reason, "", options)
}

// FlagMessage flags a message for review.
func (moderation *Moderation) FlagMessage(ctx context.Context, messageID, reason string, options Payload) (*Response, error) {
	return moderation.Flag(ctx, EntityTypeMessage, messageID, reason, "", options)
}

// Flag flags any entity for review. Options such as "user_id" and
// "custom" go in the body.
func (moderation *Moderation) Flag(ctx context.Context, entityType, entityID, reason, entityCreatorID string, options Payload) (*Response, error) {
	body := Payload{
		"entity_type":       entityType,
		"entity_id":         entityID,
		"entity_creator_id": entityCreatorID,
		"reason":            reason,
	}
	return moderation.do(ctx, "flagging "+entityID, http.MethodPost, "flag", options, body)
}

// MuteUser mutes targetID. Options such as "user_id" and "timeout" go
// in the body.
func (moderation *Moderation) MuteUser(ctx context.Context, targetID string, options Payload) (*Response, error) {
	return moderation.do(ctx, "muting "+targetID, http.MethodPost, "mute", options, Payload{"target_ids": []string{targetID}})
}

func (moderation *Moderation) UnmuteUser(ctx context.Context, targetID string, options Payload) (*Response, error) {
	return moderation.do(ctx, "unmuting "+targetID, http.MethodPost, "unmute", options, Payload{"target_ids": []string{targetID}})
}

// GetUserModerationReport summarizes the moderation history of a user.
func (moderation *Moderation) GetUserModerationReport(ctx context.Context, userID string, options Payload) (*Response, error) {
	return moderation.do(ctx, "getting moderation report of "+userID, http.MethodGet, "user_report", merge(options, Payload{"user_id": userID}), nil)
}

// QueryReviewQueue lists review queue items matching filter.
func (moderation *Moderation) QueryReviewQueue(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	return moderation.do(ctx, "querying review queue", http.MethodPost, "review_queue", nil, queryPayload("filter", filter, sort, options))
}

// UpsertConfig creates or replaces a moderation config. The config must
// carry a "key".
func (moderation *Moderation) UpsertConfig(ctx context.Context, config Payload) (*Response, error) {
	return moderation.do(ctx, "upserting moderation config", http.MethodPost, "config", nil, config)
}

func (moderation *Moderation) GetConfig(ctx context.Context, key string, options Payload) (*Response, error) {
	return moderation.do(ctx, "getting moderation config "+key, http.MethodGet, endpoint("config", key), options, nil)
}

func (moderation *Moderation) DeleteConfig(ctx context.Context, key string, options Payload) (*Response, error) {
	return moderation.do(ctx, "deleting moderation config "+key, http.MethodDelete, endpoint("config", key), options, nil)
}

// QueryConfigs lists moderation configs matching filter.
func (moderation *Moderation) QueryConfigs(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	return moderation.do(ctx, "querying moderation configs", http.MethodPost, "configs", nil, queryPayload("filter", filter, sort, options))
}

// SubmitAction resolves a review queue item, for example with
// "mark_reviewed" or "delete_message".
func (moderation *Moderation) SubmitAction(ctx context.Context, actionType, itemID string, options Payload) (*Response, error) {
	body := Payload{"action_type": actionType, "item_id": itemID}
	return moderation.do(ctx, "submitting "+actionType+" on "+itemID, http.MethodPost, "submit_action", options, body)
}

// CheckRequest runs content through a moderation config.
type CheckRequest struct {
	EntityType        string          `json:"entity_type"`
	EntityID          string          `json:"entity_id"`
	EntityCreatorID   string          `json:"entity_creator_id"`
	ModerationPayload Payload         `json:"moderation_payload"`
	ConfigKey         string          `json:"config_key"`
	Options           map[string]bool `json:"options"`
}

// Check moderates content synchronously and returns the verdict.
func (moderation *Moderation) Check(ctx context.Context, request CheckRequest) (*Response, error) {
	if request.ModerationPayload == nil {
		request.ModerationPayload = Payload{}
	}
	if request.Options == nil {
		request.Options = map[string]bool{}
	}
	response, err := moderation.requester.Do(ctx, http.MethodPost, moderationPrefix+"check", nil, request)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", request.EntityID, err)
	}
	return response, nil
}

// UserProfile is the content CheckUserProfile moderates.
type UserProfile struct {
	Username string
	Image    string
}

// CheckUserProfile moderates a username and profile image in test mode:
// the verdict is returned but no action is taken. At least one field
// must be set.
func (moderation *Moderation) CheckUserProfile(ctx context.Context, userID string, profile UserProfile) (*Response, error) {
	if profile.Username == "" && profile.Image == "" {
		return nil, usageErrorf("either username or image must be provided")
	}

	payload := Payload{}
	if profile.Username != "" {
		payload["texts"] = []string{profile.Username}
	}
	if profile.Image != "" {
		payload["images"] = []string{profile.Image}
	}
	return moderation.Check(ctx, CheckRequest{
		EntityType:        EntityTypeUserProfile,
		EntityID:          userID,
		EntityCreatorID:   userID,
		ModerationPayload: payload,
		ConfigKey:         UserProfileConfigKey,
		Options:           map[string]bool{"force_sync": true, "test_mode": true},
	})
}

// CustomFlag is a flag raised by the caller's own moderation logic.
type CustomFlag struct {
	Type   string   `json:"type"`
	Reason string   `json:"reason,omitempty"`
	Labels []string `json:"labels,omitempty"`
	Custom Payload  `json:"custom,omitempty"`
}

// AddCustomFlags attaches custom flags to an entity, placing it in the
// review queue.
func (moderation *Moderation) AddCustomFlags(ctx context.Context, entityType, entityID, entityCreatorID string, moderationPayload Payload, flags []CustomFlag) (*Response, error) {
	if moderationPayload == nil {
		moderationPayload = Payload{}
	}
	body := Payload{
		"entity_type":        entityType,
		"entity_id":          entityID,
		"entity_creator_id":  entityCreatorID,
		"moderation_payload": moderationPayload,
		"flags":              flags,
	}
	return moderation.do(ctx, "adding custom flags to "+entityID, http.MethodPost, "custom_check", nil, body)
}

// AddCustomMessageFlags attaches custom flags to a message.
func (moderation *Moderation) AddCustomMessageFlags(ctx context.Context, messageID string, flags []CustomFlag) (*Response, error) {
	return moderation.AddCustomFlags(ctx, EntityTypeMessage, messageID, "", nil, flags)
}
