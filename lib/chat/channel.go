// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Channel is a handle on one channel. It holds no server state beyond
// its identifiers: ID may be empty until Create or Query assigns one,
// and every operation that addresses the channel by URL returns a
// *UsageError until then.
//
// A Channel is not safe for concurrent use while Create or Query may
// assign its ID.
type Channel struct {
	requester Requester

	// Type is the channel type, for example "messaging".
	Type string

	// ID is the channel id, or empty for a channel the server names.
	ID string

	// CustomData is sent as "data" by Create and Query.
	CustomData Payload
}

// Channel returns a handle on the channel (channelType, channelID).
// channelID may be empty; data may be nil.
func (client *Client) Channel(channelType, channelID string, data Payload) *Channel {
	return NewChannel(client, channelType, channelID, data)
}

// NewChannel returns a Channel that issues its calls through requester.
func NewChannel(requester Requester, channelType, channelID string, data Payload) *Channel {
	if data == nil {
		data = Payload{}
	}
	return &Channel{requester: requester, Type: channelType, ID: channelID, CustomData: data}
}

// CID returns the composite "type:id" identifier.
func (channel *Channel) CID() string {
	return channel.Type + ":" + channel.ID
}

// path returns the channel URL followed by suffix segments.
func (channel *Channel) path(suffix ...string) (string, error) {
	if channel.ID == "" {
		return "", usageErrorf("channel does not have an id")
	}
	return endpoint(append([]string{"channels", channel.Type, channel.ID}, suffix...)...), nil
}

// call issues a request against the channel URL plus suffix.
func (channel *Channel) call(ctx context.Context, action, method string, suffix []string, query url.Values, body any) (*Response, error) {
	path, err := channel.path(suffix...)
	if err != nil {
		return nil, err
	}
	return channel.do(ctx, action, method, path, query, body)
}

func (channel *Channel) do(ctx context.Context, action, method, path string, query url.Values, body any) (*Response, error) {
	response, err := channel.requester.Do(ctx, method, path, query, body)
	if err != nil {
		return nil, fmt.Errorf("%s in %s: %w", action, channel.CID(), err)
	}
	return response, nil
}

// SendMessage sends a message as userID. Options such as "skip_push"
// go in the body next to the message.
func (channel *Channel) SendMessage(ctx context.Context, message Payload, userID string, options Payload) (*Response, error) {
	body := merge(options, Payload{"message": withUser(message, userID)})
	return channel.call(ctx, "sending message", http.MethodPost, []string{"message"}, nil, body)
}

// SendEvent sends a custom event as userID.
func (channel *Channel) SendEvent(ctx context.Context, event Payload, userID string) (*Response, error) {
	body := Payload{"event": withUser(event, userID)}
	return channel.call(ctx, "sending event", http.MethodPost, []string{"event"}, nil, body)
}

// SendReaction adds a reaction to a message as userID.
func (channel *Channel) SendReaction(ctx context.Context, messageID string, reaction Payload, userID string) (*Response, error) {
	body := Payload{"reaction": withUser(reaction, userID)}
	return channel.do(ctx, "sending reaction", http.MethodPost, endpoint("messages", messageID, "reaction"), nil, body)
}

// DeleteReaction removes the reaction of reactionType left by userID.
func (channel *Channel) DeleteReaction(ctx context.Context, messageID, reactionType, userID string) (*Response, error) {
	path := endpoint("messages", messageID, "reaction", reactionType)
	return channel.do(ctx, "deleting reaction", http.MethodDelete, path, url.Values{"user_id": {userID}}, nil)
}

// Create creates the channel with userID as its creator, without
// watching it or returning its state.
func (channel *Channel) Create(ctx context.Context, userID string) (*Response, error) {
	channel.CustomData["created_by"] = userRef(userID)
	return channel.Query(ctx, Payload{"watch": false, "state": false, "presence": false})
}

// Query creates the channel if needed and returns its state. A channel
// without an ID takes the one the server assigns.
func (channel *Channel) Query(ctx context.Context, options Payload) (*Response, error) {
	segments := []string{"channels", channel.Type}
	if channel.ID != "" {
		segments = append(segments, channel.ID)
	}
	path := endpoint(append(segments, "query")...)

	body := merge(Payload{"state": true, "data": channel.CustomData}, options)
	response, err := channel.do(ctx, "querying channel", http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}
	if channel.ID == "" {
		channel.ID = response.String("channel", "id")
	}
	return response, nil
}

// QueryMembers searches the members of the channel.
func (channel *Channel) QueryMembers(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	payload := queryPayload("filter_conditions", filter, sort, options)
	payload["type"] = channel.Type
	if channel.ID != "" {
		payload["id"] = channel.ID
	}
	query, err := payloadQuery(payload)
	if err != nil {
		return nil, err
	}
	return channel.do(ctx, "querying members", http.MethodGet, "members", query, nil)
}

// Update replaces the channel data. message, when not nil, is posted
// as a system message describing the change.
func (channel *Channel) Update(ctx context.Context, data Payload, message Payload) (*Response, error) {
	return channel.call(ctx, "updating channel", http.MethodPost, nil, nil, Payload{"data": data, "message": message})
}

// UpdatePartial sets and unsets channel fields. At least one of
// update.Set and update.Unset must be non-empty.
func (channel *Channel) UpdatePartial(ctx context.Context, update FieldUpdate) (*Response, error) {
	if update.empty() {
		return nil, usageErrorf("set or unset is needed")
	}
	return channel.call(ctx, "partially updating channel", http.MethodPatch, nil, nil, update.payload())
}

// Delete deletes the channel and its messages.
func (channel *Channel) Delete(ctx context.Context) (*Response, error) {
	return channel.call(ctx, "deleting channel", http.MethodDelete, nil, nil, nil)
}

// Truncate removes every message from the channel. Options such as
// "hard_delete", "skip_push", and "message" go in the body.
func (channel *Channel) Truncate(ctx context.Context, options Payload) (*Response, error) {
	return channel.call(ctx, "truncating channel", http.MethodPost, []string{"truncate"}, nil, merge(options))
}

// AddMembers adds users to the channel. Options such as "hide_history"
// and "message" go in the body.
func (channel *Channel) AddMembers(ctx context.Context, userIDs []string, options Payload) (*Response, error) {
	return channel.call(ctx, "adding members", http.MethodPost, nil, nil, merge(options, Payload{"add_members": userIDs}))
}

// InviteMembers invites users to the channel.
func (channel *Channel) InviteMembers(ctx context.Context, userIDs []string, options Payload) (*Response, error) {
	return channel.call(ctx, "inviting members", http.MethodPost, nil, nil, merge(options, Payload{"invites": userIDs}))
}

// AcceptInvite accepts the pending invite of userID.
func (channel *Channel) AcceptInvite(ctx context.Context, userID string, options Payload) (*Response, error) {
	body := merge(options, Payload{"accept_invite": true, "user_id": userID})
	return channel.call(ctx, "accepting invite", http.MethodPost, nil, nil, body)
}

// RejectInvite rejects the pending invite of userID.
func (channel *Channel) RejectInvite(ctx context.Context, userID string, options Payload) (*Response, error) {
	body := merge(options, Payload{"reject_invite": true, "user_id": userID})
	return channel.call(ctx, "rejecting invite", http.MethodPost, nil, nil, body)
}

func (channel *Channel) AddModerators(ctx context.Context, userIDs []string) (*Response, error) {
	return channel.call(ctx, "adding moderators", http.MethodPost, nil, nil, Payload{"add_moderators": userIDs})
}

func (channel *Channel) RemoveMembers(ctx context.Context, userIDs []string, options Payload) (*Response, error) {
	return channel.call(ctx, "removing members", http.MethodPost, nil, nil, merge(options, Payload{"remove_members": userIDs}))
}

// AssignRoles changes the channel role of members. message, when not
// nil, is posted as a system message.
func (channel *Channel) AssignRoles(ctx context.Context, members []MemberRole, message Payload) (*Response, error) {
	return channel.call(ctx, "assigning roles", http.MethodPost, nil, nil, Payload{"assign_roles": members, "message": message})
}

func (channel *Channel) DemoteModerators(ctx context.Context, userIDs []string) (*Response, error) {
	return channel.call(ctx, "demoting moderators", http.MethodPost, nil, nil, Payload{"demote_moderators": userIDs})
}

// MarkRead marks the channel read for userID. Option "message_id"
// marks it read up to that message.
func (channel *Channel) MarkRead(ctx context.Context, userID string, options Payload) (*Response, error) {
	return channel.call(ctx, "marking read", http.MethodPost, []string{"read"}, nil, withUser(options, userID))
}

// MarkUnread marks the channel unread for userID from a message on,
// given as option "message_id" or "thread_id".
func (channel *Channel) MarkUnread(ctx context.Context, userID string, options Payload) (*Response, error) {
	return channel.call(ctx, "marking unread", http.MethodPost, []string{"unread"}, nil, merge(options, Payload{"user_id": userID}))
}

// GetReplies lists the replies to a thread parent. Pagination options
// go in the query string.
func (channel *Channel) GetReplies(ctx context.Context, parentID string, options Payload) (*Response, error) {
	path := endpoint("messages", parentID, "replies")
	return channel.do(ctx, "getting replies", http.MethodGet, path, queryFromPayload(options), nil)
}

// GetReactions lists the reactions to a message.
func (channel *Channel) GetReactions(ctx context.Context, messageID string, options Payload) (*Response, error) {
	path := endpoint("messages", messageID, "reactions")
	return channel.do(ctx, "getting reactions", http.MethodGet, path, queryFromPayload(options), nil)
}

// GetMessages returns the messages of the channel with the given ids.
func (channel *Channel) GetMessages(ctx context.Context, messageIDs []string) (*Response, error) {
	query := url.Values{"ids": {strings.Join(messageIDs, ",")}}
	return channel.call(ctx, "getting messages", http.MethodGet, []string{"messages"}, query, nil)
}

// BanUser bans a user from this channel only.
func (channel *Channel) BanUser(ctx context.Context, userID string, options Payload) (*Response, error) {
	if channel.ID == "" {
		return nil, usageErrorf("channel does not have an id")
	}
	return banUser(ctx, channel.requester, userID, merge(options, channel.identity()))
}

// UnbanUser lifts a ban from this channel.
func (channel *Channel) UnbanUser(ctx context.Context, userID string) (*Response, error) {
	if channel.ID == "" {
		return nil, usageErrorf("channel does not have an id")
	}
	return unbanUser(ctx, channel.requester, userID, channel.identity())
}

func (channel *Channel) identity() Payload {
	return Payload{"type": channel.Type, "id": channel.ID}
}

// Hide removes the channel from query results of userID until a new
// message arrives. Option "clear_history" also hides past messages.
func (channel *Channel) Hide(ctx context.Context, userID string, options Payload) (*Response, error) {
	return channel.call(ctx, "hiding channel", http.MethodPost, []string{"hide"}, nil, merge(options, Payload{"user_id": userID}))
}

func (channel *Channel) Show(ctx context.Context, userID string) (*Response, error) {
	return channel.call(ctx, "showing channel", http.MethodPost, []string{"show"}, nil, Payload{"user_id": userID})
}

// Mute mutes the channel for userID. A zero expiration mutes it until
// Unmute.
func (channel *Channel) Mute(ctx context.Context, userID string, expiration time.Duration) (*Response, error) {
	if channel.ID == "" {
		return nil, usageErrorf("channel does not have an id")
	}
	body := Payload{"channel_cid": channel.CID(), "user_id": userID}
	if expiration > 0 {
		body["expiration"] = expiration.Milliseconds()
	}
	return channel.do(ctx, "muting channel", http.MethodPost, "moderation/mute/channel", nil, body)
}

func (channel *Channel) Unmute(ctx context.Context, userID string) (*Response, error) {
	if channel.ID == "" {
		return nil, usageErrorf("channel does not have an id")
	}
	body := Payload{"channel_cid": channel.CID(), "user_id": userID}
	return channel.do(ctx, "unmuting channel", http.MethodPost, "moderation/unmute/channel", nil, body)
}

// UpdateMemberPartial sets and unsets fields on the membership of
// userID, such as "pinned", "archived", or custom member data.
func (channel *Channel) UpdateMemberPartial(ctx context.Context, userID string, update FieldUpdate) (*Response, error) {
	if update.empty() {
		return nil, usageErrorf("set or unset is needed")
	}
	query := url.Values{"user_id": {userID}}
	return channel.call(ctx, "updating member", http.MethodPatch, []string{"member"}, query, update.payload())
}

// Pin pins the channel for userID.
func (channel *Channel) Pin(ctx context.Context, userID string) (*Response, error) {
	return channel.UpdateMemberPartial(ctx, userID, FieldUpdate{Set: Payload{"pinned": true}})
}

func (channel *Channel) Unpin(ctx context.Context, userID string) (*Response, error) {
	return channel.UpdateMemberPartial(ctx, userID, FieldUpdate{Set: Payload{"pinned": false}})
}

// Archive archives the channel for userID.
func (channel *Channel) Archive(ctx context.Context, userID string) (*Response, error) {
	return channel.UpdateMemberPartial(ctx, userID, FieldUpdate{Set: Payload{"archived": true}})
}

func (channel *Channel) Unarchive(ctx context.Context, userID string) (*Response, error) {
	return channel.UpdateMemberPartial(ctx, userID, FieldUpdate{Set: Payload{"archived": false}})
}

// SendFile uploads a file attachment to the channel's CDN space.
func (channel *Channel) SendFile(ctx context.Context, upload FileUpload) (*Response, error) {
	return channel.upload(ctx, "file", upload)
}

// SendImage uploads an image attachment.
func (channel *Channel) SendImage(ctx context.Context, upload FileUpload) (*Response, error) {
	return channel.upload(ctx, "image", upload)
}

func (channel *Channel) upload(ctx context.Context, kind string, upload FileUpload) (*Response, error) {
	path, err := channel.path(kind)
	if err != nil {
		return nil, err
	}
	response, err := channel.requester.Upload(ctx, path, upload)
	if err != nil {
		return nil, fmt.Errorf("uploading %s to %s: %w", kind, channel.CID(), err)
	}
	return response, nil
}

// DeleteFile deletes an uploaded file by its CDN URL.
func (channel *Channel) DeleteFile(ctx context.Context, fileURL string) (*Response, error) {
	return channel.call(ctx, "deleting file", http.MethodDelete, []string{"file"}, url.Values{"url": {fileURL}}, nil)
}

// DeleteImage deletes an uploaded image by its CDN URL.
func (channel *Channel) DeleteImage(ctx context.Context, imageURL string) (*Response, error) {
	return channel.call(ctx, "deleting image", http.MethodDelete, []string{"image"}, url.Values{"url": {imageURL}}, nil)
}

// CreateDraft saves a draft message for userID. A "parent_id" in
// message makes it a thread reply draft.
func (channel *Channel) CreateDraft(ctx context.Context, message Payload, userID string) (*Response, error) {
	body := Payload{"message": merge(message, Payload{"user_id": userID})}
	return channel.call(ctx, "creating draft", http.MethodPost, []string{"draft"}, nil, body)
}

// GetDraft returns the draft of userID, in the thread of parentID when
// it is not empty.
func (channel *Channel) GetDraft(ctx context.Context, userID, parentID string) (*Response, error) {
	return channel.call(ctx, "getting draft", http.MethodGet, []string{"draft"}, draftQuery(userID, parentID), nil)
}

// DeleteDraft deletes the draft of userID, in the thread of parentID
// when it is not empty.
func (channel *Channel) DeleteDraft(ctx context.Context, userID, parentID string) (*Response, error) {
	return channel.call(ctx, "deleting draft", http.MethodDelete, []string{"draft"}, draftQuery(userID, parentID), nil)
}

func draftQuery(userID, parentID string) url.Values {
	query := url.Values{"user_id": {userID}}
	if parentID != "" {
		query.Set("parent_id", parentID)
	}
	return query
}

// AddFilterTags tags the channel for use in query filters.
func (channel *Channel) AddFilterTags(ctx context.Context, tags []string) (*Response, error) {
	return channel.call(ctx, "adding filter tags", http.MethodPost, nil, nil, Payload{"add_filter_tags": tags})
}

func (channel *Channel) RemoveFilterTags(ctx context.Context, tags []string) (*Response, error) {
	return channel.call(ctx, "removing filter tags", http.MethodPost, nil, nil, Payload{"remove_filter_tags": tags})
}
