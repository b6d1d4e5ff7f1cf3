// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import "context"

// ChannelBatchUpdater applies one operation to every channel matching
// a filter. Each call starts an asynchronous task; the response's
// TaskID identifies it.
type ChannelBatchUpdater struct {
	requester Requester
}

// ChannelBatchUpdater returns the batch updater facade.
func (client *Client) ChannelBatchUpdater() *ChannelBatchUpdater {
	return NewChannelBatchUpdater(client)
}

func NewChannelBatchUpdater(requester Requester) *ChannelBatchUpdater {
	return &ChannelBatchUpdater{requester: requester}
}

func (updater *ChannelBatchUpdater) apply(ctx context.Context, options ChannelsBatchOptions) (*Response, error) {
	return updateChannelsBatch(ctx, updater.requester, options)
}

func (updater *ChannelBatchUpdater) AddMembers(ctx context.Context, filter Filter, members []MemberRole) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchAddMembers, Filter: filter, Members: members})
}

func (updater *ChannelBatchUpdater) RemoveMembers(ctx context.Context, filter Filter, members []MemberRole) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchRemoveMembers, Filter: filter, Members: members})
}

func (updater *ChannelBatchUpdater) InviteMembers(ctx context.Context, filter Filter, members []MemberRole) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchInvites, Filter: filter, Members: members})
}

func (updater *ChannelBatchUpdater) AddModerators(ctx context.Context, filter Filter, members []MemberRole) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchAddModerators, Filter: filter, Members: members})
}

func (updater *ChannelBatchUpdater) DemoteModerators(ctx context.Context, filter Filter, members []MemberRole) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchDemoteModerators, Filter: filter, Members: members})
}

// AssignRoles sets the ChannelRole of each member.
func (updater *ChannelBatchUpdater) AssignRoles(ctx context.Context, filter Filter, members []MemberRole) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchAssignRoles, Filter: filter, Members: members})
}

func (updater *ChannelBatchUpdater) Hide(ctx context.Context, filter Filter) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchHide, Filter: filter})
}

func (updater *ChannelBatchUpdater) Show(ctx context.Context, filter Filter) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchShow, Filter: filter})
}

func (updater *ChannelBatchUpdater) Archive(ctx context.Context, filter Filter) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchArchive, Filter: filter})
}

func (updater *ChannelBatchUpdater) Unarchive(ctx context.Context, filter Filter) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchUnarchive, Filter: filter})
}

// UpdateData merges data into the custom data of each channel.
func (updater *ChannelBatchUpdater) UpdateData(ctx context.Context, filter Filter, data Payload) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchUpdateData, Filter: filter, Data: data})
}

func (updater *ChannelBatchUpdater) AddFilterTags(ctx context.Context, filter Filter, tags []string) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchAddFilterTags, Filter: filter, FilterTagsUpdate: tags})
}

func (updater *ChannelBatchUpdater) RemoveFilterTags(ctx context.Context, filter Filter, tags []string) (*Response, error) {
	return updater.apply(ctx, ChannelsBatchOptions{Operation: BatchRemoveFilterTags, Filter: filter, FilterTagsUpdate: tags})
}
