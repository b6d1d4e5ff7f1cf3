// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Task states reported in the "status" field of GetTask.
const (
	TaskWaiting   = "waiting"
	TaskPending   = "pending"
	TaskRunning   = "running"
	TaskCompleted = "completed"
	TaskFailed    = "failed"
)

// TaskDone reports whether status is terminal.
func TaskDone(status string) bool {
	return status == TaskCompleted || status == TaskFailed
}

// ExportChannel selects one channel, and optionally a message window,
// for ExportChannels.
type ExportChannel struct {
	Type          string    `json:"type"`
	ID            string    `json:"id"`
	MessagesSince time.Time `json:"messages_since,omitzero"`
	MessagesUntil time.Time `json:"messages_until,omitzero"`
}

// ExportChannels starts an export of channels and their messages.
// Options such as "include_truncated_messages" go in the body. The
// response's TaskID identifies the job.
func (client *Client) ExportChannels(ctx context.Context, channels []ExportChannel, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "export_channels", nil, merge(options, Payload{"channels": channels}))
	if err != nil {
		return nil, fmt.Errorf("exporting %d channels: %w", len(channels), err)
	}
	return response, nil
}

// GetExportChannelStatus returns the state of a channel export.
func (client *Client) GetExportChannelStatus(ctx context.Context, taskID string) (*Response, error) {
	response, err := client.Get(ctx, endpoint("export_channels", taskID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting export status %s: %w", taskID, err)
	}
	return response, nil
}

// GetTask returns the state of any asynchronous job.
func (client *Client) GetTask(ctx context.Context, taskID string) (*Response, error) {
	response, err := client.Get(ctx, endpoint("tasks", taskID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", taskID, err)
	}
	return response, nil
}

// Import modes for CreateImport.
const (
	ImportModeUpsert = "upsert"
	ImportModeInsert = "insert"
)

// CreateImportURL returns a presigned URL to upload an import file to,
// along with the path to pass to CreateImport.
func (client *Client) CreateImportURL(ctx context.Context, filename string) (*Response, error) {
	response, err := client.Post(ctx, "import_urls", nil, Payload{"filename": filename})
	if err != nil {
		return nil, fmt.Errorf("creating import url for %s: %w", filename, err)
	}
	return response, nil
}

// CreateImport starts importing an uploaded file.
func (client *Client) CreateImport(ctx context.Context, path, mode string) (*Response, error) {
	if mode == "" {
		mode = ImportModeUpsert
	}
	response, err := client.Post(ctx, "imports", nil, Payload{"path": path, "mode": mode})
	if err != nil {
		return nil, fmt.Errorf("creating import from %s: %w", path, err)
	}
	return response, nil
}

// GetImport returns the state of an import.
func (client *Client) GetImport(ctx context.Context, id string) (*Response, error) {
	response, err := client.Get(ctx, endpoint("imports", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting import %s: %w", id, err)
	}
	return response, nil
}

// ListImportsOptions paginates ListImports. Zero values are omitted.
type ListImportsOptions struct {
	Limit  int
	Offset int
}

// ListImports lists imports, newest first.
func (client *Client) ListImports(ctx context.Context, options ListImportsOptions) (*Response, error) {
	query := url.Values{}
	if options.Limit > 0 {
		query.Set("limit", strconv.Itoa(options.Limit))
	}
	if options.Offset > 0 {
		query.Set("offset", strconv.Itoa(options.Offset))
	}
	response, err := client.Get(ctx, "imports", query)
	if err != nil {
		return nil, fmt.Errorf("listing imports: %w", err)
	}
	return response, nil
}
