// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
)

// CreateCommand creates a custom slash command. The command needs at
// least "name" and "description".
func (client *Client) CreateCommand(ctx context.Context, command Payload) (*Response, error) {
	response, err := client.Post(ctx, "commands", nil, command)
	if err != nil {
		return nil, fmt.Errorf("creating command: %w", err)
	}
	return response, nil
}

func (client *Client) GetCommand(ctx context.Context, name string) (*Response, error) {
	response, err := client.Get(ctx, endpoint("commands", name), nil)
	if err != nil {
		return nil, fmt.Errorf("getting command %s: %w", name, err)
	}
	return response, nil
}

func (client *Client) UpdateCommand(ctx context.Context, name string, command Payload) (*Response, error) {
	response, err := client.Put(ctx, endpoint("commands", name), nil, command)
	if err != nil {
		return nil, fmt.Errorf("updating command %s: %w", name, err)
	}
	return response, nil
}

func (client *Client) DeleteCommand(ctx context.Context, name string) (*Response, error) {
	response, err := client.Delete(ctx, endpoint("commands", name), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting command %s: %w", name, err)
	}
	return response, nil
}

func (client *Client) ListCommands(ctx context.Context) (*Response, error) {
	response, err := client.Get(ctx, "commands", nil)
	if err != nil {
		return nil, fmt.Errorf("listing commands: %w", err)
	}
	return response, nil
}

func (client *Client) ListPermissions(ctx context.Context) (*Response, error) {
	response, err := client.Get(ctx, "permissions", nil)
	if err != nil {
		return nil, fmt.Errorf("listing permissions: %w", err)
	}
	return response, nil
}

func (client *Client) GetPermission(ctx context.Context, id string) (*Response, error) {
	response, err := client.Get(ctx, endpoint("permissions", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting permission %s: %w", id, err)
	}
	return response, nil
}

// CreatePermission creates a custom permission. Built-in permissions
// cannot be created or changed.
func (client *Client) CreatePermission(ctx context.Context, permission Payload) (*Response, error) {
	response, err := client.Post(ctx, "permissions", nil, permission)
	if err != nil {
		return nil, fmt.Errorf("creating permission: %w", err)
	}
	return response, nil
}

func (client *Client) UpdatePermission(ctx context.Context, id string, permission Payload) (*Response, error) {
	response, err := client.Put(ctx, endpoint("permissions", id), nil, permission)
	if err != nil {
		return nil, fmt.Errorf("updating permission %s: %w", id, err)
	}
	return response, nil
}

func (client *Client) DeletePermission(ctx context.Context, id string) (*Response, error) {
	response, err := client.Delete(ctx, endpoint("permissions", id), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting permission %s: %w", id, err)
	}
	return response, nil
}

// CreateRole creates a custom role.
func (client *Client) CreateRole(ctx context.Context, name string) (*Response, error) {
	response, err := client.Post(ctx, "roles", nil, Payload{"name": name})
	if err != nil {
		return nil, fmt.Errorf("creating role %s: %w", name, err)
	}
	return response, nil
}

// DeleteRole deletes a custom role. The server refuses while users or
// members still hold it.
func (client *Client) DeleteRole(ctx context.Context, name string) (*Response, error) {
	response, err := client.Delete(ctx, endpoint("roles", name), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting role %s: %w", name, err)
	}
	return response, nil
}

func (client *Client) ListRoles(ctx context.Context) (*Response, error) {
	response, err := client.Get(ctx, "roles", nil)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	return response, nil
}
