// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/url"
)

// Push providers accepted by AddDevice.
const (
	PushProviderAPN      = "apn"
	PushProviderFirebase = "firebase"
	PushProviderHuawei   = "huawei"
	PushProviderXiaomi   = "xiaomi"
)

// Device registers a push token for a user.
type Device struct {
	ID           string `json:"id"`
	PushProvider string `json:"push_provider"`
	UserID       string `json:"user_id"`

	// PushProviderName selects one of several configured providers of
	// the same kind.
	PushProviderName string `json:"push_provider_name,omitempty"`
}

// AddDevice registers a device for push notifications.
func (client *Client) AddDevice(ctx context.Context, device Device) (*Response, error) {
	response, err := client.Post(ctx, "devices", nil, device)
	if err != nil {
		return nil, fmt.Errorf("adding device for %s: %w", device.UserID, err)
	}
	return response, nil
}

// DeleteDevice unregisters a device.
func (client *Client) DeleteDevice(ctx context.Context, deviceID, userID string) (*Response, error) {
	query := url.Values{"id": {deviceID}, "user_id": {userID}}
	response, err := client.Delete(ctx, "devices", query)
	if err != nil {
		return nil, fmt.Errorf("deleting device of %s: %w", userID, err)
	}
	return response, nil
}

// GetDevices lists the devices of a user.
func (client *Client) GetDevices(ctx context.Context, userID string) (*Response, error) {
	response, err := client.Get(ctx, "devices", url.Values{"user_id": {userID}})
	if err != nil {
		return nil, fmt.Errorf("listing devices of %s: %w", userID, err)
	}
	return response, nil
}
