// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Campaign is a handle on one broadcast campaign. ID may be empty until
// Create succeeds; every other operation needs it.
type Campaign struct {
	requester Requester

	ID   string
	Data Payload
}

// Campaign returns a handle on a campaign. Both arguments may be empty.
func (client *Client) Campaign(id string, data Payload) *Campaign {
	return NewCampaign(client, id, data)
}

func NewCampaign(requester Requester, id string, data Payload) *Campaign {
	return &Campaign{requester: requester, ID: id, Data: data}
}

// Create creates the campaign. A non-empty id replaces the handle's ID
// and data is merged over the handle's Data. When the handle has no ID,
// it takes the one the server assigns.
func (campaign *Campaign) Create(ctx context.Context, id string, data Payload) (*Response, error) {
	if id != "" {
		campaign.ID = id
	}
	if data != nil {
		campaign.Data = merge(campaign.Data, data)
	}

	response, err := createCampaign(ctx, campaign.requester, campaign.ID, campaign.Data)
	if err != nil {
		return nil, err
	}
	if campaign.ID == "" && response.StatusCode >= 200 && response.StatusCode < 300 {
		campaign.ID = response.String("campaign", "id")
	}
	return response, nil
}

func (campaign *Campaign) requireID() error {
	if campaign.ID == "" {
		return usageErrorf("campaign does not have an id")
	}
	return nil
}

func (campaign *Campaign) Get(ctx context.Context) (*Response, error) {
	if err := campaign.requireID(); err != nil {
		return nil, err
	}
	return getCampaign(ctx, campaign.requester, campaign.ID)
}

func (campaign *Campaign) Update(ctx context.Context, data Payload) (*Response, error) {
	if err := campaign.requireID(); err != nil {
		return nil, err
	}
	return updateCampaign(ctx, campaign.requester, campaign.ID, data)
}

func (campaign *Campaign) Delete(ctx context.Context, options Payload) (*Response, error) {
	if err := campaign.requireID(); err != nil {
		return nil, err
	}
	return deleteCampaign(ctx, campaign.requester, campaign.ID, options)
}

// Start schedules the campaign. Zero times start it immediately and run
// it to completion.
func (campaign *Campaign) Start(ctx context.Context, scheduledFor, stopAt time.Time) (*Response, error) {
	if err := campaign.requireID(); err != nil {
		return nil, err
	}
	return startCampaign(ctx, campaign.requester, campaign.ID, scheduledFor, stopAt)
}

func (campaign *Campaign) Stop(ctx context.Context) (*Response, error) {
	if err := campaign.requireID(); err != nil {
		return nil, err
	}
	return stopCampaign(ctx, campaign.requester, campaign.ID)
}

// CreateCampaign creates a campaign. An empty id lets the server assign
// one.
func (client *Client) CreateCampaign(ctx context.Context, id string, data Payload) (*Response, error) {
	return createCampaign(ctx, client, id, data)
}

func (client *Client) GetCampaign(ctx context.Context, id string) (*Response, error) {
	return getCampaign(ctx, client, id)
}

func (client *Client) UpdateCampaign(ctx context.Context, id string, data Payload) (*Response, error) {
	return updateCampaign(ctx, client, id, data)
}

func (client *Client) DeleteCampaign(ctx context.Context, id string, options Payload) (*Response, error) {
	return deleteCampaign(ctx, client, id, options)
}

// StartCampaign schedules a campaign between scheduledFor and stopAt.
// Zero times are omitted.
func (client *Client) StartCampaign(ctx context.Context, id string, scheduledFor, stopAt time.Time) (*Response, error) {
	return startCampaign(ctx, client, id, scheduledFor, stopAt)
}

func (client *Client) StopCampaign(ctx context.Context, id string) (*Response, error) {
	return stopCampaign(ctx, client, id)
}

// QueryCampaigns lists campaigns matching filter.
func (client *Client) QueryCampaigns(ctx context.Context, filter Filter, sort Sort, options Payload) (*Response, error) {
	response, err := client.Post(ctx, "campaigns/query", nil, queryPayload("filter", filter, sort, options))
	if err != nil {
		return nil, fmt.Errorf("querying campaigns: %w", err)
	}
	return response, nil
}

func createCampaign(ctx context.Context, requester Requester, id string, data Payload) (*Response, error) {
	body := merge(data)
	if id != "" {
		body["id"] = id
	}
	response, err := requester.Do(ctx, http.MethodPost, "campaigns", nil, body)
	if err != nil {
		return nil, fmt.Errorf("creating campaign: %w", err)
	}
	return response, nil
}

func getCampaign(ctx context.Context, requester Requester, id string) (*Response, error) {
	response, err := requester.Do(ctx, http.MethodGet, endpoint("campaigns", id), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting campaign %s: %w", id, err)
	}
	return response, nil
}

func updateCampaign(ctx context.Context, requester Requester, id string, data Payload) (*Response, error) {
	response, err := requester.Do(ctx, http.MethodPut, endpoint("campaigns", id), nil, merge(data))
	if err != nil {
		return nil, fmt.Errorf("updating campaign %s: %w", id, err)
	}
	return response, nil
}

func deleteCampaign(ctx context.Context, requester Requester, id string, options Payload) (*Response, error) {
	response, err := requester.Do(ctx, http.MethodDelete, endpoint("campaigns", id), queryFromPayload(options), nil)
	if err != nil {
		return nil, fmt.Errorf("deleting campaign %s: %w", id, err)
	}
	return response, nil
}

func startCampaign(ctx context.Context, requester Requester, id string, scheduledFor, stopAt time.Time) (*Response, error) {
	body := Payload{}
	if !scheduledFor.IsZero() {
		body["scheduled_for"] = scheduledFor.UTC().Format(time.RFC3339)
	}
	if !stopAt.IsZero() {
		body["stop_at"] = stopAt.UTC().Format(time.RFC3339)
	}
	response, err := requester.Do(ctx, http.MethodPost, endpoint("campaigns", id, "start"), nil, body)
	if err != nil {
		return nil, fmt.Errorf("starting campaign %s: %w", id, err)
	}
	return response, nil
}

func stopCampaign(ctx context.Context, requester Requester, id string) (*Response, error) {
	response, err := requester.Do(ctx, http.MethodPost, endpoint("campaigns", id, "stop"), nil, Payload{})
	if err != nil {
		return nil, fmt.Errorf("stopping campaign %s: %w", id, err)
	}
	return response, nil
}
