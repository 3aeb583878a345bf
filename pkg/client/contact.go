package client

import (
	"context"
	"fmt"
	"net/url"

	"fleetlease/pkg/model"
)

// ContactClient talks to the contact service.
type ContactClient struct {
	httpClient *HttpClient
}

func NewContactClient(baseURL string) *ContactClient {
	return &ContactClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ContactClient) SearchContacts(ctx context.Context, term string) ([]model.Contact, error) {
	path := "/api/v1/contacts/search?term=" + url.QueryEscape(term)

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("contact search failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data []model.Contact `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode contact list: %w", err)
	}
	return wrapper.Data, nil
}

func (c *ContactClient) Ping(ctx context.Context) error {
	return c.httpClient.Ping(ctx)
}
