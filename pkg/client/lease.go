package client

import (
	"context"
	"fmt"

	"fleetlease/pkg/model"
)

// LeaseClient talks to the lease service.
type LeaseClient struct {
	httpClient *HttpClient
}

func NewLeaseClient(baseURL string) *LeaseClient {
	return &LeaseClient{
		httpClient: NewHttpClient(baseURL),
	}
}

type createLeaseRequest struct {
	LeaseData *model.LeaseBookingRequest `json:"lease_data"`
}

// CreateLease submits a booking. A decodable response is returned as a
// result even on a non-2xx status: the service reports logical failures
// (vehicle taken, contact rejected) in the success/message shape, and the
// caller must distinguish those from transport faults.
func (c *LeaseClient) CreateLease(ctx context.Context, req *model.LeaseBookingRequest) (*model.LeaseCreateResult, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/leases", createLeaseRequest{LeaseData: req})
	if err != nil {
		return nil, err
	}

	var result model.LeaseCreateResult
	if err := resp.DecodeJSON(&result); err != nil {
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("lease creation failed: %s", GetErrorMessage(resp))
		}
		return nil, fmt.Errorf("could not decode lease result: %w", err)
	}

	if !resp.IsSuccess() && result.Message == "" {
		return nil, fmt.Errorf("lease creation failed: status %d", resp.StatusCode)
	}
	return &result, nil
}

func (c *LeaseClient) Ping(ctx context.Context) error {
	return c.httpClient.Ping(ctx)
}
