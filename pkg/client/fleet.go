package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"fleetlease/pkg/model"
)

// FleetClient talks to the fleet service: vehicle search, the model/location
// catalog, and per-vehicle month availability.
type FleetClient struct {
	httpClient *HttpClient
}

func NewFleetClient(baseURL string) *FleetClient {
	return &FleetClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *FleetClient) SearchVehicles(ctx context.Context, query model.VehicleQuery) ([]model.VehicleRecord, error) {
	q := url.Values{}
	if query.StartDate != nil {
		q.Set("start_date", query.StartDate.Format(time.RFC3339))
	}
	if query.EndDate != nil {
		q.Set("end_date", query.EndDate.Format(time.RFC3339))
	}
	if query.ModelName != "" {
		q.Set("model_name", query.ModelName)
	}
	if query.LocationName != "" {
		q.Set("location_name", query.LocationName)
	}

	path := "/api/v1/vehicles/search"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("vehicle search failed: %s", GetErrorMessage(resp))
	}
	return decodeVehicleRecords(resp)
}

func (c *FleetClient) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/catalog")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("catalog load failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data model.Catalog `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode catalog: %w", err)
	}
	return &wrapper.Data, nil
}

func (c *FleetClient) MonthAvailability(ctx context.Context, vehicleID, monthKey string) ([]model.AvailabilityDay, error) {
	path := "/api/v1/vehicles/" + url.PathEscape(vehicleID) + "/availability?month=" + url.QueryEscape(monthKey)

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("availability lookup failed: %s", GetErrorMessage(resp))
	}

	var wrapper struct {
		Data []model.AvailabilityDay `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode availability days: %w", err)
	}
	return wrapper.Data, nil
}

func (c *FleetClient) Ping(ctx context.Context) error {
	return c.httpClient.Ping(ctx)
}

func decodeVehicleRecords(resp *Response) ([]model.VehicleRecord, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := resp.DecodeJSON(&wrapper); err != nil {
		return nil, fmt.Errorf("could not decode vehicle wrapper: %w", err)
	}

	var records []model.VehicleRecord
	if err := json.Unmarshal(wrapper.Data, &records); err != nil {
		return nil, fmt.Errorf("could not decode vehicle list: %w", err)
	}
	return records, nil
}
