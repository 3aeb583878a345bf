package client

// Client aggregates the typed clients for the remote services the
// reservation workflow consumes.
type Client struct {
	Fleet    *FleetClient
	Contacts *ContactClient
	Leases   *LeaseClient
}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) SetFleetClient(baseURL string) {
	c.Fleet = NewFleetClient(baseURL)
}

func (c *Client) SetContactClient(baseURL string) {
	c.Contacts = NewContactClient(baseURL)
}

func (c *Client) SetLeaseClient(baseURL string) {
	c.Leases = NewLeaseClient(baseURL)
}
