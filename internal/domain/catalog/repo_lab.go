package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/helixlab/portal/internal/platform/gateway"
)

// LabAPIClient implements LabAPI over the gateway's envelope client.
type LabAPIClient struct {
	gw *gateway.Client
}

func NewLabAPIClient(gw *gateway.Client) *LabAPIClient {
	return &LabAPIClient{gw: gw}
}

func (c *LabAPIClient) ListServices(ctx context.Context) ([]Service, error) {
	var services []Service
	if err := c.gw.Get(ctx, "/services", &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (c *LabAPIClient) GetService(ctx context.Context, serviceID string) (*Service, error) {
	var svc Service
	path := fmt.Sprintf("/services/%s", url.PathEscape(serviceID))
	if err := c.gw.Get(ctx, path, &svc); err != nil {
		return nil, err
	}
	return &svc, nil
}
