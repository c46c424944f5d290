package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/helixlab/portal/internal/platform/gateway"
)

var ErrServiceNotFound = errors.New("service not found")

type Catalog struct {
	api LabAPI
}

func NewCatalog(api LabAPI) *Catalog {
	return &Catalog{api: api}
}

// List returns the bookable services. Inactive entries are filtered out here
// so the admin-only raw list stays available straight from the lab API.
func (c *Catalog) List(ctx context.Context) ([]Service, error) {
	services, err := c.api.ListServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	active := make([]Service, 0, len(services))
	for _, svc := range services {
		if svc.Active {
			active = append(active, svc)
		}
	}
	return active, nil
}

func (c *Catalog) Get(ctx context.Context, serviceID string) (*Service, error) {
	svc, err := c.api.GetService(ctx, serviceID)
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
		}
		return nil, fmt.Errorf("fetch service %s: %w", serviceID, err)
	}
	return svc, nil
}
