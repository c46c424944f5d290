package catalog

import "context"

// LabAPI is the catalog slice of the remote lab API.
type LabAPI interface {
	ListServices(ctx context.Context) ([]Service, error)
	GetService(ctx context.Context, serviceID string) (*Service, error)
}
