package order

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

func (c *LabAPIClient) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var ord Order
	path := fmt.Sprintf("/orders/%s", url.PathEscape(orderID))
	if err := c.gw.Get(ctx, path, &ord); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (c *LabAPIClient) ListOrderDetails(ctx context.Context, orderID string) ([]OrderDetail, error) {
	var details []OrderDetail
	path := fmt.Sprintf("/order-details/order/%s", url.PathEscape(orderID))
	if err := c.gw.Get(ctx, path, &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (c *LabAPIClient) ListParticipants(ctx context.Context, orderID string) ([]Participant, error) {
	var participants []Participant
	path := fmt.Sprintf("/participants/order/%s", url.PathEscape(orderID))
	if err := c.gw.Get(ctx, path, &participants); err != nil {
		return nil, err
	}
	return participants, nil
}

func (c *LabAPIClient) ListUserAppointments(ctx context.Context, userID string) ([]Appointment, error) {
	var appointments []Appointment
	path := fmt.Sprintf("/appointments/user/%s", url.PathEscape(userID))
	if err := c.gw.Get(ctx, path, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *LabAPIClient) ListAllAppointments(ctx context.Context) ([]Appointment, error) {
	var appointments []Appointment
	if err := c.gw.Get(ctx, "/appointments", &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *LabAPIClient) ListSampleKits(ctx context.Context, orderID string) ([]SampleKit, error) {
	var kits []SampleKit
	path := fmt.Sprintf("/sample-kits/order/%s", url.PathEscape(orderID))
	if err := c.gw.Get(ctx, path, &kits); err != nil {
		return nil, err
	}
	return kits, nil
}

func (c *LabAPIClient) GetSample(ctx context.Context, sampleID string) (*Sample, error) {
	var sample Sample
	path := fmt.Sprintf("/samples/%s", url.PathEscape(sampleID))
	if err := c.gw.Get(ctx, path, &sample); err != nil {
		return nil, err
	}
	return &sample, nil
}

func (c *LabAPIClient) ListTestResults(ctx context.Context, sampleID string) ([]TestResult, error) {
	var results []TestResult
	path := fmt.Sprintf("/test-results/sample/%s", url.PathEscape(sampleID))
	if err := c.gw.Get(ctx, path, &results); err != nil {
		return nil, err
	}
	return results, nil
}
