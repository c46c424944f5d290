package order

import "context"

// LabAPI is the slice of the remote lab API the order domain consumes. Each
// method maps to one logical endpoint; list methods return empty slices when
// the backing endpoint has nothing for the key.
type LabAPI interface {
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListOrderDetails(ctx context.Context, orderID string) ([]OrderDetail, error)
	ListParticipants(ctx context.Context, orderID string) ([]Participant, error)
	ListUserAppointments(ctx context.Context, userID string) ([]Appointment, error)
	ListAllAppointments(ctx context.Context) ([]Appointment, error)
	ListSampleKits(ctx context.Context, orderID string) ([]SampleKit, error)
	GetSample(ctx context.Context, sampleID string) (*Sample, error)
	ListTestResults(ctx context.Context, sampleID string) ([]TestResult, error)
}
