package order

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/helixlab/portal/internal/platform/gateway"
)

// mockLabAPI lets each test inject responses and failures per endpoint.
type mockLabAPI struct {
	order            *Order
	orderErr         error
	details          []OrderDetail
	detailsErr       error
	participants     []Participant
	participantsErr  error
	userAppointments []Appointment
	userApptErr      error
	allAppointments  []Appointment
	allApptErr       error
	kits             []SampleKit
	kitsErr          error
	samples          map[string]*Sample
	samplesErr       error
	results          map[string][]TestResult
	resultsErr       map[string]error

	allApptCalls int
}

func (m *mockLabAPI) GetOrder(_ context.Context, orderID string) (*Order, error) {
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	return m.order, nil
}

func (m *mockLabAPI) ListOrderDetails(_ context.Context, _ string) ([]OrderDetail, error) {
	return m.details, m.detailsErr
}

func (m *mockLabAPI) ListParticipants(_ context.Context, _ string) ([]Participant, error) {
	return m.participants, m.participantsErr
}

func (m *mockLabAPI) ListUserAppointments(_ context.Context, _ string) ([]Appointment, error) {
	return m.userAppointments, m.userApptErr
}

func (m *mockLabAPI) ListAllAppointments(_ context.Context) ([]Appointment, error) {
	m.allApptCalls++
	return m.allAppointments, m.allApptErr
}

func (m *mockLabAPI) ListSampleKits(_ context.Context, _ string) ([]SampleKit, error) {
	return m.kits, m.kitsErr
}

func (m *mockLabAPI) GetSample(_ context.Context, sampleID string) (*Sample, error) {
	if m.samplesErr != nil {
		return nil, m.samplesErr
	}
	sample, ok := m.samples[sampleID]
	if !ok {
		return nil, &gateway.StatusError{Path: "/samples/" + sampleID, Code: 404, Message: "not found"}
	}
	return sample, nil
}

func (m *mockLabAPI) ListTestResults(_ context.Context, sampleID string) ([]TestResult, error) {
	if err := m.resultsErr[sampleID]; err != nil {
		return nil, err
	}
	return m.results[sampleID], nil
}

func newTestService(api LabAPI) *Service {
	return NewService(api, zerolog.Nop())
}

func TestLoadAggregate_FullGraph(t *testing.T) {
	api := &mockLabAPI{
		order: &Order{ID: "ord-1", UserID: "user-1", Status: "kit_sent"},
		details: []OrderDetail{
			{OrderID: "ord-1", ServiceID: "svc-1", Quantity: 1},
		},
		participants: []Participant{
			{OrderID: "ord-1", Name: "Alice"},
			{OrderID: "ord-1", Name: "Bob"},
		},
		userAppointments: []Appointment{
			{ID: "appt-9", OrderID: "other-order"},
			{ID: "appt-1", OrderID: "ord-1", Status: AppointmentConfirmed},
		},
		kits: []SampleKit{
			{ID: "kit-1", OrderID: "ord-1", Status: "delivered", SampleID: "smp-1"},
			{ID: "kit-2", OrderID: "ord-1", Status: "shipped", SampleID: PendingSampleID},
		},
		samples: map[string]*Sample{
			"smp-1": {ID: "smp-1", Status: "received", ReceivedDate: "2026-08-20"},
		},
	}

	agg, err := newTestService(api).LoadAggregate(context.Background(), "ord-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if agg.Order.ID != "ord-1" {
		t.Errorf("unexpected order: %+v", agg.Order)
	}
	if len(agg.Details) != 1 || len(agg.Participants) != 2 || len(agg.SampleKits) != 2 {
		t.Errorf("related entities not populated: %+v", agg)
	}
	if agg.Appointment == nil || agg.Appointment.ID != "appt-1" {
		t.Errorf("expected appointment appt-1, got %+v", agg.Appointment)
	}
	if len(agg.Samples) != 1 || agg.Samples[0].ID != "smp-1" {
		t.Errorf("expected one resolved sample, got %+v", agg.Samples)
	}
	if api.allApptCalls != 0 {
		t.Errorf("system-wide appointment fallback should not run when user scope matches")
	}
}

func TestLoadAggregate_BaseOrder404(t *testing.T) {
	api := &mockLabAPI{
		orderErr: &gateway.StatusError{Path: "/orders/ghost", Code: 404, Message: "order not found"},
	}

	agg, err := newTestService(api).LoadAggregate(context.Background(), "ghost", "user-1")
	if agg != nil {
		t.Fatal("expected no partial aggregate")
	}
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestLoadAggregate_BaseOrderTransportError(t *testing.T) {
	api := &mockLabAPI{orderErr: errors.New("connection refused")}

	_, err := newTestService(api).LoadAggregate(context.Background(), "ord-1", "user-1")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrOrderNotFound) {
		t.Fatal("transport failure must not masquerade as not-found")
	}
}

func TestLoadAggregate_AppointmentFetchDegrades(t *testing.T) {
	api := &mockLabAPI{
		order:        &Order{ID: "ord-1", Status: "confirmed"},
		details:      []OrderDetail{{OrderID: "ord-1"}},
		participants: []Participant{{OrderID: "ord-1", Name: "Alice"}},
		userApptErr:  errors.New("boom"),
		allApptErr:   errors.New("boom"),
		kits:         []SampleKit{{ID: "kit-1", Status: "ordered"}},
	}

	agg, err := newTestService(api).LoadAggregate(context.Background(), "ord-1", "user-1")
	if err != nil {
		t.Fatalf("degraded appointment fetch must not fail the load: %v", err)
	}
	if agg.Appointment != nil {
		t.Errorf("expected nil appointment, got %+v", agg.Appointment)
	}
	if len(agg.Details) != 1 || len(agg.Participants) != 1 || len(agg.SampleKits) != 1 {
		t.Errorf("other entities should still be populated: %+v", agg)
	}
}

func TestLoadAggregate_AllRelatedFetchesDegrade(t *testing.T) {
	api := &mockLabAPI{
		order:           &Order{ID: "ord-1", Status: "pending"},
		detailsErr:      errors.New("boom"),
		participantsErr: errors.New("boom"),
		userApptErr:     errors.New("boom"),
		allApptErr:      errors.New("boom"),
		kitsErr:         errors.New("boom"),
	}

	agg, err := newTestService(api).LoadAggregate(context.Background(), "ord-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.Details == nil || agg.Participants == nil || agg.SampleKits == nil {
		t.Error("degraded entities must be empty slices, not nil")
	}
	if len(agg.Details) != 0 || len(agg.Samples) != 0 {
		t.Errorf("expected empty related entities, got %+v", agg)
	}
}

func TestLoadAggregate_AppointmentSystemWideFallback(t *testing.T) {
	api := &mockLabAPI{
		order:            &Order{ID: "ord-1", Status: "confirmed"},
		userAppointments: []Appointment{{ID: "appt-9", OrderID: "other-order"}},
		allAppointments: []Appointment{
			{ID: "appt-1", OrderID: "ord-1", Status: AppointmentConfirmed},
		},
	}

	agg, err := newTestService(api).LoadAggregate(context.Background(), "ord-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if agg.Appointment == nil || agg.Appointment.ID != "appt-1" {
		t.Errorf("expected fallback to find appt-1, got %+v", agg.Appointment)
	}
	if api.allApptCalls != 1 {
		t.Errorf("expected exactly one system-wide lookup, got %d", api.allApptCalls)
	}
}

func TestLoadAggregate_SampleLookupFailureSkipsSample(t *testing.T) {
	api := &mockLabAPI{
		order: &Order{ID: "ord-1", Status: "kit_sent"},
		kits: []SampleKit{
			{ID: "kit-1", SampleID: "smp-1"},
			{ID: "kit-2", SampleID: "smp-missing"},
		},
		samples: map[string]*Sample{
			"smp-1": {ID: "smp-1", Status: "collected"},
		},
	}

	agg, err := newTestService(api).LoadAggregate(context.Background(), "ord-1", "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agg.Samples) != 1 || agg.Samples[0].ID != "smp-1" {
		t.Errorf("expected only the resolvable sample, got %+v", agg.Samples)
	}
}

func TestAttachResults_FlattensAndDerives(t *testing.T) {
	api := &mockLabAPI{
		results: map[string][]TestResult{
			"smp-1": {{ID: "res-1", SampleID: "smp-1", Conclusion: "99.99% match"}},
		},
	}
	agg := &Aggregate{
		Order: Order{ID: "ord-1"},
		Samples: []Sample{
			{ID: "smp-1", Status: "completed"},
			{ID: "smp-2", Status: "analyzing"},
		},
	}

	newTestService(api).AttachResults(context.Background(), agg)

	if len(agg.TestResults) != 1 {
		t.Fatalf("expected one flattened result, got %d", len(agg.TestResults))
	}
	if !agg.HasTestResults {
		t.Error("expected HasTestResults")
	}
	if agg.TestResultsProgress != 50 {
		t.Errorf("expected results progress 50, got %d", agg.TestResultsProgress)
	}
}

func TestAttachResults_PartialFailureTolerated(t *testing.T) {
	api := &mockLabAPI{
		results: map[string][]TestResult{
			"smp-1": {{ID: "res-1", SampleID: "smp-1"}},
			"smp-2": {{ID: "res-2", SampleID: "smp-2"}},
		},
		resultsErr: map[string]error{
			"smp-2": errors.New("boom"),
		},
	}
	agg := &Aggregate{
		Order: Order{ID: "ord-1"},
		Samples: []Sample{
			{ID: "smp-1"},
			{ID: "smp-2"},
		},
	}

	newTestService(api).AttachResults(context.Background(), agg)

	if len(agg.TestResults) != 1 || agg.TestResults[0].ID != "res-1" {
		t.Errorf("expected only smp-1 results, got %+v", agg.TestResults)
	}
}

func TestAttachResults_NoSamples(t *testing.T) {
	agg := &Aggregate{Order: Order{ID: "ord-1"}}

	newTestService(&mockLabAPI{}).AttachResults(context.Background(), agg)

	if agg.HasTestResults {
		t.Error("expected no results")
	}
	if agg.TestResultsProgress != 0 {
		t.Errorf("expected progress 0, got %d", agg.TestResultsProgress)
	}
}
