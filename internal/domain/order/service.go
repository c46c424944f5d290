package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog"

	"github.com/helixlab/portal/internal/platform/gateway"
)

// ErrOrderNotFound marks the fatal outcome of loading an aggregate: the lab
// API has no such order. Only the base order fetch can fail the load; every
// related-entity failure degrades to an empty value instead.
var ErrOrderNotFound = errors.New("order not found")

type Service struct {
	api    LabAPI
	logger zerolog.Logger
}

func NewService(api LabAPI, logger zerolog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// LoadAggregate reassembles one order's full related-entity graph. The base
// order fetch is fatal; order details, participants, the appointment, sample
// kits, and per-kit samples are fetched as one settle-all concurrent batch
// where an individual failure yields an empty value and a warning log.
// userID scopes the appointment lookup; the system-wide fallback compensates
// for orders whose appointments are filed under a different user in the lab
// API.
func (s *Service) LoadAggregate(ctx context.Context, orderID, userID string) (*Aggregate, error) {
	ord, err := s.api.GetOrder(ctx, orderID)
	if err != nil {
		if gateway.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, fmt.Errorf("fetch order %s: %w", orderID, err)
	}

	agg := &Aggregate{Order: *ord}

	// Each goroutine writes only its own field of agg, so the batch needs no
	// locking; the WaitGroup is the only synchronisation point.
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		details, err := s.api.ListOrderDetails(ctx, orderID)
		if err != nil {
			s.degraded("order details", orderID, err)
			return
		}
		agg.Details = details
	}()

	go func() {
		defer wg.Done()
		participants, err := s.api.ListParticipants(ctx, orderID)
		if err != nil {
			s.degraded("participants", orderID, err)
			return
		}
		agg.Participants = participants
	}()

	go func() {
		defer wg.Done()
		agg.Appointment = s.findAppointment(ctx, orderID, userID)
	}()

	go func() {
		defer wg.Done()
		kits, err := s.api.ListSampleKits(ctx, orderID)
		if err != nil {
			s.degraded("sample kits", orderID, err)
			return
		}
		agg.SampleKits = kits
	}()

	wg.Wait()

	agg.Samples = s.loadSamples(ctx, orderID, agg.SampleKits)

	if agg.Details == nil {
		agg.Details = []OrderDetail{}
	}
	if agg.Participants == nil {
		agg.Participants = []Participant{}
	}
	if agg.SampleKits == nil {
		agg.SampleKits = []SampleKit{}
	}
	if agg.TestResults == nil {
		agg.TestResults = []TestResult{}
	}

	return agg, nil
}

// findAppointment fetches the user's appointments and filters by order ID.
// When no match turns up it retries against the system-wide list: the lab
// API's user scoping is known to miss appointments booked by reception staff
// on the customer's behalf.
func (s *Service) findAppointment(ctx context.Context, orderID, userID string) *Appointment {
	if userID != "" {
		appointments, err := s.api.ListUserAppointments(ctx, userID)
		if err != nil {
			s.degraded("user appointments", orderID, err)
		} else if appt := matchAppointment(appointments, orderID); appt != nil {
			return appt
		}
	}

	appointments, err := s.api.ListAllAppointments(ctx)
	if err != nil {
		s.degraded("all appointments", orderID, err)
		return nil
	}
	return matchAppointment(appointments, orderID)
}

func matchAppointment(appointments []Appointment, orderID string) *Appointment {
	for i := range appointments {
		if appointments[i].OrderID == orderID {
			return &appointments[i]
		}
	}
	return nil
}

// loadSamples resolves each kit's linked sample concurrently. Kits still on
// the pending placeholder are skipped; failed lookups degrade to absence.
func (s *Service) loadSamples(ctx context.Context, orderID string, kits []SampleKit) []Sample {
	slots := make([]*Sample, len(kits))

	var wg sync.WaitGroup
	for i, kit := range kits {
		if !kit.HasSample() {
			continue
		}
		wg.Add(1)
		go func(i int, sampleID string) {
			defer wg.Done()
			sample, err := s.api.GetSample(ctx, sampleID)
			if err != nil {
				s.degraded("sample "+sampleID, orderID, err)
				return
			}
			slots[i] = sample
		}(i, kit.SampleID)
	}
	wg.Wait()

	samples := make([]Sample, 0, len(kits))
	for _, sample := range slots {
		if sample != nil {
			samples = append(samples, *sample)
		}
	}
	return samples
}

// AttachResults enriches the aggregate with every sample's test results,
// fetched concurrently with the same settle-all policy, and fills in the
// derived result fields. The enriched aggregate is returned for chaining;
// agg itself is modified.
func (s *Service) AttachResults(ctx context.Context, agg *Aggregate) *Aggregate {
	if agg == nil {
		return nil
	}

	slots := make([][]TestResult, len(agg.Samples))

	var wg sync.WaitGroup
	for i, sample := range agg.Samples {
		wg.Add(1)
		go func(i int, sampleID string) {
			defer wg.Done()
			results, err := s.api.ListTestResults(ctx, sampleID)
			if err != nil {
				s.degraded("test results for sample "+sampleID, agg.Order.ID, err)
				return
			}
			slots[i] = results
		}(i, sample.ID)
	}
	wg.Wait()

	flat := make([]TestResult, 0)
	for _, results := range slots {
		flat = append(flat, results...)
	}

	agg.TestResults = flat
	agg.HasTestResults = len(flat) > 0
	if len(agg.Samples) > 0 {
		ratio := float64(len(flat)) / float64(len(agg.Samples))
		agg.TestResultsProgress = int(math.Round(ratio * 100))
	}
	return agg
}

func (s *Service) degraded(resource, orderID string, err error) {
	s.logger.Warn().
		Err(err).
		Str("order_id", orderID).
		Str("resource", resource).
		Msg("related-entity fetch degraded")
}
