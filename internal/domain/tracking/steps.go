package tracking

import "github.com/helixlab/portal/internal/domain/order"

type StepStatus string

const (
	StepCompleted StepStatus = "completed"
	StepCurrent   StepStatus = "current"
	StepPending   StepStatus = "pending"
)

// Step is one stage of the order's displayed fulfilment timeline.
type Step struct {
	Step        int        `json:"step"`
	Title       string     `json:"title"`
	Status      StepStatus `json:"status"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
}

// stepSpec pairs a step's completion predicate with an optional "in progress"
// predicate. There is deliberately no generic state machine here: each step
// owns its own predicates, evaluated against the aggregate.
type stepSpec struct {
	title       string
	description string
	done        bool
	inProgress  bool
	date        string
}

// GenerateSteps produces the ordered tracking timeline for an order. The
// shape branches on collection method: home orders walk through kit logistics
// and self-collection, facility orders through the appointment; both converge
// on lab analysis and results.
func GenerateSteps(agg *order.Aggregate) []Step {
	if agg == nil {
		return nil
	}

	specs := []stepSpec{
		{
			title:       "Order confirmed",
			description: "Your order has been received and confirmed",
			done:        true,
			date:        agg.Order.CreatedAt,
		},
	}

	if CollectionMethod(agg) == CollectionFacility {
		specs = append(specs, facilitySteps(agg)...)
	} else {
		specs = append(specs, homeSteps(agg)...)
	}
	specs = append(specs, convergingSteps(agg)...)

	steps := make([]Step, len(specs))
	for i, spec := range specs {
		status := StepPending
		switch {
		case spec.done:
			status = StepCompleted
		case spec.inProgress:
			status = StepCurrent
		}
		steps[i] = Step{
			Step:        i + 1,
			Title:       spec.title,
			Status:      status,
			Date:        spec.date,
			Description: spec.description,
		}
	}
	return steps
}

func homeSteps(agg *order.Aggregate) []stepSpec {
	anyKit := len(agg.SampleKits) > 0
	anyKitShipped := false
	var shippedDate string
	for _, kit := range agg.SampleKits {
		if kit.Status == "shipped" || kit.Status == "delivered" {
			anyKitShipped = true
			if shippedDate == "" {
				// The lab API has no shipped-at timestamp. Use the delivered
				// date when the kit already arrived, else the kit's creation
				// date, so a shipped kit never completes the step undated.
				shippedDate = kit.DeliveredDate
				if shippedDate == "" {
					shippedDate = kit.CreatedAt
				}
			}
		}
	}

	anySample := len(agg.Samples) > 0
	received, receivedDate := firstReceivedSample(agg.Samples)

	var kitDate, collectionDate string
	if anyKit {
		kitDate = agg.SampleKits[0].CreatedAt
	}
	if anySample {
		collectionDate = agg.Samples[0].CollectionDate
	}

	return []stepSpec{
		{
			title:       "Kit preparation",
			description: "The laboratory prepares your sample collection kit",
			done:        anyKit,
			date:        kitDate,
		},
		{
			title:       "Kit shipped",
			description: "Your collection kit is on its way",
			done:        anyKitShipped,
			inProgress:  anyKit,
			date:        shippedDate,
		},
		{
			title:       "Sample collection at home",
			description: "Collect your sample following the kit instructions",
			done:        anySample,
			inProgress:  anyKitShipped,
			date:        collectionDate,
		},
		{
			title:       "Sample received at lab",
			description: "Your sample arrives at the laboratory",
			done:        received,
			inProgress:  anySample,
			date:        receivedDate,
		},
	}
}

func facilitySteps(agg *order.Aggregate) []stepSpec {
	hasAppointment := agg.Appointment != nil
	var appointmentDate string
	if hasAppointment {
		appointmentDate = agg.Appointment.AppointmentDate
	}

	anySample := len(agg.Samples) > 0
	var collectionDate string
	if anySample {
		collectionDate = agg.Samples[0].CollectionDate
	}

	return []stepSpec{
		{
			title:       "Appointment confirmed",
			description: "Your visit to the collection facility is booked",
			done:        hasAppointment,
			date:        appointmentDate,
		},
		{
			title:       "Sample collected at facility",
			description: "A technician collects your sample on site",
			done:        anySample,
			inProgress:  hasAppointment,
			date:        collectionDate,
		},
	}
}

func convergingSteps(agg *order.Aggregate) []stepSpec {
	analyzing := false
	var analysisDate string
	for _, sample := range agg.Samples {
		if sample.Status == "analyzing" || sample.Status == "completed" {
			analyzing = true
			break
		}
	}
	received, receivedDate := firstReceivedSample(agg.Samples)
	if received {
		analysisDate = receivedDate
	}

	resultsReady := len(agg.TestResults) > 0 || agg.Order.Status == "completed"
	resultsDate := agg.Order.UpdatedAt
	if len(agg.TestResults) > 0 {
		resultsDate = agg.TestResults[0].TestedDate
	}

	return []stepSpec{
		{
			title:       "Lab analysis",
			description: "The laboratory analyzes your sample",
			done:        analyzing,
			inProgress:  received,
			date:        analysisDate,
		},
		{
			title:       "Results ready",
			description: "Your test results are available",
			done:        resultsReady,
			inProgress:  analyzing,
			date:        resultsDate,
		},
	}
}

func firstReceivedSample(samples []order.Sample) (bool, string) {
	for _, sample := range samples {
		if sample.ReceivedDate != "" {
			return true, sample.ReceivedDate
		}
	}
	return false, ""
}
