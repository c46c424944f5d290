// Package order models a DNA-test order and everything the lab API relates to
// it: line items, participants, sample kits, samples, the optional facility
// appointment, and test results. The package also owns the status taxonomy and
// the aggregate loader that reassembles one order's full state from the
// independently-updated lab API resources.
package order

import "encoding/json"

// Date/timestamp fields stay raw strings: the lab API emits them for display
// and never guarantees one format, so they pass through untouched.

type Order struct {
	ID            string  `json:"orderId"`
	UserID        string  `json:"userId"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentMethod string  `json:"paymentMethod"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentDate   string  `json:"paymentDate,omitempty"`
	TransactionID string  `json:"transactionId,omitempty"`
	Notes         string  `json:"notes"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// OrderDetail is one line item of an order. CollectionMethod, when present,
// decides the tracking timeline branch (see tracking.CollectionMethod).
type OrderDetail struct {
	ID               string  `json:"orderDetailId"`
	OrderID          string  `json:"orderId"`
	ServiceID        string  `json:"serviceId"`
	Quantity         int     `json:"quantity"`
	UnitPrice        float64 `json:"unitPrice"`
	Subtotal         float64 `json:"subtotal"`
	CollectionMethod string  `json:"collectionMethod,omitempty"`
}

type Participant struct {
	ID           string `json:"participantId"`
	OrderID      string `json:"orderId"`
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Age          int    `json:"age"`
}

// SampleKit is a physical collection kit. SampleID holds the "pending"
// placeholder until the lab links a sample to the kit.
type SampleKit struct {
	ID              string `json:"id"`
	OrderID         string `json:"orderId"`
	KitCode         string `json:"kitCode"`
	Status          string `json:"status"`
	ShippingAddress string `json:"shippingAddress"`
	TrackingNumber  string `json:"trackingNumber,omitempty"`
	DeliveredDate   string `json:"deliveredDate,omitempty"`
	SampleID        string `json:"sampleId"`
	CreatedAt       string `json:"createdAt"`
}

// PendingSampleID is the placeholder the lab API stores on a kit before a
// sample has been produced from it.
const PendingSampleID = "pending"

// HasSample reports whether the kit references a real sample yet.
func (k SampleKit) HasSample() bool {
	return k.SampleID != "" && k.SampleID != PendingSampleID
}

type Sample struct {
	ID             string `json:"id"`
	SampleKitID    string `json:"sampleKitId"`
	UserID         string `json:"userId"`
	SampleCode     string `json:"sampleCode"`
	Status         string `json:"status"`
	CollectionDate string `json:"collectionDate,omitempty"`
	ReceivedDate   string `json:"receivedDate,omitempty"`
}

// AppointmentStatus absorbs the lab API's loose typing: the field arrives as
// either a boolean ("confirmed or not") or a string state. Unmarshalling is
// the single point where the raw value is normalised.
type AppointmentStatus string

const (
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentCompleted AppointmentStatus = "completed"
)

func (s *AppointmentStatus) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		if t {
			*s = AppointmentConfirmed
		} else {
			*s = AppointmentPending
		}
	case string:
		*s = AppointmentStatus(t)
	default:
		*s = AppointmentPending
	}
	return nil
}

// Confirmed reports whether the appointment counts as confirmed, accepting
// the string spellings seen in the wild.
func (s AppointmentStatus) Confirmed() bool {
	return s == AppointmentConfirmed || s == "true"
}

type Appointment struct {
	ID               string            `json:"appointmentId"`
	OrderID          string            `json:"orderId"`
	UserID           string            `json:"userId"`
	DoctorTimeSlotID string            `json:"doctorTimeSlotId"`
	AppointmentDate  string            `json:"appointmentDate"`
	Status           AppointmentStatus `json:"status"`
}

type TestResult struct {
	ID               string `json:"id"`
	SampleID         string `json:"sampleId"`
	UserID           string `json:"userId"`
	ResultType       string `json:"resultType"`
	ResultPercentage string `json:"resultPercentage"`
	Conclusion       string `json:"conclusion"`
	ResultDetail     string `json:"resultDetail"`
	ResultFile       string `json:"resultFile,omitempty"`
	TestedDate       string `json:"testedDate"`
}

// Aggregate is the merged, in-memory view of one order and all entities the
// lab API relates to it. It is rebuilt on every load and never mutated in
// place; derived fields are filled in by Service.AttachResults.
type Aggregate struct {
	Order        Order         `json:"order"`
	Details      []OrderDetail `json:"orderDetails"`
	Participants []Participant `json:"participants"`
	Appointment  *Appointment  `json:"appointment"`
	SampleKits   []SampleKit   `json:"sampleKits"`
	Samples      []Sample      `json:"samples"`
	TestResults  []TestResult  `json:"testResults"`

	HasTestResults      bool `json:"hasTestResults"`
	TestResultsProgress int  `json:"testResultsProgress"`
}
