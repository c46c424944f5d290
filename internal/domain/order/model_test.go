package order

import (
	"encoding/json"
	"testing"
)

func TestAppointmentStatus_UnmarshalBool(t *testing.T) {
	var appt Appointment
	if err := json.Unmarshal([]byte(`{"orderId":"o1","status":true}`), &appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != AppointmentConfirmed {
		t.Errorf("expected confirmed, got %q", appt.Status)
	}
	if !appt.Status.Confirmed() {
		t.Error("expected Confirmed() to be true")
	}

	if err := json.Unmarshal([]byte(`{"orderId":"o1","status":false}`), &appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != AppointmentPending {
		t.Errorf("expected pending, got %q", appt.Status)
	}
}

func TestAppointmentStatus_UnmarshalString(t *testing.T) {
	var appt Appointment
	if err := json.Unmarshal([]byte(`{"orderId":"o1","status":"completed"}`), &appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != AppointmentCompleted {
		t.Errorf("expected completed, got %q", appt.Status)
	}
}

func TestAppointmentStatus_UnmarshalOddValue(t *testing.T) {
	var appt Appointment
	if err := json.Unmarshal([]byte(`{"orderId":"o1","status":null}`), &appt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appt.Status != AppointmentPending {
		t.Errorf("expected pending for null status, got %q", appt.Status)
	}
}

func TestSampleKit_HasSample(t *testing.T) {
	tests := []struct {
		sampleID string
		want     bool
	}{
		{"", false},
		{PendingSampleID, false},
		{"smp-1", true},
	}
	for _, tt := range tests {
		kit := SampleKit{SampleID: tt.sampleID}
		if got := kit.HasSample(); got != tt.want {
			t.Errorf("HasSample with sampleId %q = %v, want %v", tt.sampleID, got, tt.want)
		}
	}
}
