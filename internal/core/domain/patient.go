package domain

import (
	"errors"
	"time"
)

var ErrPatientNotFound = errors.New("patient not found")

// Patient statuses. A booking starts as PatientStatusBooked.
const (
	PatientStatusBooked     = "BOOKED"
	PatientStatusAdmitted   = "ADMITTED"
	PatientStatusDischarged = "DISCHARGED"
	PatientStatusCancelled  = "CANCELLED"
)

// ValidPatientStatus reports whether status is one of the known statuses.
func ValidPatientStatus(status string) bool {
	switch status {
	case PatientStatusBooked, PatientStatusAdmitted, PatientStatusDischarged, PatientStatusCancelled:
		return true
	}
	return false
}

// Patient is a booked appointment.
type Patient struct {
	ID            string    `json:"id" bson:"_id"`
	PatientName   string    `json:"patientName" bson:"patient_name"`
	PatientEmail  string    `json:"patientEmail" bson:"patient_email"`
	ContactNumber int64     `json:"contactNumber,omitempty" bson:"contact_number,omitempty"`
	DateOfBirth   string    `json:"dateOfBirth,omitempty" bson:"date_of_birth,omitempty"`
	Disease       string    `json:"disease,omitempty" bson:"disease,omitempty"`
	AppointmentAt time.Time `json:"appointmentAt" bson:"appointment_at"`
	BookedAt      time.Time `json:"bookedAt" bson:"booked_at"`
	BookedBy      string    `json:"bookedBy" bson:"booked_by"`

	Status             string `json:"status" bson:"status"`
	DescriptionDetails string `json:"descriptionDetails,omitempty" bson:"description_details,omitempty"`
	// PaidAmount is in whole currency units.
	PaidAmount int64 `json:"paidAmount" bson:"paid_amount"`
}

// PaymentSummary aggregates paid amounts over all bookings. Loss is what was
// paid for cancelled bookings; Profit is the rest of TotalPaidAmount.
type PaymentSummary struct {
	TotalPaidAmount   int64   `json:"totalPaidAmount"`
	Profit            int64   `json:"profit"`
	Loss              int64   `json:"loss"`
	AveragePaidAmount float64 `json:"averagePaidAmount"`
}

// Notification is an outbound HTML email.
type Notification struct {
	To       string
	Subject  string
	HTMLBody string
	// DedupKey identifies the logical message; repeated keys are delivered once.
	DedupKey string
	// Kind labels the message for metrics, e.g. "welcome".
	Kind string
}
