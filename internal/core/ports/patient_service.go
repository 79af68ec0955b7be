package ports

import (
	"context"
	"time"

	"github.com/sunitahospital/hospital-system/internal/core/domain"
)

// BookAppointmentInput carries all data needed to book an appointment.
type BookAppointmentInput struct {
	PatientName   string
	PatientEmail  string
	ContactNumber int64
	DateOfBirth   string
	Disease       string
	AppointmentAt time.Time
	PaidAmount    int64
	// BookedBy is the username of the authenticated caller.
	BookedBy string
}

// PatientService defines use-case operations for patient bookings.
type PatientService interface {
	Book(ctx context.Context, input BookAppointmentInput) (*domain.Patient, error)
	Get(ctx context.Context, id string) (*domain.Patient, error)
	List(ctx context.Context) ([]*domain.Patient, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Patient, error)
	UpdateDescription(ctx context.Context, id, details string) (*domain.Patient, error)
	PaidAmountMetrics(ctx context.Context) (*domain.PaymentSummary, error)
}
